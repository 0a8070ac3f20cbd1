package quiz

import (
	"github.com/saulo-duarte/quizgate-lambda/internal/assembly"
	"github.com/saulo-duarte/quizgate-lambda/internal/config"
	"github.com/saulo-duarte/quizgate-lambda/internal/question"
	"github.com/saulo-duarte/quizgate-lambda/internal/session"
	"gorm.io/gorm"
)

type QuizContainer struct {
	Handler *Handler
	Service QuizService
}

func NewQuizContainer(db *gorm.DB, settings *config.Settings) *QuizContainer {
	store := session.NewStore(settings.SessionTTL)
	questions := question.NewRepository(db)
	assembler := assembly.NewAssembler(assembly.NewSourcer(settings.GradePriority), settings.SubjectOrder, nil)
	service := NewService(db, store, questions, assembler)
	handler := NewHandler(service, settings.CompositeQuizTypes)

	return &QuizContainer{
		Handler: handler,
		Service: service,
	}
}
