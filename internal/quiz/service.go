package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/saulo-duarte/quizgate-lambda/internal/assembly"
	"github.com/saulo-duarte/quizgate-lambda/internal/config"
	"github.com/saulo-duarte/quizgate-lambda/internal/monitoring"
	"github.com/saulo-duarte/quizgate-lambda/internal/question"
	"github.com/saulo-duarte/quizgate-lambda/internal/session"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type QuizService interface {
	StartQuiz(ctx context.Context, userID uuid.UUID, params session.Params) (string, error)
	Resolve(ctx context.Context, token string, userID uuid.UUID) (*ResolvedQuiz, error)
}

type quizService struct {
	db        *gorm.DB
	store     *session.Store
	questions question.Repository
	assembler *assembly.Assembler
}

func NewService(db *gorm.DB, store *session.Store, questions question.Repository, assembler *assembly.Assembler) QuizService {
	return &quizService{
		db:        db,
		store:     store,
		questions: questions,
		assembler: assembler,
	}
}

func (s *quizService) StartQuiz(ctx context.Context, userID uuid.UUID, params session.Params) (string, error) {
	log := config.WithContext(ctx).WithField("user_id", userID)

	var token string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		token, err = s.store.Create(ctx, tx, userID, params)
		return err
	})
	if err != nil {
		if errors.Is(err, session.ErrInvalidParams) {
			return "", err
		}
		log.WithError(err).Error("Erro ao criar sessão de quiz")
		return "", asStoreFailure(err)
	}
	monitoring.SessionsCreated.Inc()

	// Stale rows are swept opportunistically; a failed sweep only delays it.
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.store.PurgeExpired(ctx, tx)
		return err
	}); err != nil {
		log.WithError(err).Warn("Erro ao remover sessões de quiz expiradas")
	}

	return token, nil
}

// Resolve redeems token and loads its questions in one transaction. The
// session row is gone once this returns the quiz or ErrSessionExpired; any
// other failure rolls the transaction back.
func (s *quizService) Resolve(ctx context.Context, token string, userID uuid.UUID) (*ResolvedQuiz, error) {
	log := config.WithContext(ctx).WithField("user_id", userID)

	var (
		resolved *ResolvedQuiz
		expired  bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		params, err := s.store.RedeemAndDelete(ctx, tx, token, userID)
		if errors.Is(err, session.ErrSessionExpired) {
			expired = true
			return nil
		}
		if err != nil {
			return err
		}

		questions, err := s.loadQuestions(ctx, tx, params)
		if err != nil {
			return err
		}

		resolved = &ResolvedQuiz{Questions: questions, Context: params}
		return nil
	})

	switch {
	case err == nil && expired:
		monitoring.SessionsRedeemed.WithLabelValues("expired").Inc()
		return nil, ErrSessionExpired
	case err == nil:
		monitoring.SessionsRedeemed.WithLabelValues("ok").Inc()
		log.WithFields(logrus.Fields{
			"kind":      resolved.Context.Kind,
			"questions": len(resolved.Questions),
		}).Info("Sessão de quiz resgatada")
		return resolved, nil
	case errors.Is(err, ErrSessionNotFound):
		monitoring.SessionsRedeemed.WithLabelValues("not_found").Inc()
		return nil, err
	case errors.Is(err, ErrAssemblyFailed):
		monitoring.SessionsRedeemed.WithLabelValues("assembly_failed").Inc()
		return nil, err
	default:
		monitoring.SessionsRedeemed.WithLabelValues("store_failure").Inc()
		log.WithError(err).Error("Erro ao resgatar sessão de quiz")
		return nil, asStoreFailure(err)
	}
}

func (s *quizService) loadQuestions(ctx context.Context, tx *gorm.DB, params session.Params) ([]question.Question, error) {
	repo := s.questions.WithTx(tx)

	switch params.Kind {
	case session.KindCompositeTest:
		questions, err := s.assembler.Assemble(ctx, repo, params.CompositeTest.Composition, params.Difficulty)
		if ie, ok := assembly.IsInsufficient(err); ok {
			return nil, newAssemblyFailed(ie)
		}
		if err != nil {
			return nil, asStoreFailure(err)
		}
		return questions, nil

	case session.KindSingleTopic:
		questions, err := repo.ListByTopic(ctx, params.SingleTopic.TopicID)
		if err != nil {
			return nil, asStoreFailure(fmt.Errorf("list questions for topic %s: %w", params.SingleTopic.TopicID, err))
		}
		if questions == nil {
			questions = []question.Question{}
		}
		return questions, nil
	}

	return nil, asStoreFailure(fmt.Errorf("%w: unknown kind %q", ErrInvalidParams, params.Kind))
}

func asStoreFailure(err error) error {
	if errors.Is(err, ErrStoreFailure) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStoreFailure, err)
}
