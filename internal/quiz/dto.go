package quiz

import (
	"github.com/saulo-duarte/quizgate-lambda/internal/assembly"
	"github.com/saulo-duarte/quizgate-lambda/internal/question"
	"github.com/saulo-duarte/quizgate-lambda/internal/session"
)

type StartQuizRequest struct {
	QuizType    string               `json:"quiz_type" validate:"required,max=64"`
	TopicID     string               `json:"topic_id" validate:"required_without=Composition,excluded_with=Composition,max=128"`
	Composition assembly.Composition `json:"composition" validate:"omitempty,min=1,max=32,dive,keys,required,max=64,endkeys"`
	Difficulty  string               `json:"difficulty" validate:"required,oneof=easy medium hard mixed"`
	Count       int                  `json:"count" validate:"gte=0,lte=500"`
}

func (r StartQuizRequest) IsComposite() bool {
	return len(r.Composition) > 0
}

func (r StartQuizRequest) ToParams() session.Params {
	if r.IsComposite() {
		return session.NewCompositeTestParams(r.QuizType, r.Composition, r.Difficulty)
	}
	return session.NewSingleTopicParams(r.QuizType, r.TopicID, r.Difficulty, r.Count)
}

type StartQuizResponse struct {
	SessionToken string `json:"session_token"`
}

type GetQuizResponse struct {
	Questions []question.Question `json:"questions"`
	Context   session.Params      `json:"context"`
}

type AssemblyFailedResponse struct {
	Error    string `json:"error"`
	Found    int    `json:"found"`
	Required int    `json:"required"`
}
