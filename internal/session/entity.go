package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/quizgate-lambda/internal/assembly"
	"gorm.io/datatypes"
)

type Kind string

const (
	KindSingleTopic   Kind = "single_topic"
	KindCompositeTest Kind = "composite_test"
)

type SingleTopic struct {
	TopicID string `json:"topic_id"`
}

type CompositeTest struct {
	Composition assembly.Composition `json:"composition"`
}

// Params is what a quiz session stores. Exactly one of SingleTopic and
// CompositeTest is set, matching Kind.
type Params struct {
	Kind          Kind           `json:"kind"`
	QuizType      string         `json:"quiz_type"`
	Difficulty    string         `json:"difficulty"`
	Count         int            `json:"count"`
	SingleTopic   *SingleTopic   `json:"single_topic,omitempty"`
	CompositeTest *CompositeTest `json:"composite_test,omitempty"`
}

var ErrInvalidParams = errors.New("invalid quiz params")

func NewSingleTopicParams(quizType, topicID, difficultyLabel string, count int) Params {
	return Params{
		Kind:        KindSingleTopic,
		QuizType:    quizType,
		Difficulty:  difficultyLabel,
		Count:       count,
		SingleTopic: &SingleTopic{TopicID: topicID},
	}
}

// NewCompositeTestParams sets Count to the composition's grand total.
func NewCompositeTestParams(quizType string, composition assembly.Composition, difficultyLabel string) Params {
	return Params{
		Kind:          KindCompositeTest,
		QuizType:      quizType,
		Difficulty:    difficultyLabel,
		Count:         composition.Required(),
		CompositeTest: &CompositeTest{Composition: composition},
	}
}

func (p Params) Validate() error {
	switch p.Kind {
	case KindSingleTopic:
		if p.SingleTopic == nil || strings.TrimSpace(p.SingleTopic.TopicID) == "" || p.CompositeTest != nil {
			return ErrInvalidParams
		}
	case KindCompositeTest:
		if p.CompositeTest == nil || len(p.CompositeTest.Composition) == 0 || p.SingleTopic != nil {
			return ErrInvalidParams
		}
		if err := p.CompositeTest.Composition.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidParams, err)
		}
	default:
		return ErrInvalidParams
	}
	return nil
}

// quizSession rows are read and written only by Store.
type quizSession struct {
	Token     string                     `gorm:"type:text;primaryKey"`
	UserID    uuid.UUID                  `gorm:"type:uuid;not null;index"`
	Params    datatypes.JSONType[Params] `gorm:"not null"`
	CreatedAt time.Time                  `gorm:"not null;index"`
}

func (quizSession) TableName() string { return "quiz_sessions" }
