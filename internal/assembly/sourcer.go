package assembly

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/saulo-duarte/quizgate-lambda/internal/config"
	"github.com/saulo-duarte/quizgate-lambda/internal/difficulty"
	"github.com/saulo-duarte/quizgate-lambda/internal/question"
	util "github.com/saulo-duarte/quizgate-lambda/internal/utils"
	"github.com/sirupsen/logrus"
)

// QuestionSource is the slice of the content repository the sourcer needs.
type QuestionSource interface {
	ListBySubjectAndGrade(ctx context.Context, subjectKey, grade string, band difficulty.Band) ([]question.Question, error)
}

// Sourcer fills a subject quota from grade banks in priority order.
type Sourcer struct {
	grades []string
}

func NewSourcer(gradePriority []string) *Sourcer {
	return &Sourcer{grades: append([]string(nil), gradePriority...)}
}

// FetchForSubject returns at most totalNeeded distinct questions. Grades are
// visited strictly in order so a lower grade can never bring back a question
// already taken. The result is short when every grade is exhausted.
func (s *Sourcer) FetchForSubject(ctx context.Context, src QuestionSource, subjectKey string, totalNeeded int, band difficulty.Band, rng *rand.Rand) ([]question.Question, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"subject": subjectKey,
		"needed":  totalNeeded,
	})

	gathered := []question.Question{}
	seen := make(map[string]struct{})

	for _, grade := range s.grades {
		if len(gathered) >= totalNeeded {
			break
		}

		candidates, err := src.ListBySubjectAndGrade(ctx, subjectKey, grade, band)
		if err != nil {
			return nil, fmt.Errorf("list %s questions for grade %s: %w", subjectKey, grade, err)
		}

		novel := make([]question.Question, 0, len(candidates))
		inBatch := make(map[string]struct{}, len(candidates))
		for _, q := range candidates {
			if _, dup := seen[q.ID]; dup {
				continue
			}
			if _, dup := inBatch[q.ID]; dup {
				continue
			}
			inBatch[q.ID] = struct{}{}
			novel = append(novel, q)
		}

		picked := util.ShuffleWithLimit(novel, totalNeeded-len(gathered), rng)
		for _, q := range picked {
			seen[q.ID] = struct{}{}
		}
		gathered = append(gathered, picked...)

		log.WithFields(logrus.Fields{
			"grade":      grade,
			"candidates": len(candidates),
			"picked":     len(picked),
		}).Debug("Banco da série consultado")
	}

	return gathered, nil
}
