package assembly

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/saulo-duarte/quizgate-lambda/internal/config"
	"github.com/saulo-duarte/quizgate-lambda/internal/difficulty"
	"github.com/saulo-duarte/quizgate-lambda/internal/monitoring"
	"github.com/saulo-duarte/quizgate-lambda/internal/question"
	util "github.com/saulo-duarte/quizgate-lambda/internal/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Assembler builds composite quizzes out of several subject quotas.
type Assembler struct {
	sourcer *Sourcer
	order   []string
	newRand func() *rand.Rand
}

// NewAssembler uses newRand for every Assemble call; nil means a clock-seeded
// source.
func NewAssembler(sourcer *Sourcer, subjectOrder []string, newRand func() *rand.Rand) *Assembler {
	if newRand == nil {
		newRand = util.NewRand
	}
	return &Assembler{
		sourcer: sourcer,
		order:   append([]string(nil), subjectOrder...),
		newRand: newRand,
	}
}

// Assemble sources every subject concurrently, concatenates the batches in
// subject order and shuffles the whole list once. It returns exactly
// composition.Required() questions or an *InsufficientQuestionsError, and
// refuses compositions outside the quota limits before touching src.
func (a *Assembler) Assemble(ctx context.Context, src QuestionSource, composition Composition, difficultyLabel string) ([]question.Question, error) {
	start := time.Now()
	log := config.WithContext(ctx).WithField("difficulty", difficultyLabel)

	if err := composition.Validate(); err != nil {
		return nil, err
	}

	band := difficulty.ForLabel(difficultyLabel)
	keys := composition.OrderedKeys(a.order)
	rng := a.newRand()

	// Per-subject sources are drawn before the fan-out so a seeded rng
	// gives the same quiz regardless of goroutine scheduling.
	subjectRands := make([]*rand.Rand, len(keys))
	for i := range keys {
		subjectRands[i] = rand.New(rand.NewSource(rng.Int63()))
	}

	batches := make([][]question.Question, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	for i, key := range keys {
		subjectBand := band
		if key == GeneralKnowledge {
			subjectBand = difficulty.Unbounded
		}
		g.Go(func() error {
			qs, err := a.sourcer.FetchForSubject(gctx, src, key, composition[key].Total, subjectBand, subjectRands[i])
			if err != nil {
				return err
			}
			batches[i] = qs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Erro ao buscar perguntas do simulado")
		monitoring.AssemblyDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, err
	}

	var all []question.Question
	for _, b := range batches {
		all = append(all, b...)
	}

	required := composition.Required()
	if len(all) < required {
		err := &InsufficientQuestionsError{Found: len(all), Required: required}
		log.WithFields(logrus.Fields{
			"found":    len(all),
			"required": required,
		}).Warn("Perguntas insuficientes para o simulado")
		monitoring.AssemblyDuration.WithLabelValues("insufficient").Observe(time.Since(start).Seconds())
		return nil, err
	}

	shuffled := util.Shuffle(all, rng)
	monitoring.AssemblyDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	log.WithField("questions", len(shuffled)).Info("Simulado montado com sucesso")
	return shuffled, nil
}

func IsInsufficient(err error) (*InsufficientQuestionsError, bool) {
	var ie *InsufficientQuestionsError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}
