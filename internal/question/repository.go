package question

import (
	"context"
	"sync"

	"github.com/saulo-duarte/quizgate-lambda/internal/difficulty"
	"gorm.io/gorm"
)

// Repository reads question content. A repository returned by WithTx runs
// every query on that transaction and queues concurrent callers, since a
// transaction owns a single connection.
type Repository interface {
	ListByTopic(ctx context.Context, topicID string) ([]Question, error)
	ListBySubjectAndGrade(ctx context.Context, subjectKey, grade string, band difficulty.Band) ([]Question, error)
	WithTx(tx *gorm.DB) Repository
}

type questionRepository struct {
	db *gorm.DB
	mu *sync.Mutex
}

func NewRepository(db *gorm.DB) Repository {
	return &questionRepository{db: db, mu: &sync.Mutex{}}
}

func (r *questionRepository) WithTx(tx *gorm.DB) Repository {
	return &questionRepository{db: tx, mu: &sync.Mutex{}}
}

func (r *questionRepository) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&Question{}).
		Select("questions.*, topics.subject_id AS subject").
		Joins("JOIN topics ON topics.id = questions.topic_id")
}

func (r *questionRepository) ListByTopic(ctx context.Context, topicID string) ([]Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var questions []Question
	if err := r.base(ctx).
		Where("questions.topic_id = ?", topicID).
		Order("questions.id ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) ListBySubjectAndGrade(ctx context.Context, subjectKey, grade string, band difficulty.Band) ([]Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var questions []Question
	if err := r.base(ctx).
		Where("topics.subject_id = ? AND topics.class = ?", subjectKey, grade).
		Where("questions.difficulty BETWEEN ? AND ?", band.Min, band.Max).
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Subject{}, &Topic{}, &Question{})
}
