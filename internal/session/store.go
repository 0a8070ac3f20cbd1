package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/quizgate-lambda/internal/config"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrSessionNotFound covers both unknown and already consumed tokens.
	ErrSessionNotFound = errors.New("quiz session not found")
	ErrSessionExpired  = errors.New("quiz session expired")
	ErrStoreFailure    = errors.New("quiz session store failure")
)

const tokenBytes = 32

// Store owns the quiz_sessions table. Every method runs on the transaction
// it is handed and never opens one of its own.
type Store struct {
	ttl time.Duration
	now func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{ttl: ttl, now: time.Now}
}

// WithClock replaces the time source, for tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	return &Store{ttl: s.ttl, now: now}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&quizSession{})
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func storeFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreFailure, op, err)
}

func (s *Store) Create(ctx context.Context, tx *gorm.DB, userID uuid.UUID, params Params) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}

	token, err := newToken()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	row := quizSession{
		Token:     token,
		UserID:    userID,
		Params:    datatypes.NewJSONType(params),
		CreatedAt: s.now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
		return "", storeFailure("insert session", err)
	}

	config.WithContext(ctx).WithFields(logrus.Fields{
		"user_id": userID,
		"kind":    params.Kind,
	}).Info("Sessão de quiz criada")
	return token, nil
}

// RedeemAndDelete consumes the session for token and userID. The row is
// deleted on tx whether it is live or expired, so the caller must commit tx
// on ErrSessionExpired as well as on success.
func (s *Store) RedeemAndDelete(ctx context.Context, tx *gorm.DB, token string, userID uuid.UUID) (Params, error) {
	log := config.WithContext(ctx).WithField("user_id", userID)

	q := tx.WithContext(ctx)
	if q.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var row quizSession
	err := q.Where("token = ? AND user_id = ?", token, userID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn("Sessão de quiz não encontrada")
		return Params{}, ErrSessionNotFound
	}
	if err != nil {
		return Params{}, storeFailure("select session", err)
	}

	res := tx.WithContext(ctx).Where("token = ? AND user_id = ?", token, userID).Delete(&quizSession{})
	if res.Error != nil {
		return Params{}, storeFailure("delete session", res.Error)
	}
	if res.RowsAffected == 0 {
		log.Warn("Sessão de quiz consumida por outra requisição")
		return Params{}, ErrSessionNotFound
	}

	if age := s.now().Sub(row.CreatedAt); age > s.ttl {
		log.WithField("age", age.String()).Warn("Sessão de quiz expirada")
		return Params{}, ErrSessionExpired
	}

	return row.Params.Data(), nil
}

// PurgeExpired deletes every session older than the TTL.
func (s *Store) PurgeExpired(ctx context.Context, tx *gorm.DB) (int64, error) {
	cutoff := s.now().Add(-s.ttl).UTC()
	res := tx.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&quizSession{})
	if res.Error != nil {
		return 0, storeFailure("purge sessions", res.Error)
	}
	if res.RowsAffected > 0 {
		config.WithContext(ctx).WithField("purged", res.RowsAffected).Info("Sessões de quiz expiradas removidas")
	}
	return res.RowsAffected, nil
}
