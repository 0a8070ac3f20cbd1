// Package testdb opens throwaway in-memory databases for package tests.
package testdb

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/saulo-duarte/quizgate-lambda/internal/question"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a gorm handle on a private in-memory SQLite database. The pool
// is pinned to one connection so every statement sees the same database.
func Open(t testing.TB, models ...interface{}) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("abrir sqlite em memória: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("obter sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := question.Migrate(db); err != nil {
		t.Fatalf("migrar conteúdo: %v", err)
	}
	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			t.Fatalf("migrar modelos: %v", err)
		}
	}
	return db
}

// Q describes one seeded question.
type Q struct {
	ID         string
	Subject    string
	Grade      string
	Difficulty int
}

// SeedQuestions creates subjects, one topic per subject/grade pair, and the
// given questions. Topic ids are "<subject>-<grade>".
func SeedQuestions(t testing.TB, db *gorm.DB, qs ...Q) {
	t.Helper()

	subjects := map[string]bool{}
	topics := map[string]bool{}
	for _, q := range qs {
		if !subjects[q.Subject] {
			subjects[q.Subject] = true
			mustCreate(t, db, &question.Subject{ID: q.Subject, Name: q.Subject})
		}
		topicID := TopicID(q.Subject, q.Grade)
		if !topics[topicID] {
			topics[topicID] = true
			mustCreate(t, db, &question.Topic{ID: topicID, Name: topicID, Class: q.Grade, SubjectID: q.Subject})
		}
		mustCreate(t, db, &question.Question{
			ID:              q.ID,
			TopicID:         topicID,
			Text:            "Question " + q.ID,
			Options:         []question.Option{{ID: "a", Text: "A"}, {ID: "b", Text: "B"}},
			CorrectOptionID: "a",
			Difficulty:      q.Difficulty,
		})
	}
}

func TopicID(subject, grade string) string {
	return fmt.Sprintf("%s-%s", subject, grade)
}

func mustCreate(t testing.TB, db *gorm.DB, v interface{}) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("criar %T: %v", v, err)
	}
}
