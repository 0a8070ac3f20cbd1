package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizgate-lambda/internal/auth"
	"github.com/saulo-duarte/quizgate-lambda/internal/config"
	"github.com/saulo-duarte/quizgate-lambda/internal/middlewares"
	"github.com/saulo-duarte/quizgate-lambda/internal/question"
	"github.com/saulo-duarte/quizgate-lambda/internal/quiz"
	"github.com/saulo-duarte/quizgate-lambda/internal/router"
	"github.com/saulo-duarte/quizgate-lambda/internal/session"
	"github.com/saulo-duarte/quizgate-lambda/internal/testdb"
)

func newRouter(t *testing.T) http.Handler {
	t.Setenv("JWT_SECRET", "segredo-de-teste-do-roteador")
	auth.Init()

	db := testdb.Open(t)
	require.NoError(t, session.Migrate(db))
	testdb.SeedQuestions(t, db,
		testdb.Q{ID: "p1", Subject: "physics", Grade: "9th", Difficulty: 14},
		testdb.Q{ID: "p2", Subject: "physics", Grade: "8th", Difficulty: 17},
		testdb.Q{ID: "g1", Subject: "gk", Grade: "7th", Difficulty: 3},
	)

	settings := &config.Settings{
		SessionTTL:         time.Minute,
		GradePriority:      config.DefaultGradePriority,
		SubjectOrder:       config.DefaultSubjectOrder,
		CompositeQuizTypes: config.DefaultCompositeQuizTypes,
	}

	return router.New(router.RouterConfig{
		QuizHandler:    quiz.NewQuizContainer(db, settings).Handler,
		AuthHandler:    auth.NewHandler(""),
		RateLimiter:    middlewares.NewRateLimiter(100, time.Minute),
		AllowedOrigins: []string{"*"},
		DB:             db,
	})
}

func TestRouter(t *testing.T) {
	h := newRouter(t)

	token, err := auth.GenerateJWT(uuid.NewString(), "student", time.Minute)
	require.NoError(t, err)

	send := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("Healthz", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Metrics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("RequiresAuth", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/quiz-sessions/abc", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("StartAndRedeemOnce", func(t *testing.T) {
		rec := send(http.MethodPost, "/quiz-sessions",
			`{"quiz_type":"homibhabha-practice","difficulty":"medium","composition":{"physics":{"total":2},"gk":{"total":1}}}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var started quiz.StartQuizResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &started))

		rec = send(http.MethodGet, "/quiz-sessions/"+started.SessionToken, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var got quiz.GetQuizResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.ElementsMatch(t, []string{"p1", "p2", "g1"}, question.IDs(got.Questions))
		assert.Equal(t, session.KindCompositeTest, got.Context.Kind)

		rec = send(http.MethodGet, "/quiz-sessions/"+started.SessionToken, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("InsufficientIs422", func(t *testing.T) {
		rec := send(http.MethodPost, "/quiz-sessions",
			`{"quiz_type":"homibhabha-practice","difficulty":"hard","composition":{"physics":{"total":1}}}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var started quiz.StartQuizResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &started))

		rec = send(http.MethodGet, "/quiz-sessions/"+started.SessionToken, "")
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var body quiz.AssemblyFailedResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 0, body.Found)
		assert.Equal(t, 1, body.Required)
	})
}
