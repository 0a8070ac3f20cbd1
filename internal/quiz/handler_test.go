package quiz_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizgate-lambda/internal/assembly"
	"github.com/saulo-duarte/quizgate-lambda/internal/auth"
	"github.com/saulo-duarte/quizgate-lambda/internal/question"
	"github.com/saulo-duarte/quizgate-lambda/internal/quiz"
	"github.com/saulo-duarte/quizgate-lambda/internal/session"
)

type fakeService struct {
	started    []session.Params
	startErr   error
	resolved   *quiz.ResolvedQuiz
	resolveErr error
	lastToken  string
}

func (f *fakeService) StartQuiz(_ context.Context, _ uuid.UUID, p session.Params) (string, error) {
	f.started = append(f.started, p)
	return "tok123", f.startErr
}

func (f *fakeService) Resolve(_ context.Context, token string, _ uuid.UUID) (*quiz.ResolvedQuiz, error) {
	f.lastToken = token
	return f.resolved, f.resolveErr
}

func noLimit(next http.Handler) http.Handler { return next }

func serve(t *testing.T, svc quiz.QuizService, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	h := quiz.Routes(quiz.NewHandler(svc, []string{"homibhabha-practice"}), noLimit)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if authed {
		req = req.WithContext(auth.WithUserClaims(req.Context(), &auth.Claims{UserID: uuid.NewString()}))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestStartQuizHandler(t *testing.T) {
	t.Run("SingleTopic", func(t *testing.T) {
		svc := &fakeService{}
		rec := serve(t, svc, http.MethodPost, "/",
			`{"quiz_type":"standard","topic_id":"algebra-1","difficulty":"easy","count":10}`, true)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var resp quiz.StartQuizResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "tok123", resp.SessionToken)
		require.Len(t, svc.started, 1)
		assert.Equal(t, session.NewSingleTopicParams("standard", "algebra-1", "easy", 10), svc.started[0])
	})

	t.Run("Composite", func(t *testing.T) {
		svc := &fakeService{}
		rec := serve(t, svc, http.MethodPost, "/",
			`{"quiz_type":"homibhabha-practice","difficulty":"medium","composition":{"physics":{"total":30},"gk":{"total":10}}}`, true)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		require.Len(t, svc.started, 1)
		assert.Equal(t, session.KindCompositeTest, svc.started[0].Kind)
		assert.Equal(t, 40, svc.started[0].Count)
	})

	bad := map[string]string{
		"MalformedJSON":         `{`,
		"MissingTopicAndComp":   `{"quiz_type":"standard","difficulty":"easy"}`,
		"BothTopicAndComp":      `{"quiz_type":"homibhabha-practice","topic_id":"x","difficulty":"easy","composition":{"gk":{"total":1}}}`,
		"UnknownDifficulty":     `{"quiz_type":"standard","topic_id":"x","difficulty":"brutal"}`,
		"CompositeWithoutComp":  `{"quiz_type":"homibhabha-practice","topic_id":"x","difficulty":"easy"}`,
		"CompositionOnStandard": `{"quiz_type":"standard","difficulty":"easy","composition":{"gk":{"total":1}}}`,
		"NegativeQuota":         `{"quiz_type":"homibhabha-practice","difficulty":"easy","composition":{"gk":{"total":-1}}}`,
		"EmptyComposition":      `{"quiz_type":"homibhabha-practice","difficulty":"easy","composition":{}}`,
		"HugeQuota":             `{"quiz_type":"homibhabha-practice","difficulty":"easy","composition":{"physics":{"total":1152921504606846975}}}`,
		"QuotaOverMax":          `{"quiz_type":"homibhabha-practice","difficulty":"easy","composition":{"physics":{"total":501}}}`,
		"TotalOverMax":          `{"quiz_type":"homibhabha-practice","difficulty":"easy","composition":{"physics":{"total":500},"gk":{"total":501}}}`,
	}
	for name, body := range bad {
		t.Run(name, func(t *testing.T) {
			svc := &fakeService{}
			rec := serve(t, svc, http.MethodPost, "/", body, true)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, svc.started)
		})
	}

	t.Run("Unauthenticated", func(t *testing.T) {
		rec := serve(t, &fakeService{}, http.MethodPost, "/", `{}`, false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ServiceFailure", func(t *testing.T) {
		svc := &fakeService{startErr: fmt.Errorf("%w: boom", quiz.ErrStoreFailure)}
		rec := serve(t, svc, http.MethodPost, "/",
			`{"quiz_type":"standard","topic_id":"algebra-1","difficulty":"easy"}`, true)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestGetQuizHandler(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		params := session.NewSingleTopicParams("standard", "algebra-1", "easy", 2)
		svc := &fakeService{resolved: &quiz.ResolvedQuiz{
			Questions: []question.Question{{ID: "a1", Subject: "math"}},
			Context:   params,
		}}

		rec := serve(t, svc, http.MethodGet, "/abc", "", true)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "abc", svc.lastToken)

		var resp quiz.GetQuizResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, []string{"a1"}, question.IDs(resp.Questions))
		assert.Equal(t, params, resp.Context)
	})

	statuses := map[string]struct {
		err  error
		code int
	}{
		"NotFound":     {quiz.ErrSessionNotFound, http.StatusNotFound},
		"Expired":      {quiz.ErrSessionExpired, http.StatusGone},
		"StoreFailure": {fmt.Errorf("%w: tx aborted", quiz.ErrStoreFailure), http.StatusInternalServerError},
		"AssemblyFailed": {&quiz.AssemblyFailedError{
			Found:    3,
			Required: 5,
			Err:      &assembly.InsufficientQuestionsError{Found: 3, Required: 5},
		}, http.StatusUnprocessableEntity},
	}
	for name, tc := range statuses {
		t.Run(name, func(t *testing.T) {
			rec := serve(t, &fakeService{resolveErr: tc.err}, http.MethodGet, "/abc", "", true)
			assert.Equal(t, tc.code, rec.Code)
		})
	}

	t.Run("AssemblyFailedBody", func(t *testing.T) {
		err := &quiz.AssemblyFailedError{Found: 3, Required: 5}
		rec := serve(t, &fakeService{resolveErr: err}, http.MethodGet, "/abc", "", true)

		var resp quiz.AssemblyFailedResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 3, resp.Found)
		assert.Equal(t, 5, resp.Required)
	})
}
