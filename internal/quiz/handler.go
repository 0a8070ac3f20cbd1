package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/saulo-duarte/quizgate-lambda/internal/auth"
	"github.com/saulo-duarte/quizgate-lambda/internal/config"
)

type Handler struct {
	service        QuizService
	validate       *validator.Validate
	compositeTypes map[string]bool
}

func NewHandler(s QuizService, compositeQuizTypes []string) *Handler {
	types := make(map[string]bool, len(compositeQuizTypes))
	for _, t := range compositeQuizTypes {
		types[t] = true
	}
	return &Handler{
		service:        s,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		compositeTypes: types,
	}
}

func userIDFromRequest(r *http.Request) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(claims.UserID)
}

func (h *Handler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := userIDFromRequest(r)
	if err != nil {
		log.WithError(err).Warn("Usuário não autenticado para iniciar quiz")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req StartQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Corpo da requisição inválido para iniciar quiz")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.WithError(err).Warn("Parâmetros do quiz inválidos")
		http.Error(w, "invalid quiz parameters", http.StatusBadRequest)
		return
	}

	if h.compositeTypes[req.QuizType] != req.IsComposite() {
		log.WithField("quiz_type", req.QuizType).Warn("Tipo de quiz não corresponde aos parâmetros")
		http.Error(w, "quiz type requires a composition; other quizzes require a topic", http.StatusBadRequest)
		return
	}

	params := req.ToParams()
	if err := params.Validate(); err != nil {
		log.WithError(err).Warn("Parâmetros do quiz inválidos")
		http.Error(w, "invalid quiz parameters", http.StatusBadRequest)
		return
	}

	token, err := h.service.StartQuiz(r.Context(), userID, params)
	if err != nil {
		if errors.Is(err, ErrInvalidParams) {
			http.Error(w, "invalid quiz parameters", http.StatusBadRequest)
			return
		}
		log.WithError(err).Error("Erro ao iniciar quiz")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusCreated, StartQuizResponse{SessionToken: token})
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := userIDFromRequest(r)
	if err != nil {
		log.WithError(err).Warn("Usuário não autenticado para buscar quiz")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	token := chi.URLParam(r, "token")
	if token == "" {
		http.Error(w, "session token required", http.StatusBadRequest)
		return
	}

	resolved, err := h.service.Resolve(r.Context(), token, userID)
	if err != nil {
		var af *AssemblyFailedError
		switch {
		case errors.Is(err, ErrSessionNotFound):
			http.Error(w, "quiz session not found, please restart the quiz", http.StatusNotFound)
		case errors.Is(err, ErrSessionExpired):
			http.Error(w, "quiz session expired, please restart the quiz", http.StatusGone)
		case errors.As(err, &af):
			config.JSON(w, http.StatusUnprocessableEntity, AssemblyFailedResponse{
				Error:    "not enough questions available for this quiz",
				Found:    af.Found,
				Required: af.Required,
			})
		default:
			log.WithError(err).Error("Erro ao buscar quiz")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	config.JSON(w, http.StatusOK, GetQuizResponse{
		Questions: resolved.Questions,
		Context:   resolved.Context,
	})
}
