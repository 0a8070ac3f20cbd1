package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, startLimiter func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.With(startLimiter).Post("/", h.StartQuiz)
	r.Get("/{token}", h.GetQuiz)
	return r
}
