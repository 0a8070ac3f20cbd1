package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gorm.io/gorm"

	"github.com/saulo-duarte/quizgate-lambda/internal/auth"
	"github.com/saulo-duarte/quizgate-lambda/internal/config"
	"github.com/saulo-duarte/quizgate-lambda/internal/middlewares"
	"github.com/saulo-duarte/quizgate-lambda/internal/monitoring"
	"github.com/saulo-duarte/quizgate-lambda/internal/quiz"
)

type RouterConfig struct {
	QuizHandler    *quiz.Handler
	AuthHandler    *auth.Handler
	RateLimiter    *middlewares.RateLimiter
	AllowedOrigins []string
	DB             *gorm.DB
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware(cfg.AllowedOrigins))
	r.Use(monitoring.MetricsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Handle("/metrics", monitoring.Handler())
	r.Get("/healthz", healthz(cfg.DB))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/logout", cfg.AuthHandler.Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/quiz-sessions", quiz.Routes(cfg.QuizHandler, cfg.RateLimiter.Middleware))
	})

	return otelhttp.NewHandler(r, "quizgate")
}

func healthz(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			config.WithContext(r.Context()).WithError(err).Error("Falha na verificação de saúde")
			config.Error(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
