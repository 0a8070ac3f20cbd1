package container

import (
	"context"
	"log"
	"net/http"

	"github.com/saulo-duarte/quizgate-lambda/internal/auth"
	"github.com/saulo-duarte/quizgate-lambda/internal/config"
	"github.com/saulo-duarte/quizgate-lambda/internal/middlewares"
	"github.com/saulo-duarte/quizgate-lambda/internal/question"
	"github.com/saulo-duarte/quizgate-lambda/internal/quiz"
	"github.com/saulo-duarte/quizgate-lambda/internal/router"
	"github.com/saulo-duarte/quizgate-lambda/internal/session"
)

type Container struct {
	Settings      *config.Settings
	QuizContainer *quiz.QuizContainer
	AuthHandler   *auth.Handler
	RateLimiter   *middlewares.RateLimiter
}

func New(ctx context.Context) *Container {
	config.Init()
	settings := config.Load()
	auth.Init()

	if err := config.Connect(ctx, settings.DatabaseDSN); err != nil {
		log.Fatalf("Erro ao conectar ao banco: %v", err)
	}
	if err := question.Migrate(config.DB); err != nil {
		log.Fatalf("Erro ao migrar tabelas de perguntas: %v", err)
	}
	if err := session.Migrate(config.DB); err != nil {
		log.Fatalf("Erro ao migrar sessões de quiz: %v", err)
	}

	limiter := middlewares.NewRateLimiter(settings.RateLimitRequests, settings.RateLimitWindow)
	go limiter.Run(ctx)

	return &Container{
		Settings:      settings,
		QuizContainer: quiz.NewQuizContainer(config.DB, settings),
		AuthHandler:   auth.NewHandler(settings.CookieDomain),
		RateLimiter:   limiter,
	}
}

func (c *Container) Router() http.Handler {
	return router.New(router.RouterConfig{
		QuizHandler:    c.QuizContainer.Handler,
		AuthHandler:    c.AuthHandler,
		RateLimiter:    c.RateLimiter,
		AllowedOrigins: c.Settings.AllowedOrigins,
		DB:             config.DB,
	})
}
