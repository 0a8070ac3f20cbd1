package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Settings struct {
	DatabaseDSN        string
	Port               string
	SessionTTL         time.Duration
	GradePriority      []string
	SubjectOrder       []string
	CompositeQuizTypes []string
	RateLimitRequests  int
	RateLimitWindow    time.Duration
	AllowedOrigins     []string
	CookieDomain       string
}

const (
	DefaultSessionTTL = 5 * time.Minute
	DefaultPort       = "8080"
)

var (
	DefaultGradePriority      = []string{"9th", "8th", "7th"}
	DefaultSubjectOrder       = []string{"physics", "chemistry", "biology", "gk"}
	DefaultCompositeQuizTypes = []string{"homibhabha-practice"}
)

// LoadEnv loads a .env file when one is present; the process environment
// always wins over it.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		Logger.Debug("Arquivo .env não encontrado, usando variáveis do processo")
	}
}

func Load() *Settings {
	LoadEnv()

	return &Settings{
		DatabaseDSN:        GetEnv("DATABASE_DSN"),
		Port:               GetEnv("PORT", DefaultPort),
		SessionTTL:         GetDuration("QUIZ_SESSION_TTL", DefaultSessionTTL),
		GradePriority:      GetList("QUIZ_GRADE_PRIORITY", DefaultGradePriority),
		SubjectOrder:       GetList("QUIZ_SUBJECT_ORDER", DefaultSubjectOrder),
		CompositeQuizTypes: GetList("QUIZ_COMPOSITE_TYPES", DefaultCompositeQuizTypes),
		RateLimitRequests:  GetInt("RATE_LIMIT_MAX_REQUESTS", 20),
		RateLimitWindow:    GetDuration("RATE_LIMIT_WINDOW", time.Minute),
		AllowedOrigins:     GetList("CORS_ALLOWED_ORIGINS", nil),
		CookieDomain:       GetEnv("COOKIE_DOMAIN"),
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetInt(key string, defaultValue int) int {
	raw := GetEnv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		Logger.WithField("key", key).Warnf("Inteiro inválido %q, usando padrão %d", raw, defaultValue)
		return defaultValue
	}
	return v
}

func GetDuration(key string, defaultValue time.Duration) time.Duration {
	raw := GetEnv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		Logger.WithField("key", key).Warnf("Duração inválida %q, usando padrão %s", raw, defaultValue)
		return defaultValue
	}
	return d
}

// GetList reads a comma separated list, dropping blank entries.
func GetList(key string, defaultValue []string) []string {
	raw := GetEnv(key)
	if raw == "" {
		return append([]string(nil), defaultValue...)
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), defaultValue...)
	}
	return out
}
