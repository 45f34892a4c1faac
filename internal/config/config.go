package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Режимы извлечения идентичности из Authorization заголовка.
const (
	AuthModeDemo     = "demo"
	AuthModeStrict   = "strict"
	AuthModeVerified = "verified"
)

// Config хранит все параметры запуска приложения.
type Config struct {
	Env            string
	HTTPPort       string
	LogLevel       string
	DatabaseURL    string
	DBName         string
	MigrationsPath string
	RedisURL       string

	AuthMode       string
	JWTSecret      string
	FallbackUserID string

	AIBaseURL string
	AIModel   string
	AIAPIKey  string
	AIMaxRPS  float64

	AllowedOrigins   []string
	RateLimitLimit   int64
	RateLimitPeriod  time.Duration
	PricingTablePath string
}

// Load читает переменные окружения и возвращает готовую конфигурацию.
func Load() (*Config, error) {
	// Загружаем .env только если он существует, иначе используем системные переменные.
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("config: .env не найден, используем переменные окружения: %v", err)
	}

	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		Env:              env,
		HTTPPort:         getEnv("HTTP_PORT", "8000"),
		LogLevel:         getEnv("LOG_LEVEL", defaultLogLevel(env)),
		DatabaseURL:      firstEnv("DATABASE_URL", "MONGO_URL"),
		DBName:           getEnv("DB_NAME", "seeforge"),
		MigrationsPath:   getEnv("MIGRATIONS_PATH", ""),
		RedisURL:         getEnv("REDIS_URL", ""),
		AuthMode:         strings.ToLower(getEnv("AUTH_MODE", AuthModeDemo)),
		JWTSecret:        firstEnv("JWT_SECRET", "SUPABASE_JWT_SECRET"),
		FallbackUserID:   getEnv("DEMO_USER_ID", "demo-user"),
		AIBaseURL:        getEnv("AI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai"),
		AIModel:          getEnv("AI_MODEL", "gemini-2.0-flash"),
		AIAPIKey:         firstEnv("AI_API_KEY", "GEMINI_API_KEY"),
		PricingTablePath: getEnv("PRICING_TABLE_PATH", ""),
	}

	switch cfg.AuthMode {
	case AuthModeDemo, AuthModeStrict:
	case AuthModeVerified:
		if len(cfg.JWTSecret) < 32 {
			return nil, fmt.Errorf("config: JWT_SECRET обязателен и должен быть не менее 32 символов в режиме verified")
		}
	default:
		return nil, fmt.Errorf("config: неизвестный AUTH_MODE %q", cfg.AuthMode)
	}

	if env == "production" && cfg.AuthMode == AuthModeDemo {
		log.Printf("config: WARNING - AUTH_MODE=demo в production, подпись токенов не проверяется!")
	}

	cfg.AllowedOrigins = parseOrigins(getEnv("CORS_ORIGINS", "*"))

	// Rate limiting настройки
	cfg.RateLimitLimit = mustParseInt64(getEnv("RATE_LIMIT_LIMIT", "10"))
	cfg.RateLimitPeriod = mustParseDuration(getEnv("RATE_LIMIT_PERIOD", "1m"))
	cfg.AIMaxRPS = mustParseFloat(getEnv("AI_MAX_RPS", "0"))

	return cfg, nil
}

// UsesMongo сообщает, указывает ли DatabaseURL на MongoDB.
func (c *Config) UsesMongo() bool {
	return strings.HasPrefix(c.DatabaseURL, "mongodb://") || strings.HasPrefix(c.DatabaseURL, "mongodb+srv://")
}

// UsesPostgres сообщает, указывает ли DatabaseURL на PostgreSQL.
func (c *Config) UsesPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://")
}

func defaultLogLevel(env string) string {
	if env == "development" {
		return "debug"
	}
	return "info"
}

// parseOrigins разбирает список origins через запятую.
func parseOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, origin := range parts {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// getEnv возвращает значение переменной окружения или дефолт.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// firstEnv возвращает первое непустое значение из перечисленных переменных.
func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return ""
}

// mustParseDuration безопасно парсит строку в duration.
func mustParseDuration(v string) time.Duration {
	dur, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: не удалось распарсить длительность %q: %v", v, err)
	}
	return dur
}

// mustParseInt64 безопасно парсит строку в int64.
func mustParseInt64(v string) int64 {
	num, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Fatalf("config: не удалось распарсить число %q: %v", v, err)
	}
	return num
}

func mustParseFloat(v string) float64 {
	num, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("config: не удалось распарсить число %q: %v", v, err)
	}
	return num
}
