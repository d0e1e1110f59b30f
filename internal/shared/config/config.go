package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"resume-matcher/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string
	MaxUploadBytes  int64

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string

	DatabaseURL string

	EmbeddingProvider string
	EmbeddingModel    string
	EmbeddingBaseURL  string
	RedisURL          string
	EmbeddingCacheTTL time.Duration

	FeedbackProvider string
	FeedbackModel    string
	FeedbackTimeout  time.Duration
	FeedbackRatePerM float64
	FeedbackBurst    int

	GeminiAPIKey string
	OpenAIAPIKey string

	RankConcurrency int
}

var (
	defaultEmbeddingModels = map[string]string{
		"gemini": "text-embedding-004",
		"openai": "all-MiniLM-L6-v2",
	}
	defaultFeedbackModels = map[string]string{
		"gemini": "gemini-2.0-flash",
		"openai": "gpt-4o-mini",
	}
)

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		telemetry.Warn("config.database_url_missing", map[string]any{"env": env})
	}

	geminiKey := getEnv("GEMINI_API_KEY", os.Getenv("GOOGLE_API_KEY"))
	embeddingProvider := normalizeProvider(getEnv("EMBEDDING_PROVIDER", "gemini"))
	feedbackProvider := normalizeProvider(getEnv("FEEDBACK_PROVIDER", "gemini"))

	return Config{
		Port:              getEnv("PORT", "8080"),
		CORSAllowOrigin:   splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		Env:               env,
		MaxUploadBytes:    int64(getEnvInt("MAX_UPLOAD_MB", 10)) << 20,
		ObjectStoreType:   normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:     getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:         getEnv("AWS_REGION", ""),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Prefix:          getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:       getEnv("SSE_KMS_KEY_ID", ""),
		DatabaseURL:       dbURL,
		EmbeddingProvider: embeddingProvider,
		EmbeddingModel:    getEnv("EMBEDDING_MODEL", defaultEmbeddingModels[embeddingProvider]),
		EmbeddingBaseURL:  getEnv("EMBEDDING_BASE_URL", ""),
		RedisURL:          getEnv("REDIS_URL", ""),
		EmbeddingCacheTTL: getEnvDuration("EMBEDDING_CACHE_TTL", 24*time.Hour),
		FeedbackProvider:  feedbackProvider,
		FeedbackModel:     getEnv("FEEDBACK_MODEL", defaultFeedbackModels[feedbackProvider]),
		FeedbackTimeout:   time.Duration(getEnvInt("FEEDBACK_TIMEOUT_SECONDS", 60)) * time.Second,
		FeedbackRatePerM:  getEnvFloat("FEEDBACK_RATE_PER_MIN", 10),
		FeedbackBurst:     getEnvInt("FEEDBACK_BURST", 3),
		GeminiAPIKey:      geminiKey,
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		RankConcurrency:   getEnvInt("RANK_CONCURRENCY", 4),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		telemetry.Warn("config.invalid_int", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || val < 0 {
		telemetry.Warn("config.invalid_float", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		telemetry.Warn("config.invalid_duration", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return "openai"
	case "none", "off":
		return "none"
	default:
		return "gemini"
	}
}
