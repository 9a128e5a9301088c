package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI    string
	DBName      string
	Port        string
	GinMode     string
	CORSOrigins []string

	// Gemini (optional - the engine is fully functional without it)
	GeminiAPIKey    string
	GeminiModel     string
	GenerateTimeout int // seconds
	Temperature     float64
	MaxOutputTokens int

	// Embeddings configuration
	EmbeddingsProvider    string // "local" (default), "google"
	GoogleEmbeddingsModel string // e.g., "text-embedding-004"
	LocalEmbeddingDim     int

	// Retrieval
	RetrievalTopK int

	// Session store
	SessionTTLMinutes   int
	SessionSweepMinutes int

	// Redis (rate limiting + asynq broker)
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// Rate limiting
	RateLimitReqs   int
	RateLimitWindow int

	// Admin surface
	AdminUsername     string
	AdminPasswordHash string
	JWTSecret         string
	JWTExpiresIn      string

	// Telemetry
	TracingEnabled bool
	OTLPEndpoint   string
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %v", err)
		}
	}

	cfg := &Config{
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017/support_chat"),
		DBName:      getEnv("DB_NAME", "support_chat"),
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"), ","),

		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GenerateTimeout: getEnvInt("GENERATE_TIMEOUT", 8),
		Temperature:     getEnvFloat64("GENERATE_TEMPERATURE", 0.7),
		MaxOutputTokens: getEnvInt("GENERATE_MAX_TOKENS", 500),

		EmbeddingsProvider:    getEnv("EMBEDDINGS_PROVIDER", ""),
		GoogleEmbeddingsModel: getEnv("GOOGLE_EMBEDDINGS_MODEL", "text-embedding-004"),
		LocalEmbeddingDim:     getEnvInt("LOCAL_EMBEDDING_DIM", 256),

		RetrievalTopK: getEnvInt("RETRIEVAL_TOP_K", 5),

		SessionTTLMinutes:   getEnvInt("SESSION_TTL_MINUTES", 60),
		SessionSweepMinutes: getEnvInt("SESSION_SWEEP_MINUTES", 30),

		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		RateLimitReqs:   getEnvInt("RATE_LIMIT_REQUESTS", 30),
		RateLimitWindow: getEnvInt("RATE_LIMIT_WINDOW", 60),

		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		JWTExpiresIn:      getEnv("JWT_EXPIRES_IN", "12h"),

		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
		OTLPEndpoint:   getEnv("OTLP_ENDPOINT", "localhost:4317"),
	}

	// Default provider: Gemini embeddings when a key is configured,
	// otherwise the local deterministic embedder.
	if cfg.EmbeddingsProvider == "" {
		if cfg.GeminiAPIKey != "" {
			cfg.EmbeddingsProvider = "google"
		} else {
			cfg.EmbeddingsProvider = "local"
		}
	}

	if cfg.EmbeddingsProvider == "google" && cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("EMBEDDINGS_PROVIDER=google requires GEMINI_API_KEY - set it in .env file")
	}

	// Admin endpoints are disabled without a secret; that is valid for
	// deployments that only serve the widget.
	if cfg.AdminPasswordHash != "" && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required when ADMIN_PASSWORD_HASH is set")
	}

	return cfg, nil
}

// AdminEnabled reports whether the admin surface can be mounted.
func (c *Config) AdminEnabled() bool {
	return c.AdminPasswordHash != "" && c.JWTSecret != ""
}

// GenerationConfigured reports whether tier-1 generation should even be
// attempted. A short key is assumed to be a placeholder.
func (c *Config) GenerationConfigured() bool {
	return len(strings.TrimSpace(c.GeminiAPIKey)) >= 20
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
