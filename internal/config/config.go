package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Search   SearchConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	SearchAuditTopic   string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	Provider      string // "openai" (any OpenAI-compatible endpoint) or "ollama"
	Model         string
	BaseURL       string
	APIKey        string
	Timeout       time.Duration
	MaxRetries    int
	RetryBaseWait time.Duration
}

type SearchConfig struct {
	// RetrievalLimit caps the fallback full-population fetch when a query
	// carries no usable criteria.
	RetrievalLimit int
	// SessionTTL is how long an idle conversation survives before eviction.
	SessionTTL time.Duration
	// ScorerPoolSize bounds the workers scoring candidates in parallel.
	ScorerPoolSize int
	// StoreTimeout is the per-query deadline on candidate store calls.
	StoreTimeout time.Duration
	// StoreMaxRetries and StoreRetryBaseWait bound the backoff applied to
	// transient store failures.
	StoreMaxRetries    int
	StoreRetryBaseWait time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			SearchAuditTopic:   getEnv("SEARCH_AUDIT_TOPIC_NAME", "SEARCH_PERFORMED"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			Provider:      getEnv("LLM_PROVIDER", "openai"),
			Model:         getEnv("LLM_MODEL", "deepseek-ai/DeepSeek-V3"),
			BaseURL:       getEnv("LLM_API_HOST", "https://api.siliconflow.cn"),
			APIKey:        getEnv("LLM_API_KEY", ""),
			Timeout:       getEnvAsDuration("LLM_TIMEOUT", 30*time.Second),
			MaxRetries:    getEnvAsInt("LLM_MAX_RETRIES", 3),
			RetryBaseWait: getEnvAsDuration("LLM_RETRY_BASE_WAIT", 2*time.Second),
		},
		Search: SearchConfig{
			RetrievalLimit:     getEnvAsInt("SEARCH_RETRIEVAL_LIMIT", 50),
			SessionTTL:         getEnvAsDuration("SESSION_TTL", 1*time.Hour),
			ScorerPoolSize:     getEnvAsInt("SCORER_POOL_SIZE", 8),
			StoreTimeout:       getEnvAsDuration("STORE_TIMEOUT", 5*time.Second),
			StoreMaxRetries:    getEnvAsInt("STORE_MAX_RETRIES", 3),
			StoreRetryBaseWait: getEnvAsDuration("STORE_RETRY_BASE_WAIT", 200*time.Millisecond),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
