package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Port string
	Env  string

	// Persistence
	DatabaseURL string // Postgres; empty selects SQLite
	SQLitePath  string
	RedisURL    string // optional, enables rate limiting

	// Language model
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string

	// Semantic index
	QdrantURL        string
	QdrantAPIKey     string
	QdrantCollection string

	// SMS gateway
	ATUsername  string
	ATAPIKey    string
	SMSSenderID string

	// Legacy: the first variant kept conversation state in cookie
	// sessions signed with this key. Conversations are persisted per
	// user now, so the key is loaded only for deployment parity.
	SecretKey string
}

// Load reads configuration from environment variables.
// In development, it loads from .env file if present.
// In production, it panics on missing required variables.
func Load() *Config {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		SQLitePath:       getEnv("SQLITE_PATH", "./data/vua.db"),
		RedisURL:         os.Getenv("REDIS_URL"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		ChatModel:        getEnv("CHAT_MODEL", "gpt-3.5-turbo-1106"),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL", "text-embedding-ada-002"),
		QdrantURL:        getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantAPIKey:     os.Getenv("QDRANT_API_KEY"),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "vua_documents"),
		ATUsername:       getEnv("AT_USERNAME", "sandbox"),
		ATAPIKey:         os.Getenv("AT_API_KEY"),
		SMSSenderID:      getEnv("SMS_SENDER_ID", "88555"),
		SecretKey:        os.Getenv("SECRET_KEY"),
	}

	if cfg.Env == "production" {
		if cfg.DatabaseURL == "" {
			panic("DATABASE_URL is required in production")
		}
		if cfg.OpenAIKey == "" {
			panic("OPENAI_API_KEY is required in production")
		}
		if cfg.ATAPIKey == "" {
			panic("AT_API_KEY is required in production")
		}
	}

	return cfg
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
