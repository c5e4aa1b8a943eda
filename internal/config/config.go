package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI      string
	ControlDBName string
	Port          string
	GinMode       string
	CORSOrigins   []string
	AdminSecret   string

	// Gemini / embeddings
	GeminiAPIKey    string
	GeminiModel     string
	EmbeddingsModel string
	GeminiTier      string

	// Lead processing
	MaxChunkSize     int
	GroupingStrategy string
	TreatZeroAsEmpty bool
	FieldPriority    string
	SearchTopK       int
	ReindexCron      string

	// Rate limiting
	RateLimitReqs   int
	RateLimitWindow int

	// Redis (delta-sync cache + rate limiting); optional
	RedisURL      string
	RedisPassword string
	RedisDB       int
	RedisEnabled  bool
	SyncCacheTTL  int
}

func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %v", err)
		}
	}

	cfg := &Config{
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017/lead_rag"),
		ControlDBName: getEnv("CONTROL_DB_NAME", "lead_rag"),
		Port:          getEnv("PORT", "8008"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		CORSOrigins:   strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		AdminSecret:   getEnv("ADMIN_SECRET", ""),

		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		EmbeddingsModel: getEnv("GOOGLE_EMBEDDINGS_MODEL", "text-embedding-004"),
		GeminiTier:      getEnv("GEMINI_TIER", "free"),

		MaxChunkSize:     getEnvInt("MAX_CHUNK_SIZE", 5000),
		GroupingStrategy: getEnv("GROUPING_STRATEGY", "assignee"),
		TreatZeroAsEmpty: getEnvBool("TREAT_ZERO_AS_EMPTY", false),
		FieldPriority:    getEnv("FIELD_PRIORITY", ""),
		SearchTopK:       getEnvInt("SEARCH_TOP_K", 4),
		ReindexCron:      getEnv("REINDEX_CRON", ""),

		RateLimitReqs:   getEnvInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow: getEnvInt("RATE_LIMIT_WINDOW", 60),

		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisEnabled:  getEnvBool("REDIS_ENABLED", false),
		SyncCacheTTL:  getEnvInt("SYNC_CACHE_TTL", 86400),
	}

	// Validate required fields
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required - set it in .env file")
	}

	if cfg.MaxChunkSize <= 0 {
		return nil, fmt.Errorf("MAX_CHUNK_SIZE must be positive, got %d", cfg.MaxChunkSize)
	}

	if cfg.GroupingStrategy != "assignee" && cfg.GroupingStrategy != "creator_assignee" {
		return nil, fmt.Errorf("GROUPING_STRATEGY must be assignee or creator_assignee, got %q", cfg.GroupingStrategy)
	}

	return cfg, nil
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
