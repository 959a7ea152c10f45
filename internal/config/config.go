package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// JWT
	JWTSecret string

	// AI backends. ServiceBaseURL and OpenAIAPIKey are also re-read per
	// request through the Provider so admin changes apply without a restart.
	ServiceBaseURL string
	OpenAIAPIKey   string
	AIModel        string
	GeminiAPIKey   string

	// Features
	EnableChat      bool
	EnableProgress  bool
	EnableAnalytics bool

	// Chat behavior
	MaxChatHistory int
	ResponseDelay  int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:            getEnvOrDefault("PORT", "8080"),
		Env:             getEnvOrDefault("ENV", "development"),
		DatabaseURL:     mustGetEnv("DATABASE_URL"),
		RedisURL:        mustGetEnv("REDIS_URL"),
		JWTSecret:       mustGetEnv("JWT_SECRET"),
		ServiceBaseURL:  getEnvOrDefault("SERVICE_BASE_URL", ""),
		OpenAIAPIKey:    getEnvOrDefault("OPENAI_API_KEY", ""),
		AIModel:         getEnvOrDefault("AI_MODEL", DefaultAIModel),
		GeminiAPIKey:    getEnvOrDefault("GEMINI_API_KEY", ""),
		EnableChat:      getEnvAsBoolOrDefault("ENABLE_CHAT", true),
		EnableProgress:  getEnvAsBoolOrDefault("ENABLE_PROGRESS", true),
		EnableAnalytics: getEnvAsBoolOrDefault("ENABLE_ANALYTICS", true),
		MaxChatHistory:  getEnvAsIntOrDefault("MAX_CHAT_HISTORY", 50),
		ResponseDelay:   getEnvAsIntOrDefault("RESPONSE_DELAY", 2),
		FrontendURL:     getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsBoolOrDefault(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}
