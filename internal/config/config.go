package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Client   ClientConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	ActivityLogPath    string
	CorsAllowedOrigins string
	NatsURL            string
	IdentityCacheTTL   int // seconds
	OtelEnabled        bool
	OtelEndpoint       string
}

type DatabaseConfig struct {
	Connection string
	Debug      bool
}

type APIKeys struct {
	LLM string // secret for the generative backend; never shipped to clients
}

type AIConfig struct {
	LLMProvider string // "gemini", "ollama" or "openai"
	LLMModel    string
	LLMBaseURL  string
}

type ClientConfig struct {
	ServerURL   string
	StateFile   string
	LogFilePath string
	ReplyMode   string // "canned" or "live"
	// Trusted marks a process allowed to hold the LLM secret and call the
	// provider directly instead of going through the server proxy.
	Trusted bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	configDir := defaultConfigDir()

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8787"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			ActivityLogPath:    getEnv("ACTIVITY_LOG_PATH", "logs/activity.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			IdentityCacheTTL:   getEnvAsInt("IDENTITY_CACHE_TTL", 300),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			Debug:      getEnvAsBool("DB_DEBUG", false),
		},
		Keys: APIKeys{
			LLM: firstEnv("LLM_API_KEY", "API_KEY", "GEMINI_API_KEY"),
		},
		Ai: AIConfig{
			LLMProvider: getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:    getEnv("LLM_MODEL", ""),
			LLMBaseURL:  getEnv("LLM_BASE_URL", ""),
		},
		Client: ClientConfig{
			ServerURL:   strings.TrimRight(getEnv("ELI5_SERVER_URL", "http://localhost:8787"), "/"),
			StateFile:   getEnv("ELI5_STATE_FILE", filepath.Join(configDir, "state.yaml")),
			LogFilePath: getEnv("ELI5_LOG_FILE", filepath.Join(configDir, "eli5.log")),
			ReplyMode:   strings.ToLower(getEnv("REPLY_MODE", "canned")),
			Trusted:     getEnvAsBool("ELI5_TRUSTED", false),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func defaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".eli5"
	}
	return filepath.Join(dir, "eli5")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// firstEnv returns the first non-empty variable, with quotes and spaces
// stripped.
func firstEnv(keys ...string) string {
	for _, key := range keys {
		v := strings.Trim(strings.TrimSpace(os.Getenv(key)), `"'`)
		if v != "" {
			return v
		}
	}
	return ""
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
