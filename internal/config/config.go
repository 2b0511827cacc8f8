package config

import (
	"os"
	"strings"
)

type Config struct {
	Port          string
	GinMode       string
	DBDriver      string
	DBPath        string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBLogLevel    string
	SessionStore  string
	SessionSecret string
	RedisHost     string
	RedisPort     string
	OpenAIAPIKey  string
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBPath:        getEnv("DB_PATH", "questboard.db"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", defaultDBPort(getEnv("DB_DRIVER", "sqlite"))),
		DBUser:        getEnv("DB_USER", "questuser"),
		DBPassword:    getEnv("DB_PASSWORD", "questpassword"),
		DBName:        getEnv("DB_NAME", "questboard"),
		DBSSLMode:     getEnv("DB_SSL_MODE", "disable"),
		DBLogLevel:    strings.ToLower(getEnv("DB_LOG_LEVEL", "warn")),
		SessionStore:  strings.ToLower(getEnv("SESSION_STORE", "cookie")),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
	}
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func defaultDBPort(driver string) string {
	switch strings.ToLower(driver) {
	case "postgres":
		return "5432"
	case "mysql":
		return "3306"
	default:
		return ""
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
