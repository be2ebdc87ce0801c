package config

import (
	"os"
)

type Config struct {
	Port             string
	GinMode          string
	DBDriver         string
	DBPath           string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	AutoGenerateCron string
	OpenAIAPIKey     string
}

func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", "3000"),
		GinMode:          getEnv("GIN_MODE", "debug"),
		DBDriver:         getEnv("DB_DRIVER", "sqlite"),
		DBPath:           getEnv("DB_PATH", "work_manager.db"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "3306"),
		DBUser:           getEnv("DB_USER", "workuser"),
		DBPassword:       getEnv("DB_PASSWORD", "workpassword"),
		DBName:           getEnv("DB_NAME", "work_manager"),
		AutoGenerateCron: getEnv("AUTO_GENERATE_CRON", "0 2 1 * *"),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
