package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	AppEnv   string
	BaseURL  string
	SiteName string

	StorageDriver string
	DataFile      string
	DatabaseURL   string

	DynamoTable        string
	DynamoEndpoint     string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string

	RedisURL string
	RedisKey string

	LogLevel string
	LogFile  string
}

func Load() *Config {
	_ = godotenv.Load() // Ignore error if .env not found (e.g. prod)

	baseURL := getEnv("BASE_URL", getEnv("NEXT_PUBLIC_BASE_URL", "http://localhost:3000"))

	return &Config{
		Port:     getEnv("PORT", "3000"),
		AppEnv:   getEnv("APP_ENV", "local"),
		BaseURL:  strings.TrimRight(baseURL, "/"),
		SiteName: getEnv("SITE_NAME", "SEO Redirects Pro"),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", "file")),
		DataFile:      getEnv("DATA_FILE", "data/redirects.json"),
		DatabaseURL:   getEnv("DATABASE_URL", "file:data/redirects.sqlite"),

		DynamoTable:        getEnv("DYNAMODB_TABLE", "seo-redirects"),
		DynamoEndpoint:     getEnv("DYNAMODB_ENDPOINT", ""),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisKey: getEnv("REDIS_KEY", "seo-redirects"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),
	}
}

// IsProduction reports whether APP_ENV selects production behaviour.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
