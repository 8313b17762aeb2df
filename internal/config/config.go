// Package config loads process configuration from the environment, with an
// optional .env file for development.
package config

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

// Config holds everything the server needs from the environment.
type Config struct {
	// Port the HTTP server listens on.
	Port string

	// TablePrefix is prepended to the users/threads/posts collection
	// names, isolating test and production data in one account.
	TablePrefix string

	// PasswordHashSalt is the fixed salt shared by all password hashes.
	// Required; there is deliberately no built-in default.
	PasswordHashSalt string

	// AWSRegion overrides the SDK's region resolution when set.
	AWSRegion string

	// DynamoEndpoint points the client at a local DynamoDB when set
	// (e.g. http://localhost:8000).
	DynamoEndpoint string

	CorsOptions cors.Options
}

// Load reads the environment, after loading ENV_FILE (default ".env") if it
// exists. It fails when PASSWORD_HASH_SALT is unset; a baked-in default
// would put a production secret in source.
func Load() (*Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	salt := os.Getenv("PASSWORD_HASH_SALT")
	if salt == "" {
		return nil, errors.New("PASSWORD_HASH_SALT must be set")
	}

	return &Config{
		Port:             getEnv("PORT", "8080"),
		TablePrefix:      os.Getenv("TABLE_PREFIX"),
		PasswordHashSalt: salt,
		AWSRegion:        os.Getenv("AWS_REGION"),
		DynamoEndpoint:   os.Getenv("DYNAMO_ENDPOINT"),
		CorsOptions:      corsOptions(),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func corsOptions() cors.Options {
	origins := []string{"http://localhost:5173"}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		origins = strings.Split(v, ",")
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
}
