package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacentio/agora/internal/config"
)

func TestLoadRequiresSalt(t *testing.T) {
	t.Setenv("ENV_FILE", "no-such-file.env")
	t.Setenv("PASSWORD_HASH_SALT", "")

	_, err := config.Load()
	assert.Error(t, err, "a missing salt must refuse to start, not fall back to a literal default")
}

func TestLoad(t *testing.T) {
	t.Setenv("ENV_FILE", "no-such-file.env")
	t.Setenv("PASSWORD_HASH_SALT", "pepper")
	t.Setenv("PORT", "9090")
	t.Setenv("TABLE_PREFIX", "test_")
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("DYNAMO_ENDPOINT", "http://localhost:8000")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "test_", cfg.TablePrefix)
	assert.Equal(t, "pepper", cfg.PasswordHashSalt)
	assert.Equal(t, "eu-west-1", cfg.AWSRegion)
	assert.Equal(t, "http://localhost:8000", cfg.DynamoEndpoint)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CorsOptions.AllowedOrigins)
}
