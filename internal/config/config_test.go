package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/meapi")
	t.Setenv("ADMIN_API_KEY", "s3cret")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("RATE_LIMIT", "5")
	t.Setenv("RATE_WINDOW", "30")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@db:5432/meapi", cfg.DB.DSN)
	assert.Equal(t, "s3cret", cfg.Auth.AdminAPIKey)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins())
	assert.Equal(t, 5, cfg.RateLimit.Limit)
	assert.Equal(t, 30*time.Second, cfg.RateWindow())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "postgres://u:p@db:5432/meapi", cfg.Migrate.TargetURL)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("RATE_LIMIT", "")
	t.Setenv("RATE_WINDOW", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("PORT", "")
	t.Setenv("SQLITE_URL", "")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.App.Port)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins())
	assert.Equal(t, "sqlite:///./meapi.db", cfg.Migrate.SourceURL)
	assert.Equal(t, 60, cfg.RateLimit.Limit)
	assert.Equal(t, 60*time.Second, cfg.RateWindow())
}

func TestLoadConfig_RateLimitOnlyLimitSet(t *testing.T) {
	t.Setenv("RATE_LIMIT", "5")
	t.Setenv("RATE_WINDOW", "")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.RateLimit.Limit)
	assert.Equal(t, 60*time.Second, cfg.RateWindow())
}
