package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POSTGRES_USER", "hermes")
	t.Setenv("POSTGRES_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "hermes", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 2*time.Minute, cfg.Engine.StageTimeout)
	assert.Equal(t, "openai", cfg.AI.DefaultProvider)
	assert.Equal(t, 5, cfg.Search.MaxResults)
	assert.False(t, cfg.Redis.Enabled)
}

func TestPostgresDSN(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "hermes",
		Password: "secret",
		Database: "analysis",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=hermes password=secret dbname=analysis sslmode=require",
		cfg.DSN(),
	)
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", cfg.Addr())
}
