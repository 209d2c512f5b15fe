package config

import (
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg := &Config{}
	require.NoError(t, env.Parse(cfg))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendPostgres, cfg.StoreBackend)
	assert.Equal(t, 30, cfg.UpcomingThresholdDays)
	assert.True(t, cfg.OngoingInclusiveEnd)
	assert.Equal(t, 6, cfg.SessionTTLHours)
	assert.Equal(t, "@hourly", cfg.IndexReconcileCron)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{StoreBackend: "memory", JWTSecret: "s", UpcomingThresholdDays: 30, CampusTimezone: "Asia/Jakarta"}
	}
	require.NoError(t, base().Validate())

	c := base()
	c.StoreBackend = "mongo"
	assert.Error(t, c.Validate())

	c = base()
	c.StoreBackend = "firebase"
	assert.Error(t, c.Validate(), "firebase needs a database URL")

	c = base()
	c.JWTSecret = ""
	assert.Error(t, c.Validate())

	c = base()
	c.CampusTimezone = "Mars/Olympus"
	assert.Error(t, c.Validate())
}
