package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := FromViper(newViper())
	require.NoError(t, err)

	assert.Equal(t, "accountingd", cfg.ServiceName)
	assert.Equal(t, 9090, cfg.GRPCPort)
	assert.Equal(t, 8090, cfg.HTTPPort)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "bib.accounting.events", cfg.Kafka.Topic)
	assert.Equal(t, 5*time.Minute, cfg.MappingCacheTTL)
	assert.Equal(t, time.Second, cfg.Outbox.PollInterval)
	assert.Equal(t, 100, cfg.Outbox.BatchSize)
	assert.Equal(t, 5, cfg.Retry.Policy().MaxAttempts)
	assert.Equal(t, 50*time.Millisecond, cfg.Retry.Policy().InitialInterval)
	assert.False(t, cfg.TLS.Enabled())
}

func TestFromViper_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6432")
	t.Setenv("DB_LOCK_TIMEOUT", "2s")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("RETRY_MAX_ATTEMPTS", "9")
	t.Setenv("MAPPING_CACHE_TTL", "30s")

	cfg, err := FromViper(newViper())
	require.NoError(t, err)

	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 9, cfg.Retry.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.MappingCacheTTL)

	pg := cfg.DB.Postgres("accountingd")
	assert.Equal(t, "db.internal", pg.Host)
	assert.Equal(t, 6432, pg.Port)
	assert.Equal(t, "bib_accounting", pg.Database)
	assert.Equal(t, "accountingd", pg.ApplicationName)
	assert.Equal(t, 2*time.Second, pg.LockTimeout)
}

func TestFromViper_Invalid(t *testing.T) {
	tests := []struct {
		name string
		set  map[string]any
		want string
	}{
		{"missing host", map[string]any{"DB_HOST": ""}, "DB_HOST is required"},
		{"zero retries", map[string]any{"RETRY_MAX_ATTEMPTS": 0}, "RETRY_MAX_ATTEMPTS must be positive"},
		{"negative batch", map[string]any{"OUTBOX_BATCH_SIZE": -1}, "OUTBOX_BATCH_SIZE must be positive"},
		{"min above max", map[string]any{"DB_MIN_CONNS": 50}, "exceeds DB_MAX_CONNS"},
		{"cert without key", map[string]any{"TLS_CERT_FILE": "/tls/cert.pem"}, "must be set together"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			for k, val := range tt.set {
				v.Set(k, val)
			}
			_, err := FromViper(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	v := viper.New()
	_, err := FromViper(v)
	require.Error(t, err)
	for _, want := range []string{"DB_HOST", "DB_NAME", "DB_USER", "RETRY_MAX_ATTEMPTS", "OUTBOX_BATCH_SIZE"} {
		assert.Contains(t, err.Error(), want)
	}
}
