package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, StorageSQLite, cfg.Storage.Driver)
	assert.Equal(t, "blog.db", cfg.Storage.SQLitePath)
	assert.Equal(t, 10, cfg.Storage.PostgresMaxConns)
	assert.Equal(t, "pbkdf2", cfg.Password.Algorithm)
	assert.Equal(t, 8, cfg.Password.SaltLength)
	assert.Equal(t, 4, cfg.EventWorkers)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.True(t, cfg.Admin.BootstrapFirst)
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":            "s3cret",
		"ENV":                   "production",
		"TOKEN_TTL":             "90m",
		"STORAGE_DRIVER":        "postgres",
		"POSTGRES_DSN":          "postgres://blog@localhost/blog",
		"KAFKA_BROKERS":         "k1:9092,k2:9092",
		"ADMIN_EMAILS":          "a@x.com,b@x.com",
		"BOOTSTRAP_FIRST_ADMIN": "false",
		"PASSWORD_HASH":         "bcrypt",
	}))
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, cfg.Admin.Emails)
	assert.False(t, cfg.Admin.BootstrapFirst)
}

func TestLoadWith_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing secret", env: map[string]string{}},
		{name: "unknown driver", env: map[string]string{"JWT_SECRET": "s", "STORAGE_DRIVER": "oracle"}},
		{name: "postgres without dsn", env: map[string]string{"JWT_SECRET": "s", "STORAGE_DRIVER": "postgres"}},
		{name: "unknown hash", env: map[string]string{"JWT_SECRET": "s", "PASSWORD_HASH": "md5"}},
		{name: "zero ttl", env: map[string]string{"JWT_SECRET": "s", "TOKEN_TTL": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWith(context.Background(), envconfig.MapLookuper(tt.env))
			assert.Error(t, err)
		})
	}
}
