package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "giftcatalog.db", cfg.DatabaseDSN)
	assert.Equal(t, EventsNone, cfg.EventsDriver)
	assert.Equal(t, 10.0, cfg.WriteRateLimit)
	assert.Equal(t, 20, cfg.WriteRateBurst)
}

func TestLoad_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("DB_DRIVER", "Postgres")
	v.Set("DATABASE_DSN", "host=localhost user=postgres dbname=giftcatalog")
	v.Set("EVENTS_DRIVER", "NATS")
	v.Set("WRITE_RATE_LIMIT", 0)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, EventsNATS, cfg.EventsDriver)
	assert.Zero(t, cfg.WriteRateLimit)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("DB_DRIVER", "memory")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.AppPort)
	assert.Equal(t, DriverMemory, cfg.DBDriver)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			AppPort:      ":8080",
			DBDriver:     DriverSQLite,
			DatabaseDSN:  "giftcatalog.db",
			JWTSecret:    "secret",
			EventsDriver: EventsNone,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"memory needs no dsn", func(c *Config) { c.DBDriver = DriverMemory; c.DatabaseDSN = "" }, ""},
		{"missing port", func(c *Config) { c.AppPort = "" }, "APP_PORT"},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET"},
		{"unknown driver", func(c *Config) { c.DBDriver = "mongo" }, "unknown DB_DRIVER"},
		{"sqlite needs dsn", func(c *Config) { c.DatabaseDSN = "" }, "DATABASE_DSN"},
		{"unknown events", func(c *Config) { c.EventsDriver = "kafka" }, "unknown EVENTS_DRIVER"},
		{"negative rate", func(c *Config) { c.WriteRateLimit = -1 }, "WRITE_RATE_LIMIT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
