package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	originalEnv := map[string]string{
		"RENTOPS_APP_NAME":          os.Getenv("RENTOPS_APP_NAME"),
		"RENTOPS_APP_ENV":           os.Getenv("RENTOPS_APP_ENV"),
		"RENTOPS_APP_PORT":          os.Getenv("RENTOPS_APP_PORT"),
		"RENTOPS_DATABASE_HOST":     os.Getenv("RENTOPS_DATABASE_HOST"),
		"RENTOPS_DATABASE_PORT":     os.Getenv("RENTOPS_DATABASE_PORT"),
		"RENTOPS_DATABASE_USER":     os.Getenv("RENTOPS_DATABASE_USER"),
		"RENTOPS_DATABASE_PASSWORD": os.Getenv("RENTOPS_DATABASE_PASSWORD"),
		"RENTOPS_DATABASE_SSLMODE":  os.Getenv("RENTOPS_DATABASE_SSLMODE"),
		"RENTOPS_JWT_SECRET":        os.Getenv("RENTOPS_JWT_SECRET"),
		"RENTOPS_REDIS_HOST":        os.Getenv("RENTOPS_REDIS_HOST"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "rentops-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "rentops", cfg.Database.DBName)
		assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
		assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshTokenExpiration)
		assert.Equal(t, 30*time.Second, cfg.Import.HTTPTimeout)
		assert.Equal(t, time.Hour, cfg.Import.StaleJobThreshold)
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		clearEnv()
		os.Setenv("RENTOPS_APP_PORT", "9000")
		os.Setenv("RENTOPS_DATABASE_HOST", "db.internal")
		os.Setenv("RENTOPS_DATABASE_PORT", "5433")
		os.Setenv("RENTOPS_REDIS_HOST", "cache.internal")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "cache.internal:6379", cfg.Redis.Addr())
	})

	t.Run("production requires a strong jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("RENTOPS_APP_ENV", "production")
		os.Setenv("RENTOPS_DATABASE_PASSWORD", "secret")
		os.Setenv("RENTOPS_DATABASE_SSLMODE", "require")
		os.Setenv("RENTOPS_JWT_SECRET", "tooshort")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "rentops",
		Password: "p@ss/word",
		DBName:   "rentops",
		SSLMode:  "disable",
	}

	dsn := d.DSN()

	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	// Password must be escaped, not embedded raw
	assert.NotContains(t, dsn, "p@ss/word")
}
