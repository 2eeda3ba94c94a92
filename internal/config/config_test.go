package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alaminute/backend-prints/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"MONGO_URI": "mongodb://localhost:27017",
		"REDIS_URL": "redis://localhost:6379/0",
		"PORT":      "",
		"MONGO_DB":  "",
		"CART_TTL":  "",
	})
	require.NoError(t, err)

	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, "alaminute", cfg.MongoDatabase)
	require.Equal(t, 50, cfg.CatalogDefaultLimit)
	require.Equal(t, 100, cfg.CatalogMaxLimit)
	require.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	require.Equal(t, 168*time.Hour, cfg.CartTTL)
	require.Equal(t, 24*time.Hour, cfg.IdempotencyTTL)
	require.Equal(t, time.Minute, cfg.OrderRateWindow)
	require.Equal(t, 10, cfg.OrderRateMax)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"MONGO_URI":            "mongodb://db:27017",
		"REDIS_URL":            "redis://cache:6379/1",
		"APP_ENV":              "production",
		"PORT":                 "9000",
		"ADMIN_API_TOKEN":      "  token-123  ",
		"CORS_ALLOWED_ORIGINS": "https://shop.example.com, https://admin.example.com",
		"CART_TTL":             "24h",
		"ORDER_RATE_MAX":       "3",
	})
	require.NoError(t, err)

	require.Equal(t, "production", cfg.AppEnv)
	require.Equal(t, ":9000", cfg.HTTPAddr())
	require.Equal(t, "token-123", cfg.AdminAPIToken)
	require.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, cfg.CORSAllowedOrigins)
	require.Equal(t, 24*time.Hour, cfg.CartTTL)
	require.Equal(t, 3, cfg.OrderRateMax)
}

func TestLoadRequiresStores(t *testing.T) {
	_, err := config.LoadForTests(map[string]string{
		"MONGO_URI": "",
		"REDIS_URL": "redis://localhost:6379/0",
	})
	require.Error(t, err)

	_, err = config.LoadForTests(map[string]string{
		"MONGO_URI": "mongodb://localhost:27017",
		"REDIS_URL": "",
	})
	require.Error(t, err)
}
