package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DELIVERY_TIMEOUT", "")
	t.Setenv("DELIVERY_POOL_SIZE", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "notifications.push", cfg.PushExchange)
	assert.Equal(t, 10*time.Second, cfg.DeliveryTimeout)
	assert.Equal(t, 64, cfg.DeliveryPoolSize)
	assert.Equal(t, "en", cfg.Locale)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DELIVERY_TIMEOUT", "3s")
	t.Setenv("DELIVERY_POOL_SIZE", "8")
	t.Setenv("REMINDER_WINDOW", "2h")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 3*time.Second, cfg.DeliveryTimeout)
	assert.Equal(t, 8, cfg.DeliveryPoolSize)
	assert.Equal(t, 2*time.Hour, cfg.ReminderWindow)
}

func TestHelpers_IgnoreMalformedValues(t *testing.T) {
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_INT", "-4")
	t.Setenv("X_DUR", "soon")

	assert.True(t, getBoolEnv("X_BOOL", true))
	assert.Equal(t, 7, getIntEnv("X_INT", 7))
	assert.Equal(t, time.Minute, getDurationEnv("X_DUR", time.Minute))
}
