package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string

	LogLevel  string
	LogFormat string

	DatabaseURL   string
	RunMigrations bool

	RedisURL      string
	ActorCacheTTL time.Duration

	AMQPURL      string
	PushExchange string

	JWTSecret string

	CORSOrigins string

	ResendAPIKey string
	FromEmail    string
	Domain       string

	Locale      string
	LocalesPath string

	DeliveryTimeout  time.Duration
	DeliveryPoolSize int

	ReminderInterval time.Duration
	ReminderWindow   time.Duration
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RunMigrations: getBoolEnv("RUN_MIGRATIONS", true),

		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379"),
		ActorCacheTTL: getDurationEnv("ACTOR_CACHE_TTL", 10*time.Minute),

		AMQPURL:      getEnv("AMQP_URL", ""),
		PushExchange: getEnv("PUSH_EXCHANGE", "notifications.push"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@example.com"),
		Domain:       getEnv("DOMAIN", "localhost:5173"),

		Locale:      getEnv("LOCALE", "en"),
		LocalesPath: getEnv("LOCALES_PATH", "locales"),

		DeliveryTimeout:  getDurationEnv("DELIVERY_TIMEOUT", 10*time.Second),
		DeliveryPoolSize: getIntEnv("DELIVERY_POOL_SIZE", 64),

		ReminderInterval: getDurationEnv("REMINDER_INTERVAL", 15*time.Minute),
		ReminderWindow:   getDurationEnv("REMINDER_WINDOW", 24*time.Hour),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
