package config

import (
	"log"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Storage. DatabaseDriver is "mongo" or "memory".
	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	DatabaseName   string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Slot engine.
	SlotDurationMinutes int    `mapstructure:"SLOT_DURATION_MINUTES"`
	SlotTimezone        string `mapstructure:"SLOT_TIMEZONE"`
	HoldDefaultMinutes  int    `mapstructure:"HOLD_DEFAULT_MINUTES"`
	HoldAllowedMinutes  string `mapstructure:"HOLD_ALLOWED_MINUTES"`
	SweepInterval       string `mapstructure:"SWEEP_INTERVAL"`

	// Collaborators.
	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	StripeKey    string `mapstructure:"STRIPE_KEY"`

	// Tracing.
	OtelEnabled      bool    `mapstructure:"OTEL_ENABLED"`
	OtelEndpoint     string  `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelSamplingRate float64 `mapstructure:"OTEL_SAMPLING_RATIO"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("DATABASE_DRIVER", "mongo")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017/?replicaSet=rs0")
	viper.SetDefault("DATABASE_NAME", "slotbook")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("SLOT_DURATION_MINUTES", 15)
	viper.SetDefault("SLOT_TIMEZONE", "UTC")
	viper.SetDefault("HOLD_DEFAULT_MINUTES", 10)
	viper.SetDefault("HOLD_ALLOWED_MINUTES", "5,10")
	viper.SetDefault("SWEEP_INTERVAL", "@every 1m")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("OTEL_ENABLED", false)
	viper.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	viper.SetDefault("OTEL_SAMPLING_RATIO", 1.0)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// AllowedHoldMinutes parses HOLD_ALLOWED_MINUTES ("5,10") and drops
// anything that is not a positive integer.
func (c Config) AllowedHoldMinutes() []int {
	var out []int
	for _, part := range strings.Split(c.HoldAllowedMinutes, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n <= 0 {
			continue
		}
		out = append(out, n)
	}
	return out
}
