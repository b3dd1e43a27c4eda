package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServiceName string
	LogLevel    string

	Port            int
	PortMaxAttempts int

	DatabaseDriver string
	DatabaseURL    string
	AutoMigrate    bool

	KafkaBrokers       []string
	KafkaProductsTopic string
	KafkaOrdersTopic   string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	RedisAddr string
	CacheTTL  time.Duration
}

func Load() Config {
	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "tienda"),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		Port:            EnvIntDefault("PORT", 3001),
		PortMaxAttempts: EnvIntDefault("PORT_MAX_ATTEMPTS", 20),

		DatabaseDriver: EnvDefault("DB_DRIVER", "mysql"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		AutoMigrate:    EnvBoolDefault("AUTO_MIGRATE", false),

		KafkaBrokers:       CSV(os.Getenv("KAFKA_BROKERS")),
		KafkaProductsTopic: EnvDefault("KAFKA_TOPIC_PRODUCTS", "product_events"),
		KafkaOrdersTopic:   EnvDefault("KAFKA_TOPIC_ORDERS", "order_events"),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "productos"),

		RedisAddr: os.Getenv("REDIS_ADDR"),
		CacheTTL:  EnvDurationDefault("CACHE_TTL", 10*time.Minute),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
