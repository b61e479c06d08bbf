package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process level configuration. Empty DSN/broker values select
// the in-memory collaborators so local development needs no infrastructure.
type Server struct {
	Addr          string
	JWTSigningKey string

	// CardFee is the exact creation fee in minor currency units. Creation
	// payments must equal it, not merely cover it.
	CardFee int64

	// RegistryOwner is the account that receives all creation fees.
	RegistryOwner string

	PostgresDSN string
	Redis       RedisConfig
	Kafka       KafkaConfig
}

// RedisConfig holds connection settings for the card view cache. Zero values
// defer to the redis package's pool defaults.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig holds settings for the notification producer.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// DefaultCardFee applies when DEVDECK_CARD_FEE is unset.
const DefaultCardFee = 100

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("DEVDECK_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	fee := int64(DefaultCardFee)
	if raw := os.Getenv("DEVDECK_CARD_FEE"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			fee = parsed
		}
	}

	var brokers []string
	if raw := os.Getenv("DEVDECK_KAFKA_BROKERS"); raw != "" {
		brokers = strings.Split(raw, ",")
	}
	topic := os.Getenv("DEVDECK_KAFKA_TOPIC")
	if topic == "" {
		topic = "devdeck.card-events"
	}

	var redisPoolSize int
	if raw := os.Getenv("DEVDECK_REDIS_POOL_SIZE"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			redisPoolSize = parsed
		}
	}

	return Server{
		Addr:          addr,
		JWTSigningKey: jwtSigningKey,
		CardFee:       fee,
		RegistryOwner: os.Getenv("DEVDECK_REGISTRY_OWNER"),
		PostgresDSN:   os.Getenv("DEVDECK_POSTGRES_DSN"),
		Redis: RedisConfig{
			URL:      os.Getenv("DEVDECK_REDIS_URL"),
			PoolSize: redisPoolSize,
		},
		Kafka: KafkaConfig{
			Brokers: brokers,
			Topic:   topic,
		},
	}
}
