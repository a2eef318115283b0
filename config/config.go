package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HttpServer     HttpServerConfig
	Database       DatabaseConfig
	Redis          RedisConfig
	MessageStream  MessageStreamConfig
	HttpClient     HttpClientConfig
	UserService    UserServiceConfig
	CatalogService CatalogServiceConfig
	Booking        BookingConfig
}

type HttpServerConfig struct {
	Host string `envconfig:"HTTP_SERVER_HOST" default:"0.0.0.0"`
	Port string `envconfig:"HTTP_SERVER_PORT" default:"8081"`
}

type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"triplus"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type MessageStreamConfig struct {
	Host     string `envconfig:"AMQP_HOST" default:"localhost"`
	Port     string `envconfig:"AMQP_PORT" default:"5672"`
	User     string `envconfig:"AMQP_USER" default:"guest"`
	Password string `envconfig:"AMQP_PASSWORD" default:"guest"`
}

type HttpClientConfig struct {
	Type                string  `envconfig:"HTTP_CLIENT_TYPE" default:"consecutive"`
	Timeout             int     `envconfig:"HTTP_CLIENT_TIMEOUT" default:"5"`
	ConsecutiveFailures int64   `envconfig:"HTTP_CLIENT_CONSECUTIVE_FAILURES" default:"5"`
	ErrorRate           float64 `envconfig:"HTTP_CLIENT_ERROR_RATE" default:"0.65"`
	Threshold           int64   `envconfig:"HTTP_CLIENT_THRESHOLD" default:"10"`
}

type UserServiceConfig struct {
	Host string `envconfig:"USER_SERVICE_HOST" default:"localhost"`
	Port string `envconfig:"USER_SERVICE_PORT" default:"8080"`
}

type CatalogServiceConfig struct {
	Host string `envconfig:"CATALOG_SERVICE_HOST" default:"localhost"`
	Port string `envconfig:"CATALOG_SERVICE_PORT" default:"8082"`
}

type BookingConfig struct {
	PageSize int `envconfig:"BOOKING_PAGE_SIZE" default:"6"`
}

func InitConfig() *Config {
	// .env is optional, env vars win either way
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("failed to process config: %v", err)
	}

	return &cfg
}
