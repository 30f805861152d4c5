package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is populated from the environment (a .env file is loaded first in
// main when present). Prefix for every variable is PINGME_, e.g.
// PINGME_HTTP_ADDR, PINGME_POSTGRES_DSN.
type Config struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	PostgresDSN string `envconfig:"POSTGRES_DSN" default:"host=localhost user=user password=password dbname=pingme port=5432 sslmode=disable"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"168h"`
}

func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("pingme", &c); err != nil {
		return nil, err
	}
	return &c, nil
}
