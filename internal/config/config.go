package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort      string `env:"HTTP_PORT" envDefault:"3002"`
	DatabaseURL   string `env:"DATABASE_URL,required"`
	AllowedOrigin string `env:"ALLOWED_ORIGIN"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	MsgRateWindow int    `env:"MSG_RATE_WINDOW_SECONDS" envDefault:"10"`
	MsgRateMax    int    `env:"MSG_RATE_MAX" envDefault:"30"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
