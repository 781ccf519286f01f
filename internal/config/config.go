package config

import (
	"errors"

	"github.com/caarlos0/env/v10"
)

// DevSessionSecret es el secreto de firma por defecto fuera de producción.
const DevSessionSecret = "toolkeep-dev-session-secret"

// ErrMissingSessionSecret indica arranque en producción sin secreto configurado.
var ErrMissingSessionSecret = errors.New("SESSION_SECRET must be set when APP_ENV=production")

// Config centraliza la configuración del servicio.
type Config struct {
	AppEnv             string `env:"APP_ENV" envDefault:"development"`
	HTTPPort           string `env:"HTTP_PORT" envDefault:"8080"`
	UsersFile          string `env:"USERS_FILE" envDefault:"data/users.json"`
	SessionSecret      string `env:"SESSION_SECRET"`
	SessionTTLHours    int    `env:"SESSION_TTL_HOURS" envDefault:"168"`
	RedisAddr          string `env:"REDIS_ADDR"`
	RedisPassword      string `env:"REDIS_PASSWORD"`
	RedisDB            int    `env:"REDIS_DB" envDefault:"0"`
	LoginMaxAttempts   int    `env:"LOGIN_MAX_ATTEMPTS" envDefault:"5"`
	LoginWindowMinutes int    `env:"LOGIN_WINDOW_MINUTES" envDefault:"15"`
}

// LoadConfig carga la configuración desde variables de entorno.
// En producción exige un secreto de firma; en otros perfiles cae al
// secreto de desarrollo.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if cfg.SessionSecret == "" {
		if cfg.IsProduction() {
			return nil, ErrMissingSessionSecret
		}
		cfg.SessionSecret = DevSessionSecret
	}
	return &cfg, nil
}

// IsProduction indica si el perfil activo es producción.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
