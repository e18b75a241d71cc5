package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	DBDriver   string `env:"DB_DRIVER" envDefault:"mysql"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"3306"`
	DBUser     string `env:"DB_USER" envDefault:"taskheroes"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"taskheroes"`
	DBName     string `env:"DB_NAME" envDefault:"task_heroes"`

	Port    string `env:"PORT" envDefault:"8080"`
	GinMode string `env:"GIN_MODE" envDefault:"debug"`

	// Midnight reset of daily tasks. Disabled in deployments where the
	// client-driven daily check is the only reset path.
	SchedulerEnabled bool `env:"SCHEDULER_ENABLED" envDefault:"true"`

	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
