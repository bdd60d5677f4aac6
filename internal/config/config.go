package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Env         string   `env:"APP_ENV" envDefault:"development"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	Port        string   `env:"PORT" envDefault:"3333"`
	DBType      string   `env:"STORAGE_BACKEND" envDefault:"sqlite"`
	DBDSN       string   `env:"POSTGRES_DSN"`
	SQLitePath  string   `env:"SQLITE_PATH" envDefault:"data/habits.db"`
	FileHabits  string   `env:"HABITS_FILE" envDefault:"data/habits.json"`
	FileDays    string   `env:"DAYS_FILE" envDefault:"data/days.json"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBType {
	case "postgres":
		if c.DBDSN == "" {
			return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required when STORAGE_BACKEND=sqlite")
		}
	case "file":
		if c.FileHabits == "" || c.FileDays == "" {
			return errors.New("file storage requires HABITS_FILE and DAYS_FILE to be set")
		}
	default:
		return errors.New("STORAGE_BACKEND must be one of: sqlite, postgres, file")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	return nil
}
