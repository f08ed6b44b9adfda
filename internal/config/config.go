// Package config loads runtime settings from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every setting the service reads at start-up.
type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	LogMode string `env:"LOG_MODE" envDefault:"dev"`
	WebDir  string `env:"WEB_DIR" envDefault:"./web"`
	// AdminToken guards the registrations listing. Empty disables it.
	AdminToken string `env:"ADMIN_TOKEN"`

	DB     Database `envPrefix:"DB_"`
	GenAI  GenAI    `envPrefix:"GENAI_"`
	Quest  Quest    `envPrefix:"QUEST_"`
	Events Events
}

// Database holds PostgreSQL connection settings.
type Database struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD" envDefault:"postgres"`
	Name     string `env:"NAME" envDefault:"ignitequest"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

// DSN builds a libpq-compatible connection string.
func (c Database) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// GenAI configures the hosted profile generation model.
type GenAI struct {
	APIKey  string        `env:"API_KEY"`
	Model   string        `env:"MODEL" envDefault:"gemini-3-flash-preview"`
	BaseURL string        `env:"BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// Quest configures the in-process quest sessions.
type Quest struct {
	SessionTTL  time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	MaxSessions int           `env:"MAX_SESSIONS" envDefault:"10000"`
}

// Events configures the public event schedule.
type Events struct {
	RegistrationDeadline time.Time `env:"REGISTRATION_DEADLINE" envDefault:"2024-12-26T23:59:59+05:30"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
