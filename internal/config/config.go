package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	Port     string `envconfig:"PORT" default:"8080"`
	BaseURL  string `envconfig:"BASE_URL" default:"http://localhost:8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	SessionKey string `envconfig:"SESSION_KEY" default:"dev-insecure"`

	StorageDir string `envconfig:"STORAGE_DIR" default:"uploads"`

	DB   PostgresConfig
	SMTP SMTPConfig

	GoogleClientID     string `envconfig:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `envconfig:"GOOGLE_CLIENT_SECRET"`
}

type PostgresConfig struct {
	DSN      string `envconfig:"DB_DSN"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"plantshop"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

// ConnString prefers an explicit DSN, otherwise it is assembled from the
// individual parts.
func (pc *PostgresConfig) ConnString() string {
	if pc.DSN != "" {
		return pc.DSN
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		pc.Host, pc.User, pc.Password, pc.Name, pc.Port, pc.SSLMode)
}

type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST"`
	Port     string `envconfig:"SMTP_PORT" default:"587"`
	User     string `envconfig:"SMTP_USER"`
	Password string `envconfig:"SMTP_PASS"`
	OrderTo  string `envconfig:"ORDER_NOTIFY_EMAIL"`
}

func (sc *SMTPConfig) Configured() bool {
	return sc.Host != "" && sc.User != "" && sc.Password != ""
}

func (c *Config) IsDev() bool {
	return c.AppEnv == "" || c.AppEnv == "development" || c.AppEnv == "dev"
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
