package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	DB       DBConfig
	Log      LogConfig
	Reminder ReminderConfig
}

type AppConfig struct {
	Env string `env:"APP_ENV" env-default:"local"`
	// Timezone decides what "today" means for overdue checks.
	Timezone string `env:"APP_TIMEZONE" env-default:"Local"`
}

type HTTPConfig struct {
	Port            int           `env:"PORT" env-default:"8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"1m"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	// NullOnMissing answers lookups of unknown ids with 200 and a null body
	// instead of 404, for clients written against the old API.
	NullOnMissing  bool     `env:"HTTP_NULL_ON_MISSING" env-default:"false"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-default:"https://*,http://*"`
}

type DBConfig struct {
	Host            string        `env:"BLUEPRINT_DB_HOST" env-default:"localhost"`
	Port            string        `env:"BLUEPRINT_DB_PORT" env-default:"5432"`
	Database        string        `env:"BLUEPRINT_DB_DATABASE" env-default:"todo"`
	Username        string        `env:"BLUEPRINT_DB_USERNAME" env-default:"postgres"`
	Password        string        `env:"BLUEPRINT_DB_PASSWORD"`
	Schema          string        `env:"BLUEPRINT_DB_SCHEMA" env-default:"public"`
	SSLMode         string        `env:"BLUEPRINT_DB_SSLMODE" env-default:"disable"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" env-default:"100"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"1h"`
	RunMigrations   bool          `env:"DB_RUN_MIGRATIONS" env-default:"true"`
}

type LogConfig struct {
	Level    string `env:"LOG_LEVEL" env-default:"info"`
	Encoding string `env:"LOG_ENCODING" env-default:"json"`
	// SQLLevel is one of silent, error, warn, info.
	SQLLevel string `env:"LOG_SQL_LEVEL" env-default:"warn"`
}

type ReminderConfig struct {
	Enabled  bool   `env:"OVERDUE_REMINDER_ENABLED" env-default:"true"`
	Schedule string `env:"OVERDUE_REMINDER_SCHEDULE" env-default:"@every 1h"`
}

// Load reads the environment (and a .env file, if present) into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return Config{}, fmt.Errorf("PORT out of range: %d", cfg.HTTP.Port)
	}
	if _, err := cfg.App.Location(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Location resolves Timezone.
func (c AppConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("APP_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// DSN builds a key/value connection string understood by both pgx and gorm.
func (c DBConfig) DSN() string {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.Username, c.Password, c.Database, c.Port, c.SSLMode)
	if c.Schema != "" {
		dsn += " search_path=" + c.Schema
	}
	return dsn
}

// Addr is the listen address for the HTTP server.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
