package config

import (
	"fmt"
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Database drivers understood by the database manager.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds application configuration
type Config struct {
	// Server
	Env        string `env:"ENV" env-default:"development" env-description:"Runtime environment (development, production, test)"`
	Port       string `env:"PORT" env-default:"8080" env-description:"HTTP listen port"`
	CORSOrigin string `env:"CORS_ORIGIN" env-default:"*" env-description:"Allowed CORS origin"`

	// Database
	DBDriver   string `env:"DB_DRIVER" env-default:"postgres" env-description:"postgres or sqlite"`
	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`
	DBUser     string `env:"DB_USER" env-default:"gastos"`
	DBPassword string `env:"DB_PASSWORD" env-default:"gastos"`
	DBName     string `env:"DB_NAME" env-default:"gastos"`
	DBSSLMode  string `env:"DB_SSLMODE" env-default:"disable"`
	DBPath     string `env:"DB_PATH" env-default:"gastos.db" env-description:"SQLite database file"`

	// JWT
	JWTSecret    string `env:"JWT_SECRET" env-default:"fallback-secret-key-for-dev-only"`
	JWTExpiresIn string `env:"JWT_EXPIRES_IN" env-default:"24h"`

	// Optional collaborators; empty disables them.
	RedisAddr    string `env:"REDIS_ADDR"`
	AMQPURL      string `env:"AMQP_URL"`
	AMQPExchange string `env:"AMQP_EXCHANGE" env-default:"gastos.expenses"`

	JWTExpirationDur time.Duration
}

var appConfig *Config

// Load loads configuration from the environment, reading a .env file first
// when one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	switch cfg.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	expDur, err := time.ParseDuration(cfg.JWTExpiresIn)
	if err != nil || expDur <= 0 {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", cfg.JWTExpiresIn)
		expDur = 24 * time.Hour
	}
	cfg.JWTExpirationDur = expDur

	appConfig = &cfg
	return &cfg, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
