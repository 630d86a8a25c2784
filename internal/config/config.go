package config

import (
	"fmt"
	"os"
)

// Config is the process-wide configuration, read from environment
// variables after godotenv has loaded any .env file.
type Config struct {
	Port      string
	JWTSecret string
	AppURL    string

	// Snapshot storage backend: sqlite (default), postgres or memory.
	StorageDriver string
	SQLitePath    string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// Redis address for the notification queue. Empty disables the queue
	// and applies notifications synchronously.
	RedisAddr string
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:      os.Getenv("PORT"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		AppURL:    os.Getenv("APP_URL"),

		StorageDriver: os.Getenv("STORAGE_DRIVER"),
		SQLitePath:    os.Getenv("SQLITE_PATH"),

		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBName:     os.Getenv("DB_NAME"),

		RedisAddr: os.Getenv("REDIS_ADDR"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.StorageDriver == "" {
		cfg.StorageDriver = "sqlite"
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "smatico.db"
	}
	if cfg.AppURL == "" {
		cfg.AppURL = "http://localhost:" + cfg.Port
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.StorageDriver == "postgres" {
		if cfg.DBUser == "" || cfg.DBHost == "" || cfg.DBName == "" {
			return Config{}, fmt.Errorf("DB_USER, DB_HOST and DB_NAME are required for the postgres driver")
		}
		if cfg.DBPort == "" {
			cfg.DBPort = "5432"
		}
	}
	return cfg, nil
}

// PostgresDSN builds the connection string the same way the DB_* variables
// are combined everywhere else.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}
