package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"

	"shop_service/pkg/db"
)

type Config struct {
	DatabaseDriver string `envconfig:"DB_DRIVER"    default:"postgres"`
	DatabaseURL    string `envconfig:"DATABASE_URL" required:"true"`
	HTTPPort       string `envconfig:"HTTP_PORT"    default:":8080"`
	LogLevel       string `envconfig:"LOG_LEVEL"    default:"info"`
	LogFormat      string `envconfig:"LOG_FORMAT"   default:"json"`
}

// LoadConfig reads an optional .env file, then the environment. Variables already set in the
// environment win over .env entries.
func LoadConfig(logger *logrus.Logger, envFiles ...string) (*Config, error) {
	err := godotenv.Load(envFiles...)
	if err != nil && !os.IsNotExist(err) {
		logger.Warnf("Error loading .env file (but continuing): %v", err)
	} else if err == nil {
		logger.Info("Loaded configuration from .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration from environment variables: %w", err)
	}

	switch cfg.DatabaseDriver {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)", cfg.DatabaseDriver, db.DriverPostgres, db.DriverSQLite)
	}

	logger.Infof("Configuration loaded: Driver=%s, HTTP Port=%s, LogLevel=%s", cfg.DatabaseDriver, cfg.HTTPPort, cfg.LogLevel)
	return &cfg, nil
}
