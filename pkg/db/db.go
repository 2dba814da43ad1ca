package db

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds database connection configuration
type Config struct {
	// URL is the database connection URL (defaults to DATABASE_URL env var)
	URL string
	// Log receives SQL logging; nil means logrus.StandardLogger()
	Log *logrus.Logger
}

// Connect establishes a database connection.
// If no URL is provided, it reads from DATABASE_URL environment variable.
func Connect(cfg Config) (*gorm.DB, error) {
	dbURL := cfg.URL
	if dbURL == "" {
		dbURL = URL()
	}
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	db, err := gorm.Open(
		postgres.New(postgres.Config{
			DSN:                  dbURL,
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		}),
		&gorm.Config{
			Logger: NewLogger(cfg.Log),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// NewLogger returns a gorm logger that writes through logrus. SQL statements
// are only logged when the logrus level is debug.
func NewLogger(log *logrus.Logger) logger.Interface {
	if log == nil {
		log = logrus.StandardLogger()
	}

	level := logger.Silent
	switch {
	case log.IsLevelEnabled(logrus.DebugLevel):
		level = logger.Info
	case log.IsLevelEnabled(logrus.WarnLevel):
		level = logger.Warn
	}

	return logger.New(log, logger.Config{
		SlowThreshold: 500 * time.Millisecond,
		LogLevel:      level,
		Colorful:      false,
	})
}

// URL returns the database URL from environment.
// Returns empty string if DATABASE_URL is not set.
func URL() string {
	return os.Getenv("DATABASE_URL")
}
