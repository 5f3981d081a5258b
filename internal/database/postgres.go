package database

import (
	"fmt"
	"net/url"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultStoreUser = "postgres"

// StoreDSN combines the store endpoint URL with the access key, which hosted
// Postgres services hand out as the database password.
func StoreDSN(storeURL, accessKey string) (string, error) {
	if strings.TrimSpace(storeURL) == "" {
		return "", fmt.Errorf("store url must not be empty")
	}
	if strings.TrimSpace(accessKey) == "" {
		return "", fmt.Errorf("store key must not be empty")
	}

	parsed, err := url.Parse(strings.TrimSpace(storeURL))
	if err != nil {
		return "", fmt.Errorf("failed to parse store url: %w", err)
	}

	switch parsed.Scheme {
	case "postgres", "postgresql":
	default:
		return "", fmt.Errorf("unsupported store url scheme %q", parsed.Scheme)
	}

	if parsed.Host == "" {
		return "", fmt.Errorf("store url must include a host")
	}

	username := defaultStoreUser
	if parsed.User != nil && parsed.User.Username() != "" {
		username = parsed.User.Username()
	}
	parsed.User = url.UserPassword(username, strings.TrimSpace(accessKey))

	return parsed.String(), nil
}

// ConnectPostgres opens the submissions store using the endpoint URL and access key.
func ConnectPostgres(storeURL, accessKey string) (*gorm.DB, error) {
	dsn, err := StoreDSN(storeURL, accessKey)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return db, nil
}
