package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// ErrMissingStoreCredentials is returned when the store endpoint or access key is not configured.
var ErrMissingStoreCredentials = errors.New("store url and store key must be provided")

// Config holds runtime configuration values for the gateway.
type Config struct {
	AppName         string
	AppEnv          string
	AppPort         string
	SubmissionsPath string
	LogLevel        zerolog.Level
	StoreURL        string
	StoreKey        string
	RedisURL        string
	NATSURL         string
	EventsChannel   string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("GATEWAY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Submission Gateway")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("http.path", "/api/submissions")
	v.SetDefault("log.level", "info")
	v.SetDefault("events.channel", "gateway")

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(v.GetString("log.level"))))
	if err != nil {
		return Config{}, fmt.Errorf("invalid log level: %w", err)
	}

	path := strings.TrimSpace(v.GetString("http.path"))
	if path == "" {
		path = "/api/submissions"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	cfg := Config{
		AppName:         v.GetString("app.name"),
		AppEnv:          v.GetString("app.env"),
		AppPort:         v.GetString("app.port"),
		SubmissionsPath: path,
		LogLevel:        level,
		StoreURL:        strings.TrimSpace(v.GetString("store.url")),
		StoreKey:        strings.TrimSpace(v.GetString("store.key")),
		RedisURL:        strings.TrimSpace(v.GetString("redis.url")),
		NATSURL:         strings.TrimSpace(v.GetString("nats.url")),
		EventsChannel:   strings.TrimSpace(v.GetString("events.channel")),
	}

	if cfg.StoreURL == "" || cfg.StoreKey == "" {
		return Config{}, ErrMissingStoreCredentials
	}

	return cfg, nil
}
