package surveyload

import (
	"fmt"
	"net/url"
	"os"

	"golang.org/x/xerrors"
)

// defaultExportURL is the fixed export-settings endpoint the survey is
// published under.
const defaultExportURL = "https://kf.kobotoolbox.org/api/v2/assets/a97B3UMS6QB9rrR4mtGqem/export-settings/esxy3BNW6X3JEAxxTRTP8fn/data.csv"

// Config carries source credentials and destination connection parameters.
type Config struct {
	KoboUsername string
	KoboPassword string
	KoboCSVURL   string

	PGHost     string
	PGPort     string
	PGUser     string
	PGPassword string
	PGDatabase string
	PGSSLMode  string
}

// ConfigFromEnv reads the configuration from the process environment.
func ConfigFromEnv() (*Config, error) {
	cfg := &Config{
		KoboUsername: os.Getenv("KOBO_USERNAME"),
		KoboPassword: os.Getenv("KOBO_PASSWORD"),
		KoboCSVURL:   os.Getenv("KOBO_CSV_URL"),

		PGHost:     os.Getenv("PG_HOST"),
		PGPort:     os.Getenv("PG_PORT"),
		PGUser:     os.Getenv("PG_USER"),
		PGPassword: os.Getenv("PG_PASSWORD"),
		PGDatabase: os.Getenv("PG_DATABASE"),
		PGSSLMode:  os.Getenv("PG_SSLMODE"),
	}

	if cfg.KoboCSVURL == "" {
		cfg.KoboCSVURL = defaultExportURL
	}
	if cfg.PGSSLMode == "" {
		cfg.PGSSLMode = "disable"
	}

	if cfg.KoboUsername == "" {
		return nil, xerrors.New("KOBO_USERNAME environment variable is required")
	}
	if cfg.KoboPassword == "" {
		return nil, xerrors.New("KOBO_PASSWORD environment variable is required")
	}
	if cfg.PGHost == "" {
		return nil, xerrors.New("PG_HOST environment variable is required")
	}
	if cfg.PGPort == "" {
		return nil, xerrors.New("PG_PORT environment variable is required")
	}
	if cfg.PGUser == "" {
		return nil, xerrors.New("PG_USER environment variable is required")
	}
	if cfg.PGPassword == "" {
		return nil, xerrors.New("PG_PASSWORD environment variable is required")
	}
	if cfg.PGDatabase == "" {
		return nil, xerrors.New("PG_DATABASE environment variable is required")
	}

	return cfg, nil
}

// Source returns the authenticated export endpoint.
func (c *Config) Source() Source {
	return Source{
		URL:      c.KoboCSVURL,
		Username: c.KoboUsername,
		Password: c.KoboPassword,
	}
}

// DSN builds the destination connection string.
func (c *Config) DSN() string {
	userInfo := url.UserPassword(c.PGUser, c.PGPassword)

	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s?sslmode=%s",
		userInfo.String(),
		c.PGHost,
		c.PGPort,
		url.PathEscape(c.PGDatabase),
		c.PGSSLMode,
	)
}
