package registry

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contains the registry server settings, loaded from environment variables.
type Config struct {
	Environment    string
	Port           int
	AllowedOrigins []string

	// AnnounceRate is the sustained number of writes per second per client IP.
	AnnounceRate  float64
	AnnounceBurst int

	// TokenMaxSkew bounds the clock difference accepted on request tokens.
	TokenMaxSkew time.Duration
}

// LoadConfig reads the configuration from the environment, applying defaults
// and validating ranges.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	port, err := intEnv("PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port < 1024 || port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the allowed range (%d-%d)", port, 1024, 65535)
	}
	cfg.Port = port

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	}

	cfg.AnnounceRate = 1
	if v := os.Getenv("ANNOUNCE_RATE"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil || r <= 0 {
			return nil, fmt.Errorf("invalid ANNOUNCE_RATE environment variable: %q", v)
		}
		cfg.AnnounceRate = r
	}

	burst, err := intEnv("ANNOUNCE_BURST", 10)
	if err != nil {
		return nil, err
	}
	if burst < 1 {
		return nil, fmt.Errorf("ANNOUNCE_BURST must be positive, got %d", burst)
	}
	cfg.AnnounceBurst = burst

	cfg.TokenMaxSkew = 5 * time.Minute
	if v := os.Getenv("TOKEN_MAX_SKEW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_MAX_SKEW environment variable: %w", err)
		}
		cfg.TokenMaxSkew = d
	}

	return cfg, nil
}

// IsDevelopment reports whether the server runs in the development environment.
func (c *Config) IsDevelopment() bool { return c.Environment == "development" }

func intEnv(name string, def int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", name, err)
	}
	return n, nil
}
