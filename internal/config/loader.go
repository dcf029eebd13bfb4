package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config captures environment driven configuration values for the
// reservation service.
type Config struct {
	HTTPPort    int
	SQLiteDSN   string
	APIKey      string
	APIKeyHash  string
	TokenSecret string
	TokenIssuer string
}

// Load parses configuration values from the current process environment.
//
// The loader applies defaults for optional fields while validating
// required values. Exactly one of RESERVATIONS_API_KEY and
// RESERVATIONS_API_KEY_HASH must be set; the latter keeps the plaintext
// key out of the server environment.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:  8080,
		SQLiteDSN: "file:reservations.db",
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("RESERVATIONS_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "RESERVATIONS_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("RESERVATIONS_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	cfg.APIKey = strings.TrimSpace(os.Getenv("RESERVATIONS_API_KEY"))
	cfg.APIKeyHash = strings.TrimSpace(os.Getenv("RESERVATIONS_API_KEY_HASH"))
	switch {
	case cfg.APIKey == "" && cfg.APIKeyHash == "":
		missing = append(missing, "RESERVATIONS_API_KEY or RESERVATIONS_API_KEY_HASH")
	case cfg.APIKey != "" && cfg.APIKeyHash != "":
		invalid = append(invalid, "RESERVATIONS_API_KEY and RESERVATIONS_API_KEY_HASH are mutually exclusive")
	}

	if secret := strings.TrimSpace(os.Getenv("RESERVATIONS_TOKEN_SECRET")); secret == "" {
		missing = append(missing, "RESERVATIONS_TOKEN_SECRET")
	} else {
		cfg.TokenSecret = secret
	}

	cfg.TokenIssuer = strings.TrimSpace(os.Getenv("RESERVATIONS_TOKEN_ISSUER"))

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
