// Package config handles TOML configuration parsing, validation, and
// defaults for keapilot.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the top-level configuration for keapilot.
type Config struct {
	Server ServerConfig `toml:"server"`
	Kea    KeaConfig    `toml:"kea"`
	API    APIConfig    `toml:"api"`
}

// ServerConfig holds core service settings.
type ServerConfig struct {
	Listen   string `toml:"listen"`
	LogLevel string `toml:"log_level"`
	AuditDB  string `toml:"audit_db"`
}

// KeaConfig describes the Kea cluster this console prepares commands for.
type KeaConfig struct {
	// Services named in generated command envelopes, e.g. ["dhcp4"].
	Services []string `toml:"services"`
	// ControlAgentURL is shown to operators next to generated envelopes.
	// The console itself never calls it.
	ControlAgentURL string `toml:"control_agent_url"`
}

// APIConfig holds HTTP API settings.
type APIConfig struct {
	Auth    APIAuthConfig `toml:"auth"`
	TLS     APITLSConfig  `toml:"tls"`
	Session SessionConfig `toml:"session"`
}

// APIAuthConfig holds auth settings.
type APIAuthConfig struct {
	AuthToken string       `toml:"auth_token"`
	Users     []UserConfig `toml:"users"`
	RADIUS    RADIUSConfig `toml:"radius"`
}

// UserConfig holds a console user.
type UserConfig struct {
	Username     string `toml:"username"`
	PasswordHash string `toml:"password_hash"`
	Role         string `toml:"role"`
}

// RADIUSConfig holds the optional RADIUS login backend.
type RADIUSConfig struct {
	Enabled bool   `toml:"enabled"`
	Address string `toml:"address"` // host:port
	Secret  string `toml:"secret"`
	Timeout string `toml:"timeout"`
	Retries int    `toml:"retries"`
	// Role granted to RADIUS-authenticated users (admin or viewer).
	Role string `toml:"role"`
}

// APITLSConfig holds API TLS settings.
type APITLSConfig struct {
	Enabled  bool   `toml:"enabled"`
	CertFile string `toml:"cert_file"`
	KeyFile  string `toml:"key_file"`
}

// SessionConfig holds session settings.
type SessionConfig struct {
	CookieName string `toml:"cookie_name"`
	Expiry     string `toml:"expiry"`
	Secure     bool   `toml:"secure"`
}

// Load reads and parses a TOML config file, applies defaults, and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a configuration with every default applied, used when no
// config file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills in default values for unset fields.
func applyDefaults(cfg *Config) {
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = DefaultListen
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = DefaultLogLevel
	}
	if cfg.Server.AuditDB == "" {
		cfg.Server.AuditDB = DefaultAuditDB
	}
	if len(cfg.Kea.Services) == 0 {
		cfg.Kea.Services = append([]string(nil), DefaultKeaServices...)
	}
	if cfg.API.Session.CookieName == "" {
		cfg.API.Session.CookieName = DefaultSessionCookieName
	}
	if cfg.API.Session.Expiry == "" {
		cfg.API.Session.Expiry = DefaultSessionExpiry.String()
	}
	if cfg.API.Auth.RADIUS.Timeout == "" {
		cfg.API.Auth.RADIUS.Timeout = DefaultRADIUSTimeout.String()
	}
	if cfg.API.Auth.RADIUS.Retries == 0 {
		cfg.API.Auth.RADIUS.Retries = DefaultRADIUSRetries
	}
	if cfg.API.Auth.RADIUS.Role == "" {
		cfg.API.Auth.RADIUS.Role = DefaultRADIUSRole
	}
}

// validate checks the configuration for errors.
func validate(cfg *Config) error {
	if _, _, err := net.SplitHostPort(cfg.Server.Listen); err != nil {
		return fmt.Errorf("server.listen %q is not host:port: %w", cfg.Server.Listen, err)
	}

	if _, err := time.ParseDuration(cfg.API.Session.Expiry); err != nil {
		return fmt.Errorf("api.session.expiry: %w", err)
	}

	for i, user := range cfg.API.Auth.Users {
		if user.Username == "" {
			return fmt.Errorf("api.auth.users[%d]: username is required", i)
		}
		if user.PasswordHash == "" {
			return fmt.Errorf("api.auth.users[%d]: password_hash is required", i)
		}
		if user.Role != "admin" && user.Role != "viewer" {
			return fmt.Errorf("api.auth.users[%d]: role must be \"admin\" or \"viewer\", got %q", i, user.Role)
		}
	}

	if cfg.API.Auth.RADIUS.Enabled {
		if cfg.API.Auth.RADIUS.Address == "" {
			return fmt.Errorf("api.auth.radius.address is required when RADIUS auth is enabled")
		}
		if cfg.API.Auth.RADIUS.Secret == "" {
			return fmt.Errorf("api.auth.radius.secret is required when RADIUS auth is enabled")
		}
		if _, err := time.ParseDuration(cfg.API.Auth.RADIUS.Timeout); err != nil {
			return fmt.Errorf("api.auth.radius.timeout: %w", err)
		}
		if role := cfg.API.Auth.RADIUS.Role; role != "admin" && role != "viewer" {
			return fmt.Errorf("api.auth.radius.role must be \"admin\" or \"viewer\", got %q", role)
		}
	}

	if cfg.API.TLS.Enabled {
		if cfg.API.TLS.CertFile == "" || cfg.API.TLS.KeyFile == "" {
			return fmt.Errorf("api.tls.cert_file and api.tls.key_file are required when TLS is enabled")
		}
	}

	return nil
}

// SessionTTL returns the parsed session expiry.
func (cfg *Config) SessionTTL() time.Duration {
	d, err := time.ParseDuration(cfg.API.Session.Expiry)
	if err != nil {
		return DefaultSessionExpiry
	}
	return d
}
