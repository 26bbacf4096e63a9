package config

import "time"

// Default configuration values.
const (
	DefaultListen            = "0.0.0.0:8090"
	DefaultLogLevel          = "info"
	DefaultAuditDB           = "/var/lib/keapilot/audit.db"
	DefaultSessionExpiry     = 24 * time.Hour
	DefaultSessionCookieName = "keapilot_session"
	DefaultRADIUSTimeout     = 5 * time.Second
	DefaultRADIUSRetries     = 3
	DefaultRADIUSRole        = "viewer"
)

// DefaultKeaServices is the service list stamped into command envelopes when
// the config does not name one.
var DefaultKeaServices = []string{"dhcp4"}
