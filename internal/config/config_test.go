package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keapilot.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Listen != DefaultListen {
		t.Errorf("Listen = %q, want %q", cfg.Server.Listen, DefaultListen)
	}
	if cfg.Server.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.Server.LogLevel, DefaultLogLevel)
	}
	if len(cfg.Kea.Services) != 1 || cfg.Kea.Services[0] != "dhcp4" {
		t.Errorf("Kea.Services = %v, want [dhcp4]", cfg.Kea.Services)
	}
	if cfg.API.Session.CookieName != DefaultSessionCookieName {
		t.Errorf("CookieName = %q", cfg.API.Session.CookieName)
	}
	if cfg.SessionTTL() != DefaultSessionExpiry {
		t.Errorf("SessionTTL = %v, want %v", cfg.SessionTTL(), DefaultSessionExpiry)
	}
}

func TestLoadFullConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[server]
listen = "127.0.0.1:9000"
log_level = "debug"
audit_db = "/tmp/audit.db"

[kea]
services = ["dhcp4", "dhcp6"]
control_agent_url = "http://kea-ca:8000/"

[[api.auth.users]]
username = "ops"
password_hash = "$2a$10$abcdefghijklmnopqrstuv"
role = "admin"

[api.session]
cookie_name = "pilot"
expiry = "1h"
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Listen != "127.0.0.1:9000" {
		t.Errorf("Listen = %q", cfg.Server.Listen)
	}
	if len(cfg.Kea.Services) != 2 {
		t.Errorf("Services = %v", cfg.Kea.Services)
	}
	if len(cfg.API.Auth.Users) != 1 || cfg.API.Auth.Users[0].Role != "admin" {
		t.Errorf("Users = %+v", cfg.API.Auth.Users)
	}
	if cfg.SessionTTL().Hours() != 1 {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL())
	}
}

func TestLoadValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{
			"bad listen",
			"[server]\nlisten = \"nonsense\"\n",
			"server.listen",
		},
		{
			"bad session expiry",
			"[api.session]\nexpiry = \"tomorrow\"\n",
			"session.expiry",
		},
		{
			"user without role",
			"[[api.auth.users]]\nusername = \"x\"\npassword_hash = \"h\"\n",
			"role",
		},
		{
			"radius without address",
			"[api.auth.radius]\nenabled = true\nsecret = \"s\"\n",
			"radius.address",
		},
		{
			"tls without certs",
			"[api.tls]\nenabled = true\n",
			"cert_file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("error %v does not mention %q", err, tt.errPart)
			}
		})
	}
}
