// Package radius authenticates console users against a RADIUS server. It is
// an optional login backend: when enabled, passwords that fail the local
// bcrypt user list are tried against RADIUS.
package radius

import (
	"context"
	"log/slog"
	"time"

	"layeh.com/radius"
	"layeh.com/radius/rfc2865"

	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/internal/config"
)

// AuthResult holds the result of a RADIUS authentication attempt.
type AuthResult struct {
	Accepted bool    `json:"accepted"`
	Code     string  `json:"code"`
	Error    string  `json:"error,omitempty"`
	Latency  float64 `json:"latency_ms"`
}

// Client performs Access-Request exchanges for console logins.
type Client struct {
	cfg    config.RADIUSConfig
	logger *slog.Logger
}

// NewClient creates a RADIUS client from the console's auth config.
func NewClient(cfg config.RADIUSConfig, logger *slog.Logger) *Client {
	return &Client{cfg: cfg, logger: logger}
}

// Enabled reports whether the RADIUS backend is configured.
func (c *Client) Enabled() bool {
	return c.cfg.Enabled && c.cfg.Address != ""
}

// Authenticate performs a RADIUS Access-Request with the given credentials.
func (c *Client) Authenticate(ctx context.Context, username, password string) AuthResult {
	timeout := parseTimeout(c.cfg.Timeout)

	packet := radius.New(radius.CodeAccessRequest, []byte(c.cfg.Secret))
	rfc2865.UserName_SetString(packet, username)
	rfc2865.UserPassword_SetString(packet, password)

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := radius.Exchange(ctx, packet, c.cfg.Address)
	latency := float64(time.Since(start).Microseconds()) / 1000

	if err != nil {
		c.logger.Warn("RADIUS auth failed",
			"server", c.cfg.Address,
			"user", username,
			"error", err)
		return AuthResult{
			Accepted: false,
			Code:     "error",
			Error:    err.Error(),
			Latency:  latency,
		}
	}

	result := AuthResult{
		Accepted: resp.Code == radius.CodeAccessAccept,
		Code:     resp.Code.String(),
		Latency:  latency,
	}

	c.logger.Debug("RADIUS auth result",
		"server", c.cfg.Address,
		"user", username,
		"accepted", result.Accepted,
		"code", result.Code,
		"latency_ms", result.Latency)

	return result
}

func parseTimeout(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return config.DefaultRADIUSTimeout
	}
	return d
}
