package api

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/internal/config"
	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/internal/metrics"
	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/internal/radius"
)

// session represents an authenticated user session.
type session struct {
	Username  string
	Role      string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// AuthMiddleware handles Bearer token, session cookie, and basic
// authentication, with an optional RADIUS fallback for passwords that fail
// the local user list.
type AuthMiddleware struct {
	bearerToken  string
	users        []config.UserConfig
	radiusClient *radius.Client
	radiusRole   string
	cookieName   string
	cookieSecure bool
	sessionTTL   time.Duration
	logger       *slog.Logger

	// onLogin is notified of every login attempt (for the audit trail).
	onLogin func(username, backend, outcome string)

	mu       sync.RWMutex
	sessions map[string]*session // sessionID -> session
}

// NewAuthMiddleware creates a new auth middleware. radiusClient may be nil.
func NewAuthMiddleware(cfg *config.Config, radiusClient *radius.Client, logger *slog.Logger) *AuthMiddleware {
	a := &AuthMiddleware{
		bearerToken:  cfg.API.Auth.AuthToken,
		users:        cfg.API.Auth.Users,
		radiusClient: radiusClient,
		radiusRole:   cfg.API.Auth.RADIUS.Role,
		cookieName:   cfg.API.Session.CookieName,
		cookieSecure: cfg.API.Session.Secure,
		sessionTTL:   cfg.SessionTTL(),
		logger:       logger,
		sessions:     make(map[string]*session),
	}

	// Background session cleanup every 5 minutes
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		for range ticker.C {
			a.cleanExpired()
		}
	}()

	return a
}

// RequireAuth wraps a handler to require authentication (any role).
func (a *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, role := a.identify(r); role == "" {
			JSONError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}
		next(w, r)
	}
}

// RequireAdmin wraps a handler to require admin role.
func (a *AuthMiddleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, role := a.identify(r)
		if role == "" {
			JSONError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}
		if role != "admin" {
			JSONError(w, http.StatusForbidden, "forbidden", "admin role required")
			return
		}
		next(w, r)
	}
}

// Username returns the authenticated username for a request, or "" if the
// request is anonymous (no auth configured) or unauthenticated.
func (a *AuthMiddleware) Username(r *http.Request) string {
	username, _ := a.identify(r)
	return username
}

// identify returns the username and role for a request, or ("", "") if the
// request carries no valid credentials.
func (a *AuthMiddleware) identify(r *http.Request) (username, role string) {
	// No auth configured, allow everything as admin
	if !a.AuthRequired() {
		return "", "admin"
	}

	// Check session cookie first (web UI)
	if cookie, err := r.Cookie(a.cookieName); err == nil {
		if sess := a.getSession(cookie.Value); sess != nil {
			return sess.Username, sess.Role
		}
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		if strings.HasPrefix(authHeader, "Bearer ") {
			token := strings.TrimPrefix(authHeader, "Bearer ")
			if a.bearerToken != "" && token == a.bearerToken {
				return "api", "admin"
			}
		}

		if strings.HasPrefix(authHeader, "Basic ") {
			if user, pass, ok := r.BasicAuth(); ok {
				if role, _ := a.checkCredentials(r, user, pass); role != "" {
					return user, role
				}
			}
		}
	}

	// Check query parameter (for API connections that cannot set headers)
	if token := r.URL.Query().Get("token"); token != "" {
		if a.bearerToken != "" && token == a.bearerToken {
			return "api", "admin"
		}
	}

	return "", ""
}

// checkCredentials validates a username/password pair against the local
// bcrypt user list, then the RADIUS backend. Returns the granted role and
// the backend that accepted.
func (a *AuthMiddleware) checkCredentials(r *http.Request, username, password string) (role, backend string) {
	a.mu.RLock()
	users := make([]config.UserConfig, len(a.users))
	copy(users, a.users)
	a.mu.RUnlock()

	for _, user := range users {
		if user.Username == username {
			if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err == nil {
				return user.Role, "local"
			}
			// A known local user with a wrong password never falls
			// through to RADIUS.
			return "", "local"
		}
	}

	if a.radiusClient != nil && a.radiusClient.Enabled() {
		if result := a.radiusClient.Authenticate(r.Context(), username, password); result.Accepted {
			return a.radiusRole, "radius"
		}
		return "", "radius"
	}

	return "", "local"
}

// AuthRequired returns true if auth is configured.
func (a *AuthMiddleware) AuthRequired() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.bearerToken != "" || len(a.users) > 0 ||
		(a.radiusClient != nil && a.radiusClient.Enabled())
}

// --- Session management ---

func (a *AuthMiddleware) createSession(username, role string) string {
	b := make([]byte, 32)
	rand.Read(b)
	id := hex.EncodeToString(b)

	a.mu.Lock()
	a.sessions[id] = &session{
		Username:  username,
		Role:      role,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(a.sessionTTL),
	}
	a.mu.Unlock()

	return id
}

func (a *AuthMiddleware) getSession(id string) *session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	sess, ok := a.sessions[id]
	if !ok || time.Now().After(sess.ExpiresAt) {
		return nil
	}
	return sess
}

func (a *AuthMiddleware) deleteSession(id string) {
	a.mu.Lock()
	delete(a.sessions, id)
	a.mu.Unlock()
}

func (a *AuthMiddleware) cleanExpired() {
	a.mu.Lock()
	defer a.mu.Unlock()
	now := time.Now()
	for id, sess := range a.sessions {
		if now.After(sess.ExpiresAt) {
			delete(a.sessions, id)
		}
	}
}

// --- Login/Logout/Me handlers ---

// handleLogin authenticates a user and creates a session cookie.
func (a *AuthMiddleware) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		JSONError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	role, backend := a.checkCredentials(r, body.Username, body.Password)
	if role == "" {
		a.logger.Warn("failed login attempt", "username", body.Username, "backend", backend)
		metrics.LoginAttempts.WithLabelValues(backend, "failed").Inc()
		a.notifyLogin(body.Username, backend, "failed")
		JSONError(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password")
		return
	}

	sessionID := a.createSession(body.Username, role)

	http.SetCookie(w, &http.Cookie{
		Name:     a.cookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   a.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(a.sessionTTL.Seconds()),
	})

	a.logger.Info("user logged in", "username", body.Username, "role", role, "backend", backend)
	metrics.LoginAttempts.WithLabelValues(backend, "ok").Inc()
	a.notifyLogin(body.Username, backend, "ok")
	JSONResponse(w, http.StatusOK, map[string]string{
		"username": body.Username,
		"role":     role,
	})
}

// handleLogout destroys the session and clears the cookie.
func (a *AuthMiddleware) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(a.cookieName); err == nil {
		a.deleteSession(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     a.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	JSONResponse(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// handleMe returns the current authenticated user info.
func (a *AuthMiddleware) handleMe(w http.ResponseWriter, r *http.Request) {
	if !a.AuthRequired() {
		JSONResponse(w, http.StatusOK, map[string]any{
			"authenticated": true,
			"username":      "admin",
			"role":          "admin",
			"auth_required": false,
		})
		return
	}

	username, role := a.identify(r)
	if role == "" {
		JSONResponse(w, http.StatusOK, map[string]any{
			"authenticated": false,
			"auth_required": true,
		})
		return
	}

	JSONResponse(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"username":      username,
		"role":          role,
		"auth_required": true,
	})
}

func (a *AuthMiddleware) notifyLogin(username, backend, outcome string) {
	if a.onLogin != nil {
		a.onLogin(username, backend, outcome)
	}
}
