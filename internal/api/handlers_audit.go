package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/internal/audit"
)

// handleAuditQuery returns audit records, newest first. Filters: user,
// action, entity, from, to (RFC 3339), limit.
func (s *Server) handleAuditQuery(w http.ResponseWriter, r *http.Request) {
	if s.auditLog == nil {
		JSONError(w, http.StatusServiceUnavailable, "unavailable", "audit log is not configured")
		return
	}

	q := r.URL.Query()
	params := audit.QueryParams{
		User:   q.Get("user"),
		Action: q.Get("action"),
		Entity: q.Get("entity"),
	}

	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			JSONError(w, http.StatusBadRequest, "bad_request", "from must be an RFC 3339 timestamp")
			return
		}
		params.From = t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			JSONError(w, http.StatusBadRequest, "bad_request", "to must be an RFC 3339 timestamp")
			return
		}
		params.To = t
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			JSONError(w, http.StatusBadRequest, "bad_request", "limit must be a positive integer")
			return
		}
		params.Limit = n
	}

	records, err := s.auditLog.Query(params)
	if err != nil {
		s.logger.Error("audit query failed", "error", err)
		JSONError(w, http.StatusInternalServerError, "internal_error", "audit query failed")
		return
	}

	JSONResponse(w, http.StatusOK, map[string]any{
		"records": records,
		"count":   len(records),
		"total":   s.auditLog.Count(),
	})
}
