package api

import (
	"encoding/json"
	"net/http"

	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/internal/audit"
	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/internal/keacfg"
	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/internal/metrics"
	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/pkg/ipv4calc"
)

// recordValidation counts a validation run and appends it to the audit trail.
func (s *Server) recordValidation(r *http.Request, entity, detail string, result *keacfg.Result) {
	outcome := "valid"
	if !result.Valid {
		outcome = "invalid"
	}
	metrics.ValidationRuns.WithLabelValues(entity, outcome).Inc()
	metrics.ValidationProblems.WithLabelValues(entity, "error").Add(float64(len(result.Errors)))
	metrics.ValidationProblems.WithLabelValues(entity, "warning").Add(float64(len(result.Warnings)))

	if s.auditLog != nil {
		s.auditLog.Append(audit.Record{
			Action:   audit.ActionValidate,
			Entity:   entity,
			User:     s.auth.Username(r),
			Outcome:  outcome,
			Errors:   len(result.Errors),
			Warnings: len(result.Warnings),
			Detail:   detail,
		})
	}
}

// handleValidateSubnet validates a DHCPv4 subnet definition.
func (s *Server) handleValidateSubnet(w http.ResponseWriter, r *http.Request) {
	var subnet keacfg.Subnet4
	if err := json.NewDecoder(r.Body).Decode(&subnet); err != nil {
		JSONError(w, http.StatusBadRequest, "bad_request", "invalid subnet JSON: "+err.Error())
		return
	}

	result := keacfg.ValidateSubnet4(subnet)
	s.recordValidation(r, "subnet", subnet.Subnet, result)
	JSONResponse(w, http.StatusOK, result)
}

// handleValidatePool validates a single address pool.
func (s *Server) handleValidatePool(w http.ResponseWriter, r *http.Request) {
	var pool keacfg.Pool
	if err := json.NewDecoder(r.Body).Decode(&pool); err != nil {
		JSONError(w, http.StatusBadRequest, "bad_request", "invalid pool JSON: "+err.Error())
		return
	}

	result := keacfg.ValidatePool(pool)
	s.recordValidation(r, "pool", pool.Pool, result)
	JSONResponse(w, http.StatusOK, result)
}

// handleValidateReservation validates a host reservation.
func (s *Server) handleValidateReservation(w http.ResponseWriter, r *http.Request) {
	var res keacfg.Reservation
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		JSONError(w, http.StatusBadRequest, "bad_request", "invalid reservation JSON: "+err.Error())
		return
	}

	result := keacfg.ValidateReservation(res)
	s.recordValidation(r, "reservation", res.IPAddress, result)
	JSONResponse(w, http.StatusOK, result)
}

// handleValidateClientClass validates a client class definition.
func (s *Server) handleValidateClientClass(w http.ResponseWriter, r *http.Request) {
	var class keacfg.ClientClass
	if err := json.NewDecoder(r.Body).Decode(&class); err != nil {
		JSONError(w, http.StatusBadRequest, "bad_request", "invalid client class JSON: "+err.Error())
		return
	}

	result := keacfg.ValidateClientClass(class)
	s.recordValidation(r, "client-class", class.Name, result)
	JSONResponse(w, http.StatusOK, result)
}

// handleValidateOptionDef validates a custom option definition.
func (s *Server) handleValidateOptionDef(w http.ResponseWriter, r *http.Request) {
	var def keacfg.OptionDef
	if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
		JSONError(w, http.StatusBadRequest, "bad_request", "invalid option definition JSON: "+err.Error())
		return
	}

	result := keacfg.ValidateOptionDef(def)
	s.recordValidation(r, "option-def", def.Name, result)
	JSONResponse(w, http.StatusOK, result)
}

// handleValidateOption validates a single option value.
func (s *Server) handleValidateOption(w http.ResponseWriter, r *http.Request) {
	var opt keacfg.OptionValue
	if err := json.NewDecoder(r.Body).Decode(&opt); err != nil {
		JSONError(w, http.StatusBadRequest, "bad_request", "invalid option JSON: "+err.Error())
		return
	}

	result := keacfg.ValidateOptionValue(opt)
	detail := ""
	if id, err := opt.ID(); err == nil {
		detail = id.String()
	}
	s.recordValidation(r, "option", detail, result)
	JSONResponse(w, http.StatusOK, result)
}

// handleValidateOptionList validates a list of option values together,
// catching duplicate codes and names across the list.
func (s *Server) handleValidateOptionList(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Options []keacfg.OptionValue `json:"option-data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		JSONError(w, http.StatusBadRequest, "bad_request", "invalid option list JSON: "+err.Error())
		return
	}

	result := keacfg.ValidateOptionList(body.Options)
	s.recordValidation(r, "options", "", result)
	JSONResponse(w, http.StatusOK, result)
}

// handleCheckOverlap reports whether any two pools in a list overlap, plus
// the parsed bounds of each pool for display.
func (s *Server) handleCheckOverlap(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Pools []string `json:"pools"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		JSONError(w, http.StatusBadRequest, "bad_request", "invalid pool list JSON: "+err.Error())
		return
	}

	type poolBounds struct {
		Pool  string `json:"pool"`
		Start string `json:"start,omitempty"`
		End   string `json:"end,omitempty"`
		Error string `json:"error,omitempty"`
	}

	bounds := make([]poolBounds, 0, len(body.Pools))
	for _, p := range body.Pools {
		start, end, err := ipv4calc.ParsePool(p)
		if err != nil {
			bounds = append(bounds, poolBounds{Pool: p, Error: err.Error()})
			continue
		}
		bounds = append(bounds, poolBounds{
			Pool:  p,
			Start: ipv4calc.FormatIPv4(start),
			End:   ipv4calc.FormatIPv4(end),
		})
	}

	JSONResponse(w, http.StatusOK, map[string]any{
		"overlap": ipv4calc.PoolsOverlap(body.Pools),
		"pools":   bounds,
	})
}
