package api

import (
	"encoding/json"
	"net/http"

	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/internal/audit"
	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/internal/command"
	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/internal/keacfg"
	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/internal/metrics"
)

// envelopeResponse is the shape returned by every envelope endpoint. The
// control agent URL is advisory; the console never issues the command itself.
type envelopeResponse struct {
	Result          *keacfg.Result   `json:"result"`
	Envelope        command.Envelope `json:"envelope"`
	ControlAgentURL string           `json:"control_agent_url,omitempty"`
}

// respondEnvelope validates first and refuses to wrap invalid fragments.
func (s *Server) respondEnvelope(w http.ResponseWriter, r *http.Request, entity string, result *keacfg.Result, env command.Envelope) {
	if !result.Valid {
		JSONResponse(w, http.StatusUnprocessableEntity, map[string]any{"result": result})
		return
	}

	metrics.EnvelopesBuilt.WithLabelValues(env.Command).Inc()
	if s.auditLog != nil {
		s.auditLog.Append(audit.Record{
			Action:   audit.ActionEnvelope,
			Entity:   entity,
			User:     s.auth.Username(r),
			Outcome:  "built",
			Warnings: len(result.Warnings),
			Detail:   env.Command,
		})
	}

	JSONResponse(w, http.StatusOK, envelopeResponse{
		Result:          result,
		Envelope:        env,
		ControlAgentURL: s.cfg.Kea.ControlAgentURL,
	})
}

// handleEnvelopeSubnet validates a subnet and wraps it into a subnet4-add or
// subnet4-update command.
func (s *Server) handleEnvelopeSubnet(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Action string         `json:"action"` // "add" or "update"
		Subnet keacfg.Subnet4 `json:"subnet"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		JSONError(w, http.StatusBadRequest, "bad_request", "invalid request body: "+err.Error())
		return
	}

	var env command.Envelope
	switch body.Action {
	case "", "add":
		env = command.Subnet4Add(body.Subnet)
	case "update":
		if body.Subnet.ID == 0 {
			JSONError(w, http.StatusBadRequest, "bad_request", "subnet4-update requires a subnet id")
			return
		}
		env = command.Subnet4Update(body.Subnet)
	default:
		JSONError(w, http.StatusBadRequest, "bad_request", "action must be \"add\" or \"update\"")
		return
	}

	result := keacfg.ValidateSubnet4(body.Subnet)
	s.recordValidation(r, "subnet", body.Subnet.Subnet, result)
	s.respondEnvelope(w, r, "subnet", result, env)
}

// handleEnvelopeReservation validates a reservation and wraps it into a
// reservation-add command scoped to a subnet.
func (s *Server) handleEnvelopeReservation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SubnetID    int64              `json:"subnet-id"`
		Reservation keacfg.Reservation `json:"reservation"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		JSONError(w, http.StatusBadRequest, "bad_request", "invalid request body: "+err.Error())
		return
	}
	if body.SubnetID <= 0 {
		JSONError(w, http.StatusBadRequest, "bad_request", "reservation-add requires a positive subnet-id")
		return
	}

	result := keacfg.ValidateReservation(body.Reservation)
	s.recordValidation(r, "reservation", body.Reservation.IPAddress, result)
	s.respondEnvelope(w, r, "reservation", result, command.ReservationAdd(body.SubnetID, body.Reservation))
}

// handleEnvelopeClientClass validates a client class and wraps it into a
// class-add or class-update command.
func (s *Server) handleEnvelopeClientClass(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Action string             `json:"action"` // "add" or "update"
		Class  keacfg.ClientClass `json:"class"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		JSONError(w, http.StatusBadRequest, "bad_request", "invalid request body: "+err.Error())
		return
	}

	var env command.Envelope
	switch body.Action {
	case "", "add":
		env = command.ClassAdd(body.Class)
	case "update":
		env = command.ClassUpdate(body.Class)
	default:
		JSONError(w, http.StatusBadRequest, "bad_request", "action must be \"add\" or \"update\"")
		return
	}

	result := keacfg.ValidateClientClass(body.Class)
	s.recordValidation(r, "client-class", body.Class.Name, result)
	s.respondEnvelope(w, r, "client-class", result, env)
}
