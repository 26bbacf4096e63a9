package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/internal/audit"
	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/internal/keacfg"
	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/internal/metrics"
	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/pkg/vendoropts"
)

// vendorResponse carries an encoded option 43 payload plus a ready-to-embed
// option-data fragment.
type vendorResponse struct {
	Hex    string             `json:"hex"`
	Option keacfg.OptionValue `json:"option"`
}

func (s *Server) recordEncoding(r *http.Request, format, outcome string) {
	if outcome == "ok" {
		metrics.VendorEncodings.WithLabelValues(format).Inc()
	} else {
		metrics.VendorEncodingErrors.Inc()
	}
	if s.auditLog != nil {
		s.auditLog.Append(audit.Record{
			Action:  audit.ActionEncode,
			Entity:  format,
			User:    s.auth.Username(r),
			Outcome: outcome,
		})
	}
}

// handleVendorTR069 encodes TR-069 ACS parameters into an option 43 hex
// payload.
func (s *Server) handleVendorTR069(w http.ResponseWriter, r *http.Request) {
	var params vendoropts.TR069Params
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		JSONError(w, http.StatusBadRequest, "bad_request", "invalid TR-069 parameters: "+err.Error())
		return
	}

	hex, err := vendoropts.EncodeTR069(params)
	if err != nil {
		s.recordEncoding(r, "tr069", "error")
		if errors.Is(err, vendoropts.ErrPayloadTooLong) {
			JSONError(w, http.StatusBadRequest, "payload_too_long", err.Error())
			return
		}
		JSONError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	s.recordEncoding(r, "tr069", "ok")
	JSONResponse(w, http.StatusOK, vendorResponse{
		Hex:    hex,
		Option: vendorOption43(hex),
	})
}

// handleVendorRaw hex-encodes an arbitrary string for option 43.
func (s *Server) handleVendorRaw(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		JSONError(w, http.StatusBadRequest, "bad_request", "invalid request body: "+err.Error())
		return
	}

	hex := vendoropts.EncodeRawHex(body.Value)
	s.recordEncoding(r, "raw", "ok")
	JSONResponse(w, http.StatusOK, vendorResponse{
		Hex:    hex,
		Option: vendorOption43(hex),
	})
}

func vendorOption43(hex string) keacfg.OptionValue {
	return keacfg.OptionValue{
		Name:      "vendor-encapsulated-options",
		Code:      43,
		Data:      hex,
		CSVFormat: false,
	}
}
