package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

// ErrorResponse is the normalized error payload: a short category plus a
// human-readable message
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// decodeJSONBody decodes a request body with strict unknown-field and
// trailing-token checks
func decodeJSONBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return err
	}

	var trailing json.RawMessage
	if err := dec.Decode(&trailing); err != io.EOF {
		return ErrMultipleJSONObjects
	}

	return nil
}

// writeJSON writes a JSON response and logs serialization failures
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Int("status", status).Msg("failed to encode JSON response")
	}
}

// writeError writes a normalized error response
func writeError(w http.ResponseWriter, status int, category, message string) {
	writeJSON(w, status, ErrorResponse{Error: category, Message: message})
}
