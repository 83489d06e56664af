package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrledger/internal/transport/http/api"
)

// DecodeJSON decodes the request body into dst and answers the request
// itself when it cannot. The caller stops when it returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any, requestID string) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", requestID)
			return false
		}
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body", requestID)
		return false
	}
	return true
}

// PathID reads a positive integer route parameter.
func PathID(w http.ResponseWriter, r *http.Request, name, requestID string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_id", name+" must be a positive integer", requestID)
		return 0, false
	}
	return id, true
}

// QueryInt reads an optional integer query parameter, recording an issue
// on v when it is malformed.
func QueryInt(v *Validator, r *http.Request, name string) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		v.Add(name, "must be an integer")
		return 0
	}
	return value
}

// QueryFloat reads an optional float query parameter; nil means absent.
func QueryFloat(v *Validator, r *http.Request, name string) *float64 {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		v.Add(name, "must be a number")
		return nil
	}
	return &value
}
