// Package httpjson provides the JSON response envelope used by every API
// handler. Errors are always `{"error": ...}` where the value is either a
// plain message or a list of field-level validation errors.
package httpjson

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/enrollhub/internal/app/system/inputval"
	"go.uber.org/zap"
)

// Write serializes v as JSON with the given status code.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already out; nothing useful to send the client.
		zap.L().Error("encode response failed", zap.Error(err))
	}
}

// Error writes `{"error": msg}` with the given status code.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"error": msg})
}

// ValidationError writes the field errors from a failed validation as
// `{"error": [{"field": ..., "message": ...}, ...]}` with status 400.
func ValidationError(w http.ResponseWriter, result inputval.Result) {
	Write(w, http.StatusBadRequest, map[string]any{"error": result.Fields()})
}

// Decode reads a JSON request body into dst. The body is capped at maxBytes
// to protect against oversized requests.
func Decode(w http.ResponseWriter, r *http.Request, dst any, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
