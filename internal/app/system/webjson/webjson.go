// internal/app/system/webjson/webjson.go

// Package webjson holds the request/response JSON helpers shared by the
// API features.
package webjson

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/volunteerhub/internal/app/system/apierr"
)

// MaxBodyBytes caps request bodies. Bulk attendance for a large event is
// still far below this.
const MaxBodyBytes = 1 << 20 // 1 MiB

// Decode reads the request body into dst, rejecting unknown fields and
// oversized bodies. Failures come back as validation errors so handlers
// can pass them straight to apierr.Write.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apierr.Validation("invalid request body: " + err.Error())
	}
	return nil
}

// Write renders v as JSON with the given status code.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes the standard {"message": "..."} confirmation body.
func Message(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"message": msg})
}
