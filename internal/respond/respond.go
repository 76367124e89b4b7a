// internal/respond/respond.go
//
// Uniform JSON response envelope.
//
// Context
// -------
// Every Summit endpoint — public intake forms and the admin panel alike —
// answers with the same four-field envelope:
//
//	{ "success": bool, "data"?: …, "error"?: string, "message"?: string }
//
// The front end branches on `success`, not on the HTTP status code, so
// this shape is a load-bearing wire contract.  Handlers still set a
// sensible status code for proxies and logs, but no caller depends on it.
package respond

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Envelope is the wire shape shared by every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// OK writes a success envelope carrying data.
func OK(w http.ResponseWriter, data any) {
	write(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a success envelope for a freshly inserted record.
func Created(w http.ResponseWriter, data any, message string) {
	write(w, http.StatusCreated, Envelope{Success: true, Data: data, Message: message})
}

// Message writes a data-less success envelope (deletes, logout).
func Message(w http.ResponseWriter, message string) {
	write(w, http.StatusOK, Envelope{Success: true, Message: message})
}

// Fail writes a failure envelope with the given user-facing error.
func Fail(w http.ResponseWriter, code int, errMsg string) {
	write(w, code, Envelope{Success: false, Error: errMsg})
}

func write(w http.ResponseWriter, code int, env Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		// Headers are gone; nothing left to do but record it.
		zap.S().Errorw("envelope encode failed", "err", err)
	}
}
