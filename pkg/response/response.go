// Package response writes the API's JSON envelope:
//
//	{ "success": true,  "data": ..., "count": N, "pagination": {...}, "stats": {...} }
//	{ "success": false, "message": "...", "error": "..." }
//
// The error detail field is populated only outside production.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/vyshnav-v/food-delivery/app/query"
	"github.com/vyshnav-v/food-delivery/config"
	"github.com/vyshnav-v/food-delivery/pkg/apperr"
	"github.com/vyshnav-v/food-delivery/pkg/logger"
)

type envelope struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message,omitempty"`
	Data       interface{}       `json:"data,omitempty"`
	Count      *int64            `json:"count,omitempty"`
	Pagination *query.Pagination `json:"pagination,omitempty"`
	Stats      interface{}       `json:"stats,omitempty"`
	Errors     interface{}       `json:"errors,omitempty"`
	Error      string            `json:"error,omitempty"`
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 with data.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, envelope{Success: true, Data: data})
}

// SuccessMessage sends a 200 with a message and optional data.
func SuccessMessage(w http.ResponseWriter, message string, data interface{}) {
	write(w, http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

// Created sends a 201 with a message and data.
func Created(w http.ResponseWriter, message string, data interface{}) {
	write(w, http.StatusCreated, envelope{Success: true, Message: message, Data: data})
}

// List sends a paginated list response. stats may be nil.
func List(w http.ResponseWriter, data interface{}, p query.Pagination, stats interface{}) {
	write(w, http.StatusOK, envelope{
		Success:    true,
		Data:       data,
		Count:      &p.Total,
		Pagination: &p,
		Stats:      stats,
	})
}

// Fail sends an error response with the given status and message.
func Fail(w http.ResponseWriter, status int, message string) {
	write(w, status, envelope{Success: false, Message: message})
}

// ValidationFail sends a 400 with field-level errors.
func ValidationFail(w http.ResponseWriter, errs map[string]string) {
	write(w, http.StatusBadRequest, envelope{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// Error maps an application error onto the envelope. Internal causes are
// logged and, outside production, echoed in the error field.
func Error(w http.ResponseWriter, err error, fallback string) {
	ae := apperr.From(err, fallback)

	body := envelope{Success: false, Message: ae.Message}
	if ae.Err != nil {
		logger.Error(fallback, "error", ae.Err)
		if !config.Production() {
			body.Error = ae.Err.Error()
		}
	}
	write(w, ae.Status, body)
}
