package main

import (
	"errors"
	"net/http"
	"runtime/debug"

	"cprm/internal/apperror"
)

// errorResponse maps any error to the wire envelope
// {status, message, stack?}. Operational errors keep their status and
// message; anything else is logged in full and reported as a generic server
// fault in production.
func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var opErr *apperror.Error
	if errors.As(err, &opErr) {
		if opErr.StatusCode >= http.StatusInternalServerError {
			app.logger.Errorw("operational error", "method", r.Method, "path", r.URL.Path, "error", err)
		} else {
			app.logger.Warnw("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		}
		writeError(w, opErr.StatusCode, opErr.Status(), opErr.Message, app.stack())
		return
	}

	app.logger.Errorw("unexpected error", "method", r.Method, "path", r.URL.Path, "error", err)

	message := "An unexpected error occurred on the server."
	if !app.isProduction() {
		message = err.Error()
	}
	writeError(w, http.StatusInternalServerError, "error", message, app.stack())
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.errorResponse(w, r, apperror.New(message, http.StatusBadRequest))
}

func writeError(w http.ResponseWriter, status int, statusWord, message, stack string) error {
	type envelope struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Stack   string `json:"stack,omitempty"`
	}
	return writeJSON(w, status, &envelope{Status: statusWord, Message: message, Stack: stack})
}

// stack returns a trace for the error envelope in development, empty
// otherwise.
func (app *application) stack() string {
	if app.config.env == "development" {
		return string(debug.Stack())
	}
	return ""
}
