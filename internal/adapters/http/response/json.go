// Package response
package response

import (
	"bytes"
	"encoding/json"
	"net/http"

	"usermgmt/internal/adapters/http/validator"
	"usermgmt/internal/logger"
)

const MsgInternalError = "Internal server error"

type ResponseWriter interface {
	Write(w http.ResponseWriter, status int, data any)
	WriteError(w http.ResponseWriter, status int, detail string)
	WriteValidationError(w http.ResponseWriter, violations []validator.Violation)
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail any `json:"detail"`
}

type JSONWriter struct {
	log logger.Logger
}

func NewJSONWriter(log logger.Logger) ResponseWriter {
	return &JSONWriter{log: log}
}

func (j *JSONWriter) Write(w http.ResponseWriter, status int, data any) {
	if data == nil {
		w.WriteHeader(status)
		return
	}

	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		j.log.Error("failed to encode json response", "error", err)
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := buf.WriteTo(w); err != nil {
		j.log.Error("failed to write json response", "error", err.Error())
	}
}

func (j *JSONWriter) WriteError(w http.ResponseWriter, status int, detail string) {
	j.Write(w, status, ErrorResponse{Detail: detail})
}

func (j *JSONWriter) WriteValidationError(w http.ResponseWriter, violations []validator.Violation) {
	j.Write(w, http.StatusUnprocessableEntity, ErrorResponse{Detail: violations})
}
