package rest

import (
	"encoding/json"
	"net/http"
)

// Error codes surfaced to HTTP clients.
const (
	CodeNotFound   = "not_found"
	CodeJSONError  = "json_error"
	CodeBadRequest = "bad_request"
	CodeDBError    = "db_error"
	CodeForbidden  = "forbidden"
)

type ErrorData struct {
	Status int `json:"status"`
}

// Error is the standard error envelope: code, message, data.status.
type Error struct {
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Data    ErrorData `json:"data"`
}

func (e Error) Error() string {
	return e.Message
}

// WriteJSON encodes v onto w with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already written at this point; nothing left to report
		// to the client.
		return
	}
}

// WriteError writes the standard error envelope with the given code, message
// and HTTP status.
func WriteError(w http.ResponseWriter, code, message string, status int) {
	WriteJSON(w, status, Error{
		Code:    code,
		Message: message,
		Data:    ErrorData{Status: status},
	})
}
