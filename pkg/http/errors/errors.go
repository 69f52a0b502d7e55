package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondError writes a standardized error response to the HTTP response writer
func RespondError(w http.ResponseWriter, status int) {
	RespondErrorMessage(w, status, MessageFor(status))
}

// RespondErrorMessage writes an error response with a custom message
func RespondErrorMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error:   status,
		Code:    CodeFor(status),
		Message: message,
	})
}

// RespondNotFound writes a not found error response
func RespondNotFound(w http.ResponseWriter) {
	RespondError(w, http.StatusNotFound)
}

// RespondBadRequest writes a bad request error response
func RespondBadRequest(w http.ResponseWriter) {
	RespondError(w, http.StatusBadRequest)
}

// RespondUnprocessable writes an unprocessable entity error response
func RespondUnprocessable(w http.ResponseWriter) {
	RespondError(w, http.StatusUnprocessableEntity)
}

// RespondMethodNotAllowed writes a method not allowed error response
func RespondMethodNotAllowed(w http.ResponseWriter) {
	RespondError(w, http.StatusMethodNotAllowed)
}

// RespondInternalError writes an internal server error response
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError)
}
