package errors

import "net/http"

// Error codes for standardized error responses
const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeUnprocessable    = "unprocessable"
	ErrCodeInternalError    = "internal_error"
	ErrCodeUpstreamError    = "upstream_error"
)

// Messages mirror the public trivia API error bodies.
var messages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusInternalServerError: "internal server error",
	http.StatusBadGateway:          "upstream error",
}

var codes = map[int]string{
	http.StatusBadRequest:          ErrCodeBadRequest,
	http.StatusNotFound:            ErrCodeNotFound,
	http.StatusMethodNotAllowed:    ErrCodeMethodNotAllowed,
	http.StatusUnprocessableEntity: ErrCodeUnprocessable,
	http.StatusInternalServerError: ErrCodeInternalError,
	http.StatusBadGateway:          ErrCodeUpstreamError,
}

// MessageFor returns the public message for an HTTP status.
func MessageFor(status int) string {
	if msg, ok := messages[status]; ok {
		return msg
	}
	return http.StatusText(status)
}

// CodeFor returns the machine-readable code for an HTTP status.
func CodeFor(status int) string {
	if code, ok := codes[status]; ok {
		return code
	}
	return ErrCodeInternalError
}
