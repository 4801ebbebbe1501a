package errors

import (
	"fmt"
	"net/http"
)

// Code represents an error code with HTTP status and message
type Code struct {
	Code    int    // Business error code
	Status  int    // HTTP status code
	Message string // Error message
}

const (
	Success = 0

	// Common errors (1000-1999)
	ErrInternalServer  = 1000
	ErrInvalidParams   = 1001
	ErrNotFound        = 1002
	ErrMethodNotAllow  = 1003
	ErrTooManyRequests = 1004
	ErrBadRequest      = 1005

	// Chat errors (2000-2999)
	ErrChatInvalidMessages = 2000
	ErrChatUpstream        = 2001
	ErrChatUpstreamFailed  = 2002
	ErrChatNoChoices       = 2003
)

var codeMap = map[int]Code{
	Success: {Success, http.StatusOK, "Success"},

	ErrInternalServer:  {ErrInternalServer, http.StatusInternalServerError, "Internal server error"},
	ErrInvalidParams:   {ErrInvalidParams, http.StatusBadRequest, "Invalid parameters"},
	ErrNotFound:        {ErrNotFound, http.StatusNotFound, "Resource not found"},
	ErrMethodNotAllow:  {ErrMethodNotAllow, http.StatusMethodNotAllowed, "Method not allowed"},
	ErrTooManyRequests: {ErrTooManyRequests, http.StatusTooManyRequests, "Too many requests"},
	ErrBadRequest:      {ErrBadRequest, http.StatusBadRequest, "Bad request"},

	ErrChatInvalidMessages: {ErrChatInvalidMessages, http.StatusBadRequest, "Invalid messages"},
	// Upstream API errors are relayed with the upstream message as-is.
	ErrChatUpstream:       {ErrChatUpstream, http.StatusBadRequest, ""},
	ErrChatUpstreamFailed: {ErrChatUpstreamFailed, http.StatusInternalServerError, "Upstream request failed"},
	ErrChatNoChoices:      {ErrChatNoChoices, http.StatusInternalServerError, "Upstream response contained no choices"},
}

// GetCode returns the Code for a given error code
func GetCode(code int) Code {
	if c, ok := codeMap[code]; ok {
		return c
	}
	return codeMap[ErrInternalServer]
}

// GetHTTPStatus returns HTTP status for a given error code
func GetHTTPStatus(code int) int {
	return GetCode(code).Status
}

// GetMessage returns the message for a given error code
func GetMessage(code int) string {
	return GetCode(code).Message
}

// IsClientError checks if the code represents a client error (4xx)
func IsClientError(code int) bool {
	status := GetHTTPStatus(code)
	return status >= 400 && status < 500
}

// IsServerError checks if the code represents a server error (5xx)
func IsServerError(code int) bool {
	return GetHTTPStatus(code) >= 500
}

// FormatError formats an error message with code.
// A code without a message of its own yields the details alone.
func FormatError(code int, details ...string) string {
	msg := GetMessage(code)
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	switch {
	case msg == "":
		return detail
	case detail != "":
		return fmt.Sprintf("%s: %s", msg, detail)
	default:
		return msg
	}
}
