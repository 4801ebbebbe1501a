package errors

import (
	"errors"
	"fmt"
)

// AppError carries a business code, the client-facing detail and the cause.
// Only Details ever reaches the client; Err is kept for logs and diagnostics.
type AppError struct {
	Code    int
	Message string
	Details string
	Err     error
}

func (e *AppError) Error() string {
	msg := fmt.Sprintf("[%d] %s", e.Code, FormatError(e.Code, e.Details))
	if e.Err != nil && e.Err.Error() != e.Details {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status bound to the error code
func (e *AppError) HTTPStatus() int {
	return GetHTTPStatus(e.Code)
}

func firstOf(details []string) string {
	if len(details) > 0 {
		return details[0]
	}
	return ""
}

// New creates an AppError without a cause
func New(code int, details ...string) *AppError {
	return &AppError{
		Code:    code,
		Message: GetMessage(code),
		Details: firstOf(details),
	}
}

// Wrap attaches code to err. An AppError anywhere in the chain keeps its own
// code; a non-empty detail goes into a new AppError wrapping err, so the
// existing one is never modified.
func Wrap(err error, code int, details ...string) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		d := firstOf(details)
		if d == "" {
			return appErr
		}
		return &AppError{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: d,
			Err:     err,
		}
	}

	e := New(code, details...)
	e.Err = err
	return e
}

// Wrapf is Wrap with a formatted detail
func Wrapf(err error, code int, format string, args ...interface{}) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// Is reports whether err carries code
func Is(err error, code int) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// ExtractCode returns the code of err, ErrInternalServer for foreign errors
func ExtractCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternalServer
}

// GetDetails returns the client-facing detail. Foreign errors expose nothing.
func GetDetails(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Details
	}
	return ""
}

// NewBadRequestError rejects a body that cannot be read as a chat request
func NewBadRequestError(details ...string) *AppError {
	return New(ErrBadRequest, details...)
}

// NewMethodNotAllowedError rejects any method other than POST and OPTIONS
func NewMethodNotAllowedError(method string) *AppError {
	return New(ErrMethodNotAllow, method)
}

// NewInvalidMessagesError rejects a body whose messages member is unusable
func NewInvalidMessagesError(details string) *AppError {
	return New(ErrChatInvalidMessages, details)
}

// NewUpstreamError passes the completions API error message through verbatim
func NewUpstreamError(err error, message string) *AppError {
	return Wrap(err, ErrChatUpstream, message)
}

// NewUpstreamFailedError reports a transport or decoding failure of the upstream call
func NewUpstreamFailedError(err error) *AppError {
	return Wrap(err, ErrChatUpstreamFailed, err.Error())
}

// NewTooManyRequestsError tells the client when the window opens again
func NewTooManyRequestsError(retryAfterSeconds int) *AppError {
	return New(ErrTooManyRequests, fmt.Sprintf("try again in %d seconds", retryAfterSeconds))
}
