package types

import (
	"fmt"
)

// APIError is a structured error object returned by the completions API itself,
// e.g. {"error": {"message": "...", "type": "..."}}.
type APIError struct {
	Provider   string
	StatusCode int
	Type       string
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("[%s][%s] %s (status %d)", e.Provider, e.Type, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("[%s] %s (status %d)", e.Provider, e.Message, e.StatusCode)
}

// ProviderError covers every other failure: transport, encoding, unexpected payloads
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a ProviderError
func NewProviderError(provider, message string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Message:  message,
		Err:      err,
	}
}
