package types

import "context"

// Provider performs one blocking chat completion round trip. The returned body is the
// upstream JSON document, left opaque so that callers can relay every field.
type Provider interface {
	CreateChatCompletion(ctx context.Context, req ChatCompletionRequest) ([]byte, error)

	// Name returns the provider name used in errors and logs
	Name() string

	// Close releases idle connections
	Close() error
}
