package types

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrMissingAPIKey  = errors.New("API key is required")
	ErrMissingBaseURL = errors.New("base URL is required")
)

// Config is shared by every completions provider
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration // zero disables the client timeout
	Headers map[string]string
}

// Validate checks the config and strips a trailing slash from BaseURL
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.BaseURL == "" {
		return ErrMissingBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return nil
}
