package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/lk2023060901/portfolio-chat/internal/ai/provider/types"
	"github.com/tidwall/gjson"
)

// Provider talks to any OpenAI-compatible /chat/completions endpoint over plain HTTP
// and hands back the response body untouched.
type Provider struct {
	config *types.Config
	client *http.Client
}

// New creates the HTTP provider
func New(config *types.Config) (*Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Provider{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "openai-http"
}

func (p *Provider) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	for key, value := range p.config.Headers {
		req.Header.Set(key, value)
	}
}

// CreateChatCompletion posts req and returns the JSON body. An error object in the
// body is reported as *types.APIError whatever the status code; a body that is not
// JSON is a *types.ProviderError.
func (p *Provider) CreateChatCompletion(ctx context.Context, req types.ChatCompletionRequest) ([]byte, error) {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, types.NewProviderError(p.Name(), "marshal request failed", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return nil, types.NewProviderError(p.Name(), "create request failed", err)
	}
	p.setHeaders(httpReq)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, types.NewProviderError(p.Name(), "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, types.NewProviderError(p.Name(), "read response failed", err)
	}

	if !gjson.ValidBytes(body) {
		return nil, &types.ProviderError{
			Provider:   p.Name(),
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("invalid JSON response (status %d)", resp.StatusCode),
		}
	}

	if apiErr := parseAPIError(p.Name(), resp.StatusCode, body); apiErr != nil {
		return nil, apiErr
	}

	return body, nil
}

// parseAPIError extracts the "error" member of body, accepting both the object form
// and a bare string.
func parseAPIError(provider string, status int, body []byte) *types.APIError {
	errField := gjson.GetBytes(body, "error")
	if !errField.Exists() || errField.Type == gjson.Null {
		return nil
	}

	apiErr := &types.APIError{
		Provider:   provider,
		StatusCode: status,
	}
	if errField.IsObject() {
		apiErr.Message = errField.Get("message").String()
		apiErr.Type = errField.Get("type").String()
		apiErr.Code = errField.Get("code").String()
	} else {
		apiErr.Message = errField.String()
	}
	if apiErr.Message == "" {
		apiErr.Message = errField.Raw
	}
	return apiErr
}

// Close releases idle connections
func (p *Provider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}
