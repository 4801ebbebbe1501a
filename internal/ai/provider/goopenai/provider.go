package goopenai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/lk2023060901/portfolio-chat/internal/ai/provider/types"
	"github.com/sashabaranov/go-openai"
)

// Provider calls the completions API through the go-openai client. The SDK decodes into
// fixed structs, so the body handed back is the raw upstream document captured by the
// transport; fields the SDK does not know, such as message.reasoning, survive.
type Provider struct {
	client     *openai.Client
	httpClient *http.Client
}

// New creates the SDK-backed provider
func New(config *types.Config) (*Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Timeout:   config.Timeout,
		Transport: &captureTransport{
			base:    http.DefaultTransport,
			headers: config.Headers,
		},
	}

	clientCfg := openai.DefaultConfig(config.APIKey)
	clientCfg.BaseURL = config.BaseURL
	clientCfg.HTTPClient = httpClient

	return &Provider{
		client:     openai.NewClientWithConfig(clientCfg),
		httpClient: httpClient,
	}, nil
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "openai-sdk"
}

// CreateChatCompletion sends req through the SDK and returns the upstream body as received.
func (p *Provider) CreateChatCompletion(ctx context.Context, req types.ChatCompletionRequest) ([]byte, error) {
	captured := &rawBody{}
	ctx = context.WithValue(ctx, rawBodyKey{}, captured)

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
			Name:    m.ExtraString("name"),
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: sdkTemperature(req.Temperature),
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			out := &types.APIError{
				Provider:   p.Name(),
				StatusCode: apiErr.HTTPStatusCode,
				Type:       apiErr.Type,
				Message:    apiErr.Message,
			}
			if apiErr.Code != nil {
				out.Code = fmt.Sprint(apiErr.Code)
			}
			return nil, out
		}
		return nil, types.NewProviderError(p.Name(), "request failed", err)
	}

	if captured.body == nil {
		// Only when the response bypassed captureTransport.
		body, err := json.Marshal(resp)
		if err != nil {
			return nil, types.NewProviderError(p.Name(), "marshal response failed", err)
		}
		return body, nil
	}
	return captured.body, nil
}

// sdkTemperature keeps an explicit 0 on the wire; the SDK omits a zero float32.
func sdkTemperature(t float64) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return float32(t)
}

// Close releases idle connections
func (p *Provider) Close() error {
	p.httpClient.CloseIdleConnections()
	return nil
}

type rawBodyKey struct{}

// rawBody receives the response body of one call
type rawBody struct {
	body []byte
}

// captureTransport adds the configured headers and keeps a copy of the response
// body for the call whose context carries a rawBody.
type captureTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if len(t.headers) > 0 {
		req = req.Clone(req.Context())
		for key, value := range t.headers {
			req.Header.Set(key, value)
		}
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	captured, ok := req.Context().Value(rawBodyKey{}).(*rawBody)
	if !ok || captured == nil {
		return resp, nil
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, err
	}
	captured.body = body
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}
