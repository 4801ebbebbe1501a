package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lk2023060901/portfolio-chat/internal/ai/provider/openai"
	providertypes "github.com/lk2023060901/portfolio-chat/internal/ai/provider/types"
	"github.com/lk2023060901/portfolio-chat/internal/chat/biz"
	"github.com/lk2023060901/portfolio-chat/internal/conf"
	"github.com/lk2023060901/portfolio-chat/internal/pkg/logger"
	"github.com/lk2023060901/portfolio-chat/internal/server/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type staticResume string

func (r staticResume) Extract(ctx context.Context) (string, bool) {
	return string(r), r != ""
}

type testEnv struct {
	router *gin.Engine

	mu       sync.Mutex
	received []byte // last body received by the fake completions API
}

func (e *testEnv) upstream() []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.received
}

// newTestEnv wires the handler to a fake completions API answering with status and body
func newTestEnv(t *testing.T, cfg *conf.Config, status int, body string, resume staticResume) *testEnv {
	t.Helper()

	env := &testEnv{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		env.mu.Lock()
		env.received = data
		env.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	provider, err := openai.New(&providertypes.Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	useCase := biz.NewChatUseCase(cfg.Chat, provider, resume, logger.Nop())
	svc := NewChatService(cfg, useCase)

	router := gin.New()
	router.Use(logger.GinLogger(logger.Nop(), logger.MiddlewareOptions{}))
	router.Use(middleware.CORS(cfg.CORS))
	svc.RegisterRoutes(router)

	env.router = router
	return env
}

func (e *testEnv) do(method, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

const okUpstream = `{"id":"chatcmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"","reasoning":"Bonjour! Comment puis-je vous aider?"},"finish_reason":"stop"}]}`

func TestChat_Options(t *testing.T) {
	env := newTestEnv(t, conf.Default(), http.StatusOK, okUpstream, "")

	w := env.do(http.MethodOptions, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Nil(t, env.upstream())
}

func TestChat_MethodNotAllowed(t *testing.T) {
	env := newTestEnv(t, conf.Default(), http.StatusOK, okUpstream, "")

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		w := env.do(method, "")
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, method)
		assert.True(t, gjson.Get(w.Body.String(), "error").Exists(), method)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "POST, OPTIONS", w.Header().Get("Allow"))
	}
}

func TestChat_BadRequests(t *testing.T) {
	env := newTestEnv(t, conf.Default(), http.StatusOK, okUpstream, "")

	tests := []struct {
		name     string
		body     string
		contains string
	}{
		{name: "messages not an array", body: `{"messages":"not-an-array"}`, contains: "messages array is required"},
		{name: "messages missing", body: `{"model":"m"}`, contains: "messages array is required"},
		{name: "messages empty", body: `{"messages":[]}`, contains: "messages must contain at least 1 item(s)"},
		{name: "not json", body: `messages=hi`, contains: "JSON object"},
		{name: "json array", body: `[1,2]`, contains: "JSON object"},
		{name: "bad role", body: `{"messages":[{"role":"robot","content":"x"}]}`, contains: "messages[0].role must be one of system, user, assistant"},
		{name: "content not a string", body: `{"messages":[{"role":"user","content":42}]}`, contains: "messages.content has an invalid type"},
		{name: "max_tokens not a number", body: `{"messages":[{"role":"user","content":"x"}],"max_tokens":"lots"}`, contains: "max_tokens has an invalid type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodPost, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, gjson.Get(w.Body.String(), "error").String(), tt.contains)
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
	assert.Nil(t, env.upstream())
}

func TestChat_BodyTooLarge(t *testing.T) {
	cfg := conf.Default()
	cfg.Chat.MaxBodyBytes = 64
	env := newTestEnv(t, cfg, http.StatusOK, okUpstream, "")

	body := `{"messages":[{"role":"user","content":"` + strings.Repeat("a", 100) + `"}]}`
	w := env.do(http.MethodPost, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, gjson.Get(w.Body.String(), "error").String(), "exceeds 64 bytes")
}

func TestChat_Success(t *testing.T) {
	env := newTestEnv(t, conf.Default(), http.StatusOK, okUpstream, "Jane Doe\nGo developer")

	w := env.do(http.MethodPost, `{"messages":[{"role":"system","content":"You are helpful."},{"role":"user","content":"Salut"}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	out := w.Body.String()
	assert.Equal(t, "Bonjour! Comment puis-je vous aider?", gjson.Get(out, "choices.0.message.content").String())
	assert.Equal(t, "Bonjour! Comment puis-je vous aider?", gjson.Get(out, "choices.0.message.reasoning").String())
	assert.True(t, gjson.Get(out, "hasResumeData").Bool())
	assert.Equal(t, "chatcmpl-1", gjson.Get(out, "id").String())

	var sent providertypes.ChatCompletionRequest
	require.NoError(t, json.Unmarshal(env.upstream(), &sent))
	assert.Equal(t, conf.DefaultModel, sent.Model)
	assert.Equal(t, 300, sent.MaxTokens)
	assert.InDelta(t, 0.6, sent.Temperature, 1e-9)
	require.Len(t, sent.Messages, 2)
	assert.True(t, strings.HasPrefix(sent.Messages[0].Content, "You are helpful.\n\n"))
	assert.Contains(t, sent.Messages[0].Content, "Jane Doe\nGo developer")
	assert.Equal(t, "Salut", sent.Messages[1].Content)
}

func TestChat_UserFirstIsForwardedUnchanged(t *testing.T) {
	env := newTestEnv(t, conf.Default(), http.StatusOK, okUpstream, "Jane Doe")

	w := env.do(http.MethodPost, `{"messages":[{"role":"user","content":"Hi"}],"model":"other-model","max_tokens":50,"temperature":0.2}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, gjson.Get(w.Body.String(), "hasResumeData").Bool())

	var sent providertypes.ChatCompletionRequest
	require.NoError(t, json.Unmarshal(env.upstream(), &sent))
	assert.Equal(t, []providertypes.Message{{Role: "user", Content: "Hi"}}, sent.Messages)
	assert.Equal(t, "other-model", sent.Model)
	assert.Equal(t, 50, sent.MaxTokens)
	assert.InDelta(t, 0.2, sent.Temperature, 1e-9)
}

func TestChat_ExtraMessageFieldsAreForwarded(t *testing.T) {
	env := newTestEnv(t, conf.Default(), http.StatusOK, okUpstream, "")

	w := env.do(http.MethodPost, `{"messages":[{"role":"user","content":"Hi","name":"visitor"}],"temperature":0}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	sent := env.upstream()
	assert.Equal(t, "visitor", gjson.GetBytes(sent, "messages.0.name").String())
	assert.Equal(t, "Hi", gjson.GetBytes(sent, "messages.0.content").String())
	assert.True(t, gjson.GetBytes(sent, "temperature").Exists())
	assert.Zero(t, gjson.GetBytes(sent, "temperature").Float())
}

func TestChat_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "api error passthrough",
			status:     http.StatusUnauthorized,
			body:       `{"error":{"message":"Invalid API Key","type":"invalid_request_error","code":"invalid_api_key"}}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid API Key",
		},
		{
			name:       "api error with success status",
			status:     http.StatusOK,
			body:       `{"error":{"message":"model decommissioned"}}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "model decommissioned",
		},
		{
			name:       "non json body",
			status:     http.StatusBadGateway,
			body:       `<html>bad gateway</html>`,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "no choices",
			status:     http.StatusOK,
			body:       `{"id":"x","choices":[]}`,
			wantStatus: http.StatusInternalServerError,
			wantError:  "Upstream response contained no choices",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, conf.Default(), tt.status, tt.body, "")
			w := env.do(http.MethodPost, `{"messages":[{"role":"user","content":"Hi"}]}`)

			assert.Equal(t, tt.wantStatus, w.Code)
			errMsg := gjson.Get(w.Body.String(), "error")
			require.True(t, errMsg.Exists(), w.Body.String())
			assert.NotEmpty(t, errMsg.String())
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, errMsg.String())
			}
			assert.False(t, gjson.Get(w.Body.String(), "details").Exists())
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestChat_Diagnostics(t *testing.T) {
	cfg := conf.Default()
	cfg.Server.Diagnostics = true
	env := newTestEnv(t, cfg, http.StatusUnauthorized, `{"error":{"message":"Invalid API Key"}}`, "")

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"messages":[{"role":"user","content":"Hi"}]}`))
	req.Header.Set(logger.RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	out := w.Body.String()
	assert.Equal(t, "Invalid API Key", gjson.Get(out, "error").String())
	assert.Contains(t, gjson.Get(out, "details").String(), "Invalid API Key")
	assert.Equal(t, "req-123", gjson.Get(out, "request_id").String())
}
