package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lk2023060901/portfolio-chat/internal/conf"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "default config",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name:    "nil config",
			config:  nil,
			wantErr: false,
		},
		{
			name: "console output",
			config: &Config{
				Level:  "info",
				Format: "console",
				Output: "console",
			},
			wantErr: false,
		},
		{
			name: "file output",
			config: &Config{
				Level:  "debug",
				Format: "json",
				Output: "file",
				File: FileConfig{
					Filename:   filepath.Join(dir, "test.log"),
					MaxSize:    10,
					MaxAge:     7,
					MaxBackups: 3,
					Compress:   true,
				},
			},
			wantErr: false,
		},
		{
			name: "invalid level",
			config: &Config{
				Level:  "invalid",
				Format: "json",
				Output: "console",
			},
			wantErr: true,
		},
		{
			name: "invalid format",
			config: &Config{
				Level:  "info",
				Format: "invalid",
				Output: "console",
			},
			wantErr: true,
		},
		{
			name: "file output without filename",
			config: &Config{
				Level:  "info",
				Format: "json",
				Output: "file",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && logger == nil {
				t.Error("New() returned nil logger")
			}
			if logger != nil {
				logger.Sync()
			}
		})
	}
}

func TestFromConf(t *testing.T) {
	cfg := FromConf(conf.Default().Log)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("FromConf() produced invalid config: %v", err)
	}
	if cfg.Level != "info" || cfg.Format != "json" || cfg.Output != "console" {
		t.Errorf("FromConf() = %+v, want info/json/console", cfg)
	}
}

func TestLogger_WithAndNamed(t *testing.T) {
	logger := Nop()

	child := logger.With(zap.String("key", "value"))
	if child == nil || child.Config() != logger.Config() {
		t.Error("With() must keep the parent config")
	}

	named := logger.Named("chat")
	if named == nil {
		t.Error("Named() returned nil logger")
	}
	named.Info("test message")
}

func TestContext(t *testing.T) {
	logger := Nop()

	ctx := context.Background()
	if GetRequestID(ctx) != "" {
		t.Error("GetRequestID() on empty context must be empty")
	}

	ctx = WithRequestID(ctx, "test-request-id")
	if got := GetRequestID(ctx); got != "test-request-id" {
		t.Errorf("GetRequestID() = %v, want %v", got, "test-request-id")
	}

	ctx = ToContext(ctx, logger)
	if FromContext(ctx) == nil {
		t.Error("FromContext() returned nil logger")
	}
	if FromContext(context.Background()) == nil {
		t.Error("FromContext() without logger must fall back to the global logger")
	}
}

func TestGinLogger_RequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seen string
	router := gin.New()
	router.Use(GinLogger(Nop(), MiddlewareOptions{SkipPaths: []string{"/health"}}))
	router.GET("/ping", func(c *gin.Context) {
		seen = GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	router.ServeHTTP(w, req)

	if seen != "abc-123" {
		t.Errorf("request id in context = %q, want %q", seen, "abc-123")
	}
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("response %s = %q, want %q", RequestIDHeader, got, "abc-123")
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Header().Get(RequestIDHeader) == "" {
		t.Error("a request id must be generated when none is sent")
	}
}

func TestGinRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(GinRecovery(Nop()))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if w.Body.String() != `{"error":"Internal server error"}` {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestGlobalLogger(t *testing.T) {
	if L() == nil {
		t.Error("L() returned nil logger")
	}

	if err := InitGlobal(DefaultConfig()); err != nil {
		t.Errorf("InitGlobal() error = %v", err)
	}

	Info("info message", zap.String("key", "value"))
	Warn("warn message", zap.String("key", "value"))
	Error("error message", zap.String("key", "value"))

	_ = Sync()
}

func TestGinLogger_AccessLine(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zapcore.InfoLevel)
	router := gin.New()
	router.Use(GinLogger(&Logger{Logger: zap.New(core)}, MiddlewareOptions{SkipPaths: []string{"/health"}}))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/api/chat", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	if logs.Len() != 0 {
		t.Fatalf("skipped path logged %d entries", logs.Len())
	}

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/chat", nil))
	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Errorf("level = %v, want warn for a 400", entries[0].Level)
	}
	if got := entries[0].ContextMap()["path"]; got != "/api/chat" {
		t.Errorf("path field = %v", got)
	}
}

func TestRequestIDFrom(t *testing.T) {
	if got := requestIDFrom("  abc  "); got != "abc" {
		t.Errorf("requestIDFrom() = %q, want %q", got, "abc")
	}
	long := make([]byte, maxRequestIDLen+1)
	for i := range long {
		long[i] = 'x'
	}
	if got := requestIDFrom(string(long)); got == string(long) || got == "" {
		t.Error("an oversized id must be replaced")
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		status int
		want   zapcore.Level
	}{
		{http.StatusOK, zapcore.InfoLevel},
		{http.StatusMethodNotAllowed, zapcore.WarnLevel},
		{http.StatusTooManyRequests, zapcore.WarnLevel},
		{http.StatusBadGateway, zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		if got := levelFor(tt.status); got != tt.want {
			t.Errorf("levelFor(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
