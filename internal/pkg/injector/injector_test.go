package injector

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lk2023060901/portfolio-chat/internal/ai/provider/types"
	"github.com/lk2023060901/portfolio-chat/internal/conf"
	"github.com/lk2023060901/portfolio-chat/internal/data"
	"github.com/lk2023060901/portfolio-chat/internal/pkg/logger"
	"github.com/lk2023060901/portfolio-chat/internal/server/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeApp(t *testing.T) {
	cfg := conf.Default()
	cfg.Server.Mode = "test"
	cfg.Upstream.APIKey = "test-key"

	app, cleanup, err := InitializeApp(cfg, logger.Nop())
	require.NoError(t, err)
	defer cleanup()

	require.NotNil(t, app.HTTPServer)
	w := httptest.NewRecorder()
	app.HTTPServer.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/chat", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInitializeApp_MissingAPIKey(t *testing.T) {
	cfg := conf.Default()
	cfg.Server.Mode = "test"

	_, _, err := InitializeApp(cfg, logger.Nop())
	assert.ErrorIs(t, err, types.ErrMissingAPIKey)
}

func TestProvideLimiter(t *testing.T) {
	cfg := conf.Default()
	d := &data.Data{}

	assert.Nil(t, provideLimiter(cfg, d))

	cfg.RateLimit.Enabled = true
	assert.IsType(t, &middleware.MemoryLimiter{}, provideLimiter(cfg, d))
}
