package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lk2023060901/portfolio-chat/internal/conf"
	apperrors "github.com/lk2023060901/portfolio-chat/internal/pkg/errors"
	"github.com/lk2023060901/portfolio-chat/internal/pkg/logger"
	"github.com/lk2023060901/portfolio-chat/internal/pkg/response"
	"github.com/lk2023060901/portfolio-chat/internal/pkg/validator"
	"go.uber.org/zap"
)

const rateLimitKeyPrefix = "portfolio-chat:rate_limit:ip:"

// Decision is the outcome of one rate limit check
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter counts requests per key
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// RateLimiterConfig holds the window shared by all backends
type RateLimiterConfig struct {
	MaxRequests   int
	WindowSeconds int
}

// RateLimiterConfigFromConf copies the limits from the application config
func RateLimiterConfigFromConf(c conf.RateLimitConfig) RateLimiterConfig {
	return RateLimiterConfig{
		MaxRequests:   c.MaxRequests,
		WindowSeconds: c.WindowSeconds,
	}
}

func (c RateLimiterConfig) withDefaults() RateLimiterConfig {
	if c.MaxRequests <= 0 {
		c.MaxRequests = 20
	}
	if c.WindowSeconds <= 0 {
		c.WindowSeconds = 60
	}
	return c
}

func (c RateLimiterConfig) window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// RateLimiter limits requests per client IP. Limiter failures let the request through.
// Preflight requests are not counted.
func RateLimiter(limiter Limiter, log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.L()
	}

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		key := rateLimitKeyPrefix + validator.ClientKey(c.ClientIP())
		decision, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.WithContext(c.Request.Context()).Error("rate limiter error", zap.Error(err), zap.String("key", key))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

		if !decision.Allowed {
			retryAfter := retryAfterSeconds(decision.ResetAt)
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			response.HandleError(c, apperrors.NewTooManyRequestsError(retryAfter), false)
			c.Abort()
			return
		}

		c.Next()
	}
}

func retryAfterSeconds(resetAt time.Time) int {
	seconds := int(math.Ceil(time.Until(resetAt).Seconds()))
	if seconds < 1 {
		return 1
	}
	return seconds
}
