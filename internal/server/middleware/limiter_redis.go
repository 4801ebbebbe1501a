package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lk2023060901/portfolio-chat/internal/pkg/redis"
)

// slidingWindowScript trims the window, then records the request when under the limit.
// Scores are milliseconds and members are unique so bursts within one millisecond count.
const slidingWindowScript = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)

local current = redis.call('ZCARD', key)
if current < limit then
	redis.call('ZADD', key, now, member)
	redis.call('PEXPIRE', key, window)
	return {1, limit - current - 1, now + window}
end

local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')[2]
return {0, 0, tonumber(oldest) + window}
`

// ScriptRunner is the part of the redis client the limiter needs
type ScriptRunner interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) (interface{}, error)
}

// RedisLimiter is a sliding window shared by every instance using the same Redis
type RedisLimiter struct {
	runner ScriptRunner
	cfg    RateLimiterConfig
	now    func() time.Time
}

func NewRedisLimiter(runner ScriptRunner, cfg RateLimiterConfig) *RedisLimiter {
	return &RedisLimiter{
		runner: runner,
		cfg:    cfg.withDefaults(),
		now:    time.Now,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	now := l.now().UnixMilli()
	windowMs := l.cfg.window().Milliseconds()

	result, err := l.runner.Eval(ctx, slidingWindowScript, []string{key},
		now, windowMs, l.cfg.MaxRequests, fmt.Sprintf("%d-%s", now, uuid.NewString()))
	if err != nil {
		return Decision{}, err
	}

	values, ok := result.([]interface{})
	if !ok || len(values) != 3 {
		return Decision{}, redis.ErrInvalidResult
	}
	allowed, ok1 := values[0].(int64)
	remaining, ok2 := values[1].(int64)
	resetAt, ok3 := values[2].(int64)
	if !ok1 || !ok2 || !ok3 {
		return Decision{}, redis.ErrInvalidResult
	}

	return Decision{
		Allowed:   allowed == 1,
		Limit:     l.cfg.MaxRequests,
		Remaining: int(remaining),
		ResetAt:   time.UnixMilli(resetAt),
	}, nil
}
