package injector

import (
	"github.com/lk2023060901/portfolio-chat/internal/ai/provider/factory"
	"github.com/lk2023060901/portfolio-chat/internal/ai/provider/types"
	"github.com/lk2023060901/portfolio-chat/internal/chat/biz"
	"github.com/lk2023060901/portfolio-chat/internal/conf"
	"github.com/lk2023060901/portfolio-chat/internal/data"
	"github.com/lk2023060901/portfolio-chat/internal/pkg/logger"
	"github.com/lk2023060901/portfolio-chat/internal/resume"
	"github.com/lk2023060901/portfolio-chat/internal/server/middleware"
	"go.uber.org/zap"
)

// Data layer helpers

func provideData(config *conf.Config, log *logger.Logger) (*data.Data, func(), error) {
	return data.NewData(config, log)
}

// Upstream and resume providers

func provideCompletionProvider(config *conf.Config, log *logger.Logger) (types.Provider, func(), error) {
	provider, err := factory.New(config.Upstream)
	if err != nil {
		return nil, nil, err
	}
	log.Info("upstream provider ready",
		zap.String("provider", provider.Name()),
		zap.String("base_url", config.Upstream.BaseURL),
	)
	cleanup := func() {
		if err := provider.Close(); err != nil {
			log.Warn("failed to close upstream provider", zap.Error(err))
		}
	}
	return provider, cleanup, nil
}

func provideResumeExtractor(config *conf.Config, d *data.Data, log *logger.Logger) (*resume.Extractor, error) {
	var objects resume.ObjectReader
	if d.MinIOClient != nil {
		objects = d.MinIOClient
	}
	source, err := resume.NewSource(config.Resume, objects)
	if err != nil {
		return nil, err
	}
	return resume.NewExtractor(source, resume.NewFactory(), log), nil
}

// Use case providers

func provideChatUseCase(
	config *conf.Config,
	provider types.Provider,
	extractor biz.ResumeExtractor,
	log *logger.Logger,
) *biz.ChatUseCase {
	return biz.NewChatUseCase(config.Chat, provider, extractor, log)
}

// Server providers

// provideLimiter returns nil when rate limiting is disabled
func provideLimiter(config *conf.Config, d *data.Data) middleware.Limiter {
	if !config.RateLimit.Enabled {
		return nil
	}
	limits := middleware.RateLimiterConfigFromConf(config.RateLimit)
	if config.RateLimit.Backend == conf.BackendRedis && d.RedisClient != nil {
		return middleware.NewRedisLimiter(d.RedisClient, limits)
	}
	return middleware.NewMemoryLimiter(limits)
}
