package biz

import (
	"context"
	"errors"

	providertypes "github.com/lk2023060901/portfolio-chat/internal/ai/provider/types"
	"github.com/lk2023060901/portfolio-chat/internal/chat/types"
	"github.com/lk2023060901/portfolio-chat/internal/conf"
	apperrors "github.com/lk2023060901/portfolio-chat/internal/pkg/errors"
	"github.com/lk2023060901/portfolio-chat/internal/pkg/logger"
	"go.uber.org/zap"
)

// ResumeExtractor yields the resume text, or false when none is available
type ResumeExtractor interface {
	Extract(ctx context.Context) (string, bool)
}

// ChatUseCase enriches a conversation, forwards it upstream and normalizes the answer
type ChatUseCase struct {
	provider   providertypes.Provider
	resume     ResumeExtractor
	enricher   *Enricher
	normalizer *Normalizer
	defaults   conf.ChatConfig
	logger     *logger.Logger
}

// NewChatUseCase creates a new chat use case. resume may be nil, in which case no
// request is ever enriched with resume text.
func NewChatUseCase(
	cfg conf.ChatConfig,
	provider providertypes.Provider,
	resume ResumeExtractor,
	log *logger.Logger,
) *ChatUseCase {
	if log == nil {
		log = logger.L()
	}
	return &ChatUseCase{
		provider:   provider,
		resume:     resume,
		enricher:   NewEnricher(cfg),
		normalizer: NewNormalizer(cfg.FallbackMessage),
		defaults:   cfg,
		logger:     log.Named("chat"),
	}
}

// Complete runs one chat round trip and returns the normalized upstream body.
// Errors are AppErrors: ErrChatUpstream carries the upstream message, every other
// failure is a 500.
func (uc *ChatUseCase) Complete(ctx context.Context, req *types.ChatRequest) ([]byte, error) {
	log := uc.logger.WithContext(ctx)

	var resume string
	if uc.resume != nil {
		if text, ok := uc.resume.Extract(ctx); ok {
			resume = text
		}
	}

	messages, enriched := uc.enricher.Enrich(req.Messages, resume)
	hasResume := enriched && resume != ""

	upstreamReq := uc.buildRequest(req, messages)
	log.Debug("forwarding chat completion",
		zap.String("provider", uc.provider.Name()),
		zap.String("model", upstreamReq.Model),
		zap.Int("messages", len(messages)),
		zap.Bool("enriched", enriched),
		zap.Bool("has_resume", hasResume),
	)

	body, err := uc.provider.CreateChatCompletion(ctx, upstreamReq)
	if err != nil {
		var apiErr *providertypes.APIError
		if errors.As(err, &apiErr) {
			log.Warn("upstream returned an error", zap.Int("status", apiErr.StatusCode), zap.String("type", apiErr.Type))
			message := apiErr.Message
			if message == "" {
				message = apiErr.Error()
			}
			return nil, apperrors.NewUpstreamError(err, message)
		}
		log.Error("upstream request failed", zap.Error(err))
		return nil, apperrors.NewUpstreamFailedError(err)
	}

	out, err := uc.normalizer.Apply(body, hasResume)
	if err != nil {
		log.Error("upstream response could not be normalized", zap.Error(err))
		if errors.Is(err, ErrNoChoices) {
			return nil, apperrors.Wrap(err, apperrors.ErrChatNoChoices)
		}
		return nil, apperrors.NewUpstreamFailedError(err)
	}

	return out, nil
}

func (uc *ChatUseCase) buildRequest(req *types.ChatRequest, messages []types.Message) providertypes.ChatCompletionRequest {
	out := providertypes.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		MaxTokens:   uc.defaults.DefaultMaxTokens,
		Temperature: uc.defaults.DefaultTemperature,
	}
	if out.Model == "" {
		out.Model = uc.defaults.DefaultModel
	}
	if out.Model == "" {
		out.Model = conf.DefaultModel
	}
	if req.MaxTokens != nil {
		out.MaxTokens = *req.MaxTokens
	}
	if req.Temperature != nil {
		out.Temperature = *req.Temperature
	}
	return out
}
