package resume

import (
	"bytes"
	"context"
	"regexp"
	"strings"

	"github.com/lk2023060901/portfolio-chat/internal/pkg/logger"
	"go.uber.org/zap"
)

var (
	reHorizontalSpace = regexp.MustCompile(`[^\S\n]+`)
	reNewlineRun      = regexp.MustCompile(`\s*\n\s*`)
)

// Extractor produces the normalized resume text. The document is fetched and parsed
// again on every call.
type Extractor struct {
	source  Source
	factory *Factory
	logger  *logger.Logger
}

func NewExtractor(source Source, factory *Factory, log *logger.Logger) *Extractor {
	if factory == nil {
		factory = NewFactory()
	}
	if log == nil {
		log = logger.L()
	}
	return &Extractor{
		source:  source,
		factory: factory,
		logger:  log.Named("resume"),
	}
}

// Extract returns the resume text and true, or "" and false when the document is
// missing, unreadable or empty. Failures are logged, never returned.
func (e *Extractor) Extract(ctx context.Context) (string, bool) {
	log := e.logger.WithContext(ctx)

	data, name, err := e.source.Fetch(ctx)
	if err != nil {
		log.Warn("resume document unavailable", zap.String("name", name), zap.Error(err))
		return "", false
	}

	loader, err := e.factory.ForName(name)
	if err != nil {
		log.Warn("resume document skipped", zap.String("name", name), zap.Error(err))
		return "", false
	}

	raw, err := loader.Load(ctx, bytes.NewReader(data))
	if err != nil {
		log.Warn("resume document could not be parsed", zap.String("name", name), zap.Error(err))
		return "", false
	}

	text := Normalize(raw)
	if text == "" {
		log.Warn("resume document has no text", zap.String("name", name))
		return "", false
	}

	log.Debug("resume extracted", zap.String("name", name), zap.Int("chars", len(text)))
	return text, true
}

// Normalize collapses runs of spaces and tabs to one space, collapses runs of
// newlines (with the whitespace around them) to one newline and trims the result.
func Normalize(text string) string {
	text = reHorizontalSpace.ReplaceAllString(text, " ")
	text = reNewlineRun.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}
