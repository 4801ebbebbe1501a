package resume

import (
	"context"
	"fmt"
	"io"
)

// TextLoader passes plain text through
type TextLoader struct{}

func NewTextLoader() *TextLoader {
	return &TextLoader{}
}

func (l *TextLoader) Load(ctx context.Context, reader io.Reader) (string, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read text content: %w", err)
	}
	return string(content), nil
}

func (l *TextLoader) Formats() []Format {
	return []Format{FormatText}
}
