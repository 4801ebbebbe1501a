package resume

import (
	"context"
	"fmt"
	"html"
	"io"
	"regexp"

	"github.com/russross/blackfriday/v2"
)

var (
	reLineBreak = regexp.MustCompile(`(?i)<br\s*/?>|</p>|</li>|</h[1-6]>|</tr>`)
	reTag       = regexp.MustCompile(`<[^>]+>`)
)

// MarkdownLoader renders Markdown and strips the markup
type MarkdownLoader struct{}

func NewMarkdownLoader() *MarkdownLoader {
	return &MarkdownLoader{}
}

func (l *MarkdownLoader) Load(ctx context.Context, reader io.Reader) (string, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read markdown content: %w", err)
	}

	rendered := string(blackfriday.Run(content))
	rendered = reLineBreak.ReplaceAllString(rendered, "\n")
	rendered = reTag.ReplaceAllString(rendered, "")

	return html.UnescapeString(rendered), nil
}

func (l *MarkdownLoader) Formats() []Format {
	return []Format{FormatMarkdown}
}
