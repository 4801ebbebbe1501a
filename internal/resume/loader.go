package resume

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Format identifies a resume document format
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
)

// Loader turns a document into raw text
type Loader interface {
	Load(ctx context.Context, reader io.Reader) (string, error)

	// Formats returns the formats this loader handles
	Formats() []Format
}

// Factory picks a Loader by format
type Factory struct {
	loaders map[Format]Loader
}

// NewFactory registers the PDF, Markdown and text loaders
func NewFactory() *Factory {
	f := &Factory{
		loaders: make(map[Format]Loader),
	}
	f.register(NewPDFLoader())
	f.register(NewMarkdownLoader())
	f.register(NewTextLoader())
	return f
}

func (f *Factory) register(loader Loader) {
	for _, format := range loader.Formats() {
		f.loaders[format] = loader
	}
}

// ForName returns the loader matching the extension of name
func (f *Factory) ForName(name string) (Loader, error) {
	format := FormatOf(name)
	loader, ok := f.loaders[format]
	if !ok {
		return nil, fmt.Errorf("unsupported resume format %q for %s", format, name)
	}
	return loader, nil
}

// FormatOf derives the format from a file or object name
func FormatOf(name string) Format {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch ext {
	case "markdown":
		return FormatMarkdown
	case "text":
		return FormatText
	default:
		return Format(ext)
	}
}
