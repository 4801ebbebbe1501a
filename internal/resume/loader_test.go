package resume

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalPDF is a one-page document without an xref table; MuPDF repairs it on open.
const minimalPDF = `%PDF-1.4
1 0 obj <</Type /Catalog /Pages 2 0 R>> endobj
2 0 obj <</Type /Pages /Kids [3 0 R] /Count 1>> endobj
3 0 obj <</Type /Page /Parent 2 0 R /MediaBox [0 0 400 144] /Contents 4 0 R /Resources <</Font <</F1 5 0 R>>>>>> endobj
4 0 obj <</Length 49>>
stream
BT /F1 18 Tf 20 100 Td (Jane Doe Portfolio) Tj ET
endstream
endobj
5 0 obj <</Type /Font /Subtype /Type1 /BaseFont /Helvetica>> endobj
trailer <</Root 1 0 R>>
%%EOF
`

func TestFormatOf(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"public/cv.pdf", FormatPDF},
		{"CV.PDF", FormatPDF},
		{"resume.md", FormatMarkdown},
		{"resume.markdown", FormatMarkdown},
		{"resume.txt", FormatText},
		{"resume.text", FormatText},
		{"resume", Format("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatOf(tt.name))
		})
	}
}

func TestFactory_ForName(t *testing.T) {
	f := NewFactory()

	loader, err := f.ForName("cv.pdf")
	require.NoError(t, err)
	assert.IsType(t, &PDFLoader{}, loader)

	loader, err = f.ForName("cv.md")
	require.NoError(t, err)
	assert.IsType(t, &MarkdownLoader{}, loader)

	loader, err = f.ForName("cv.txt")
	require.NoError(t, err)
	assert.IsType(t, &TextLoader{}, loader)

	_, err = f.ForName("cv.docx")
	assert.Error(t, err)
}

func TestPDFLoader_Load(t *testing.T) {
	text, err := NewPDFLoader().Load(context.Background(), strings.NewReader(minimalPDF))
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe Portfolio")
}

func TestPDFLoader_InvalidData(t *testing.T) {
	for _, data := range []string{"", "%PDF-1.4\nbroken\n%%EOF\n"} {
		_, err := NewPDFLoader().Load(context.Background(), strings.NewReader(data))
		assert.Error(t, err)
	}
}

func TestMarkdownLoader_Load(t *testing.T) {
	content := "# Jane Doe\n\nBackend engineer working with **Go** &amp; Kubernetes.\n\n- Built a proxy\n- Shipped a CLI\n"

	text, err := NewMarkdownLoader().Load(context.Background(), strings.NewReader(content))
	require.NoError(t, err)

	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Backend engineer working with Go & Kubernetes.")
	assert.Contains(t, text, "Built a proxy")
	assert.NotContains(t, text, "<")
	assert.NotContains(t, text, "**")
}

func TestTextLoader_Load(t *testing.T) {
	text, err := NewTextLoader().Load(context.Background(), strings.NewReader("plain resume"))
	require.NoError(t, err)
	assert.Equal(t, "plain resume", text)
}
