package biz

import (
	"fmt"
	"strings"

	providertypes "github.com/lk2023060901/portfolio-chat/internal/ai/provider/types"
	"github.com/lk2023060901/portfolio-chat/internal/chat/types"
	"github.com/lk2023060901/portfolio-chat/internal/conf"
)

// ResumeHeading introduces the resume text inside the system message
const ResumeHeading = "Resume of the portfolio owner:"

const defaultOwner = "the portfolio owner"

// DefaultInstructions is the behavioral block appended to the system message when
// no instructions are configured.
func DefaultInstructions(owner string) string {
	if strings.TrimSpace(owner) == "" {
		owner = defaultOwner
	}
	return fmt.Sprintf(`Instructions:
- You are the assistant of %[1]s's portfolio website and answer visitors' questions about %[1]s's background, skills, projects and experience.
- Reply in the language used by the visitor.
- Only state facts found in the resume above or in this conversation. If the information is not there, say you do not know.
- Keep every answer under 150 words.`, owner)
}

// Enricher appends the resume and the instruction block to the leading system message
type Enricher struct {
	instructions string
}

func NewEnricher(cfg conf.ChatConfig) *Enricher {
	instructions := strings.TrimSpace(cfg.Instructions)
	if instructions == "" {
		instructions = DefaultInstructions(cfg.OwnerName)
	}
	return &Enricher{instructions: instructions}
}

// Enrich returns a copy of messages where the first message, if and only if it has the
// system role, carries the resume (when not empty) and the instructions after its own
// content. The boolean reports whether that message was changed. The input slice is
// never modified and no system message is ever added.
func (e *Enricher) Enrich(messages []types.Message, resume string) ([]types.Message, bool) {
	out := make([]types.Message, len(messages))
	copy(out, messages)

	if len(out) == 0 || out[0].Role != providertypes.RoleSystem {
		return out, false
	}

	out[0].Content = out[0].Content + e.Suffix(resume)
	return out, true
}

// Suffix is the exact text appended to the system message
func (e *Enricher) Suffix(resume string) string {
	var sb strings.Builder
	if resume != "" {
		sb.WriteString("\n\n")
		sb.WriteString(ResumeHeading)
		sb.WriteString("\n")
		sb.WriteString(resume)
	}
	sb.WriteString("\n\n")
	sb.WriteString(e.instructions)
	return sb.String()
}
