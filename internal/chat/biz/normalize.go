package biz

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// DefaultFallbackMessage is returned when neither the content nor the reasoning yields an answer
const DefaultFallbackMessage = "Désolé, je n'ai pas pu formuler de réponse. Pouvez-vous reformuler votre question ?"

const minSegmentRunes = 20

var (
	// ErrNoChoices is returned by Apply when the body has no choices to normalize
	ErrNoChoices = errors.New("upstream response contained no choices")
	// ErrInvalidBody is returned by Apply when the body is not JSON
	ErrInvalidBody = errors.New("upstream response is not valid JSON")
)

// Pattern is one tier-two extractor. The first capture group is used when present,
// otherwise the whole match.
type Pattern struct {
	Name   string
	Regexp *regexp.Regexp
}

// DefaultPatterns are tried in order against the reasoning text
var DefaultPatterns = []Pattern{
	{Name: "answer-fr", Regexp: regexp.MustCompile(`(?i)r[ée]ponse\s*:\s*"([^"]+)"`)},
	{Name: "answer-en", Regexp: regexp.MustCompile(`(?i)(?:answer|response)\s*:\s*"([^"]+)"`)},
	{Name: "greeting-fr", Regexp: regexp.MustCompile(`(?i)(bonjour[^.?]*[.?])`)},
	{Name: "greeting-en", Regexp: regexp.MustCompile(`(?i)\b((?:hello|hi)\b[^.?]*[.?])`)},
}

// excludedSegmentWords are matched case-sensitively anywhere in a segment
var excludedSegmentWords = []string{"thinking", "reasoning"}

var reSentenceEnd = regexp.MustCompile(`[.!?]`)

// Normalizer guarantees a displayable content string for the first choice
type Normalizer struct {
	patterns []Pattern
	fallback string
}

// NewNormalizer builds a Normalizer. An empty fallback selects DefaultFallbackMessage
// and no patterns select DefaultPatterns.
func NewNormalizer(fallback string, patterns ...Pattern) *Normalizer {
	if strings.TrimSpace(fallback) == "" {
		fallback = DefaultFallbackMessage
	}
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	return &Normalizer{
		patterns: patterns,
		fallback: fallback,
	}
}

// Resolve picks the display string, in order: content when it is not blank, the first
// pattern match in reasoning, the first reasoning sentence that is long enough and
// does not talk about thinking or reasoning, then the fallback. It never returns "".
func (n *Normalizer) Resolve(content, reasoning string) string {
	if strings.TrimSpace(content) != "" {
		return content
	}

	if reasoning != "" {
		for _, p := range n.patterns {
			m := p.Regexp.FindStringSubmatch(reasoning)
			if m == nil {
				continue
			}
			if len(m) > 1 && m[1] != "" {
				return m[1]
			}
			return m[0]
		}

		for _, segment := range reSentenceEnd.Split(reasoning, -1) {
			segment = strings.TrimSpace(segment)
			if len([]rune(segment)) < minSegmentRunes || containsAny(segment, excludedSegmentWords) {
				continue
			}
			return segment + "."
		}
	}

	return n.fallback
}

// Apply rewrites choices[0].message.content of an upstream body with the resolved
// string and adds the top-level hasResumeData flag. Every other field, including the
// reasoning, is left as received.
func (n *Normalizer) Apply(body []byte, hasResume bool) ([]byte, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrInvalidBody
	}

	choices := gjson.GetBytes(body, "choices")
	if !choices.IsArray() || len(choices.Array()) == 0 {
		return nil, ErrNoChoices
	}

	message := choices.Get("0.message")
	content := message.Get("content").String()
	reasoning := message.Get("reasoning").String()
	if reasoning == "" {
		reasoning = message.Get("reasoning_content").String()
	}

	out, err := sjson.SetBytes(body, "choices.0.message.content", n.Resolve(content, reasoning))
	if err != nil {
		return nil, fmt.Errorf("set content: %w", err)
	}
	out, err = sjson.SetBytes(out, "hasResumeData", hasResume)
	if err != nil {
		return nil, fmt.Errorf("set hasResumeData: %w", err)
	}
	return out, nil
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
