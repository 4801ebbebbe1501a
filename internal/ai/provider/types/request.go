package types

import "encoding/json"

// ChatCompletionRequest is the body sent to {base}/chat/completions
type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// Message is a single role/content chat message. Extra holds any other members the
// client sent (name, tool_call_id, ...) and is written back verbatim.
type Message struct {
	Role    string                     `json:"role" validate:"required,oneof=system user assistant"`
	Content string                     `json:"content"`
	Extra   map[string]json.RawMessage `json:"-"`
}

// MarshalJSON writes role and content plus every Extra member
func (m Message) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(m.Extra)+2)
	for k, v := range m.Extra {
		out[k] = v
	}
	role, err := json.Marshal(m.Role)
	if err != nil {
		return nil, err
	}
	content, err := json.Marshal(m.Content)
	if err != nil {
		return nil, err
	}
	out["role"] = role
	out["content"] = content
	return json.Marshal(out)
}

// ExtraString returns the Extra member key when it is a JSON string
func (m Message) ExtraString(key string) string {
	raw, ok := m.Extra[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
