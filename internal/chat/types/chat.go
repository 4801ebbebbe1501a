package types

import (
	"encoding/json"

	providertypes "github.com/lk2023060901/portfolio-chat/internal/ai/provider/types"
	"github.com/lk2023060901/portfolio-chat/internal/pkg/validator"
	"github.com/tidwall/gjson"
)

var validate = validator.New()

// Message is one entry of the conversation
type Message = providertypes.Message

// ChatRequest is the body accepted by the chat endpoint. Absent generation
// parameters fall back to the configured defaults.
type ChatRequest struct {
	Messages    []Message `json:"messages" validate:"required,min=1,dive"`
	Model       string    `json:"model"`
	MaxTokens   *int      `json:"max_tokens" validate:"omitempty,gt=0"`
	Temperature *float64  `json:"temperature" validate:"omitempty,gte=0"`
}

// Validate checks the request shape; validator.Describe renders the error for clients
func (r *ChatRequest) Validate() error {
	return validate.Struct(r)
}

// CaptureExtras copies the members of each raw message other than role and content
// into Message.Extra, so they are forwarded upstream untouched. raw is the body the
// request was decoded from.
func (r *ChatRequest) CaptureExtras(raw []byte) {
	gjson.GetBytes(raw, "messages").ForEach(func(key, msg gjson.Result) bool {
		i := int(key.Int())
		if i >= len(r.Messages) || !msg.IsObject() {
			return true
		}
		msg.ForEach(func(name, value gjson.Result) bool {
			switch name.String() {
			case "role", "content":
			default:
				if r.Messages[i].Extra == nil {
					r.Messages[i].Extra = make(map[string]json.RawMessage)
				}
				r.Messages[i].Extra[name.String()] = json.RawMessage(value.Raw)
			}
			return true
		})
		return true
	})
}
