package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lk2023060901/portfolio-chat/internal/chat/biz"
	"github.com/lk2023060901/portfolio-chat/internal/chat/types"
	"github.com/lk2023060901/portfolio-chat/internal/conf"
	apperrors "github.com/lk2023060901/portfolio-chat/internal/pkg/errors"
	"github.com/lk2023060901/portfolio-chat/internal/pkg/response"
	"github.com/lk2023060901/portfolio-chat/internal/pkg/validator"
	"github.com/tidwall/gjson"
)

const defaultMaxBodyBytes = 1 << 20

// ChatService handles HTTP requests for the chat endpoint
type ChatService struct {
	useCase      *biz.ChatUseCase
	route        string
	maxBodyBytes int64
	diagnostics  bool
}

// NewChatService creates a new chat service
func NewChatService(cfg *conf.Config, useCase *biz.ChatUseCase) *ChatService {
	route := cfg.Chat.Route
	if route == "" {
		route = "/api/chat"
	}
	maxBody := cfg.Chat.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	return &ChatService{
		useCase:      useCase,
		route:        route,
		maxBodyBytes: maxBody,
		diagnostics:  cfg.Server.Diagnostics,
	}
}

// RegisterRoutes registers the chat route for every method; the handler sorts them out
func (s *ChatService) RegisterRoutes(r gin.IRoutes, middlewares ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, middlewares...), s.Chat)
	r.Any(s.route, handlers...)
}

// Chat proxies a conversation to the completions API
// @Summary Chat with the portfolio assistant
// @Tags chat
// @Accept json
// @Produce json
// @Param request body types.ChatRequest true "Chat Request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 405 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /api/chat [post]
func (s *ChatService) Chat(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodOptions:
		c.Status(http.StatusOK)
		return
	case http.MethodPost:
	default:
		c.Header("Allow", "POST, OPTIONS")
		response.HandleError(c, apperrors.NewMethodNotAllowedError(c.Request.Method), s.diagnostics)
		return
	}

	req, err := s.bind(c)
	if err != nil {
		response.HandleError(c, err, s.diagnostics)
		return
	}

	body, err := s.useCase.Complete(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err, s.diagnostics)
		return
	}

	response.RawJSON(c, http.StatusOK, body)
}

// bind reads and checks the request body. The messages field is checked on the raw
// JSON first so a non-array value gets its own message.
func (s *ChatService) bind(c *gin.Context) (*types.ChatRequest, error) {
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperrors.Wrapf(err, apperrors.ErrBadRequest, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, apperrors.Wrap(err, apperrors.ErrBadRequest, "failed to read request body")
	}

	if !gjson.ValidBytes(raw) || !gjson.ParseBytes(raw).IsObject() {
		return nil, apperrors.NewBadRequestError("request body must be a JSON object")
	}
	if !gjson.GetBytes(raw, "messages").IsArray() {
		return nil, apperrors.NewInvalidMessagesError("messages array is required")
	}

	var req types.ChatRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInvalidParams, describeDecodeError(err))
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInvalidParams, validator.Describe(err))
	}
	req.CaptureExtras(raw)

	return &req, nil
}

func describeDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%s has an invalid type, expected %s", typeErr.Field, typeErr.Type)
	}
	return "malformed request body"
}
