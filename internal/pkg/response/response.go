package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/lk2023060901/portfolio-chat/internal/pkg/errors"
	"github.com/lk2023060901/portfolio-chat/internal/pkg/logger"
)

// ErrorBody is the JSON body of every error response
type ErrorBody struct {
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// RawJSON writes an already encoded JSON document
func RawJSON(c *gin.Context, status int, body []byte) {
	c.Data(status, "application/json; charset=utf-8", body)
}

// Error writes {"error": message} with the given status
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorBody{Error: message})
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// InternalError 500
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// HandleError maps err onto its status and client message. With diagnostics on,
// the full error chain and the request id are added to the body.
func HandleError(c *gin.Context, err error, diagnostics bool) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	code := apperrors.ExtractCode(err)
	body := ErrorBody{
		Error: apperrors.FormatError(code, apperrors.GetDetails(err)),
	}
	if diagnostics {
		body.Details = err.Error()
		body.RequestID = logger.GetRequestID(c.Request.Context())
	}

	c.JSON(apperrors.GetHTTPStatus(code), body)
}
