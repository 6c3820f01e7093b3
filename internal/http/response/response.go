package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anish9011/plant/internal/platform/apierr"
	"github.com/anish9011/plant/internal/platform/ctxutil"
	"github.com/anish9011/plant/internal/platform/logger"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondServiceError maps an error returned by a service. *apierr.Error
// values keep their status and code; 5xx details are logged and replaced
// with a generic message.
func RespondServiceError(c *gin.Context, log *logger.Logger, fallbackCode string, err error) {
	status := http.StatusInternalServerError
	code := fallbackCode
	var ae *apierr.Error
	if errors.As(err, &ae) {
		status = ae.Status
		if ae.Code != "" {
			code = ae.Code
		}
	}
	if status >= http.StatusInternalServerError {
		if log != nil {
			fields := append([]interface{}{"path", c.FullPath(), "code", code, "error", err}, ctxutil.LogFields(c.Request.Context())...)
			log.Error("request failed", fields...)
		}
		RespondError(c, status, code, errors.New("internal server error"))
		return
	}
	RespondError(c, status, code, err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
