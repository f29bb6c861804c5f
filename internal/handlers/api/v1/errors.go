package v1

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/errors"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

// writeError maps a coded error onto its HTTP status.
// Internal failures are logged with their cause and reported without it.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	code := errors.GetCode(err)
	detail := errors.GetMessage(err)

	if code.HTTPStatus() >= 500 {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	c.AbortWithStatusJSON(code.HTTPStatus(), ErrorResponse{
		Detail: detail,
		Code:   code.String(),
	})
}

// bindError wraps a request body that failed to decode as malformed input
func bindError(err error) error {
	if errors.IsUnprocessable(err) {
		return err
	}
	return errors.WrapWithCode(err, errors.CodeUnprocessable, "malformed request body: "+err.Error())
}
