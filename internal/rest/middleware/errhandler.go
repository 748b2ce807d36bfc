package middleware

import (
	ierr "github.com/flexprice/azpay/internal/errors"
	"github.com/flexprice/azpay/internal/logger"
	"github.com/flexprice/azpay/internal/types"
	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last gin error as an ierr.ErrorResponse
func ErrorHandler(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := ierr.HTTPStatusFromErr(err)

		log.Errorw("request failed",
			"request_id", types.GetRequestID(c.Request.Context()),
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status_code", status,
			"error", err)

		c.JSON(status, ierr.NewErrorResponse(err))
	}
}
