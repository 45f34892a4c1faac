package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/seeforge-backend/internal/dto"
	"github.com/ignatzorin/seeforge-backend/internal/logger"
	"github.com/ignatzorin/seeforge-backend/internal/pkg/apperror"
)

// ErrorHandler переводит ошибки из c.Errors в ответ {"detail": ...}.
// Сообщения внутренних ошибок клиенту не показываются.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := http.StatusInternalServerError
		message := apperror.ErrInternal.Message

		if appErr, ok := apperror.As(err); ok {
			status = appErr.HTTPStatus
			if status < http.StatusInternalServerError {
				message = appErr.Message
			}
		}

		entry := logger.Log.WithFields(logrus.Fields{
			"error":      err.Error(),
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"status":     status,
			"request_id": c.GetString(requestIDContextKey),
		})
		if status >= http.StatusInternalServerError {
			entry.Error("Request error")
		} else {
			entry.Debug("Request error")
		}

		c.JSON(status, dto.ErrorResponse{Detail: message})
	}
}
