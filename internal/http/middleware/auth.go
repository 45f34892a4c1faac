package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/seeforge-backend/internal/dto"
	"github.com/ignatzorin/seeforge-backend/internal/logger"
	"github.com/ignatzorin/seeforge-backend/internal/pkg/apperror"
)

// ContextUserIDKey ключ идентификатора пользователя в gin.Context.
const ContextUserIDKey = "userID"

// IdentityResolver определяет пользователя по заголовку Authorization.
type IdentityResolver interface {
	Resolve(authorization string) (string, error)
}

// AuthMiddleware кладёт идентификатор пользователя в контекст.
// В режиме demo запрос без токена проходит под демо пользователем.
func AuthMiddleware(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := resolver.Resolve(c.GetHeader("Authorization"))
		if err != nil {
			message := apperror.ErrInvalidToken.Message
			if appErr, ok := apperror.As(err); ok {
				message = appErr.Message
			}
			logger.Log.WithError(err).WithField("path", c.Request.URL.Path).Debug("auth: запрос отклонён")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Detail: message})
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}
