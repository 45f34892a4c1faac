package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/seeforge-backend/internal/dto"
	"github.com/ignatzorin/seeforge-backend/internal/http/middleware"
)

// ErrUserNotFound is returned when the auth middleware did not put a user into the context
var ErrUserNotFound = errors.New("пользователь не найден в контексте")

// CurrentUserID extracts user ID from Gin context
func CurrentUserID(c *gin.Context) (string, error) {
	raw, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return "", ErrUserNotFound
	}

	userID, ok := raw.(string)
	if !ok || userID == "" {
		return "", ErrUserNotFound
	}

	return userID, nil
}

// RespondError sends a standardized error response
func RespondError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, dto.ErrorResponse{Detail: message})
}

// RespondUnauthorized sends a 401 Unauthorized response
func RespondUnauthorized(c *gin.Context) {
	RespondError(c, http.StatusUnauthorized, "Not authenticated")
}

// RespondBadRequest sends a 400 response for a body that failed binding
func RespondBadRequest(c *gin.Context, err error) {
	RespondError(c, http.StatusBadRequest, err.Error())
}

// RespondMessage sends {"message": ...}
func RespondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}

// Fail hands the error to middleware.ErrorHandler
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
