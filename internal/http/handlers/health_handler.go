package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/seeforge-backend/internal/dto"
	"github.com/ignatzorin/seeforge-backend/internal/repository"
)

// APIVersion версия API в ответе корня.
const APIVersion = "1.0.0"

// StoreStatus режим и доступность хранилища.
type StoreStatus interface {
	Mode() repository.Mode
	Ping(ctx context.Context) error
}

// PingFunc проверка доступности внешней зависимости.
type PingFunc func(ctx context.Context) error

// HealthHandler предоставляет endpoint для проверки здоровья сервиса.
type HealthHandler struct {
	store     StoreStatus
	redisPing PingFunc
}

// NewHealthHandler создаёт новый health handler. redisPing может быть nil.
func NewHealthHandler(store StoreStatus, redisPing PingFunc) *HealthHandler {
	return &HealthHandler{store: store, redisPing: redisPing}
}

// HealthResponse представляет ответ health check.
type HealthResponse struct {
	Status    string            `json:"status"`
	Storage   repository.Mode   `json:"storage"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Root обрабатывает GET /api/.
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, dto.RootResponse{Message: "SeeForge API", Version: APIVersion})
}

// Health обрабатывает GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		checks["database"] = "unhealthy: " + err.Error()
		status = "unhealthy"
	} else {
		checks["database"] = "healthy"
	}

	// Redis необязателен и не влияет на общий статус
	if h.redisPing == nil {
		checks["redis"] = "disabled"
	} else if err := h.redisPing(ctx); err != nil {
		checks["redis"] = "degraded: " + err.Error()
	} else {
		checks["redis"] = "healthy"
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:    status,
		Storage:   h.store.Mode(),
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	})
}
