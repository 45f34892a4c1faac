package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/seeforge-backend/internal/http/handlers/common"
	"github.com/ignatzorin/seeforge-backend/internal/logger"
	"github.com/ignatzorin/seeforge-backend/internal/service"
)

// AdminHandler админские операции над проектами. Проверки роли нет.
type AdminHandler struct {
	projects *service.ProjectService
}

func NewAdminHandler(projects *service.ProjectService) *AdminHandler {
	return &AdminHandler{projects: projects}
}

// ListAllProjects GET /api/admin/projects
func (h *AdminHandler) ListAllProjects(c *gin.Context) {
	projects, err := h.projects.ListAll(c.Request.Context())
	if err != nil {
		common.Fail(c, err)
		return
	}

	logger.Log.WithField("count", len(projects)).Warn("admin: выдан список всех проектов без проверки роли")
	c.JSON(http.StatusOK, projects)
}
