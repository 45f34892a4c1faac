package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/seeforge-backend/internal/dto"
	"github.com/ignatzorin/seeforge-backend/internal/http/handlers/common"
	"github.com/ignatzorin/seeforge-backend/internal/models"
	"github.com/ignatzorin/seeforge-backend/internal/service"
)

// TemplateHandler обслуживает публичный каталог и его администрирование.
type TemplateHandler struct {
	templates *service.TemplateService
}

func NewTemplateHandler(templates *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// ListTemplates GET /api/templates
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	templates, err := h.templates.List(c.Request.Context())
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

// GetTemplate GET /api/templates/:id
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	tpl, err := h.templates.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

// CreateTemplate POST /api/admin/templates
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err)
		return
	}

	tpl, err := h.templates.Create(c.Request.Context(), &models.Template{
		Name:               req.Name,
		Description:        req.Description,
		Category:           req.Category,
		PreviewImage:       req.PreviewImage,
		Features:           req.Features,
		TechStack:          req.TechStack,
		EstimatedBuildTime: req.EstimatedBuildTime,
		BasePrice:          req.BasePrice,
	})
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, tpl)
}

// UpdateTemplate PUT /api/admin/templates/:id
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	var req dto.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err)
		return
	}

	patch := models.TemplatePatch{
		Name:               req.Name,
		Description:        req.Description,
		Category:           req.Category,
		PreviewImage:       req.PreviewImage,
		Features:           req.Features,
		TechStack:          req.TechStack,
		EstimatedBuildTime: req.EstimatedBuildTime,
		BasePrice:          req.BasePrice,
	}

	if _, err := h.templates.Update(c.Request.Context(), c.Param("id"), patch); err != nil {
		common.Fail(c, err)
		return
	}

	common.RespondMessage(c, "Template updated successfully")
}

// DeleteTemplate DELETE /api/admin/templates/:id
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	if err := h.templates.Delete(c.Request.Context(), c.Param("id")); err != nil {
		common.Fail(c, err)
		return
	}
	common.RespondMessage(c, "Template deleted successfully")
}
