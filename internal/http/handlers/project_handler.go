package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/seeforge-backend/internal/dto"
	"github.com/ignatzorin/seeforge-backend/internal/http/handlers/common"
	"github.com/ignatzorin/seeforge-backend/internal/models"
	"github.com/ignatzorin/seeforge-backend/internal/service"
	"github.com/ignatzorin/seeforge-backend/internal/validation"
)

type ProjectHandler struct {
	projects *service.ProjectService
}

func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// CreateProject POST /api/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err)
		return
	}
	if err := validateProjectCreate(req); err != nil {
		common.RespondBadRequest(c, err)
		return
	}

	project, err := h.projects.Create(c.Request.Context(), userID, service.ProjectDraft{
		Name:             req.Name,
		Description:      req.Description,
		Category:         req.Category,
		Platform:         req.Platform,
		Frontend:         req.Frontend,
		Backend:          req.Backend,
		UITemplate:       req.UITemplate,
		Features:         req.Features,
		Addons:           req.Addons,
		DeploymentOption: req.DeploymentOption,
		Tier:             req.Tier,
		IsStudent:        req.IsStudent,
		GithubRepoURL:    req.GithubRepoURL,
	})
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// ListProjects GET /api/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	projects, err := h.projects.List(c.Request.Context(), userID)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

// GetProject GET /api/projects/:id
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	project, err := h.projects.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// UpdateProject PUT /api/projects/:id
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err)
		return
	}
	if err := validateProjectUpdate(req); err != nil {
		common.RespondBadRequest(c, err)
		return
	}

	patch := models.ProjectPatch{
		Name:              req.Name,
		Description:       req.Description,
		Category:          req.Category,
		Platform:          req.Platform,
		Frontend:          req.Frontend,
		Backend:           req.Backend,
		UITemplate:        req.UITemplate,
		Features:          req.Features,
		Addons:            req.Addons,
		DeploymentOption:  req.DeploymentOption,
		EstimatedTimeline: req.EstimatedTimeline,
		Status:            req.Status,
		GithubRepoURL:     req.GithubRepoURL,
		DeployedURL:       req.DeployedURL,
	}

	project, err := h.projects.Update(c.Request.Context(), userID, c.Param("id"), patch)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject DELETE /api/projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	if err := h.projects.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		common.Fail(c, err)
		return
	}

	common.RespondMessage(c, "Project deleted successfully")
}

func validateTags(features, addons []string) error {
	if err := validation.ValidateTags("features", features); err != nil {
		return err
	}
	return validation.ValidateTags("addons", addons)
}

func validateProjectCreate(req dto.CreateProjectRequest) error {
	if err := validation.ValidateLength("name", req.Name, 1, validation.MaxProjectNameLength); err != nil {
		return err
	}
	if err := validation.ValidateLength("description", req.Description, 0, validation.MaxProjectDescriptionLength); err != nil {
		return err
	}
	if err := validation.ValidateExternalLink("github_repo_url", req.GithubRepoURL); err != nil {
		return err
	}
	return validateTags(req.Features, req.Addons)
}

func validateProjectUpdate(req dto.UpdateProjectRequest) error {
	if req.Name != nil {
		if err := validation.ValidateLength("name", *req.Name, 1, validation.MaxProjectNameLength); err != nil {
			return err
		}
	}
	if req.Description != nil {
		if err := validation.ValidateLength("description", *req.Description, 0, validation.MaxProjectDescriptionLength); err != nil {
			return err
		}
	}
	if err := validation.ValidateExternalLink("github_repo_url", req.GithubRepoURL); err != nil {
		return err
	}
	if err := validation.ValidateExternalLink("deployed_url", req.DeployedURL); err != nil {
		return err
	}
	var features, addons []string
	if req.Features != nil {
		features = *req.Features
	}
	if req.Addons != nil {
		addons = *req.Addons
	}
	return validateTags(features, addons)
}
