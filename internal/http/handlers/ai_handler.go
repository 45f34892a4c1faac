package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/seeforge-backend/internal/ai"
	"github.com/ignatzorin/seeforge-backend/internal/dto"
	"github.com/ignatzorin/seeforge-backend/internal/http/handlers/common"
	"github.com/ignatzorin/seeforge-backend/internal/logger"
)

// Generator генерация каркаса и анализ репозитория. Реализуется ai.Client.
type Generator interface {
	GenerateScaffold(ctx context.Context, config map[string]any) ai.ScaffoldResult
	AnalyzeRepository(ctx context.Context, repoURL, requirements string) ai.AnalysisResult
}

type AIHandler struct {
	generator Generator
}

func NewAIHandler(generator Generator) *AIHandler {
	return &AIHandler{generator: generator}
}

// GenerateScaffold POST /api/ai/generate-scaffold
func (h *AIHandler) GenerateScaffold(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	var req dto.GenerateScaffoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err)
		return
	}
	if req.ProjectConfig == nil {
		req.ProjectConfig = map[string]any{}
	}

	result := h.generator.GenerateScaffold(c.Request.Context(), req.ProjectConfig)

	logger.Log.WithFields(logrus.Fields{
		"user_id": userID,
		"status":  result.Status,
	}).Info("ai handler: каркас сгенерирован")

	c.JSON(http.StatusOK, result)
}

// AnalyzeRepo POST /api/ai/analyze-repo
func (h *AIHandler) AnalyzeRepo(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	var req dto.AnalyzeRepoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err)
		return
	}

	result := h.generator.AnalyzeRepository(c.Request.Context(), req.RepoURL, req.Requirements)

	logger.Log.WithFields(logrus.Fields{
		"user_id":  userID,
		"repo_url": req.RepoURL,
		"status":   result.Status,
	}).Info("ai handler: репозиторий проанализирован")

	c.JSON(http.StatusOK, result)
}
