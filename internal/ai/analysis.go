package ai

import (
	"context"
	"fmt"

	"github.com/ignatzorin/seeforge-backend/internal/logger"
)

// AnalysisBaseCost базовая стоимость доработки существующего репозитория.
const AnalysisBaseCost = 700

const analysisSystemMessage = "You are an expert code reviewer and full-stack developer."

// AnalysisResult ответ анализа репозитория.
type AnalysisResult struct {
	Analysis string  `json:"analysis"`
	BaseCost float64 `json:"base_cost"`
	Status   string  `json:"status"`
	Error    string  `json:"error,omitempty"`
}

// AnalyzeRepository анализирует репозиторий по ссылке. Сбой модели возвращает статус error
// с мок-анализом, а не ошибку.
func (c *Client) AnalyzeRepository(ctx context.Context, repoURL, requirements string) AnalysisResult {
	log := logger.WithComponent("ai").WithField("operation", "analyze_repo").WithField("repo_url", repoURL)

	if !c.Configured() {
		log.Info("ai: ключ не задан, возвращаем мок-анализ")
		return AnalysisResult{
			Analysis: mockAnalysis(repoURL, requirements),
			BaseCost: AnalysisBaseCost,
			Status:   StatusMockGenerated,
		}
	}

	response, err := c.chat(ctx, analysisSystemMessage, analysisPrompt(repoURL, requirements))
	if err != nil {
		log.WithError(err).Error("ai: ошибка анализа репозитория")
		return AnalysisResult{
			Analysis: mockAnalysis(repoURL, requirements),
			BaseCost: AnalysisBaseCost,
			Status:   StatusError,
			Error:    err.Error(),
		}
	}

	return AnalysisResult{
		Analysis: response,
		BaseCost: AnalysisBaseCost,
		Status:   StatusCompleted,
	}
}

func analysisPrompt(repoURL, requirements string) string {
	return fmt.Sprintf(`
Analyze the GitHub repository at %s and provide enhancement suggestions based on these requirements:

%s

Provide:
1. Current tech stack analysis
2. Suggested improvements
3. New features to add
4. Code quality recommendations
5. Estimated cost for enhancements (base: ₹700)
6. Timeline estimate
`, repoURL, requirements)
}
