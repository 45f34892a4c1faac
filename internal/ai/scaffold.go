package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ignatzorin/seeforge-backend/internal/logger"
)

// Статусы ответа генерации и анализа.
const (
	StatusGenerated     = "generated"
	StatusCompleted     = "completed"
	StatusMockGenerated = "mock_generated"
	StatusError         = "error"
)

const scaffoldSystemMessage = "You are an expert full-stack developer who generates complete project scaffolds with file structures and code."

const scaffoldErrorText = "Error generating scaffold"

// ScaffoldResult ответ генерации каркаса проекта.
// Scaffold содержит сырой ответ модели или JSON строку мок-каркаса.
type ScaffoldResult struct {
	Scaffold  string `json:"scaffold"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp,omitempty"`
	Error     string `json:"error,omitempty"`
}

// GenerateScaffold генерирует каркас проекта по конфигурации. Никогда не возвращает ошибку:
// сбой модели отражается в статусе ответа.
func (c *Client) GenerateScaffold(ctx context.Context, config map[string]any) ScaffoldResult {
	log := logger.WithComponent("ai").WithField("operation", "generate_scaffold")

	if !c.Configured() {
		log.Info("ai: ключ не задан, возвращаем мок-каркас")
		return ScaffoldResult{
			Scaffold:  mockScaffold(config),
			Status:    StatusMockGenerated,
			Timestamp: timestamp(),
		}
	}

	response, err := c.chat(ctx, scaffoldSystemMessage, scaffoldPrompt(config))
	if err != nil {
		log.WithError(err).Error("ai: ошибка генерации каркаса")
		return ScaffoldResult{
			Scaffold: scaffoldErrorText,
			Status:   StatusError,
			Error:    err.Error(),
		}
	}

	return ScaffoldResult{
		Scaffold:  response,
		Status:    StatusGenerated,
		Timestamp: timestamp(),
	}
}

func scaffoldPrompt(config map[string]any) string {
	return fmt.Sprintf(`
Generate a complete project scaffold for the following requirements:

Project Name: %s
Description: %s
Category: %s
Frontend: %s
Backend: %s
UI Template: %s
Features: %s
Addons: %s

Provide a JSON response with the following structure:
{
  "file_structure": ["list of files and folders"],
  "key_files": {
    "filename": "code content"
  },
  "setup_instructions": ["step by step setup"],
  "estimated_time": "time in hours"
}
`,
		configString(config, "name"),
		configString(config, "description"),
		configString(config, "category"),
		configString(config, "frontend"),
		configString(config, "backend"),
		configString(config, "ui_template"),
		strings.Join(configList(config, "features"), ", "),
		strings.Join(configList(config, "addons"), ", "),
	)
}

// configString возвращает строковое значение ключа или пустую строку.
func configString(config map[string]any, key string) string {
	switch v := config[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// configList принимает как []string, так и []any после декодирования JSON.
func configList(config map[string]any, key string) []string {
	switch v := config[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return nil
	}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
