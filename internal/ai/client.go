package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ignatzorin/seeforge-backend/internal/logger"
)

// ErrNotConfigured возвращается, когда ключ API не задан.
var ErrNotConfigured = errors.New("ai: ключ API не задан")

// Client обращается к OpenAI-совместимому chat completions API (по умолчанию Gemini).
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient создаёт экземпляр клиента. maxRPS <= 0 отключает ограничение частоты запросов.
func NewClient(baseURL, apiKey, model string, maxRPS float64) *Client {
	if model == "" {
		model = "gemini-2.0-flash"
	}

	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
	if maxRPS > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(maxRPS), 1)
	}
	return c
}

// Configured сообщает, доступна ли интеграция.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.baseURL != ""
}

// Model возвращает имя модели.
func (c *Client) Model() string {
	return c.model
}

func (c *Client) chat(ctx context.Context, system, prompt string) (string, error) {
	messages := []map[string]string{
		{"role": "system", "content": system},
		{"role": "user", "content": prompt},
	}
	return c.chatCompletionWithOptions(ctx, messages, 4096, 0.7)
}

// chatCompletionWithOptions выполняет запрос с настраиваемыми параметрами.
func (c *Client) chatCompletionWithOptions(ctx context.Context, messages []map[string]string, maxTokens int, temperature float64) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("ai: ожидание лимита: %w", err)
		}
	}

	payload := map[string]any{
		"model":       c.model,
		"messages":    messages,
		"max_tokens":  maxTokens,
		"temperature": temperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := c.baseURL
	if !strings.HasSuffix(url, "/") {
		url += "/"
	}
	url += "chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	logger.Log.WithField("status", resp.StatusCode).
		WithField("duration_ms", time.Since(started).Milliseconds()).
		Debug("ai: ответ chat completions")

	if resp.StatusCode >= 400 {
		var errorBody map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&errorBody)
		return "", fmt.Errorf("ai: код ответа %d: %v", resp.StatusCode, errorBody)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("ai: пустой ответ")
	}

	return result.Choices[0].Message.Content, nil
}
