package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Path          string
	Authorization string
	Body          struct {
		Model    string              `json:"model"`
		Messages []map[string]string `json:"messages"`
	}
}

func newChatServer(t *testing.T, status int, content string, captured *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			captured.Path = r.URL.Path
			captured.Authorization = r.Header.Get("Authorization")
			_ = json.NewDecoder(r.Body).Decode(&captured.Body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status >= 400 {
			_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

var testConfig = map[string]any{
	"name":        "Shop",
	"description": "Online store",
	"category":    "ecommerce",
	"frontend":    "React",
	"backend":     "FastAPI",
	"ui_template": "modern",
	"features":    []any{"Auth", "Payments"},
	"addons":      []any{"SEO Optimization"},
}

func TestGenerateScaffold_Success(t *testing.T) {
	var captured capturedRequest
	srv := newChatServer(t, http.StatusOK, `{"file_structure":[]}`, &captured)
	client := NewClient(srv.URL, "test-key", "gemini-2.0-flash", 0)

	result := client.GenerateScaffold(context.Background(), testConfig)

	assert.Equal(t, StatusGenerated, result.Status)
	assert.Equal(t, `{"file_structure":[]}`, result.Scaffold)
	assert.NotEmpty(t, result.Timestamp)
	assert.Empty(t, result.Error)

	assert.Equal(t, "/chat/completions", captured.Path)
	assert.Equal(t, "Bearer test-key", captured.Authorization)
	assert.Equal(t, "gemini-2.0-flash", captured.Body.Model)
	require.Len(t, captured.Body.Messages, 2)
	assert.Equal(t, scaffoldSystemMessage, captured.Body.Messages[0]["content"])
	prompt := captured.Body.Messages[1]["content"]
	assert.Contains(t, prompt, "Project Name: Shop")
	assert.Contains(t, prompt, "Features: Auth, Payments")
	assert.Contains(t, prompt, "Addons: SEO Optimization")
}

func TestGenerateScaffold_Failure(t *testing.T) {
	srv := newChatServer(t, http.StatusTooManyRequests, "", nil)
	client := NewClient(srv.URL, "test-key", "", 0)

	result := client.GenerateScaffold(context.Background(), testConfig)

	assert.Equal(t, StatusError, result.Status)
	assert.Equal(t, "Error generating scaffold", result.Scaffold)
	assert.Contains(t, result.Error, "429")
}

func TestGenerateScaffold_Mock(t *testing.T) {
	client := NewClient("http://unused", "", "", 0)

	first := client.GenerateScaffold(context.Background(), testConfig)
	second := client.GenerateScaffold(context.Background(), testConfig)

	assert.Equal(t, StatusMockGenerated, first.Status)
	assert.Equal(t, first.Scaffold, second.Scaffold)

	var doc scaffoldDocument
	require.NoError(t, json.Unmarshal([]byte(first.Scaffold), &doc))
	assert.Contains(t, doc.FileStructure, "frontend/src/App.js")
	assert.Contains(t, doc.FileStructure, "backend/server.py")
	assert.Equal(t, "18 hours", doc.EstimatedTime)
}

func TestAnalyzeRepository(t *testing.T) {
	var captured capturedRequest
	srv := newChatServer(t, http.StatusOK, "looks good", &captured)
	client := NewClient(srv.URL+"/", "test-key", "", 0)

	result := client.AnalyzeRepository(context.Background(), "https://github.com/acme/app", "add auth")

	assert.Equal(t, StatusCompleted, result.Status)
	assert.Equal(t, "looks good", result.Analysis)
	assert.Equal(t, 700.0, result.BaseCost)
	assert.Equal(t, "/chat/completions", captured.Path)
	assert.Equal(t, analysisSystemMessage, captured.Body.Messages[0]["content"])
	assert.True(t, strings.Contains(captured.Body.Messages[1]["content"], "https://github.com/acme/app"))
}

func TestAnalyzeRepository_FailureReturnsMock(t *testing.T) {
	srv := newChatServer(t, http.StatusInternalServerError, "", nil)
	client := NewClient(srv.URL, "test-key", "", 0)

	result := client.AnalyzeRepository(context.Background(), "https://github.com/acme/app", "")

	assert.Equal(t, StatusError, result.Status)
	assert.Equal(t, 700.0, result.BaseCost)
	assert.Contains(t, result.Analysis, "https://github.com/acme/app")
	assert.NotEmpty(t, result.Error)
}

func TestAnalyzeRepository_NotConfigured(t *testing.T) {
	client := NewClient("", "", "", 0)
	assert.False(t, client.Configured())

	result := client.AnalyzeRepository(context.Background(), "https://github.com/acme/app", "")
	assert.Equal(t, StatusMockGenerated, result.Status)
}

func TestClient_RateLimited(t *testing.T) {
	srv := newChatServer(t, http.StatusOK, "ok", nil)
	client := NewClient(srv.URL, "test-key", "", 1)

	ctx, cancel := context.WithCancel(context.Background())
	assert.Equal(t, StatusCompleted, client.AnalyzeRepository(ctx, "u", "").Status)

	// второй запрос ждёт токен лимитера, отменённый контекст прерывает ожидание
	cancel()
	result := client.AnalyzeRepository(ctx, "u", "")
	assert.Equal(t, StatusError, result.Status)
}
