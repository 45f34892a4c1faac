package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/seeforge-backend/internal/ai"
	"github.com/ignatzorin/seeforge-backend/internal/config"
	"github.com/ignatzorin/seeforge-backend/internal/http/handlers"
	"github.com/ignatzorin/seeforge-backend/internal/models"
	"github.com/ignatzorin/seeforge-backend/internal/pricing"
	"github.com/ignatzorin/seeforge-backend/internal/repository"
	"github.com/ignatzorin/seeforge-backend/internal/service"
)

func newTestRouter(t *testing.T, authMode string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Env:             "test",
		AllowedOrigins:  []string{"*"},
		RateLimitLimit:  100,
		RateLimitPeriod: time.Minute,
	}

	store := repository.NewMemoryStore()
	engine := pricing.MustDefaultEngine()
	projects := service.NewProjectService(store.Projects, engine)

	h := Handlers{
		Health:   handlers.NewHealthHandler(store, nil),
		Projects: handlers.NewProjectHandler(projects),
		AI:       handlers.NewAIHandler(ai.NewClient("", "", "", 0)),
		Template: handlers.NewTemplateHandler(service.NewTemplateService(store.Templates)),
		Pricing:  handlers.NewPricingHandler(engine),
		Payments: handlers.NewPaymentHandler(service.NewPaymentService(repository.NewMemoryPaymentOrderRepository(), store.Projects)),
		Admin:    handlers.NewAdminHandler(projects),
	}

	return SetupRouter(cfg, h, service.NewIdentityResolver(authMode, "", "demo-user"))
}

func bearer(t *testing.T, sub string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub}).SignedString([]byte("any-secret"))
	require.NoError(t, err)
	return "Bearer " + token
}

func do(r *gin.Engine, method, path, auth string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoot(t *testing.T) {
	r := newTestRouter(t, config.AuthModeDemo)

	w := do(r, http.MethodGet, "/api/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"SeeForge API","version":"1.0.0"}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, config.AuthModeDemo)

	w := do(r, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp handlers.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, repository.ModeMemory, resp.Storage)
	assert.Equal(t, "disabled", resp.Checks["redis"])
}

func TestProjectLifecycle(t *testing.T) {
	r := newTestRouter(t, config.AuthModeDemo)
	alice := bearer(t, "alice")
	bob := bearer(t, "bob")

	w := do(r, http.MethodPost, "/api/projects", alice, map[string]any{
		"name":       "Shop",
		"tier":       "MVP Launch",
		"addons":     []string{"Payments"},
		"features":   []string{"Auth"},
		"is_student": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "alice", created.UserID)
	assert.Equal(t, 5525.0, created.EstimatedCost)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, "web", created.Platform)
	assert.Equal(t, "2-3 weeks", created.EstimatedTimeline)

	w = do(r, http.MethodGet, "/api/projects/"+created.ID, bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Project not found"}`, w.Body.String())

	w = do(r, http.MethodPut, "/api/projects/"+created.ID, alice, map[string]any{"status": "in_progress"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "in_progress", updated.Status)
	assert.Equal(t, "Shop", updated.Name)
	assert.Equal(t, 5525.0, updated.EstimatedCost)

	w = do(r, http.MethodGet, "/api/projects", alice, nil)
	var list []models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = do(r, http.MethodGet, "/api/projects", bob, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list)

	w = do(r, http.MethodDelete, "/api/projects/"+created.ID, bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodDelete, "/api/projects/"+created.ID, alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Project deleted successfully"}`, w.Body.String())
}

func TestProjectCreate_DemoUserWithoutToken(t *testing.T) {
	r := newTestRouter(t, config.AuthModeDemo)

	w := do(r, http.MethodPost, "/api/projects", "", map[string]any{"name": "Demo"})
	require.Equal(t, http.StatusOK, w.Code)

	var created models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "demo-user", created.UserID)
	assert.Equal(t, 3000.0, created.EstimatedCost)
}

func TestProjectCreate_Validation(t *testing.T) {
	r := newTestRouter(t, config.AuthModeDemo)

	w := do(r, http.MethodPost, "/api/projects", "", map[string]any{"description": "no name"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectCreate_KeepsRepoURL(t *testing.T) {
	r := newTestRouter(t, config.AuthModeDemo)

	w := do(r, http.MethodPost, "/api/projects", "", map[string]any{
		"name":            "Shop",
		"github_repo_url": "https://github.com/acme/shop",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotNil(t, created.GithubRepoURL)
	assert.Equal(t, "https://github.com/acme/shop", *created.GithubRepoURL)

	w = do(r, http.MethodGet, "/api/projects/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.NotNil(t, got.GithubRepoURL)
	assert.Equal(t, "https://github.com/acme/shop", *got.GithubRepoURL)

	w = do(r, http.MethodPost, "/api/projects", "", map[string]any{"name": "Shop", "github_repo_url": "ftp://acme"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectCreate_LengthLimits(t *testing.T) {
	r := newTestRouter(t, config.AuthModeDemo)

	w := do(r, http.MethodPost, "/api/projects", "", map[string]any{"name": strings.Repeat("a", 201)})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/projects", "", map[string]any{"name": "Shop", "description": strings.Repeat("d", 5001)})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/projects", "", map[string]any{"name": strings.Repeat("a", 200)})
	require.Equal(t, http.StatusOK, w.Code)
	var created models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = do(r, http.MethodPut, "/api/projects/"+created.ID, "", map[string]any{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStrictModeRequiresToken(t *testing.T) {
	r := newTestRouter(t, config.AuthModeStrict)

	w := do(r, http.MethodGet, "/api/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail":"Not authenticated"}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/projects", "Bearer garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail":"Invalid token"}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/templates", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTemplates(t *testing.T) {
	r := newTestRouter(t, config.AuthModeDemo)

	w := do(r, http.MethodGet, "/api/templates", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Template
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 4)

	w = do(r, http.MethodGet, "/api/templates/"+list[0].ID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/templates/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Template not found"}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/admin/templates", "", map[string]any{"name": "Blog", "base_price": 999})
	require.Equal(t, http.StatusOK, w.Code)
	var created models.Template
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = do(r, http.MethodPut, "/api/admin/templates/"+created.ID, "", map[string]any{"base_price": 1299})
	assert.JSONEq(t, `{"message":"Template updated successfully"}`, w.Body.String())

	w = do(r, http.MethodDelete, "/api/admin/templates/"+created.ID, "", nil)
	assert.JSONEq(t, `{"message":"Template deleted successfully"}`, w.Body.String())

	w = do(r, http.MethodDelete, "/api/admin/templates/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminProjectsUnscoped(t *testing.T) {
	r := newTestRouter(t, config.AuthModeDemo)
	do(r, http.MethodPost, "/api/projects", bearer(t, "alice"), map[string]any{"name": "A"})
	do(r, http.MethodPost, "/api/projects", bearer(t, "bob"), map[string]any{"name": "B"})

	w := do(r, http.MethodGet, "/api/admin/projects", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 2)
}

func TestPricing(t *testing.T) {
	r := newTestRouter(t, config.AuthModeDemo)

	w := do(r, http.MethodPost, "/api/pricing/calculate", "", map[string]any{
		"tier":   "MVP Launch",
		"addons": []string{"Payments"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"base_cost":6000,"addons_cost":500,"features_cost":0,"total_cost":6500,"currency":"INR"}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/pricing/tables", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "MVP Launch")
}

func TestPayments(t *testing.T) {
	r := newTestRouter(t, config.AuthModeDemo)

	w := do(r, http.MethodPost, "/api/payments/create-order", "", map[string]any{"amount": 1499})
	require.Equal(t, http.StatusOK, w.Code)
	var order map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, 1499.0, order["amount"])
	assert.Equal(t, "INR", order["currency"])
	assert.Equal(t, "created", order["status"])

	w = do(r, http.MethodPost, "/api/payments/verify", "", map[string]any{
		"order_id":   order["order_id"],
		"payment_id": "pay_1",
		"signature":  "sig",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"verified","payment_id":"pay_1"}`, w.Body.String())
}

func TestAIMockEnvelopes(t *testing.T) {
	r := newTestRouter(t, config.AuthModeDemo)

	w := do(r, http.MethodPost, "/api/ai/generate-scaffold", "", map[string]any{
		"project_config": map[string]any{"name": "Shop", "frontend": "React"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var scaffold ai.ScaffoldResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scaffold))
	assert.Equal(t, ai.StatusMockGenerated, scaffold.Status)

	w = do(r, http.MethodPost, "/api/ai/analyze-repo", "", map[string]any{"repo_url": "https://github.com/acme/app"})
	require.Equal(t, http.StatusOK, w.Code)
	var analysis ai.AnalysisResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &analysis))
	assert.Equal(t, 700.0, analysis.BaseCost)
	assert.NotEqual(t, http.StatusInternalServerError, w.Code)

	w = do(r, http.MethodPost, "/api/ai/analyze-repo", "", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectUpdate_InvalidLink(t *testing.T) {
	r := newTestRouter(t, config.AuthModeDemo)

	w := do(r, http.MethodPost, "/api/projects", "", map[string]any{"name": "Shop"})
	require.Equal(t, http.StatusOK, w.Code)
	var created models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = do(r, http.MethodPut, "/api/projects/"+created.ID, "", map[string]any{"github_repo_url": "github.com/acme/app"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, "/api/projects/"+created.ID, "", map[string]any{"github_repo_url": "https://github.com/acme/app"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.NotNil(t, updated.GithubRepoURL)
	assert.Equal(t, "https://github.com/acme/app", *updated.GithubRepoURL)
}
