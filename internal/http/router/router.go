package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/seeforge-backend/internal/config"
	"github.com/ignatzorin/seeforge-backend/internal/http/handlers"
	"github.com/ignatzorin/seeforge-backend/internal/http/middleware"
)

// Handlers набор обработчиков, собранный в main.
type Handlers struct {
	Health   *handlers.HealthHandler
	Projects *handlers.ProjectHandler
	AI       *handlers.AIHandler
	Template *handlers.TemplateHandler
	Pricing  *handlers.PricingHandler
	Payments *handlers.PaymentHandler
	Admin    *handlers.AdminHandler
}

func SetupRouter(cfg *config.Config, h Handlers, identity middleware.IdentityResolver) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)

	api := r.Group("/api")
	api.GET("/", h.Health.Root)

	auth := middleware.AuthMiddleware(identity)

	projects := api.Group("/projects")
	projects.Use(auth)
	{
		projects.POST("", h.Projects.CreateProject)
		projects.GET("", h.Projects.ListProjects)
		projects.GET("/:id", h.Projects.GetProject)
		projects.PUT("/:id", h.Projects.UpdateProject)
		projects.DELETE("/:id", h.Projects.DeleteProject)
	}

	aiGroup := api.Group("/ai")
	aiGroup.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod), auth)
	{
		aiGroup.POST("/generate-scaffold", h.AI.GenerateScaffold)
		aiGroup.POST("/analyze-repo", h.AI.AnalyzeRepo)
	}

	api.GET("/templates", h.Template.ListTemplates)
	api.GET("/templates/:id", h.Template.GetTemplate)

	api.POST("/pricing/calculate", h.Pricing.Calculate)
	api.GET("/pricing/tables", h.Pricing.Tables)

	payments := api.Group("/payments")
	payments.Use(auth)
	{
		payments.POST("/create-order", h.Payments.CreateOrder)
		payments.POST("/verify", h.Payments.Verify)
	}

	// FIXME: админские маршруты открыты без аутентификации и проверки роли.
	admin := api.Group("/admin")
	{
		admin.GET("/projects", h.Admin.ListAllProjects)
		admin.POST("/templates", h.Template.CreateTemplate)
		admin.PUT("/templates/:id", h.Template.UpdateTemplate)
		admin.DELETE("/templates/:id", h.Template.DeleteTemplate)
	}

	return r
}
