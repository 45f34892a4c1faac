package dto

// CreateProjectRequest represents the request to create a project.
// Tier and IsStudent only feed the price calculation and are not stored.
type CreateProjectRequest struct {
	Name             string   `json:"name" binding:"required"`
	Description      string   `json:"description"`
	Category         string   `json:"category"`
	Platform         string   `json:"platform"`
	Frontend         string   `json:"frontend"`
	Backend          string   `json:"backend"`
	UITemplate       string   `json:"ui_template"`
	Features         []string `json:"features"`
	Addons           []string `json:"addons"`
	DeploymentOption string   `json:"deployment_option"`
	Tier             string   `json:"tier"`
	IsStudent        bool     `json:"is_student"`
	GithubRepoURL    *string  `json:"github_repo_url"`
}

// UpdateProjectRequest represents a partial project update. Absent fields are left unchanged.
type UpdateProjectRequest struct {
	Name              *string   `json:"name"`
	Description       *string   `json:"description"`
	Category          *string   `json:"category"`
	Platform          *string   `json:"platform"`
	Frontend          *string   `json:"frontend"`
	Backend           *string   `json:"backend"`
	UITemplate        *string   `json:"ui_template"`
	Features          *[]string `json:"features"`
	Addons            *[]string `json:"addons"`
	DeploymentOption  *string   `json:"deployment_option"`
	EstimatedTimeline *string   `json:"estimated_timeline"`
	Status            *string   `json:"status"`
	GithubRepoURL     *string   `json:"github_repo_url"`
	DeployedURL       *string   `json:"deployed_url"`
}

// CreateTemplateRequest represents the admin request to add a catalog template.
type CreateTemplateRequest struct {
	Name               string            `json:"name" binding:"required"`
	Description        string            `json:"description"`
	Category           string            `json:"category"`
	PreviewImage       string            `json:"preview_image"`
	Features           []string          `json:"features"`
	TechStack          map[string]string `json:"tech_stack"`
	EstimatedBuildTime string            `json:"estimated_build_time"`
	BasePrice          float64           `json:"base_price" binding:"gte=0"`
}

// UpdateTemplateRequest represents a partial template update.
type UpdateTemplateRequest struct {
	Name               *string            `json:"name"`
	Description        *string            `json:"description"`
	Category           *string            `json:"category"`
	PreviewImage       *string            `json:"preview_image"`
	Features           *[]string          `json:"features"`
	TechStack          *map[string]string `json:"tech_stack"`
	EstimatedBuildTime *string            `json:"estimated_build_time"`
	BasePrice          *float64           `json:"base_price" binding:"omitempty,gte=0"`
}

// GenerateScaffoldRequest carries the project configuration rendered into the scaffold prompt.
type GenerateScaffoldRequest struct {
	ProjectConfig map[string]any `json:"project_config"`
}

// AnalyzeRepoRequest represents the request to analyze an existing repository.
type AnalyzeRepoRequest struct {
	RepoURL      string `json:"repo_url" binding:"required"`
	Requirements string `json:"requirements"`
}

// CalculatePriceRequest represents the pricing calculator input.
type CalculatePriceRequest struct {
	Tier      string   `json:"tier"`
	Addons    []string `json:"addons"`
	Features  []string `json:"features"`
	IsStudent bool     `json:"is_student"`
}

// CreatePaymentOrderRequest represents the request to open a mock payment order.
// When Amount is zero and ProjectID is set, the project's estimated cost is charged.
type CreatePaymentOrderRequest struct {
	Amount    float64 `json:"amount" binding:"gte=0"`
	Currency  string  `json:"currency"`
	ProjectID string  `json:"project_id"`
}

// VerifyPaymentRequest represents a mock payment verification.
type VerifyPaymentRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}
