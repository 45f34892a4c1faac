package models

import (
	"time"

	"github.com/lib/pq"
)

// Значения по умолчанию для нового проекта.
const (
	DefaultPlatform          = "web"
	DefaultProjectStatus     = "pending"
	DefaultEstimatedTimeline = "2-3 weeks"
)

// Project описывает сконфигурированный пользователем проект.
type Project struct {
	ID                string         `db:"id" bson:"id" json:"id"`
	UserID            string         `db:"user_id" bson:"user_id" json:"user_id"`
	Name              string         `db:"name" bson:"name" json:"name"`
	Description       string         `db:"description" bson:"description" json:"description"`
	Category          string         `db:"category" bson:"category" json:"category"`
	Platform          string         `db:"platform" bson:"platform" json:"platform"`
	Frontend          string         `db:"frontend" bson:"frontend" json:"frontend"`
	Backend           string         `db:"backend" bson:"backend" json:"backend"`
	UITemplate        string         `db:"ui_template" bson:"ui_template" json:"ui_template"`
	Features          pq.StringArray `db:"features" bson:"features" json:"features"`
	Addons            pq.StringArray `db:"addons" bson:"addons" json:"addons"`
	DeploymentOption  string         `db:"deployment_option" bson:"deployment_option" json:"deployment_option"`
	EstimatedCost     float64        `db:"estimated_cost" bson:"estimated_cost" json:"estimated_cost"`
	EstimatedTimeline string         `db:"estimated_timeline" bson:"estimated_timeline" json:"estimated_timeline"`
	Status            string         `db:"status" bson:"status" json:"status"`
	GithubRepoURL     *string        `db:"github_repo_url" bson:"github_repo_url" json:"github_repo_url"`
	DeployedURL       *string        `db:"deployed_url" bson:"deployed_url" json:"deployed_url"`
	CreatedAt         time.Time      `db:"created_at" bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at" bson:"updated_at" json:"updated_at"`
}

// ProjectPatch частичное обновление проекта. nil поля не меняются.
// id, user_id, created_at и estimated_cost не обновляются.
type ProjectPatch struct {
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

// Apply применяет изменения к проекту в памяти.
func (p ProjectPatch) Apply(project *Project) {
	setString(&project.Name, p.Name)
	setString(&project.Description, p.Description)
	setString(&project.Category, p.Category)
	setString(&project.Platform, p.Platform)
	setString(&project.Frontend, p.Frontend)
	setString(&project.Backend, p.Backend)
	setString(&project.UITemplate, p.UITemplate)
	setString(&project.DeploymentOption, p.DeploymentOption)
	setString(&project.EstimatedTimeline, p.EstimatedTimeline)
	setString(&project.Status, p.Status)
	if p.Features != nil {
		project.Features = append(pq.StringArray{}, (*p.Features)...)
	}
	if p.Addons != nil {
		project.Addons = append(pq.StringArray{}, (*p.Addons)...)
	}
	if p.GithubRepoURL != nil {
		v := *p.GithubRepoURL
		project.GithubRepoURL = &v
	}
	if p.DeployedURL != nil {
		v := *p.DeployedURL
		project.DeployedURL = &v
	}
}

// Fields возвращает изменённые поля в виде column -> value.
func (p ProjectPatch) Fields() map[string]any {
	fields := map[string]any{}
	addString(fields, "name", p.Name)
	addString(fields, "description", p.Description)
	addString(fields, "category", p.Category)
	addString(fields, "platform", p.Platform)
	addString(fields, "frontend", p.Frontend)
	addString(fields, "backend", p.Backend)
	addString(fields, "ui_template", p.UITemplate)
	addString(fields, "deployment_option", p.DeploymentOption)
	addString(fields, "estimated_timeline", p.EstimatedTimeline)
	addString(fields, "status", p.Status)
	addString(fields, "github_repo_url", p.GithubRepoURL)
	addString(fields, "deployed_url", p.DeployedURL)
	if p.Features != nil {
		fields["features"] = pq.StringArray(*p.Features)
	}
	if p.Addons != nil {
		fields["addons"] = pq.StringArray(*p.Addons)
	}
	return fields
}

// Clone возвращает глубокую копию проекта.
func (p *Project) Clone() *Project {
	cp := *p
	cp.Features = append(pq.StringArray{}, p.Features...)
	cp.Addons = append(pq.StringArray{}, p.Addons...)
	if p.GithubRepoURL != nil {
		v := *p.GithubRepoURL
		cp.GithubRepoURL = &v
	}
	if p.DeployedURL != nil {
		v := *p.DeployedURL
		cp.DeployedURL = &v
	}
	return &cp
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func addString(fields map[string]any, key string, v *string) {
	if v != nil {
		fields[key] = *v
	}
}
