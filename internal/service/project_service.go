package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/seeforge-backend/internal/logger"
	"github.com/ignatzorin/seeforge-backend/internal/models"
	"github.com/ignatzorin/seeforge-backend/internal/pkg/apperror"
	"github.com/ignatzorin/seeforge-backend/internal/pricing"
	"github.com/ignatzorin/seeforge-backend/internal/repository"
)

// ProjectDraft данные нового проекта от пользователя.
type ProjectDraft struct {
	Name             string
	Description      string
	Category         string
	Platform         string
	Frontend         string
	Backend          string
	UITemplate       string
	Features         []string
	Addons           []string
	DeploymentOption string
	Tier             string
	IsStudent        bool
	GithubRepoURL    *string
}

// ProjectService управляет проектами пользователя.
type ProjectService struct {
	projects repository.ProjectRepository
	pricing  *pricing.Engine
}

// NewProjectService создаёт сервис.
func NewProjectService(projects repository.ProjectRepository, engine *pricing.Engine) *ProjectService {
	return &ProjectService{projects: projects, pricing: engine}
}

// Create сохраняет проект со стоимостью, рассчитанной на сервере.
func (s *ProjectService) Create(ctx context.Context, userID string, draft ProjectDraft) (*models.Project, error) {
	quote := s.pricing.Calculate(pricing.Input{
		Tier:      draft.Tier,
		Addons:    draft.Addons,
		Features:  draft.Features,
		IsStudent: draft.IsStudent,
	})

	platform := draft.Platform
	if platform == "" {
		platform = models.DefaultPlatform
	}

	project := &models.Project{
		UserID:            userID,
		Name:              draft.Name,
		Description:       draft.Description,
		Category:          draft.Category,
		Platform:          platform,
		Frontend:          draft.Frontend,
		Backend:           draft.Backend,
		UITemplate:        draft.UITemplate,
		Features:          draft.Features,
		Addons:            draft.Addons,
		DeploymentOption:  draft.DeploymentOption,
		GithubRepoURL:     draft.GithubRepoURL,
		EstimatedCost:     quote.TotalCost,
		EstimatedTimeline: models.DefaultEstimatedTimeline,
		Status:            models.DefaultProjectStatus,
	}

	created, err := s.projects.Create(ctx, project)
	if err != nil {
		return nil, storageError(err)
	}

	logger.Log.WithFields(logrus.Fields{
		"project_id": created.ID,
		"user_id":    userID,
		"cost":       created.EstimatedCost,
	}).Info("project service: проект создан")

	return created, nil
}

// Get возвращает проект пользователя.
func (s *ProjectService) Get(ctx context.Context, userID, id string) (*models.Project, error) {
	project, err := s.projects.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, storageError(err)
	}
	return project, nil
}

// List возвращает проекты пользователя в порядке создания.
func (s *ProjectService) List(ctx context.Context, userID string) ([]models.Project, error) {
	projects, err := s.projects.ListByUser(ctx, userID)
	if err != nil {
		return nil, storageError(err)
	}
	return projects, nil
}

// ListAll возвращает все проекты всех пользователей.
func (s *ProjectService) ListAll(ctx context.Context) ([]models.Project, error) {
	projects, err := s.projects.ListAll(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	return projects, nil
}

// Update применяет частичное обновление. Стоимость не пересчитывается.
func (s *ProjectService) Update(ctx context.Context, userID, id string, patch models.ProjectPatch) (*models.Project, error) {
	project, err := s.projects.Update(ctx, id, userID, patch)
	if err != nil {
		return nil, storageError(err)
	}
	return project, nil
}

// Delete удаляет проект пользователя.
func (s *ProjectService) Delete(ctx context.Context, userID, id string) error {
	if err := s.projects.Delete(ctx, id, userID); err != nil {
		return storageError(err)
	}
	logger.Log.WithFields(logrus.Fields{"project_id": id, "user_id": userID}).Info("project service: проект удалён")
	return nil
}

// storageError переводит ошибки репозитория в AppError.
func storageError(err error) error {
	switch {
	case errors.Is(err, repository.ErrProjectNotFound):
		return apperror.ErrProjectNotFound.WithCause(err)
	case errors.Is(err, repository.ErrTemplateNotFound):
		return apperror.ErrTemplateNotFound.WithCause(err)
	case errors.Is(err, repository.ErrPaymentOrderNotFound):
		return apperror.ErrPaymentOrderNotFound.WithCause(err)
	default:
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "Internal Server Error")
	}
}
