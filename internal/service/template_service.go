package service

import (
	"context"

	"github.com/ignatzorin/seeforge-backend/internal/logger"
	"github.com/ignatzorin/seeforge-backend/internal/models"
	"github.com/ignatzorin/seeforge-backend/internal/repository"
)

// TemplateService каталог шаблонов.
type TemplateService struct {
	templates repository.TemplateRepository
}

func NewTemplateService(templates repository.TemplateRepository) *TemplateService {
	return &TemplateService{templates: templates}
}

func (s *TemplateService) List(ctx context.Context) ([]models.Template, error) {
	templates, err := s.templates.List(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	return templates, nil
}

func (s *TemplateService) Get(ctx context.Context, id string) (*models.Template, error) {
	tpl, err := s.templates.Get(ctx, id)
	if err != nil {
		return nil, storageError(err)
	}
	return tpl, nil
}

func (s *TemplateService) Create(ctx context.Context, tpl *models.Template) (*models.Template, error) {
	created, err := s.templates.Create(ctx, tpl)
	if err != nil {
		return nil, storageError(err)
	}
	logger.Log.WithField("template_id", created.ID).Info("template service: шаблон добавлен")
	return created, nil
}

func (s *TemplateService) Update(ctx context.Context, id string, patch models.TemplatePatch) (*models.Template, error) {
	tpl, err := s.templates.Update(ctx, id, patch)
	if err != nil {
		return nil, storageError(err)
	}
	return tpl, nil
}

func (s *TemplateService) Delete(ctx context.Context, id string) error {
	if err := s.templates.Delete(ctx, id); err != nil {
		return storageError(err)
	}
	logger.Log.WithField("template_id", id).Info("template service: шаблон удалён")
	return nil
}
