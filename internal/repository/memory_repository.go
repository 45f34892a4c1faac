package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ignatzorin/seeforge-backend/internal/models"
)

// MemoryProjectRepository хранит проекты в памяти процесса в порядке вставки.
type MemoryProjectRepository struct {
	mu       sync.RWMutex
	projects []*models.Project
}

// NewMemoryProjectRepository создаёт пустое хранилище.
func NewMemoryProjectRepository() *MemoryProjectRepository {
	return &MemoryProjectRepository{}
}

func (r *MemoryProjectRepository) Create(_ context.Context, project *models.Project) (*models.Project, error) {
	stored := project.Clone()
	prepareProject(stored)

	r.mu.Lock()
	r.projects = append(r.projects, stored)
	r.mu.Unlock()

	return stored.Clone(), nil
}

func (r *MemoryProjectRepository) GetByIDAndUser(_ context.Context, id, userID string) (*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id, userID)
	if idx < 0 {
		return nil, ErrProjectNotFound
	}
	return r.projects[idx].Clone(), nil
}

func (r *MemoryProjectRepository) ListByUser(_ context.Context, userID string) ([]models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Project, 0)
	for _, p := range r.projects {
		if p.UserID == userID {
			out = append(out, *p.Clone())
		}
	}
	return out, nil
}

func (r *MemoryProjectRepository) ListAll(_ context.Context) ([]models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, *p.Clone())
	}
	return out, nil
}

func (r *MemoryProjectRepository) Update(_ context.Context, id, userID string, patch models.ProjectPatch) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id, userID)
	if idx < 0 {
		return nil, ErrProjectNotFound
	}

	project := r.projects[idx]
	patch.Apply(project)
	project.UpdatedAt = laterOf(project.UpdatedAt, time.Now().UTC().Truncate(time.Millisecond))

	return project.Clone(), nil
}

func (r *MemoryProjectRepository) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id, userID)
	if idx < 0 {
		return ErrProjectNotFound
	}
	r.projects = append(r.projects[:idx], r.projects[idx+1:]...)
	return nil
}

func (r *MemoryProjectRepository) indexOf(id, userID string) int {
	for i, p := range r.projects {
		if p.ID == id && p.UserID == userID {
			return i
		}
	}
	return -1
}

// MemoryTemplateRepository хранит каталог шаблонов в памяти процесса.
type MemoryTemplateRepository struct {
	mu        sync.RWMutex
	templates []*models.Template
}

// NewMemoryTemplateRepository создаёт каталог с начальными шаблонами.
func NewMemoryTemplateRepository(seed []models.Template) *MemoryTemplateRepository {
	r := &MemoryTemplateRepository{}
	for i := range seed {
		r.templates = append(r.templates, seed[i].Clone())
	}
	return r
}

func (r *MemoryTemplateRepository) Create(_ context.Context, tpl *models.Template) (*models.Template, error) {
	stored := tpl.Clone()
	prepareTemplate(stored)

	r.mu.Lock()
	r.templates = append(r.templates, stored)
	r.mu.Unlock()

	return stored.Clone(), nil
}

func (r *MemoryTemplateRepository) Get(_ context.Context, id string) (*models.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, ErrTemplateNotFound
	}
	return r.templates[idx].Clone(), nil
}

func (r *MemoryTemplateRepository) List(_ context.Context) ([]models.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Template, 0, len(r.templates))
	for _, t := range r.templates {
		out = append(out, *t.Clone())
	}
	return out, nil
}

func (r *MemoryTemplateRepository) Update(_ context.Context, id string, patch models.TemplatePatch) (*models.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, ErrTemplateNotFound
	}
	patch.Apply(r.templates[idx])
	return r.templates[idx].Clone(), nil
}

func (r *MemoryTemplateRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return ErrTemplateNotFound
	}
	r.templates = append(r.templates[:idx], r.templates[idx+1:]...)
	return nil
}

func (r *MemoryTemplateRepository) indexOf(id string) int {
	for i, t := range r.templates {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// prepareProject заполняет серверные поля, общие для всех хранилищ.
func prepareProject(p *models.Project) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	if p.Features == nil {
		p.Features = pq.StringArray{}
	}
	if p.Addons == nil {
		p.Addons = pq.StringArray{}
	}
}

func prepareTemplate(t *models.Template) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	if t.Features == nil {
		t.Features = pq.StringArray{}
	}
	if t.TechStack == nil {
		t.TechStack = models.StringMap{}
	}
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
