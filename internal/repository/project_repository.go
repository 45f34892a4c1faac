package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/seeforge-backend/internal/models"
)

const projectColumns = `id, user_id, name, description, category, platform, frontend, backend, ui_template,
	features, addons, deployment_option, estimated_cost, estimated_timeline, status,
	github_repo_url, deployed_url, created_at, updated_at`

// PostgresProjectRepository хранит проекты в PostgreSQL.
type PostgresProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository создаёт новый экземпляр.
func NewProjectRepository(db *sqlx.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

func (r *PostgresProjectRepository) Create(ctx context.Context, project *models.Project) (*models.Project, error) {
	stored := project.Clone()
	prepareProject(stored)

	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES (:id, :user_id, :name, :description, :category, :platform, :frontend, :backend, :ui_template,
			:features, :addons, :deployment_option, :estimated_cost, :estimated_timeline, :status,
			:github_repo_url, :deployed_url, :created_at, :updated_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, stored); err != nil {
		return nil, fmt.Errorf("project repository: create %w", err)
	}
	return stored, nil
}

func (r *PostgresProjectRepository) GetByIDAndUser(ctx context.Context, id, userID string) (*models.Project, error) {
	var project models.Project
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 AND user_id = $2`
	if err := r.db.GetContext(ctx, &project, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("project repository: get by id %w", err)
	}
	return &project, nil
}

func (r *PostgresProjectRepository) ListByUser(ctx context.Context, userID string) ([]models.Project, error) {
	projects := []models.Project{}
	query := `SELECT ` + projectColumns + ` FROM projects WHERE user_id = $1 ORDER BY seq`
	if err := r.db.SelectContext(ctx, &projects, query, userID); err != nil {
		return nil, fmt.Errorf("project repository: list by user %w", err)
	}
	return projects, nil
}

func (r *PostgresProjectRepository) ListAll(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY seq`
	if err := r.db.SelectContext(ctx, &projects, query); err != nil {
		return nil, fmt.Errorf("project repository: list all %w", err)
	}
	return projects, nil
}

// Update применяет patch. updated_at не может уменьшиться.
func (r *PostgresProjectRepository) Update(ctx context.Context, id, userID string, patch models.ProjectPatch) (*models.Project, error) {
	setClause, args := buildSetClause(patch.Fields())

	args = append(args, time.Now().UTC().Truncate(time.Millisecond))
	setClause = append(setClause, fmt.Sprintf("updated_at = GREATEST(updated_at, $%d)", len(args)))
	args = append(args, id, userID)

	query := fmt.Sprintf(`UPDATE projects SET %s WHERE id = $%d AND user_id = $%d RETURNING %s`,
		strings.Join(setClause, ", "), len(args)-1, len(args), projectColumns)

	var project models.Project
	if err := r.db.GetContext(ctx, &project, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("project repository: update %w", err)
	}
	return &project, nil
}

func (r *PostgresProjectRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("project repository: delete %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("project repository: delete %w", err)
	}
	if affected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// buildSetClause строит "col = $n" в стабильном порядке колонок.
// Ключи приходят только из Fields() моделей, поэтому подстановка имён безопасна.
func buildSetClause(fields map[string]any) ([]string, []any) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	clause := make([]string, 0, len(keys)+1)
	args := make([]any, 0, len(keys)+3)
	for _, k := range keys {
		args = append(args, fields[k])
		clause = append(clause, fmt.Sprintf("%s = $%d", k, len(args)))
	}
	return clause, args
}
