package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/seeforge-backend/internal/models"
)

const templateColumns = `id, name, description, category, preview_image, features, tech_stack,
	estimated_build_time, base_price, created_at`

// PostgresTemplateRepository хранит каталог шаблонов в PostgreSQL.
type PostgresTemplateRepository struct {
	db *sqlx.DB
}

// NewTemplateRepository создаёт новый экземпляр.
func NewTemplateRepository(db *sqlx.DB) *PostgresTemplateRepository {
	return &PostgresTemplateRepository{db: db}
}

func (r *PostgresTemplateRepository) Create(ctx context.Context, tpl *models.Template) (*models.Template, error) {
	stored := tpl.Clone()
	prepareTemplate(stored)

	query := `
		INSERT INTO templates (` + templateColumns + `)
		VALUES (:id, :name, :description, :category, :preview_image, :features, :tech_stack,
			:estimated_build_time, :base_price, :created_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, stored); err != nil {
		return nil, fmt.Errorf("template repository: create %w", err)
	}
	return stored, nil
}

func (r *PostgresTemplateRepository) Get(ctx context.Context, id string) (*models.Template, error) {
	var tpl models.Template
	query := `SELECT ` + templateColumns + ` FROM templates WHERE id = $1`
	if err := r.db.GetContext(ctx, &tpl, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("template repository: get %w", err)
	}
	return &tpl, nil
}

func (r *PostgresTemplateRepository) List(ctx context.Context) ([]models.Template, error) {
	templates := []models.Template{}
	query := `SELECT ` + templateColumns + ` FROM templates ORDER BY seq`
	if err := r.db.SelectContext(ctx, &templates, query); err != nil {
		return nil, fmt.Errorf("template repository: list %w", err)
	}
	return templates, nil
}

func (r *PostgresTemplateRepository) Update(ctx context.Context, id string, patch models.TemplatePatch) (*models.Template, error) {
	setClause, args := buildSetClause(patch.Fields())
	if len(setClause) == 0 {
		return r.Get(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE templates SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClause, ", "), len(args), templateColumns)

	var tpl models.Template
	if err := r.db.GetContext(ctx, &tpl, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("template repository: update %w", err)
	}
	return &tpl, nil
}

func (r *PostgresTemplateRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("template repository: delete %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("template repository: delete %w", err)
	}
	if affected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}
