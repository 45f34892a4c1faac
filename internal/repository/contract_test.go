package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/seeforge-backend/internal/models"
)

func strPtr(s string) *string { return &s }

// testProjectRepository проверяет поведение, общее для всех реализаций ProjectRepository.
func testProjectRepository(t *testing.T, repo ProjectRepository) {
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Project{
		UserID:            "user-a",
		Name:              "Shop",
		Description:       "Online shop",
		Category:          "ecommerce",
		Platform:          models.DefaultPlatform,
		Frontend:          "React",
		Backend:           "FastAPI",
		UITemplate:        "E-commerce Starter",
		Features:          []string{"Auth", "Payments"},
		Addons:            []string{"SEO Optimization"},
		DeploymentOption:  "vercel",
		EstimatedCost:     4499,
		EstimatedTimeline: models.DefaultEstimatedTimeline,
		Status:            models.DefaultProjectStatus,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.True(t, created.UpdatedAt.Equal(created.CreatedAt))

	_, err = repo.Create(ctx, &models.Project{UserID: "user-b", Name: "Other"})
	require.NoError(t, err)
	second, err := repo.Create(ctx, &models.Project{UserID: "user-a", Name: "Blog"})
	require.NoError(t, err)
	assert.Empty(t, second.Features)
	assert.NotNil(t, second.Features)

	t.Run("get", func(t *testing.T) {
		got, err := repo.GetByIDAndUser(ctx, created.ID, "user-a")
		require.NoError(t, err)
		assert.Equal(t, created.Name, got.Name)
		assert.Equal(t, created.Features, got.Features)
		assert.Equal(t, created.Addons, got.Addons)
		assert.Equal(t, 4499.0, got.EstimatedCost)
		assert.Nil(t, got.GithubRepoURL)
		assert.True(t, got.CreatedAt.Equal(created.CreatedAt))
	})

	t.Run("get чужого проекта", func(t *testing.T) {
		_, err := repo.GetByIDAndUser(ctx, created.ID, "user-b")
		assert.ErrorIs(t, err, ErrProjectNotFound)
	})

	t.Run("list в порядке создания", func(t *testing.T) {
		list, err := repo.ListByUser(ctx, "user-a")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, created.ID, list[0].ID)
		assert.Equal(t, second.ID, list[1].ID)

		empty, err := repo.ListByUser(ctx, "nobody")
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("update", func(t *testing.T) {
		time.Sleep(5 * time.Millisecond)
		addons := []string{}
		updated, err := repo.Update(ctx, created.ID, "user-a", models.ProjectPatch{
			Status:        strPtr("in_progress"),
			Addons:        &addons,
			GithubRepoURL: strPtr("https://github.com/acme/shop"),
		})
		require.NoError(t, err)

		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "user-a", updated.UserID)
		assert.Equal(t, "in_progress", updated.Status)
		assert.Equal(t, "Shop", updated.Name)
		assert.Empty(t, updated.Addons)
		require.NotNil(t, updated.GithubRepoURL)
		assert.Equal(t, "https://github.com/acme/shop", *updated.GithubRepoURL)
		assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
		assert.Equal(t, 4499.0, updated.EstimatedCost)

		again, err := repo.Update(ctx, created.ID, "user-a", models.ProjectPatch{})
		require.NoError(t, err)
		assert.False(t, again.UpdatedAt.Before(updated.UpdatedAt))
	})

	t.Run("update чужого проекта", func(t *testing.T) {
		_, err := repo.Update(ctx, created.ID, "user-b", models.ProjectPatch{Name: strPtr("hijack")})
		assert.ErrorIs(t, err, ErrProjectNotFound)

		got, err := repo.GetByIDAndUser(ctx, created.ID, "user-a")
		require.NoError(t, err)
		assert.Equal(t, "Shop", got.Name)
	})

	t.Run("delete", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, created.ID, "user-b"), ErrProjectNotFound)
		require.NoError(t, repo.Delete(ctx, created.ID, "user-a"))
		assert.ErrorIs(t, repo.Delete(ctx, created.ID, "user-a"), ErrProjectNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, "missing", "user-a"), ErrProjectNotFound)

		_, err := repo.GetByIDAndUser(ctx, created.ID, "user-a")
		assert.ErrorIs(t, err, ErrProjectNotFound)
	})
}

// testTemplateRepository проверяет поведение, общее для всех реализаций TemplateRepository.
func testTemplateRepository(t *testing.T, repo TemplateRepository) {
	ctx := context.Background()

	before, err := repo.List(ctx)
	require.NoError(t, err)

	created, err := repo.Create(ctx, &models.Template{
		Name:               "Landing Page",
		Description:        "One page site",
		Category:           "landing",
		Features:           []string{"Contact Form"},
		TechStack:          models.StringMap{"frontend": "Astro"},
		EstimatedBuildTime: "3 days",
		BasePrice:          1499,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, len(before)+1)
	assert.Equal(t, created.ID, list[len(list)-1].ID)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StringMap{"frontend": "Astro"}, got.TechStack)

	price := 1999.0
	updated, err := repo.Update(ctx, created.ID, models.TemplatePatch{BasePrice: &price})
	require.NoError(t, err)
	assert.Equal(t, 1999.0, updated.BasePrice)
	assert.Equal(t, "Landing Page", updated.Name)

	_, err = repo.Update(ctx, "missing", models.TemplatePatch{BasePrice: &price})
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), ErrTemplateNotFound)
}
