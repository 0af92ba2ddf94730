package database

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/agency-portfolio-backend/errs"
	"github.com/rpupo63/agency-portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCollectionAddAssignsIdentity(t *testing.T) {
	ctx := context.Background()
	blogs := NewInMemory().BlogRepo()

	blog := &models.Blog{Slug: "first"}
	require.NoError(t, blogs.Add(ctx, blog))
	assert.NotEqual(t, uuid.Nil, blog.ID)
	assert.False(t, blog.CreatedAt.IsZero())

	found, err := blogs.FindByID(ctx, blog.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "first", found.Slug)

	bySlug, err := blogs.FindByKey(ctx, "first")
	require.NoError(t, err)
	require.NotNil(t, bySlug)
	assert.Equal(t, blog.ID, bySlug.ID)
}

func TestMemoryCollectionRejectsDuplicateKey(t *testing.T) {
	ctx := context.Background()
	services := NewInMemory().ServiceRepo()

	require.NoError(t, services.Add(ctx, &models.Service{Slug: "web"}))
	err := services.Add(ctx, &models.Service{Slug: "web"})
	assert.True(t, errs.IsUniqueConstraintViolationError(err))

	other := &models.Service{Slug: "mobile"}
	require.NoError(t, services.Add(ctx, other))

	other.Slug = "web"
	err = services.Update(ctx, other, "slug")
	assert.True(t, errs.IsUniqueConstraintViolationError(err))

	other.Slug = "mobile"
	assert.NoError(t, services.Update(ctx, other, "slug"))
}

func TestMemoryCollectionKeyTakenExcludesSelf(t *testing.T) {
	ctx := context.Background()
	categories := NewInMemory().ProjectCategoryRepo()

	cat := &models.ProjectCategory{CategorySlug: "apps"}
	require.NoError(t, categories.Add(ctx, cat))

	taken, err := categories.KeyTaken(ctx, "apps", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = categories.KeyTaken(ctx, "apps", cat.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestMemoryCollectionNewestFirst(t *testing.T) {
	ctx := context.Background()
	queries := NewInMemory().ContactQueryRepo()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []struct {
		name   string
		offset time.Duration
	}{
		{"old", 0},
		{"newest", 2 * time.Hour},
		{"middle", time.Hour},
	}
	for _, e := range entries {
		require.NoError(t, queries.Add(ctx, &models.ContactQuery{Name: e.name, CreatedAt: base.Add(e.offset)}))
	}

	all, err := queries.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "newest", all[0].Name)
	assert.Equal(t, "middle", all[1].Name)
	assert.Equal(t, "old", all[2].Name)
}

func TestMemoryCollectionDelete(t *testing.T) {
	ctx := context.Background()
	admins := NewInMemory().AdminRepo()

	admin := &models.Admin{Email: "a@b.com"}
	require.NoError(t, admins.Add(ctx, admin))
	require.NoError(t, admins.Delete(ctx, admin.ID))

	found, err := admins.FindByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	assert.ErrorIs(t, admins.Delete(ctx, admin.ID), errs.ErrNotFound)
}

func TestMemoryCollectionFindByIDsSkipsUnknown(t *testing.T) {
	ctx := context.Background()
	categories := NewInMemory().ProjectCategoryRepo()

	a := &models.ProjectCategory{CategorySlug: "a"}
	b := &models.ProjectCategory{CategorySlug: "b"}
	require.NoError(t, categories.Add(ctx, a))
	require.NoError(t, categories.Add(ctx, b))

	found, err := categories.FindByIDs(ctx, []uuid.UUID{a.ID, uuid.New(), b.ID})
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestMemoryCollectionReturnsCopies(t *testing.T) {
	ctx := context.Background()
	blogs := NewInMemory().BlogRepo()

	blog := &models.Blog{Slug: "copy"}
	require.NoError(t, blogs.Add(ctx, blog))

	found, err := blogs.FindByID(ctx, blog.ID)
	require.NoError(t, err)
	found.Slug = "mutated"

	again, err := blogs.FindByID(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, "copy", again.Slug)
}

func TestDSN(t *testing.T) {
	dsn, err := DSN(map[string]string{"DB_TYPE": "postgres", "DATABASE_URL": "postgres://x"})
	require.NoError(t, err)
	assert.Equal(t, "postgres://x", dsn)

	_, err = DSN(map[string]string{"DB_TYPE": "postgres"})
	assert.Error(t, err)

	dsn, err = DSN(map[string]string{
		"DB_TYPE":              "supa",
		"SUPABASE_DB_HOST":     "h",
		"SUPABASE_DB_USER":     "u",
		"SUPABASE_DB_PASSWORD": "p",
		"SUPABASE_DB_NAME":     "n",
	})
	require.NoError(t, err)
	assert.Equal(t, "host=h user=u password=p dbname=n port=5432 sslmode=require", dsn)

	_, err = DSN(map[string]string{"DB_TYPE": "mongo"})
	assert.Error(t, err)
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))
	err := translateError(assertErr("ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)"))
	assert.ErrorIs(t, err, errs.ErrUniqueConstraintViolation)
	assert.NotErrorIs(t, translateError(assertErr("boom")), errs.ErrUniqueConstraintViolation)
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
