package resources

import (
	"context"
	"time"

	"github.com/rpupo63/agency-portfolio-backend/database"
	"github.com/rpupo63/agency-portfolio-backend/errs"
	"github.com/rpupo63/agency-portfolio-backend/models"
)

const (
	categorySlugTaken = "Slug must be unique"
	categoryNotFound  = "Category not found"
)

type CategoryInput struct {
	CategoryName *string
	CategorySlug *string
}

type ServiceCategoryManager struct {
	repo database.Collection[models.ServiceCategory]
	now  func() time.Time
}

func NewServiceCategoryManager(repo database.Collection[models.ServiceCategory]) *ServiceCategoryManager {
	return &ServiceCategoryManager{repo: repo, now: time.Now}
}

func (m *ServiceCategoryManager) Create(ctx context.Context, in CategoryInput) (*models.ServiceCategory, error) {
	if strOrEmpty(in.CategoryName) == "" || strOrEmpty(in.CategorySlug) == "" {
		return nil, errs.NewMissingRequiredFieldError("category_slug", "Name and slug are required")
	}
	existing, err := m.repo.FindByKey(ctx, *in.CategorySlug)
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "category", err)
	}
	if existing != nil {
		return nil, errs.NewConflictError(categorySlugTaken)
	}

	category := &models.ServiceCategory{
		CategoryName: *in.CategoryName,
		CategorySlug: *in.CategorySlug,
		CreatedAt:    m.now().UTC(),
	}
	if err := m.repo.Add(ctx, category); err != nil {
		return nil, persistError(err, "create", "category", categorySlugTaken)
	}
	return category, nil
}

func (m *ServiceCategoryManager) List(ctx context.Context) ([]*models.ServiceCategory, error) {
	categories, err := m.repo.FindAll(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "categories", err)
	}
	return nonNil(categories), nil
}

func (m *ServiceCategoryManager) GetByID(ctx context.Context, rawID string) (*models.ServiceCategory, error) {
	id, err := parseID(rawID, "category")
	if err != nil {
		return nil, err
	}
	category, err := m.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "category", err)
	}
	if category == nil {
		return nil, errs.NewNotFoundError(categoryNotFound)
	}
	return category, nil
}

// Update needs at least one of name or slug.
func (m *ServiceCategoryManager) Update(ctx context.Context, rawID string, in CategoryInput) error {
	if strOrEmpty(in.CategoryName) == "" && strOrEmpty(in.CategorySlug) == "" {
		return errs.NewBadRequestError("Nothing to update")
	}
	if suppliedEmpty(in.CategorySlug) {
		return errs.NewMissingRequiredFieldError("category_slug", "Slug cannot be empty")
	}
	if suppliedEmpty(in.CategoryName) {
		return errs.NewMissingRequiredFieldError("category_name", "Name cannot be empty")
	}

	category, err := m.GetByID(ctx, rawID)
	if err != nil {
		return err
	}
	if in.CategorySlug != nil && *in.CategorySlug != category.CategorySlug {
		taken, err := m.repo.KeyTaken(ctx, *in.CategorySlug, category.ID)
		if err != nil {
			return errs.NewDatabaseError("fetch", "category", err)
		}
		if taken {
			return errs.NewConflictError(categorySlugTaken)
		}
	}

	var cols columns
	cols.string("category_name", &category.CategoryName, in.CategoryName)
	cols.string("category_slug", &category.CategorySlug, in.CategorySlug)
	now := m.now().UTC()
	category.UpdatedAt = &now
	cols.add("updated_at")

	if err := m.repo.Update(ctx, category, cols...); err != nil {
		return persistError(err, "update", "category", categorySlugTaken)
	}
	return nil
}

func (m *ServiceCategoryManager) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID, "category")
	if err != nil {
		return err
	}
	if err := m.repo.Delete(ctx, id); err != nil {
		return deleteError(err, "category", categoryNotFound)
	}
	return nil
}
