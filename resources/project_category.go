package resources

import (
	"context"
	"time"

	"github.com/rpupo63/agency-portfolio-backend/database"
	"github.com/rpupo63/agency-portfolio-backend/errs"
	"github.com/rpupo63/agency-portfolio-backend/models"
	"github.com/rpupo63/agency-portfolio-backend/storage"
)

const projectCategoryNotFound = "Project category not found"

type ProjectCategoryInput struct {
	CategoryName *string
	CategorySlug *string
	Status       *string
	Order        *int
	Image        *storage.Upload
}

func (in ProjectCategoryInput) supplied() bool {
	return in.CategoryName != nil || in.CategorySlug != nil || in.Status != nil || in.Order != nil || in.Image != nil
}

// ProjectCategoryManager handles the categories projects reference. Deleting
// a category leaves project references untouched.
type ProjectCategoryManager struct {
	repo  database.Collection[models.ProjectCategory]
	media *media
	now   func() time.Time
}

func NewProjectCategoryManager(repo database.Collection[models.ProjectCategory], store storage.ObjectStore) *ProjectCategoryManager {
	return &ProjectCategoryManager{repo: repo, media: newMedia(store, "project_categories"), now: time.Now}
}

func (m *ProjectCategoryManager) Create(ctx context.Context, in ProjectCategoryInput) (*models.ProjectCategory, error) {
	if strOrEmpty(in.CategoryName) == "" || strOrEmpty(in.CategorySlug) == "" {
		return nil, errs.NewMissingRequiredFieldError("category_slug", "Name and slug are required")
	}
	if err := checkSlug("category_slug", in.CategorySlug); err != nil {
		return nil, err
	}
	existing, err := m.repo.FindByKey(ctx, *in.CategorySlug)
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "project category", err)
	}
	if existing != nil {
		return nil, errs.NewConflictError(categorySlugTaken)
	}

	category := &models.ProjectCategory{
		CategoryName: *in.CategoryName,
		CategorySlug: *in.CategorySlug,
		Status:       strOrEmpty(in.Status),
		CreatedAt:    m.now().UTC(),
	}
	if in.Order != nil {
		category.Order = *in.Order
	}

	var uploaded []object
	if in.Image != nil {
		image, err := m.media.upload(ctx, storage.ProjectCategoriesFolder, category.CategorySlug, *in.Image)
		if err != nil {
			return nil, err
		}
		category.Image = image.url
		uploaded = append(uploaded, image)
	}

	if err := m.repo.Add(ctx, category); err != nil {
		m.media.discard(ctx, "project category insert failed", uploaded...)
		return nil, persistError(err, "create", "project category", categorySlugTaken)
	}
	return category, nil
}

func (m *ProjectCategoryManager) List(ctx context.Context) ([]*models.ProjectCategory, error) {
	categories, err := m.repo.FindAll(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "project categories", err)
	}
	return nonNil(categories), nil
}

func (m *ProjectCategoryManager) GetByID(ctx context.Context, rawID string) (*models.ProjectCategory, error) {
	id, err := parseID(rawID, "project category")
	if err != nil {
		return nil, err
	}
	category, err := m.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "project category", err)
	}
	if category == nil {
		return nil, errs.NewNotFoundError(projectCategoryNotFound)
	}
	return category, nil
}

func (m *ProjectCategoryManager) Update(ctx context.Context, rawID string, in ProjectCategoryInput) error {
	id, err := parseID(rawID, "project category")
	if err != nil {
		return err
	}
	if !in.supplied() {
		return errs.NewBadRequestError("Nothing to update")
	}
	if suppliedEmpty(in.CategorySlug) {
		return errs.NewMissingRequiredFieldError("category_slug", "Slug cannot be empty")
	}
	if err := checkSlug("category_slug", in.CategorySlug); err != nil {
		return err
	}
	if suppliedEmpty(in.CategoryName) {
		return errs.NewMissingRequiredFieldError("category_name", "Name cannot be empty")
	}

	category, err := m.repo.FindByID(ctx, id)
	if err != nil {
		return errs.NewDatabaseError("fetch", "project category", err)
	}
	if category == nil {
		return errs.NewNotFoundError(projectCategoryNotFound)
	}
	if in.CategorySlug != nil && *in.CategorySlug != category.CategorySlug {
		taken, err := m.repo.KeyTaken(ctx, *in.CategorySlug, category.ID)
		if err != nil {
			return errs.NewDatabaseError("fetch", "project category", err)
		}
		if taken {
			return errs.NewConflictError(categorySlugTaken)
		}
	}

	var cols columns
	cols.string("category_name", &category.CategoryName, in.CategoryName)
	cols.string("category_slug", &category.CategorySlug, in.CategorySlug)
	cols.string("status", &category.Status, in.Status)
	cols.int("display_order", &category.Order, in.Order)

	previousImage := category.Image
	var image object
	if in.Image != nil {
		image, err = m.media.upload(ctx, storage.ProjectCategoriesFolder, category.CategorySlug, *in.Image)
		if err != nil {
			return err
		}
		category.Image = image.url
		cols.add("image")
	}

	now := m.now().UTC()
	category.UpdatedAt = &now
	cols.add("updated_at")

	if err := m.repo.Update(ctx, category, cols...); err != nil {
		if in.Image != nil && storage.PublicID(previousImage) != image.publicID {
			m.media.discard(ctx, "project category update failed", image)
		}
		return persistError(err, "update", "project category", categorySlugTaken)
	}
	if in.Image != nil {
		m.media.removeURLs(ctx, storage.ProjectCategoriesFolder, "project category image replaced", []string{previousImage}, image.publicID)
	}
	return nil
}

func (m *ProjectCategoryManager) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID, "project category")
	if err != nil {
		return err
	}
	category, err := m.repo.FindByID(ctx, id)
	if err != nil {
		return errs.NewDatabaseError("fetch", "project category", err)
	}
	if category == nil {
		return errs.NewNotFoundError(projectCategoryNotFound)
	}
	if err := m.repo.Delete(ctx, id); err != nil {
		return deleteError(err, "project category", projectCategoryNotFound)
	}
	m.media.removeURLs(ctx, storage.ProjectCategoriesFolder, "project category deleted", []string{category.Image})
	return nil
}
