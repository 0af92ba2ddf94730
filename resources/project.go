package resources

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/agency-portfolio-backend/database"
	"github.com/rpupo63/agency-portfolio-backend/errs"
	"github.com/rpupo63/agency-portfolio-backend/models"
	"github.com/rpupo63/agency-portfolio-backend/storage"
	"gorm.io/datatypes"
)

const (
	projectSlugTaken   = "Slug already exists. Please use a unique slug."
	projectNotFound    = "Project not found"
	invalidCategoryIDs = "One or more category IDs are invalid"
)

// ProjectInput carries create and update fields. nil means "not supplied".
// Images replaces the whole gallery when non-empty.
type ProjectInput struct {
	Name         *string
	Slug         *string
	Description  *string
	Content      *string
	Status       *string
	Budget       *string
	StartDate    *string
	EndDate      *string
	LiveLink     *string
	GitLink      *string
	UserReact    *int
	ClientInfo   *models.ClientInfo
	Tags         []string
	CategoryIDs  []string
	FeatureImage *storage.Upload
	Images       []storage.Upload
}

type ProjectManager struct {
	repo       database.Collection[models.Project]
	categories database.Collection[models.ProjectCategory]
	media      *media
	now        func() time.Time
}

func NewProjectManager(repo database.Collection[models.Project], categories database.Collection[models.ProjectCategory], store storage.ObjectStore) *ProjectManager {
	return &ProjectManager{repo: repo, categories: categories, media: newMedia(store, "projects"), now: time.Now}
}

// Create validates everything, including that every category id resolves,
// before the first upload. The feature image is stored under the slug and
// gallery images under generated ids.
func (m *ProjectManager) Create(ctx context.Context, in ProjectInput) (*models.Project, error) {
	if err := requireValue("slug", "Slug is required", in.Slug); err != nil {
		return nil, err
	}
	if err := checkSlug("slug", in.Slug); err != nil {
		return nil, err
	}
	if in.FeatureImage == nil {
		return nil, errs.NewMissingRequiredFieldError("feature_image", "Feature image is required")
	}
	categoryIDs, err := parseCategoryIDs(in.CategoryIDs)
	if err != nil {
		return nil, err
	}
	tags := NormalizeList(in.Tags)
	startDate, err := parseDate("start_date", in.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate("end_date", in.EndDate)
	if err != nil {
		return nil, err
	}

	existing, err := m.repo.FindByKey(ctx, *in.Slug)
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "project", err)
	}
	if existing != nil {
		return nil, errs.NewConflictError(projectSlugTaken)
	}
	if err := m.resolveCategories(ctx, categoryIDs); err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:        strOrEmpty(in.Name),
		Slug:        *in.Slug,
		Description: strOrEmpty(in.Description),
		Content:     strOrEmpty(in.Content),
		Status:      strOrEmpty(in.Status),
		Budget:      strOrEmpty(in.Budget),
		StartDate:   startDate,
		EndDate:     endDate,
		LiveLink:    strOrEmpty(in.LiveLink),
		GitLink:     strOrEmpty(in.GitLink),
		Tags:        datatypes.JSONSlice[string](listOrEmpty(tags)),
		CategoryIDs: datatypes.JSONSlice[uuid.UUID](categoryIDs),
		Images:      datatypes.JSONSlice[string]{},
		CreatedAt:   m.now().UTC(),
	}
	if in.UserReact != nil {
		project.UserReact = *in.UserReact
	}
	if in.ClientInfo != nil {
		project.ClientInfo = datatypes.NewJSONType(*in.ClientInfo)
	}

	feature, err := m.media.upload(ctx, storage.ProjectsFolder, project.Slug, *in.FeatureImage)
	if err != nil {
		return nil, err
	}
	project.FeatureImage = feature.url

	gallery, err := m.media.uploadGallery(ctx, storage.ProjectsFolder, project.Slug, in.Images)
	if err != nil {
		m.media.discard(ctx, "project gallery upload failed", feature)
		return nil, err
	}
	project.Images = urls(gallery)

	if err := m.repo.Add(ctx, project); err != nil {
		m.media.discard(ctx, "project insert failed", append(gallery, feature)...)
		return nil, persistError(err, "create", "project", projectSlugTaken)
	}
	return project, nil
}

// resolveCategories fails when any id has no matching category. The error does
// not say which one.
func (m *ProjectManager) resolveCategories(ctx context.Context, ids []uuid.UUID) error {
	found, err := m.categories.FindByIDs(ctx, ids)
	if err != nil {
		return errs.NewDatabaseError("fetch", "project categories", err)
	}
	if len(found) != len(ids) {
		return errs.NewInvalidFieldError("category_ids", invalidCategoryIDs)
	}
	return nil
}

func (m *ProjectManager) List(ctx context.Context) ([]*models.Project, error) {
	projects, err := m.repo.FindAll(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "projects", err)
	}
	return nonNil(projects), nil
}

func (m *ProjectManager) GetByID(ctx context.Context, rawID string) (*models.Project, error) {
	id, err := parseID(rawID, "project")
	if err != nil {
		return nil, err
	}
	project, err := m.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "project", err)
	}
	if project == nil {
		return nil, errs.NewNotFoundError(projectNotFound)
	}
	return project, nil
}

func (m *ProjectManager) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	project, err := m.repo.FindByKey(ctx, slug)
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "project", err)
	}
	if project == nil {
		return nil, errs.NewNotFoundError(projectNotFound)
	}
	return project, nil
}

// Update applies the supplied fields. Replaced media is removed only after the
// document has been written.
func (m *ProjectManager) Update(ctx context.Context, rawID string, in ProjectInput) error {
	id, err := parseID(rawID, "project")
	if err != nil {
		return err
	}
	if suppliedEmpty(in.Slug) {
		return errs.NewMissingRequiredFieldError("slug", "Slug is required")
	}
	if err := checkSlug("slug", in.Slug); err != nil {
		return err
	}
	var categoryIDs []uuid.UUID
	if in.CategoryIDs != nil {
		if categoryIDs, err = parseCategoryIDs(in.CategoryIDs); err != nil {
			return err
		}
	}
	tags := NormalizeList(in.Tags)
	startDate, err := parseDate("start_date", in.StartDate)
	if err != nil {
		return err
	}
	endDate, err := parseDate("end_date", in.EndDate)
	if err != nil {
		return err
	}

	project, err := m.repo.FindByID(ctx, id)
	if err != nil {
		return errs.NewDatabaseError("fetch", "project", err)
	}
	if project == nil {
		return errs.NewNotFoundError(projectNotFound)
	}
	if in.Slug != nil && *in.Slug != project.Slug {
		taken, err := m.repo.KeyTaken(ctx, *in.Slug, project.ID)
		if err != nil {
			return errs.NewDatabaseError("fetch", "project", err)
		}
		if taken {
			return errs.NewConflictError(projectSlugTaken)
		}
	}
	if categoryIDs != nil {
		if err := m.resolveCategories(ctx, categoryIDs); err != nil {
			return err
		}
	}

	var cols columns
	cols.string("name", &project.Name, in.Name)
	cols.string("slug", &project.Slug, in.Slug)
	cols.string("description", &project.Description, in.Description)
	cols.string("content", &project.Content, in.Content)
	cols.string("status", &project.Status, in.Status)
	cols.string("budget", &project.Budget, in.Budget)
	cols.string("live_link", &project.LiveLink, in.LiveLink)
	cols.string("git_link", &project.GitLink, in.GitLink)
	cols.int("user_react", &project.UserReact, in.UserReact)
	if in.StartDate != nil {
		project.StartDate = startDate
		cols.add("start_date")
	}
	if in.EndDate != nil {
		project.EndDate = endDate
		cols.add("end_date")
	}
	if in.ClientInfo != nil {
		project.ClientInfo = datatypes.NewJSONType(*in.ClientInfo)
		cols.add("client_info")
	}
	if tags != nil {
		project.Tags = tags
		cols.add("tags")
	}
	if categoryIDs != nil {
		project.CategoryIDs = categoryIDs
		cols.add("category_ids")
	}

	previousFeature := project.FeatureImage
	previousGallery := []string(project.Images)
	var fresh []object
	var feature object
	if in.FeatureImage != nil {
		feature, err = m.media.upload(ctx, storage.ProjectsFolder, project.Slug, *in.FeatureImage)
		if err != nil {
			return err
		}
		project.FeatureImage = feature.url
		cols.add("feature_image")
		if storage.PublicID(previousFeature) != feature.publicID {
			fresh = append(fresh, feature)
		}
	}
	replaceGallery := len(in.Images) > 0
	if replaceGallery {
		gallery, err := m.media.uploadGallery(ctx, storage.ProjectsFolder, project.Slug, in.Images)
		if err != nil {
			m.media.discard(ctx, "project gallery upload failed", fresh...)
			return err
		}
		project.Images = urls(gallery)
		cols.add("images")
		fresh = append(fresh, gallery...)
	}
	if cols.empty() {
		return nil
	}

	now := m.now().UTC()
	project.UpdatedAt = &now
	cols.add("updated_at")

	if err := m.repo.Update(ctx, project, cols...); err != nil {
		m.media.discard(ctx, "project update failed", fresh...)
		return persistError(err, "update", "project", projectSlugTaken)
	}
	if in.FeatureImage != nil {
		m.media.removeURLs(ctx, storage.ProjectsFolder, "project feature image replaced", []string{previousFeature}, feature.publicID)
	}
	if replaceGallery {
		m.media.removeURLs(ctx, storage.ProjectsFolder, "project gallery replaced", previousGallery)
	}
	return nil
}

// Delete removes the project, then its feature image and gallery.
func (m *ProjectManager) Delete(ctx context.Context, rawID string) error {
	project, err := m.GetByID(ctx, rawID)
	if err != nil {
		return err
	}
	if err := m.repo.Delete(ctx, project.ID); err != nil {
		return deleteError(err, "project", projectNotFound)
	}
	m.media.removeURLs(ctx, storage.ProjectsFolder, "project deleted", append([]string{project.FeatureImage}, project.Images...))
	return nil
}

// parseDate accepts a calendar date or an RFC 3339 timestamp. A supplied blank
// value clears the date.
func parseDate(field string, raw *string) (*datatypes.Date, error) {
	if raw == nil {
		return nil, nil
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			d := datatypes.Date(t)
			return &d, nil
		}
	}
	return nil, errs.NewInvalidFieldError(field, field+" must be a date (YYYY-MM-DD)")
}
