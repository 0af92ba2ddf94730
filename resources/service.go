package resources

import (
	"context"
	"strings"
	"time"

	"github.com/rpupo63/agency-portfolio-backend/database"
	"github.com/rpupo63/agency-portfolio-backend/errs"
	"github.com/rpupo63/agency-portfolio-backend/models"
	"github.com/rpupo63/agency-portfolio-backend/storage"
	"gorm.io/datatypes"
)

const (
	serviceSlugTaken       = "Slug already exists. Please use a unique slug."
	serviceSlugTakenUpdate = "Slug already exists. Use a unique one."
	serviceNotFound        = "Service not found"
)

// ServiceInput carries create and update fields. nil means "not supplied".
type ServiceInput struct {
	Name            *string
	Slug            *string
	Description     *string
	MetaTitle       *string
	MetaDescription *string
	Content         *string
	Status          *string
	Tags            []string
	ViewPoint       []string
	Image           *storage.Upload
}

type ServiceManager struct {
	repo  database.Collection[models.Service]
	media *media
	now   func() time.Time
}

func NewServiceManager(repo database.Collection[models.Service], store storage.ObjectStore) *ServiceManager {
	return &ServiceManager{repo: repo, media: newMedia(store, "services"), now: time.Now}
}

// Create stores a new service. The image is uploaded under the slug before the
// document is written.
func (m *ServiceManager) Create(ctx context.Context, in ServiceInput) (*models.Service, error) {
	if in.Image == nil {
		return nil, errs.NewMissingRequiredFieldError("image", "Image file is required")
	}
	if err := requireValue("slug", "Slug is required", in.Slug); err != nil {
		return nil, err
	}
	if err := checkSlug("slug", in.Slug); err != nil {
		return nil, err
	}
	tags := NormalizeList(in.Tags)
	viewPoint := NormalizeList(in.ViewPoint)

	existing, err := m.repo.FindByKey(ctx, *in.Slug)
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "service", err)
	}
	if existing != nil {
		return nil, errs.NewConflictError(serviceSlugTaken)
	}

	image, err := m.media.upload(ctx, storage.ServicesFolder, *in.Slug, *in.Image)
	if err != nil {
		return nil, err
	}

	service := &models.Service{
		Name:            strOrEmpty(in.Name),
		Slug:            *in.Slug,
		Description:     strOrEmpty(in.Description),
		MetaTitle:       strOrEmpty(in.MetaTitle),
		MetaDescription: strOrEmpty(in.MetaDescription),
		Content:         strOrEmpty(in.Content),
		Status:          strOrEmpty(in.Status),
		Image:           image.url,
		Tags:            datatypes.JSONSlice[string](listOrEmpty(tags)),
		ViewPoint:       datatypes.JSONSlice[string](listOrEmpty(viewPoint)),
		CreatedAt:       m.now().UTC(),
	}
	if err := m.repo.Add(ctx, service); err != nil {
		m.media.discard(ctx, "service insert failed", image)
		return nil, persistError(err, "create", "service", serviceSlugTaken)
	}
	return service, nil
}

func (m *ServiceManager) List(ctx context.Context) ([]*models.Service, error) {
	services, err := m.repo.FindAll(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "services", err)
	}
	return nonNil(services), nil
}

func (m *ServiceManager) GetBySlug(ctx context.Context, slug string) (*models.Service, error) {
	service, err := m.repo.FindByKey(ctx, slug)
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "service", err)
	}
	if service == nil {
		return nil, errs.NewNotFoundError(serviceNotFound)
	}
	return service, nil
}

func (m *ServiceManager) GetByID(ctx context.Context, rawID string) (*models.Service, error) {
	id, err := parseID(rawID, "service")
	if err != nil {
		return nil, err
	}
	service, err := m.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "service", err)
	}
	if service == nil {
		return nil, errs.NewNotFoundError(serviceNotFound)
	}
	return service, nil
}

// FilterByViewPoint returns services whose view_point list shares at least one
// value with the comma separated filter. Matching ignores case.
func (m *ServiceManager) FilterByViewPoint(ctx context.Context, filter string) ([]*models.Service, error) {
	wanted := make(map[string]bool)
	for _, v := range splitCSV(filter) {
		wanted[strings.ToLower(v)] = true
	}
	if len(wanted) == 0 {
		return nil, errs.NewMissingRequiredFieldError("view_point", "view_point query is required")
	}

	services, err := m.repo.FindAll(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "services", err)
	}
	filtered := []*models.Service{}
	for _, service := range services {
		for _, vp := range service.ViewPoint {
			if wanted[strings.ToLower(strings.TrimSpace(vp))] {
				filtered = append(filtered, service)
				break
			}
		}
	}
	return filtered, nil
}

// Update applies the supplied fields. A new image is uploaded first, the
// document written, and only then is the previous object removed.
func (m *ServiceManager) Update(ctx context.Context, rawID string, in ServiceInput) error {
	id, err := parseID(rawID, "service")
	if err != nil {
		return err
	}
	if suppliedEmpty(in.Slug) {
		return errs.NewMissingRequiredFieldError("slug", "Slug is required")
	}
	if err := checkSlug("slug", in.Slug); err != nil {
		return err
	}
	tags := NormalizeList(in.Tags)
	viewPoint := NormalizeList(in.ViewPoint)

	service, err := m.repo.FindByID(ctx, id)
	if err != nil {
		return errs.NewDatabaseError("fetch", "service", err)
	}
	if service == nil {
		return errs.NewNotFoundError(serviceNotFound)
	}

	if in.Slug != nil && *in.Slug != service.Slug {
		taken, err := m.repo.KeyTaken(ctx, *in.Slug, service.ID)
		if err != nil {
			return errs.NewDatabaseError("fetch", "service", err)
		}
		if taken {
			return errs.NewConflictError(serviceSlugTakenUpdate)
		}
	}

	var cols columns
	cols.string("name", &service.Name, in.Name)
	cols.string("slug", &service.Slug, in.Slug)
	cols.string("description", &service.Description, in.Description)
	cols.string("meta_title", &service.MetaTitle, in.MetaTitle)
	cols.string("meta_description", &service.MetaDescription, in.MetaDescription)
	cols.string("content", &service.Content, in.Content)
	cols.string("status", &service.Status, in.Status)
	if tags != nil {
		service.Tags = tags
		cols.add("tags")
	}
	if viewPoint != nil {
		service.ViewPoint = viewPoint
		cols.add("view_point")
	}

	previousImage := service.Image
	var image object
	if in.Image != nil {
		image, err = m.media.upload(ctx, storage.ServicesFolder, service.Slug, *in.Image)
		if err != nil {
			return err
		}
		service.Image = image.url
		cols.add("image")
	}
	if cols.empty() {
		return nil
	}

	now := m.now().UTC()
	service.UpdatedAt = &now
	cols.add("updated_at")

	if err := m.repo.Update(ctx, service, cols...); err != nil {
		if in.Image != nil && storage.PublicID(previousImage) != image.publicID {
			m.media.discard(ctx, "service update failed", image)
		}
		return persistError(err, "update", "service", serviceSlugTakenUpdate)
	}
	if in.Image != nil {
		m.media.removeURLs(ctx, storage.ServicesFolder, "service image replaced", []string{previousImage}, image.publicID)
	}
	return nil
}

// Delete removes the service, then its image.
func (m *ServiceManager) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID, "service")
	if err != nil {
		return err
	}
	service, err := m.repo.FindByID(ctx, id)
	if err != nil {
		return errs.NewDatabaseError("fetch", "service", err)
	}
	if service == nil {
		return errs.NewNotFoundError(serviceNotFound)
	}
	if err := m.repo.Delete(ctx, id); err != nil {
		return deleteError(err, "service", serviceNotFound)
	}
	m.media.removeURLs(ctx, storage.ServicesFolder, "service deleted", []string{service.Image})
	return nil
}
