package resources

import (
	"context"
	"time"

	"github.com/rpupo63/agency-portfolio-backend/database"
	"github.com/rpupo63/agency-portfolio-backend/errs"
	"github.com/rpupo63/agency-portfolio-backend/models"
	"github.com/rpupo63/agency-portfolio-backend/storage"
	"gorm.io/datatypes"
)

const (
	blogSlugTaken = "Slug already exists"
	blogNotFound  = "Blog not found"
)

// BlogInput carries create and update fields. Tags may arrive as one
// JSON-encoded array or as separate values.
type BlogInput struct {
	Title           *string
	Slug            *string
	Category        *string
	MetaTitle       *string
	MetaDescription *string
	Description     *string
	Content         *string
	ReadTime        *string
	CommentCount    *int
	Tags            []string
	Image           *storage.Upload
}

type BlogManager struct {
	repo  database.Collection[models.Blog]
	media *media
	now   func() time.Time
}

func NewBlogManager(repo database.Collection[models.Blog], store storage.ObjectStore) *BlogManager {
	return &BlogManager{repo: repo, media: newMedia(store, "blogs"), now: time.Now}
}

func (m *BlogManager) Create(ctx context.Context, in BlogInput) (*models.Blog, error) {
	if err := requireValue("slug", "Slug is required", in.Slug); err != nil {
		return nil, err
	}
	if err := checkSlug("slug", in.Slug); err != nil {
		return nil, err
	}
	if in.Image == nil {
		return nil, errs.NewMissingRequiredFieldError("image", "Image file is required")
	}
	tags := NormalizeList(in.Tags)

	existing, err := m.repo.FindByKey(ctx, *in.Slug)
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "blog", err)
	}
	if existing != nil {
		return nil, errs.NewConflictError(blogSlugTaken)
	}

	image, err := m.media.upload(ctx, storage.BlogsFolder, *in.Slug, *in.Image)
	if err != nil {
		return nil, err
	}

	blog := &models.Blog{
		Title:           strOrEmpty(in.Title),
		Slug:            *in.Slug,
		Category:        strOrEmpty(in.Category),
		MetaTitle:       strOrEmpty(in.MetaTitle),
		MetaDescription: strOrEmpty(in.MetaDescription),
		Description:     strOrEmpty(in.Description),
		Content:         strOrEmpty(in.Content),
		ReadTime:        strOrEmpty(in.ReadTime),
		Tags:            datatypes.JSONSlice[string](listOrEmpty(tags)),
		Image:           image.url,
		CreatedAt:       m.now().UTC(),
	}
	if in.CommentCount != nil {
		blog.CommentCount = *in.CommentCount
	}
	if err := m.repo.Add(ctx, blog); err != nil {
		m.media.discard(ctx, "blog insert failed", image)
		return nil, persistError(err, "create", "blog", blogSlugTaken)
	}
	return blog, nil
}

// List returns blogs newest first.
func (m *BlogManager) List(ctx context.Context) ([]*models.Blog, error) {
	blogs, err := m.repo.FindAll(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "blogs", err)
	}
	return nonNil(blogs), nil
}

func (m *BlogManager) GetBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	blog, err := m.repo.FindByKey(ctx, slug)
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "blog", err)
	}
	if blog == nil {
		return nil, errs.NewNotFoundError(blogNotFound)
	}
	return blog, nil
}

func (m *BlogManager) GetByID(ctx context.Context, rawID string) (*models.Blog, error) {
	id, err := parseID(rawID, "blog")
	if err != nil {
		return nil, err
	}
	blog, err := m.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "blog", err)
	}
	if blog == nil {
		return nil, errs.NewNotFoundError(blogNotFound)
	}
	return blog, nil
}

// Update applies the supplied fields. A replacement image is stored under the
// new slug when one is supplied, otherwise under the current slug.
func (m *BlogManager) Update(ctx context.Context, rawID string, in BlogInput) error {
	if suppliedEmpty(in.Slug) {
		return errs.NewMissingRequiredFieldError("slug", "Slug is required")
	}
	if err := checkSlug("slug", in.Slug); err != nil {
		return err
	}
	tags := NormalizeList(in.Tags)
	blog, err := m.GetByID(ctx, rawID)
	if err != nil {
		return err
	}
	if in.Slug != nil && *in.Slug != blog.Slug {
		taken, err := m.repo.KeyTaken(ctx, *in.Slug, blog.ID)
		if err != nil {
			return errs.NewDatabaseError("fetch", "blog", err)
		}
		if taken {
			return errs.NewConflictError(blogSlugTaken)
		}
	}

	var cols columns
	cols.string("title", &blog.Title, in.Title)
	cols.string("slug", &blog.Slug, in.Slug)
	cols.string("category", &blog.Category, in.Category)
	cols.string("meta_title", &blog.MetaTitle, in.MetaTitle)
	cols.string("meta_description", &blog.MetaDescription, in.MetaDescription)
	cols.string("description", &blog.Description, in.Description)
	cols.string("content", &blog.Content, in.Content)
	cols.string("read_time", &blog.ReadTime, in.ReadTime)
	cols.int("comment_count", &blog.CommentCount, in.CommentCount)
	if tags != nil {
		blog.Tags = tags
		cols.add("tags")
	}

	previousImage := blog.Image
	var image object
	if in.Image != nil {
		image, err = m.media.upload(ctx, storage.BlogsFolder, blog.Slug, *in.Image)
		if err != nil {
			return err
		}
		blog.Image = image.url
		cols.add("image")
	}
	if cols.empty() {
		return nil
	}

	now := m.now().UTC()
	blog.UpdatedAt = &now
	cols.add("updated_at")

	if err := m.repo.Update(ctx, blog, cols...); err != nil {
		if in.Image != nil && storage.PublicID(previousImage) != image.publicID {
			m.media.discard(ctx, "blog update failed", image)
		}
		return persistError(err, "update", "blog", blogSlugTaken)
	}
	if in.Image != nil {
		m.media.removeURLs(ctx, storage.BlogsFolder, "blog image replaced", []string{previousImage}, image.publicID)
	}
	return nil
}

func (m *BlogManager) Delete(ctx context.Context, rawID string) error {
	blog, err := m.GetByID(ctx, rawID)
	if err != nil {
		return err
	}
	if err := m.repo.Delete(ctx, blog.ID); err != nil {
		return deleteError(err, "blog", blogNotFound)
	}
	m.media.removeURLs(ctx, storage.BlogsFolder, "blog deleted", []string{blog.Image})
	return nil
}
