package storage

import (
	"context"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/rpupo63/agency-portfolio-backend/metrics"
)

// Folders used by each resource.
const (
	ServicesFolder          = "portfolio_images"
	BlogsFolder             = "cjus_blogs"
	ProjectsFolder          = "portfolio_projects"
	ProjectCategoriesFolder = "project_categories"
)

// Upload is one file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ObjectStore stores images under folder/publicID and hands back a public URL.
type ObjectStore interface {
	Upload(ctx context.Context, folder, publicID string, file Upload) (string, error)
	Delete(ctx context.Context, folder, publicID string) error
}

// ObjectKey is the storage key for a public id within a folder.
func ObjectKey(folder, publicID string) string {
	return path.Join(folder, publicID)
}

// PublicURL joins base with the object key.
func PublicURL(base, folder, publicID string) string {
	return strings.TrimRight(base, "/") + "/" + ObjectKey(folder, publicID)
}

// PublicID recovers the identifier from a URL built by PublicURL: the whole
// last path segment. Stores never append an extension, so dots belong to the id.
func PublicID(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	}
	p = strings.TrimRight(p, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	return p
}

// Instrument counts every operation of store.
func Instrument(store ObjectStore) ObjectStore {
	return instrumented{next: store}
}

type instrumented struct {
	next ObjectStore
}

func (s instrumented) Upload(ctx context.Context, folder, publicID string, file Upload) (string, error) {
	u, err := s.next.Upload(ctx, folder, publicID, file)
	metrics.ObjectStoreOperations.WithLabelValues("upload", metrics.Status(err)).Inc()
	return u, err
}

func (s instrumented) Delete(ctx context.Context, folder, publicID string) error {
	err := s.next.Delete(ctx, folder, publicID)
	metrics.ObjectStoreOperations.WithLabelValues("delete", metrics.Status(err)).Inc()
	return err
}
