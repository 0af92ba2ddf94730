package resources

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/agency-portfolio-backend/errs"
	"github.com/rpupo63/agency-portfolio-backend/metrics"
	"github.com/rpupo63/agency-portfolio-backend/storage"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// media couples document writes to object store side effects. Uploads
// happen before the document is written; removals happen after and never
// fail the caller. Objects that cannot be removed are logged and counted.
type media struct {
	store  storage.ObjectStore
	logger zerolog.Logger
}

// object is one uploaded image.
type object struct {
	folder   string
	publicID string
	url      string
}

func (m *media) upload(ctx context.Context, folder, publicID string, file storage.Upload) (object, error) {
	url, err := m.store.Upload(ctx, folder, publicID, file)
	if err != nil {
		return object{}, errs.NewUpstreamError("object store", err)
	}
	return object{folder: folder, publicID: publicID, url: url}, nil
}

// uploadGallery uploads files concurrently under generated ids, preserving
// their order. On failure every upload that did succeed is discarded.
func (m *media) uploadGallery(ctx context.Context, folder, prefix string, files []storage.Upload) ([]object, error) {
	uploaded := make([]object, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			obj, err := m.upload(gctx, folder, galleryID(prefix), file)
			if err != nil {
				return err
			}
			uploaded[i] = obj
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var done []object
		for _, obj := range uploaded {
			if obj.publicID != "" {
				done = append(done, obj)
			}
		}
		m.discard(ctx, "gallery upload failed", done...)
		return nil, err
	}
	return uploaded, nil
}

// discard removes freshly uploaded objects after a failed write.
func (m *media) discard(ctx context.Context, reason string, objects ...object) {
	for _, obj := range objects {
		m.remove(ctx, obj.folder, obj.publicID, reason)
	}
}

// removeURLs removes the objects behind previously stored URLs, skipping any
// whose public id is in keep.
func (m *media) removeURLs(ctx context.Context, folder, reason string, urls []string, keep ...string) {
	kept := make(map[string]bool, len(keep))
	for _, id := range keep {
		kept[id] = true
	}
	for _, u := range urls {
		publicID := storage.PublicID(u)
		if publicID == "" || kept[publicID] {
			continue
		}
		m.remove(ctx, folder, publicID, reason)
	}
}

func (m *media) remove(ctx context.Context, folder, publicID, reason string) {
	// cleanup outlives the request
	ctx = context.WithoutCancel(ctx)
	if err := m.store.Delete(ctx, folder, publicID); err != nil {
		metrics.OrphanedObjects.WithLabelValues(folder).Inc()
		m.logger.Warn().
			Err(err).
			Str("folder", folder).
			Str("publicId", publicID).
			Str("reason", reason).
			Msg("orphaned remote object")
	}
}

func urls(objects []object) []string {
	out := make([]string, len(objects))
	for i, obj := range objects {
		out[i] = obj.url
	}
	return out
}

func galleryID(prefix string) string {
	id := uuid.NewString()
	if prefix == "" {
		return id
	}
	return prefix + "-" + id
}
