package resources

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/agency-portfolio-backend/database"
	"github.com/rpupo63/agency-portfolio-backend/errs"
	"github.com/rpupo63/agency-portfolio-backend/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cdn = "https://cdn.test"

// spyStore records every call and can be told to fail.
type spyStore struct {
	mu      sync.Mutex
	mem     *storage.MemoryStore
	uploads []string
	deletes []string

	failUpload func(folder, publicID string) error
	failDelete error
}

func newSpyStore() *spyStore {
	return &spyStore{mem: storage.NewMemoryStore(cdn)}
}

func (s *spyStore) Upload(ctx context.Context, folder, publicID string, file storage.Upload) (string, error) {
	s.mu.Lock()
	s.uploads = append(s.uploads, storage.ObjectKey(folder, publicID))
	fail := s.failUpload
	s.mu.Unlock()
	if fail != nil {
		if err := fail(folder, publicID); err != nil {
			return "", err
		}
	}
	return s.mem.Upload(ctx, folder, publicID, file)
}

func (s *spyStore) Delete(ctx context.Context, folder, publicID string) error {
	s.mu.Lock()
	s.deletes = append(s.deletes, storage.ObjectKey(folder, publicID))
	fail := s.failDelete
	s.mu.Unlock()
	if fail != nil {
		return fail
	}
	return s.mem.Delete(ctx, folder, publicID)
}

func (s *spyStore) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.uploads) + len(s.deletes)
}

func (s *spyStore) deleted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deletes...)
}

var errStoreDown = errors.New("object store unavailable")

func str(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func file(content string) *storage.Upload {
	return &storage.Upload{Filename: "img.png", ContentType: "image/png", Size: int64(len(content)), Body: strings.NewReader(content)}
}

func assertStatus(t *testing.T, want int, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, errs.StatusCode(err), err.Error())
}

type fixture struct {
	db    database.Database
	store *spyStore
	m     *Managers
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := database.NewInMemory()
	store := newSpyStore()
	return &fixture{db: db, store: store, m: New(db, store, stubTokens{}, nil)}
}

type stubTokens struct{}

func (stubTokens) Issue(id uuid.UUID) (string, error) {
	return "token-" + id.String(), nil
}
