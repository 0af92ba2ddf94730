package storage

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryStore keeps objects in process. Used for local development and tests.
type MemoryStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	publicURL string
}

func NewMemoryStore(publicURL string) *MemoryStore {
	if publicURL == "" {
		publicURL = "http://localhost/objects"
	}
	return &MemoryStore{objects: make(map[string][]byte), publicURL: publicURL}
}

func (m *MemoryStore) Upload(_ context.Context, folder, publicID string, file Upload) (string, error) {
	var data []byte
	if file.Body != nil {
		b, err := io.ReadAll(file.Body)
		if err != nil {
			return "", fmt.Errorf("read upload: %w", err)
		}
		data = b
	}
	m.mu.Lock()
	m.objects[ObjectKey(folder, publicID)] = data
	m.mu.Unlock()
	return PublicURL(m.publicURL, folder, publicID), nil
}

// Delete is idempotent, as S3 deletes are.
func (m *MemoryStore) Delete(_ context.Context, folder, publicID string) error {
	m.mu.Lock()
	delete(m.objects, ObjectKey(folder, publicID))
	m.mu.Unlock()
	return nil
}

// Has reports whether an object exists under folder/publicID.
func (m *MemoryStore) Has(folder, publicID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[ObjectKey(folder, publicID)]
	return ok
}

// Len returns the number of stored objects.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
