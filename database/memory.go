package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/agency-portfolio-backend/errs"
)

// memoryCollection keeps documents in process. It enforces key uniqueness the
// way the postgres unique indexes do. Update stores the whole document; the
// column list only matters to the SQL implementation.
type memoryCollection[T any, PT documentPtr[T]] struct {
	mu          sync.RWMutex
	docs        map[uuid.UUID]T
	order       []uuid.UUID
	keyed       bool
	newestFirst bool
	now         func() time.Time
}

func newMemoryCollection[T any, PT documentPtr[T]](keyed, newestFirst bool) *memoryCollection[T, PT] {
	return &memoryCollection[T, PT]{
		docs:        make(map[uuid.UUID]T),
		keyed:       keyed,
		newestFirst: newestFirst,
		now:         time.Now,
	}
}

func (c *memoryCollection[T, PT]) FindAll(_ context.Context) ([]*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	docs := make([]*T, 0, len(c.order))
	for _, id := range c.order {
		doc := c.docs[id]
		docs = append(docs, &doc)
	}
	if c.newestFirst {
		sort.SliceStable(docs, func(i, j int) bool {
			return PT(docs[i]).CreatedTime().After(PT(docs[j]).CreatedTime())
		})
	}
	return docs, nil
}

func (c *memoryCollection[T, PT]) FindByID(_ context.Context, id uuid.UUID) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	doc, ok := c.docs[id]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (c *memoryCollection[T, PT]) FindByKey(_ context.Context, key string) (*T, error) {
	if !c.keyed {
		return nil, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, id := range c.order {
		doc := c.docs[id]
		if PT(&doc).DocumentKey() == key {
			return &doc, nil
		}
	}
	return nil, nil
}

func (c *memoryCollection[T, PT]) KeyTaken(_ context.Context, key string, excludeID uuid.UUID) (bool, error) {
	if !c.keyed {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.keyTakenLocked(key, excludeID), nil
}

func (c *memoryCollection[T, PT]) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var docs []*T
	for _, id := range ids {
		if doc, ok := c.docs[id]; ok {
			docs = append(docs, &doc)
		}
	}
	return docs, nil
}

func (c *memoryCollection[T, PT]) Add(_ context.Context, doc *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prepareInsert(PT(doc), c.now)
	id := PT(doc).DocumentID()
	if _, exists := c.docs[id]; exists {
		return errs.ErrUniqueConstraintViolation
	}
	if c.keyed && c.keyTakenLocked(PT(doc).DocumentKey(), uuid.Nil) {
		return errs.ErrUniqueConstraintViolation
	}
	c.docs[id] = *doc
	c.order = append(c.order, id)
	return nil
}

func (c *memoryCollection[T, PT]) Update(_ context.Context, doc *T, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	id := PT(doc).DocumentID()
	if _, ok := c.docs[id]; !ok {
		return nil
	}
	if c.keyed && c.keyTakenLocked(PT(doc).DocumentKey(), id) {
		return errs.ErrUniqueConstraintViolation
	}
	c.docs[id] = *doc
	return nil
}

func (c *memoryCollection[T, PT]) Delete(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.docs[id]; !ok {
		return errs.ErrNotFound
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (c *memoryCollection[T, PT]) keyTakenLocked(key string, excludeID uuid.UUID) bool {
	if key == "" {
		return false
	}
	for id, doc := range c.docs {
		if id == excludeID {
			continue
		}
		if PT(&doc).DocumentKey() == key {
			return true
		}
	}
	return false
}
