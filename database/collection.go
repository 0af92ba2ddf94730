package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/agency-portfolio-backend/errs"
	"github.com/rpupo63/agency-portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Collection is one logical document collection. Lookups that find nothing
// return (nil, nil); Delete of a missing id returns errs.ErrNotFound.
type Collection[T any] interface {
	FindAll(ctx context.Context) ([]*T, error)
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindByKey(ctx context.Context, key string) (*T, error)
	KeyTaken(ctx context.Context, key string, excludeID uuid.UUID) (bool, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*T, error)
	Add(ctx context.Context, doc *T) error
	Update(ctx context.Context, doc *T, columns ...string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentPtr[T any] interface {
	*T
	models.Document
}

type gormCollection[T any, PT documentPtr[T]] struct {
	db          *gorm.DB
	keyColumn   string
	newestFirst bool
}

func newGormCollection[T any, PT documentPtr[T]](db *gorm.DB, keyColumn string, newestFirst bool) *gormCollection[T, PT] {
	return &gormCollection[T, PT]{db: db, keyColumn: keyColumn, newestFirst: newestFirst}
}

// FindAll returns every document, newest first when the collection is ordered
func (c *gormCollection[T, PT]) FindAll(ctx context.Context) ([]*T, error) {
	var docs []*T
	q := c.db.WithContext(ctx)
	if c.newestFirst {
		q = q.Order("created_at DESC")
	}
	err := q.Find(&docs).Error
	return docs, err
}

// FindByID returns a document by its ID
func (c *gormCollection[T, PT]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var doc T
	err := c.db.WithContext(ctx).First(&doc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// FindByKey returns a document by its unique key column (slug or email)
func (c *gormCollection[T, PT]) FindByKey(ctx context.Context, key string) (*T, error) {
	if c.keyColumn == "" {
		return nil, nil
	}
	var doc T
	err := c.db.WithContext(ctx).Where(c.keyEquals(key)).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *gormCollection[T, PT]) KeyTaken(ctx context.Context, key string, excludeID uuid.UUID) (bool, error) {
	if c.keyColumn == "" {
		return false, nil
	}
	var count int64
	q := c.db.WithContext(ctx).Model(new(T)).Where(c.keyEquals(key))
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (c *gormCollection[T, PT]) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*T, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var docs []*T
	err := c.db.WithContext(ctx).Where("id IN ?", ids).Find(&docs).Error
	return docs, err
}

// Add inserts a new document, assigning its ID and creation time when unset
func (c *gormCollection[T, PT]) Add(ctx context.Context, doc *T) error {
	prepareInsert(PT(doc), time.Now)
	return translateError(c.db.WithContext(ctx).Create(doc).Error)
}

// Update writes only the named columns of doc
func (c *gormCollection[T, PT]) Update(ctx context.Context, doc *T, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	err := c.db.WithContext(ctx).Model(doc).Select(columns).Updates(doc).Error
	return translateError(err)
}

// Delete removes a document by id
func (c *gormCollection[T, PT]) Delete(ctx context.Context, id uuid.UUID) error {
	res := c.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (c *gormCollection[T, PT]) keyEquals(key string) clause.Eq {
	return clause.Eq{Column: clause.Column{Name: c.keyColumn}, Value: key}
}

func prepareInsert(doc models.Document, now func() time.Time) {
	if doc.DocumentID() == uuid.Nil {
		doc.SetDocumentID(uuid.New())
	}
	if doc.CreatedTime().IsZero() {
		doc.SetCreatedTime(now().UTC())
	}
}

// translateError maps unique index violations onto errs.ErrUniqueConstraintViolation
// so callers can answer 409 regardless of which check caught the duplicate.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "SQLSTATE 23505") {
		return fmt.Errorf("%w: %v", errs.ErrUniqueConstraintViolation, err)
	}
	return err
}
