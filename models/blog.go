package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Blog represents a published article with its cover image.
type Blog struct {
	ID              uuid.UUID                   `json:"_id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title           string                      `json:"title" db:"title" gorm:"type:text"`
	Slug            string                      `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_blogs_slug"`
	Category        string                      `json:"category" db:"category" gorm:"type:text"`
	MetaTitle       string                      `json:"metaTitle" db:"meta_title" gorm:"type:text"`
	MetaDescription string                      `json:"metaDescription" db:"meta_description" gorm:"type:text"`
	Description     string                      `json:"description" db:"description" gorm:"type:text"`
	Content         string                      `json:"content" db:"content" gorm:"type:text"`
	ReadTime        string                      `json:"readTime" db:"read_time" gorm:"type:text"`
	CommentCount    int                         `json:"commentCount" db:"comment_count" gorm:"type:integer;not null;default:0"`
	Tags            datatypes.JSONSlice[string] `json:"tags" db:"tags"`
	Image           string                      `json:"image" db:"image" gorm:"type:text"`
	CreatedAt       time.Time                   `json:"createdAt" db:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       *time.Time                  `json:"updatedAt,omitempty" db:"updated_at" gorm:"type:timestamptz"`
}

func (Blog) TableName() string { return BlogsCollection }

func (b *Blog) DocumentID() uuid.UUID      { return b.ID }
func (b *Blog) SetDocumentID(id uuid.UUID) { b.ID = id }
func (b *Blog) DocumentKey() string        { return b.Slug }
func (b *Blog) CreatedTime() time.Time     { return b.CreatedAt }
func (b *Blog) SetCreatedTime(t time.Time) { b.CreatedAt = t }
