package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectCategory groups projects in the portfolio. Order drives display
// position on the site.
type ProjectCategory struct {
	ID           uuid.UUID  `json:"_id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	CategoryName string     `json:"category_name" db:"category_name" gorm:"type:text;not null"`
	CategorySlug string     `json:"category_slug" db:"category_slug" gorm:"type:text;not null;uniqueIndex:idx_project_categories_slug"`
	Status       string     `json:"status" db:"status" gorm:"type:text"`
	Order        int        `json:"order" db:"display_order" gorm:"column:display_order;type:integer;not null;default:0"`
	Image        string     `json:"image,omitempty" db:"image" gorm:"type:text"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty" db:"updated_at" gorm:"type:timestamptz"`
}

func (ProjectCategory) TableName() string { return ProjectCategoriesCollection }

func (c *ProjectCategory) DocumentID() uuid.UUID      { return c.ID }
func (c *ProjectCategory) SetDocumentID(id uuid.UUID) { c.ID = id }
func (c *ProjectCategory) DocumentKey() string        { return c.CategorySlug }
func (c *ProjectCategory) CreatedTime() time.Time     { return c.CreatedAt }
func (c *ProjectCategory) SetCreatedTime(t time.Time) { c.CreatedAt = t }
