package models

import (
	"time"

	"github.com/google/uuid"
)

type ServiceCategory struct {
	ID           uuid.UUID  `json:"_id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	CategoryName string     `json:"category_name" db:"category_name" gorm:"type:text;not null"`
	CategorySlug string     `json:"category_slug" db:"category_slug" gorm:"type:text;not null;uniqueIndex:idx_service_categories_slug"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty" db:"updated_at" gorm:"type:timestamptz"`
}

func (ServiceCategory) TableName() string { return ServiceCategoriesCollection }

func (c *ServiceCategory) DocumentID() uuid.UUID      { return c.ID }
func (c *ServiceCategory) SetDocumentID(id uuid.UUID) { c.ID = id }
func (c *ServiceCategory) DocumentKey() string        { return c.CategorySlug }
func (c *ServiceCategory) CreatedTime() time.Time     { return c.CreatedAt }
func (c *ServiceCategory) SetCreatedTime(t time.Time) { c.CreatedAt = t }
