package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Service is an offering shown on the agency site.
type Service struct {
	ID              uuid.UUID                   `json:"_id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name            string                      `json:"name" db:"name" gorm:"type:text"`
	Slug            string                      `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_services_slug"`
	Description     string                      `json:"description" db:"description" gorm:"type:text"`
	MetaTitle       string                      `json:"metaTitle" db:"meta_title" gorm:"type:text"`
	MetaDescription string                      `json:"metaDescription" db:"meta_description" gorm:"type:text"`
	Content         string                      `json:"content" db:"content" gorm:"type:text"`
	Status          string                      `json:"status" db:"status" gorm:"type:text"`
	Image           string                      `json:"image" db:"image" gorm:"type:text"`
	Tags            datatypes.JSONSlice[string] `json:"tags" db:"tags"`
	ViewPoint       datatypes.JSONSlice[string] `json:"view_point" db:"view_point"`
	CreatedAt       time.Time                   `json:"createdAt" db:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       *time.Time                  `json:"updatedAt,omitempty" db:"updated_at" gorm:"type:timestamptz"`
}

func (Service) TableName() string { return ServicesCollection }

func (s *Service) DocumentID() uuid.UUID      { return s.ID }
func (s *Service) SetDocumentID(id uuid.UUID) { s.ID = id }
func (s *Service) DocumentKey() string        { return s.Slug }
func (s *Service) CreatedTime() time.Time     { return s.CreatedAt }
func (s *Service) SetCreatedTime(t time.Time) { s.CreatedAt = t }
