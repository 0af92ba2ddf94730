package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ClientInfo describes who a project was delivered for.
type ClientInfo struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	Link    string `json:"link"`
}

// Project represents a portfolio entry. CategoryIDs reference ProjectCategory
// documents and are only validated when written.
type Project struct {
	ID           uuid.UUID                      `json:"_id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name         string                         `json:"name" db:"name" gorm:"type:text"`
	Slug         string                         `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_projects_slug"`
	Description  string                         `json:"description" db:"description" gorm:"type:text"`
	Content      string                         `json:"content" db:"content" gorm:"type:text"`
	Status       string                         `json:"status" db:"status" gorm:"type:text"`
	Tags         datatypes.JSONSlice[string]    `json:"tags" db:"tags"`
	Budget       string                         `json:"budget" db:"budget" gorm:"type:text"`
	StartDate    *datatypes.Date                `json:"start_date,omitempty" db:"start_date"`
	EndDate      *datatypes.Date                `json:"end_date,omitempty" db:"end_date"`
	LiveLink     string                         `json:"live_link" db:"live_link" gorm:"type:text"`
	GitLink      string                         `json:"git_link" db:"git_link" gorm:"type:text"`
	UserReact    int                            `json:"user_react" db:"user_react" gorm:"type:integer;not null;default:0"`
	ClientInfo   datatypes.JSONType[ClientInfo] `json:"client_info" db:"client_info"`
	CategoryIDs  datatypes.JSONSlice[uuid.UUID] `json:"category_ids" db:"category_ids"`
	FeatureImage string                         `json:"feature_image" db:"feature_image" gorm:"type:text;not null"`
	Images       datatypes.JSONSlice[string]    `json:"images" db:"images"`
	CreatedAt    time.Time                      `json:"createdAt" db:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    *time.Time                     `json:"updatedAt,omitempty" db:"updated_at" gorm:"type:timestamptz"`
}

func (Project) TableName() string { return ProjectsCollection }

func (p *Project) DocumentID() uuid.UUID      { return p.ID }
func (p *Project) SetDocumentID(id uuid.UUID) { p.ID = id }
func (p *Project) DocumentKey() string        { return p.Slug }
func (p *Project) CreatedTime() time.Time     { return p.CreatedAt }
func (p *Project) SetCreatedTime(t time.Time) { p.CreatedAt = t }
