package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactQuery is a message left through the public contact form.
type ContactQuery struct {
	ID        uuid.UUID  `json:"_id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name      string     `json:"name" db:"name" gorm:"type:text"`
	Email     string     `json:"email" db:"email" gorm:"type:text"`
	Phone     string     `json:"phone" db:"phone" gorm:"type:text"`
	Message   string     `json:"message" db:"message" gorm:"type:text"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP;index:idx_contact_queries_created_at"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" db:"updated_at" gorm:"type:timestamptz"`
}

func (ContactQuery) TableName() string { return ContactQueriesCollection }

func (q *ContactQuery) DocumentID() uuid.UUID      { return q.ID }
func (q *ContactQuery) SetDocumentID(id uuid.UUID) { q.ID = id }
func (q *ContactQuery) DocumentKey() string        { return "" }
func (q *ContactQuery) CreatedTime() time.Time     { return q.CreatedAt }
func (q *ContactQuery) SetCreatedTime(t time.Time) { q.CreatedAt = t }
