package models

import (
	"time"

	"github.com/google/uuid"
)

const RoleAdmin = "admin"

// Admin is an account allowed to manage content. Password holds the bcrypt
// hash and is never serialised.
type Admin struct {
	ID        uuid.UUID `json:"_id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name      string    `json:"name" db:"name" gorm:"type:text"`
	Email     string    `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex:idx_admins_email"`
	Phone     string    `json:"phone" db:"phone" gorm:"type:text"`
	Password  string    `json:"-" db:"password" gorm:"type:text;not null"`
	Role      string    `json:"role" db:"role" gorm:"type:text;not null;default:admin"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

func (Admin) TableName() string { return AdminsCollection }

func (a *Admin) DocumentID() uuid.UUID      { return a.ID }
func (a *Admin) SetDocumentID(id uuid.UUID) { a.ID = id }
func (a *Admin) DocumentKey() string        { return a.Email }
func (a *Admin) CreatedTime() time.Time     { return a.CreatedAt }
func (a *Admin) SetCreatedTime(t time.Time) { a.CreatedAt = t }
