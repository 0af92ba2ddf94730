package models

import (
	"time"

	"github.com/google/uuid"
)

// Document is implemented by every persisted collection type. The key is the
// collection's human-chosen unique field (slug, category slug, email), or ""
// for collections without one.
type Document interface {
	DocumentID() uuid.UUID
	SetDocumentID(id uuid.UUID)
	DocumentKey() string
	CreatedTime() time.Time
	SetCreatedTime(t time.Time)
}

// Collection names, also used as table names.
const (
	AdminsCollection            = "admins"
	ServicesCollection          = "services"
	ServiceCategoriesCollection = "service_categories"
	ProjectsCollection          = "projects"
	ProjectCategoriesCollection = "project_categories"
	BlogsCollection             = "blogs"
	ContactQueriesCollection    = "contact_queries"
)
