// Package resources holds one manager per collection. Managers validate
// input, enforce slug uniqueness, coordinate media with the object store and
// shape the persisted document. They return *errs.ApiErr values the HTTP
// layer renders directly.
package resources

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/agency-portfolio-backend/database"
	"github.com/rpupo63/agency-portfolio-backend/errs"
	"github.com/rpupo63/agency-portfolio-backend/models"
	"github.com/rpupo63/agency-portfolio-backend/storage"
	"github.com/rs/zerolog/log"
)

// TokenIssuer issues admin session tokens.
type TokenIssuer interface {
	Issue(adminID uuid.UUID) (string, error)
}

// Notifier is told about every stored contact query.
type Notifier interface {
	NotifyContactQuery(ctx context.Context, query *models.ContactQuery) error
}

// Managers bundles every resource manager over one database and object store.
type Managers struct {
	Services          *ServiceManager
	ServiceCategories *ServiceCategoryManager
	ProjectCategories *ProjectCategoryManager
	Projects          *ProjectManager
	Blogs             *BlogManager
	ContactQueries    *ContactQueryManager
	Admins            *AdminManager
}

func New(db database.Database, store storage.ObjectStore, tokens TokenIssuer, notifier Notifier) *Managers {
	return &Managers{
		Services:          NewServiceManager(db.ServiceRepo(), store),
		ServiceCategories: NewServiceCategoryManager(db.ServiceCategoryRepo()),
		ProjectCategories: NewProjectCategoryManager(db.ProjectCategoryRepo(), store),
		Projects:          NewProjectManager(db.ProjectRepo(), db.ProjectCategoryRepo(), store),
		Blogs:             NewBlogManager(db.BlogRepo(), store),
		ContactQueries:    NewContactQueryManager(db.ContactQueryRepo(), notifier),
		Admins:            NewAdminManager(db.AdminRepo(), tokens),
	}
}

func newMedia(store storage.ObjectStore, manager string) *media {
	return &media{
		store:  store,
		logger: log.With().Str("manager", manager).Logger(),
	}
}

// parseID turns a path parameter into a document id.
func parseID(raw, entity string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError("id", "Invalid "+entity+" ID")
	}
	return id, nil
}

// persistError maps a store rejection to a response error. Unique index
// violations become Conflict with the collection's own wording.
func persistError(err error, operation, entity, conflictMessage string) error {
	if errs.IsUniqueConstraintViolationError(err) {
		return errs.NewConflictError(conflictMessage)
	}
	return errs.NewDatabaseError(operation, entity, err)
}

// deleteError maps Collection.Delete failures.
func deleteError(err error, entity, notFoundMessage string) error {
	if errs.IsNotFound(err) {
		return errs.NewNotFoundError(notFoundMessage)
	}
	return errs.NewDatabaseError("delete", entity, err)
}

func nonNil[T any](docs []*T) []*T {
	if docs == nil {
		return []*T{}
	}
	return docs
}

// columns collects the columns an update writes. A field is written only when
// its input was supplied.
type columns []string

func (c *columns) add(name string) {
	*c = append(*c, name)
}

func (c *columns) string(name string, dst *string, src *string) {
	if src == nil {
		return
	}
	*dst = *src
	c.add(name)
}

func (c *columns) int(name string, dst *int, src *int) {
	if src == nil {
		return
	}
	*dst = *src
	c.add(name)
}

func (c columns) empty() bool {
	return len(c) == 0
}

func requireValue(field, message string, value *string) error {
	if value == nil || *value == "" {
		return errs.NewMissingRequiredFieldError(field, message)
	}
	return nil
}

// checkSlug rejects slugs that would not map to a single object key.
func checkSlug(field string, value *string) error {
	if value != nil && strings.ContainsAny(*value, "/\\") {
		return errs.NewInvalidFieldError(field, "Slug cannot contain '/'")
	}
	return nil
}

// suppliedEmpty reports a field that was sent but blank.
func suppliedEmpty(value *string) bool {
	return value != nil && *value == ""
}

func strOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func listOrEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
