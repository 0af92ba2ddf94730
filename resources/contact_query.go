package resources

import (
	"context"
	"strings"
	"time"

	"github.com/rpupo63/agency-portfolio-backend/database"
	"github.com/rpupo63/agency-portfolio-backend/errs"
	"github.com/rpupo63/agency-portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const contactQueryNotFound = "Contact request not found"

// ContactQueryInput is what the contact form submits. Name is composed from
// first and last name; Name is only used by moderation updates.
type ContactQueryInput struct {
	FirstName *string
	LastName  *string
	Name      *string
	Email     *string
	Phone     *string
	Message   *string
}

func (in ContactQueryInput) composedName() *string {
	if in.FirstName == nil && in.LastName == nil {
		return in.Name
	}
	name := strings.TrimSpace(strOrEmpty(in.FirstName) + " " + strOrEmpty(in.LastName))
	return &name
}

// NotificationResult reports the operator email separately from persistence.
type NotificationResult struct {
	Sent  bool   `json:"sent"`
	Error string `json:"error,omitempty"`
}

type ContactQueryManager struct {
	repo     database.Collection[models.ContactQuery]
	notifier Notifier
	logger   zerolog.Logger
	now      func() time.Time
}

// NewContactQueryManager builds the manager. A nil notifier disables emails.
func NewContactQueryManager(repo database.Collection[models.ContactQuery], notifier Notifier) *ContactQueryManager {
	return &ContactQueryManager{
		repo:     repo,
		notifier: notifier,
		logger:   log.With().Str("manager", "contact_queries").Logger(),
		now:      time.Now,
	}
}

// Create stores the query and then notifies the operator. A failed
// notification never fails the call once the query is stored.
func (m *ContactQueryManager) Create(ctx context.Context, in ContactQueryInput) (*models.ContactQuery, NotificationResult, error) {
	query := &models.ContactQuery{
		Name:      strOrEmpty(in.composedName()),
		Email:     strOrEmpty(in.Email),
		Phone:     strOrEmpty(in.Phone),
		Message:   strOrEmpty(in.Message),
		CreatedAt: m.now().UTC(),
	}
	if err := m.repo.Add(ctx, query); err != nil {
		return nil, NotificationResult{}, errs.NewDatabaseError("create", "contact request", err)
	}

	if m.notifier == nil {
		return query, NotificationResult{Error: "notifications are disabled"}, nil
	}
	if err := m.notifier.NotifyContactQuery(ctx, query); err != nil {
		m.logger.Error().Err(err).Str("contactQueryId", query.ID.String()).Msg("contact notification failed")
		return query, NotificationResult{Error: err.Error()}, nil
	}
	return query, NotificationResult{Sent: true}, nil
}

// List returns queries newest first.
func (m *ContactQueryManager) List(ctx context.Context) ([]*models.ContactQuery, error) {
	queries, err := m.repo.FindAll(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "contact requests", err)
	}
	return nonNil(queries), nil
}

func (m *ContactQueryManager) GetByID(ctx context.Context, rawID string) (*models.ContactQuery, error) {
	id, err := parseID(rawID, "contact request")
	if err != nil {
		return nil, err
	}
	query, err := m.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "contact request", err)
	}
	if query == nil {
		return nil, errs.NewNotFoundError(contactQueryNotFound)
	}
	return query, nil
}

func (m *ContactQueryManager) Update(ctx context.Context, rawID string, in ContactQueryInput) error {
	query, err := m.GetByID(ctx, rawID)
	if err != nil {
		return err
	}

	var cols columns
	cols.string("name", &query.Name, in.composedName())
	cols.string("email", &query.Email, in.Email)
	cols.string("phone", &query.Phone, in.Phone)
	cols.string("message", &query.Message, in.Message)
	if cols.empty() {
		return errs.NewBadRequestError("Nothing to update")
	}

	now := m.now().UTC()
	query.UpdatedAt = &now
	cols.add("updated_at")

	if err := m.repo.Update(ctx, query, cols...); err != nil {
		return errs.NewDatabaseError("update", "contact request", err)
	}
	return nil
}

func (m *ContactQueryManager) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID, "contact request")
	if err != nil {
		return err
	}
	if err := m.repo.Delete(ctx, id); err != nil {
		return deleteError(err, "contact request", contactQueryNotFound)
	}
	return nil
}
