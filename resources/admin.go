package resources

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/agency-portfolio-backend/auth"
	"github.com/rpupo63/agency-portfolio-backend/database"
	"github.com/rpupo63/agency-portfolio-backend/errs"
	"github.com/rpupo63/agency-portfolio-backend/models"
	"github.com/rs/zerolog/log"
)

const (
	adminNotFound    = "Admin not found"
	adminEmailTaken  = "Admin already exists with this email"
	profileForbidden = "Forbidden: You can't access this profile"
)

type AdminInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// AdminSession is an admin together with a freshly issued token. The password
// hash is never serialised.
type AdminSession struct {
	*models.Admin
	Token string `json:"token"`
}

// AdminManager is the authentication gate: login, registration and the
// admin directory.
type AdminManager struct {
	repo   database.Collection[models.Admin]
	tokens TokenIssuer
	now    func() time.Time
}

func NewAdminManager(repo database.Collection[models.Admin], tokens TokenIssuer) *AdminManager {
	return &AdminManager{repo: repo, tokens: tokens, now: time.Now}
}

// Login checks credentials and issues a token.
func (m *AdminManager) Login(ctx context.Context, email, password string) (*AdminSession, error) {
	admin, err := m.repo.FindByKey(ctx, normalizeEmail(email))
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "admin", err)
	}
	if admin == nil {
		return nil, errs.NewNotFoundError(adminNotFound)
	}
	if !auth.CheckPassword(admin.Password, password) {
		return nil, errs.NewUnauthorizedError("Invalid password")
	}
	return m.session(admin)
}

// Register creates another admin. Only reachable by an authenticated admin.
func (m *AdminManager) Register(ctx context.Context, in AdminInput) (*AdminSession, error) {
	admin, err := m.create(ctx, in)
	if err != nil {
		return nil, err
	}
	return m.session(admin)
}

func (m *AdminManager) create(ctx context.Context, in AdminInput) (*models.Admin, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, errs.NewMissingRequiredFieldError("email", "Email and password are required")
	}
	existing, err := m.repo.FindByKey(ctx, email)
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "admin", err)
	}
	if existing != nil {
		return nil, errs.NewConflictError(adminEmailTaken)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("Failed to hash password", err)
	}
	admin := &models.Admin{
		Name:      in.Name,
		Email:     email,
		Phone:     in.Phone,
		Password:  hash,
		Role:      models.RoleAdmin,
		CreatedAt: m.now().UTC(),
	}
	if err := m.repo.Add(ctx, admin); err != nil {
		return nil, persistError(err, "create", "admin", adminEmailTaken)
	}
	return admin, nil
}

func (m *AdminManager) session(admin *models.Admin) (*AdminSession, error) {
	token, err := m.tokens.Issue(admin.ID)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("Failed to issue token", err)
	}
	return &AdminSession{Admin: admin, Token: token}, nil
}

func (m *AdminManager) List(ctx context.Context) ([]*models.Admin, error) {
	admins, err := m.repo.FindAll(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "admins", err)
	}
	return nonNil(admins), nil
}

// Profile returns the admin with rawID, which must be the caller.
func (m *AdminManager) Profile(ctx context.Context, callerID uuid.UUID, rawID string) (*models.Admin, error) {
	id, err := uuid.Parse(rawID)
	if err != nil || id != callerID {
		return nil, errs.NewForbiddenError(profileForbidden)
	}
	admin, err := m.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("fetch", "admin", err)
	}
	if admin == nil {
		return nil, errs.NewNotFoundError(adminNotFound)
	}
	return admin, nil
}

func (m *AdminManager) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID, "admin")
	if err != nil {
		return err
	}
	if err := m.repo.Delete(ctx, id); err != nil {
		return deleteError(err, "admin", adminNotFound)
	}
	return nil
}

// EnsureBootstrapAdmin creates the first admin when none exist, so the
// token-guarded registration has someone to start from. It reports whether
// an admin was created.
func (m *AdminManager) EnsureBootstrapAdmin(ctx context.Context, in AdminInput) (bool, error) {
	if in.Email == "" || in.Password == "" {
		return false, nil
	}
	admins, err := m.repo.FindAll(ctx)
	if err != nil {
		return false, errs.NewDatabaseError("fetch", "admins", err)
	}
	if len(admins) > 0 {
		return false, nil
	}
	if in.Name == "" {
		in.Name = "Administrator"
	}
	admin, err := m.create(ctx, in)
	if err != nil {
		return false, err
	}
	log.Info().Str("adminId", admin.ID.String()).Str("email", admin.Email).Msg("bootstrap admin created")
	return true, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
