package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/agency-portfolio-backend/errs"
	"github.com/rpupo63/agency-portfolio-backend/resources"
)

type adminHandler struct {
	handlerBase
	admins *resources.AdminManager
}

func newAdminHandler(admins *resources.AdminManager, maxBodyBytes int64, exposeErrors bool) adminHandler {
	return adminHandler{
		handlerBase: newHandlerBase("adminHandler", maxBodyBytes, exposeErrors),
		admins:      admins,
	}
}

func adminInput(form *requestForm) resources.AdminInput {
	return resources.AdminInput{
		Name:     form.text("name"),
		Email:    form.text("email"),
		Phone:    form.text("phone"),
		Password: form.text("password"),
	}
}

// login exchanges email and password for a session token
// @Summary Admin login
// @Tags Admins
// @Accept json
// @Produce json
// @Success 200 {object} MessageResponse "Admin with token"
// @Failure 401 {object} ErrorResponse "Invalid password"
// @Failure 404 {object} ErrorResponse "Admin not found"
// @Router /admin/login [post]
func (h adminHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, ok := h.readForm(w, r)
		if !ok {
			return
		}
		defer form.close()

		email, password := form.text("email"), form.text("password")
		if email == "" || password == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("email", "Email and password are required"))
			return
		}

		session, err := h.admins.Login(r.Context(), email, password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteData(w, http.StatusOK, "Login successful", session)
	}
}

// register creates another admin account
// @Summary Register admin
// @Tags Admins
// @Security BearerAuth
// @Router /admin/register [post]
func (h adminHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, ok := h.readForm(w, r)
		if !ok {
			return
		}
		defer form.close()

		session, err := h.admins.Register(r.Context(), adminInput(form))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.logger.Info().Str("adminId", session.ID.String()).Msg("admin registered")
		h.responder.WriteData(w, http.StatusCreated, "Admin registered successfully", session)
	}
}

func (h adminHandler) listAdmins() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admins, err := h.admins.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteData(w, http.StatusOK, "Admins fetched successfully", admins)
	}
}

// profile returns the caller's own admin record. Any other id is forbidden.
func (h adminHandler) profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, err := ctxGetAdminID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		admin, err := h.admins.Profile(r.Context(), callerID, chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteData(w, http.StatusOK, "Admin profile fetched successfully", admin)
	}
}

func (h adminHandler) deleteAdmin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.admins.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, http.StatusOK, "Admin deleted successfully")
	}
}
