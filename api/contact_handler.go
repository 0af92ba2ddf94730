package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/agency-portfolio-backend/resources"
)

type contactHandler struct {
	handlerBase
	queries *resources.ContactQueryManager
}

func newContactHandler(queries *resources.ContactQueryManager, maxBodyBytes int64, exposeErrors bool) contactHandler {
	return contactHandler{
		handlerBase: newHandlerBase("contactHandler", maxBodyBytes, exposeErrors),
		queries:     queries,
	}
}

func contactInput(form *requestForm) resources.ContactQueryInput {
	return resources.ContactQueryInput{
		FirstName: form.str("firstName"),
		LastName:  form.str("lastName"),
		Name:      form.str("name"),
		Email:     form.str("email"),
		Phone:     form.str("phone"),
		Message:   form.str("message"),
	}
}

// createContactRequest stores a contact form submission and emails the operator
// @Summary Submit contact request
// @Tags Contact
// @Accept json
// @Produce json
// @Success 201 {object} ContactResponse "Stored request and notification outcome"
// @Router /contact-request [post]
func (h contactHandler) createContactRequest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, ok := h.readForm(w, r)
		if !ok {
			return
		}
		defer form.close()

		query, notification, err := h.queries.Create(r.Context(), contactInput(form))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		message := "Contact request received and email sent successfully"
		if !notification.Sent {
			message = "Contact request received but the notification email could not be sent"
		}
		h.responder.WriteJSON(w, http.StatusCreated, ContactResponse{
			Message:      message,
			Data:         query,
			Notification: notification,
		})
	}
}

func (h contactHandler) listContactRequests() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		queries, err := h.queries.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteData(w, http.StatusOK, "Contact requests fetched successfully", queries)
	}
}

func (h contactHandler) getContactRequest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := h.queries.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteData(w, http.StatusOK, "Contact request fetched successfully", query)
	}
}

func (h contactHandler) updateContactRequest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, ok := h.readForm(w, r)
		if !ok {
			return
		}
		defer form.close()

		if err := h.queries.Update(r.Context(), chi.URLParam(r, "id"), contactInput(form)); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, http.StatusOK, "Contact request updated successfully")
	}
}

func (h contactHandler) deleteContactRequest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.queries.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, http.StatusOK, "Contact request deleted successfully")
	}
}
