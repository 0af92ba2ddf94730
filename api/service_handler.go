package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/agency-portfolio-backend/resources"
)

type serviceHandler struct {
	handlerBase
	services *resources.ServiceManager
}

func newServiceHandler(services *resources.ServiceManager, maxBodyBytes int64, exposeErrors bool) serviceHandler {
	return serviceHandler{
		handlerBase: newHandlerBase("serviceHandler", maxBodyBytes, exposeErrors),
		services:    services,
	}
}

func serviceInput(form *requestForm) (resources.ServiceInput, error) {
	image, err := form.upload("image")
	if err != nil {
		return resources.ServiceInput{}, err
	}
	return resources.ServiceInput{
		Name:            form.str("name"),
		Slug:            form.str("slug"),
		Description:     form.str("description"),
		MetaTitle:       form.str("metaTitle"),
		MetaDescription: form.str("metaDescription"),
		Content:         form.str("content"),
		Status:          form.str("status"),
		Tags:            form.list("tags"),
		ViewPoint:       form.list("view_point"),
		Image:           image,
	}, nil
}

// createService creates a service with its cover image
// @Summary Create service
// @Tags Services
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} MessageResponse "Created service"
// @Failure 400 {object} ErrorResponse "Image file is required"
// @Failure 409 {object} ErrorResponse "Slug already exists"
// @Router /create-service [post]
func (h serviceHandler) createService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, ok := h.readForm(w, r)
		if !ok {
			return
		}
		defer form.close()

		input, err := serviceInput(form)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		service, err := h.services.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.logger.Info().Str("serviceId", service.ID.String()).Str("slug", service.Slug).Msg("service created")
		h.responder.WriteData(w, http.StatusCreated, "Service created successfully", service)
	}
}

func (h serviceHandler) listServices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services, err := h.services.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteData(w, http.StatusOK, "Services fetched successfully", services)
	}
}

func (h serviceHandler) getServiceBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service, err := h.services.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteData(w, http.StatusOK, "Service fetched successfully", service)
	}
}

func (h serviceHandler) getServiceByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service, err := h.services.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteData(w, http.StatusOK, "Service fetched successfully", service)
	}
}

// filterByViewPoint lists services sharing a view point with ?view_point=a,b
func (h serviceHandler) filterByViewPoint() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services, err := h.services.FilterByViewPoint(r.Context(), r.URL.Query().Get("view_point"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteData(w, http.StatusOK, "Services fetched successfully", services)
	}
}

func (h serviceHandler) updateService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, ok := h.readForm(w, r)
		if !ok {
			return
		}
		defer form.close()

		input, err := serviceInput(form)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.services.Update(r.Context(), chi.URLParam(r, "id"), input); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, http.StatusOK, "Service updated successfully")
	}
}

func (h serviceHandler) deleteService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.services.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, http.StatusOK, "Service deleted successfully")
	}
}
