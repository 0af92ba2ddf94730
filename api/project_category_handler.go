package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/agency-portfolio-backend/resources"
)

type projectCategoryHandler struct {
	handlerBase
	categories *resources.ProjectCategoryManager
}

func newProjectCategoryHandler(categories *resources.ProjectCategoryManager, maxBodyBytes int64, exposeErrors bool) projectCategoryHandler {
	return projectCategoryHandler{
		handlerBase: newHandlerBase("projectCategoryHandler", maxBodyBytes, exposeErrors),
		categories:  categories,
	}
}

func projectCategoryInput(form *requestForm) (resources.ProjectCategoryInput, error) {
	order, err := form.int("order")
	if err != nil {
		return resources.ProjectCategoryInput{}, err
	}
	image, err := form.upload("image")
	if err != nil {
		return resources.ProjectCategoryInput{}, err
	}
	return resources.ProjectCategoryInput{
		CategoryName: form.str("category_name"),
		CategorySlug: form.str("category_slug"),
		Status:       form.str("status"),
		Order:        order,
		Image:        image,
	}, nil
}

func (h projectCategoryHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, ok := h.readForm(w, r)
		if !ok {
			return
		}
		defer form.close()

		input, err := projectCategoryInput(form)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		category, err := h.categories.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteData(w, http.StatusCreated, "Project category created successfully", category)
	}
}

func (h projectCategoryHandler) listCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categories.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteData(w, http.StatusOK, "Project categories fetched successfully", categories)
	}
}

func (h projectCategoryHandler) getCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := h.categories.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteData(w, http.StatusOK, "Project category fetched successfully", category)
	}
}

func (h projectCategoryHandler) updateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, ok := h.readForm(w, r)
		if !ok {
			return
		}
		defer form.close()

		input, err := projectCategoryInput(form)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.categories.Update(r.Context(), chi.URLParam(r, "id"), input); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, http.StatusOK, "Project category updated successfully")
	}
}

func (h projectCategoryHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.categories.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, http.StatusOK, "Project category deleted successfully")
	}
}
