package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/agency-portfolio-backend/resources"
)

type serviceCategoryHandler struct {
	handlerBase
	categories *resources.ServiceCategoryManager
}

func newServiceCategoryHandler(categories *resources.ServiceCategoryManager, maxBodyBytes int64, exposeErrors bool) serviceCategoryHandler {
	return serviceCategoryHandler{
		handlerBase: newHandlerBase("serviceCategoryHandler", maxBodyBytes, exposeErrors),
		categories:  categories,
	}
}

func categoryInput(form *requestForm) resources.CategoryInput {
	return resources.CategoryInput{
		CategoryName: form.str("category_name"),
		CategorySlug: form.str("category_slug"),
	}
}

func (h serviceCategoryHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, ok := h.readForm(w, r)
		if !ok {
			return
		}
		defer form.close()

		category, err := h.categories.Create(r.Context(), categoryInput(form))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteData(w, http.StatusCreated, "Category created", category)
	}
}

func (h serviceCategoryHandler) listCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categories.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteData(w, http.StatusOK, "Categories fetched successfully", categories)
	}
}

func (h serviceCategoryHandler) getCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := h.categories.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteData(w, http.StatusOK, "Category fetched successfully", category)
	}
}

func (h serviceCategoryHandler) updateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, ok := h.readForm(w, r)
		if !ok {
			return
		}
		defer form.close()

		if err := h.categories.Update(r.Context(), chi.URLParam(r, "id"), categoryInput(form)); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, http.StatusOK, "Category updated successfully")
	}
}

func (h serviceCategoryHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.categories.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, http.StatusOK, "Category deleted successfully")
	}
}
