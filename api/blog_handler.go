package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/agency-portfolio-backend/resources"
)

type blogHandler struct {
	handlerBase
	blogs *resources.BlogManager
}

func newBlogHandler(blogs *resources.BlogManager, maxBodyBytes int64, exposeErrors bool) blogHandler {
	return blogHandler{
		handlerBase: newHandlerBase("blogHandler", maxBodyBytes, exposeErrors),
		blogs:       blogs,
	}
}

func blogInput(form *requestForm) (resources.BlogInput, error) {
	commentCount, err := form.int("commentCount")
	if err != nil {
		return resources.BlogInput{}, err
	}
	image, err := form.upload("image")
	if err != nil {
		return resources.BlogInput{}, err
	}
	return resources.BlogInput{
		Title:           form.str("title"),
		Slug:            form.str("slug"),
		Category:        form.str("category"),
		MetaTitle:       form.str("metaTitle"),
		MetaDescription: form.str("metaDescription"),
		Description:     form.str("description"),
		Content:         form.str("content"),
		ReadTime:        form.str("readTime"),
		CommentCount:    commentCount,
		Tags:            form.list("tags"),
		Image:           image,
	}, nil
}

// createBlog publishes a blog post with its cover image
// @Summary Create blog
// @Tags Blogs
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} MessageResponse "Blog created"
// @Failure 409 {object} ErrorResponse "Slug already exists"
// @Router /create-blog [post]
func (h blogHandler) createBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, ok := h.readForm(w, r)
		if !ok {
			return
		}
		defer form.close()

		input, err := blogInput(form)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		blog, err := h.blogs.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteData(w, http.StatusCreated, "Blog created", blog)
	}
}

func (h blogHandler) listBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogs, err := h.blogs.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteData(w, http.StatusOK, "Blogs fetched successfully", blogs)
	}
}

func (h blogHandler) getBlogBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, err := h.blogs.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteData(w, http.StatusOK, "Blog fetched successfully", blog)
	}
}

func (h blogHandler) getBlogByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, err := h.blogs.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteData(w, http.StatusOK, "Blog fetched successfully", blog)
	}
}

func (h blogHandler) updateBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, ok := h.readForm(w, r)
		if !ok {
			return
		}
		defer form.close()

		input, err := blogInput(form)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.blogs.Update(r.Context(), chi.URLParam(r, "id"), input); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, http.StatusOK, "Blog updated")
	}
}

func (h blogHandler) deleteBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.blogs.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, http.StatusOK, "Blog deleted")
	}
}
