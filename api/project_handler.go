package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/agency-portfolio-backend/resources"
)

type projectHandler struct {
	handlerBase
	projects *resources.ProjectManager
}

func newProjectHandler(projects *resources.ProjectManager, maxBodyBytes int64, exposeErrors bool) projectHandler {
	return projectHandler{
		handlerBase: newHandlerBase("projectHandler", maxBodyBytes, exposeErrors),
		projects:    projects,
	}
}

func projectInput(form *requestForm) (resources.ProjectInput, error) {
	userReact, err := form.int("user_react")
	if err != nil {
		return resources.ProjectInput{}, err
	}
	clientInfo, err := form.clientInfo("client_info")
	if err != nil {
		return resources.ProjectInput{}, err
	}
	featureImage, err := form.upload("feature_image")
	if err != nil {
		return resources.ProjectInput{}, err
	}
	images, err := form.uploads("images")
	if err != nil {
		return resources.ProjectInput{}, err
	}
	return resources.ProjectInput{
		Name:         form.str("name"),
		Slug:         form.str("slug"),
		Description:  form.str("description"),
		Content:      form.str("content"),
		Status:       form.str("status"),
		Budget:       form.str("budget"),
		StartDate:    form.str("start_date"),
		EndDate:      form.str("end_date"),
		LiveLink:     form.str("live_link"),
		GitLink:      form.str("git_link"),
		UserReact:    userReact,
		ClientInfo:   clientInfo,
		Tags:         form.list("tags"),
		CategoryIDs:  form.list("category_ids"),
		FeatureImage: featureImage,
		Images:       images,
	}, nil
}

// createProject creates a project with its feature image and gallery
// @Summary Create project
// @Tags Projects
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} MessageResponse "Created project"
// @Failure 400 {object} ErrorResponse "One or more category IDs are invalid"
// @Router /project/create [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, ok := h.readForm(w, r)
		if !ok {
			return
		}
		defer form.close()

		input, err := projectInput(form)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		project, err := h.projects.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.logger.Info().Str("projectId", project.ID.String()).Int("images", len(project.Images)).Msg("project created")
		h.responder.WriteData(w, http.StatusCreated, "Project created successfully", project)
	}
}

func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projects.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteData(w, http.StatusOK, "Projects fetched successfully", projects)
	}
}

func (h projectHandler) getProjectByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.projects.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteData(w, http.StatusOK, "Project fetched successfully", project)
	}
}

func (h projectHandler) getProjectBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.projects.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteData(w, http.StatusOK, "Project fetched successfully", project)
	}
}

func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, ok := h.readForm(w, r)
		if !ok {
			return
		}
		defer form.close()

		input, err := projectInput(form)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.projects.Update(r.Context(), chi.URLParam(r, "id"), input); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, http.StatusOK, "Project updated successfully")
	}
}

func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.projects.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, http.StatusOK, "Project deleted successfully")
	}
}
