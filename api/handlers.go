package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rpupo63/agency-portfolio-backend/resources"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Pinger reports whether the document store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// handlerBase carries what every resource handler needs.
type handlerBase struct {
	responder    Responder
	logger       zerolog.Logger
	maxBodyBytes int64
}

func newHandlerBase(name string, maxBodyBytes int64, exposeErrors bool) handlerBase {
	logger := log.With().Str("handlerName", name).Logger()
	return handlerBase{
		responder:    NewResponder(logger, exposeErrors),
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
}

// readForm parses the request body, writing the error response itself on
// failure. Callers must close the returned form.
func (h handlerBase) readForm(w http.ResponseWriter, r *http.Request) (*requestForm, bool) {
	form, err := parseRequestForm(w, r, h.maxBodyBytes)
	if err != nil {
		h.responder.WriteError(w, err)
		return nil, false
	}
	return form, true
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(managers *resources.Managers, db Pinger, startupTime time.Time, maxBodyBytes int64, exposeErrors bool) *routeHandlers {
	return &routeHandlers{
		adminHandler:           newAdminHandler(managers.Admins, maxBodyBytes, exposeErrors),
		serviceHandler:         newServiceHandler(managers.Services, maxBodyBytes, exposeErrors),
		serviceCategoryHandler: newServiceCategoryHandler(managers.ServiceCategories, maxBodyBytes, exposeErrors),
		projectCategoryHandler: newProjectCategoryHandler(managers.ProjectCategories, maxBodyBytes, exposeErrors),
		projectHandler:         newProjectHandler(managers.Projects, maxBodyBytes, exposeErrors),
		blogHandler:            newBlogHandler(managers.Blogs, maxBodyBytes, exposeErrors),
		contactHandler:         newContactHandler(managers.ContactQueries, maxBodyBytes, exposeErrors),
		healthHandler:          newHealthHandler(db, startupTime, exposeErrors),
	}
}

type healthHandler struct {
	responder   Responder
	db          Pinger
	startupTime time.Time
}

func newHealthHandler(db Pinger, startupTime time.Time, exposeErrors bool) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()
	return healthHandler{
		responder:   NewResponder(logger, exposeErrors),
		db:          db,
		startupTime: startupTime,
	}
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}

func (h healthHandler) root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Portfolio server is running..."))
	}
}

func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{
			Status:   "ok",
			Database: "ok",
			Uptime:   time.Since(h.startupTime).Round(time.Second).String(),
		}
		status := http.StatusOK
		if h.db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := h.db.Ping(ctx); err != nil {
				response.Status = "degraded"
				response.Database = "unreachable"
				status = http.StatusServiceUnavailable
			}
		}
		h.responder.WriteJSON(w, status, response)
	}
}
