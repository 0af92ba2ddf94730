package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/agency-portfolio-backend/config"
	"github.com/rpupo63/agency-portfolio-backend/metrics"
	"github.com/rpupo63/agency-portfolio-backend/resources"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(c map[string]string, managers *resources.Managers, verifier TokenVerifier, db Pinger) (Server, error) {
	if managers == nil {
		return Server{}, fmt.Errorf("resource managers are required")
	}
	if verifier == nil {
		return Server{}, fmt.Errorf("token verifier is required")
	}

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	router := newRouter(managers, verifier, db, withConfig(c), withStartupTime(startupTime))

	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,  // Timeout for reading the entire request
		WriteTimeout: writeTimeout, // Timeout for writing the response
		IdleTimeout:  idleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(managers *resources.Managers, verifier TokenVerifier, db Pinger, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}
	if router.startupTime.IsZero() {
		router.startupTime = time.Now()
	}

	settings := routeSettings{
		protectContentWrites: config.GetBool(router.config, "PROTECT_CONTENT_WRITES", false),
		maxBodyBytes:         int64(config.GetInt(router.config, "MAX_UPLOAD_MB", 10)) << 20,
	}
	responder := NewResponder(log.With().Str("handlerName", "router").Logger(),
		config.GetBool(router.config, "EXPOSE_ERROR_DETAILS", true))

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(metrics.Middleware)

	acceptedOrigins := config.GetList(router.config, "ACCEPTED_ORIGINS")
	if len(acceptedOrigins) == 0 {
		acceptedOrigins = []string{"*"}
	}
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins, responder))
	chiRouter.Use(corsMiddleware(acceptedOrigins))
	chiRouter.Use(httpLoggingMiddleware(config.GetString(router.config, "LOG_FORMAT", "console")))

	handlers := initializeHandlers(managers, db, router.startupTime, settings.maxBodyBytes, responder.exposeErrors)
	auth := newAuthMiddleware(verifier, responder)

	setupRoutes(chiRouter, handlers, auth, settings)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
