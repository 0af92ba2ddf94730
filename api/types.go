package api

import "github.com/rpupo63/agency-portfolio-backend/resources"

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	adminHandler           adminHandler
	serviceHandler         serviceHandler
	serviceCategoryHandler serviceCategoryHandler
	projectCategoryHandler projectCategoryHandler
	projectHandler         projectHandler
	blogHandler            blogHandler
	contactHandler         contactHandler
	healthHandler          healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Message string `json:"message" example:"Slug already exists. Please use a unique slug."`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"slug"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Error   string `json:"error,omitempty" example:"Underlying error cause"`
}

// ContactResponse separates persistence from the notification outcome.
type ContactResponse struct {
	Message      string                       `json:"message"`
	Data         any                          `json:"data"`
	Notification resources.NotificationResult `json:"notification"`
}
