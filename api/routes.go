package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/agency-portfolio-backend/metrics"
)

type routeSettings struct {
	// protectContentWrites puts every content create/update/delete behind auth.
	protectContentWrites bool
	maxBodyBytes         int64
}

func setupRoutes(r chi.Router, handlers *routeHandlers, auth authMiddleware, settings routeSettings) {
	setupPublicRoutes(r, handlers)
	setupAdminRoutes(r, handlers, auth)

	r.Group(func(r chi.Router) {
		if settings.protectContentWrites {
			r.Use(auth.authenticate)
		}
		setupContentWriteRoutes(r, handlers)
	})
}

func setupPublicRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/", handlers.healthHandler.root())
	r.Get("/health", handlers.healthHandler.health())
	r.Method("GET", "/metrics", metrics.Handler())

	r.Post("/admin/login", handlers.adminHandler.login())

	r.Get("/services", handlers.serviceHandler.listServices())
	r.Get("/service/{slug}", handlers.serviceHandler.getServiceBySlug())
	r.Get("/service/id/{id}", handlers.serviceHandler.getServiceByID())
	r.Get("/services/filter-by-viewpoint", handlers.serviceHandler.filterByViewPoint())

	r.Get("/categories", handlers.serviceCategoryHandler.listCategories())
	r.Get("/categories/{id}", handlers.serviceCategoryHandler.getCategory())

	r.Get("/project/category/view", handlers.projectCategoryHandler.listCategories())
	r.Get("/project/category/{id}", handlers.projectCategoryHandler.getCategory())

	r.Get("/projects/view-all", handlers.projectHandler.listProjects())
	r.Get("/project/view/{id}", handlers.projectHandler.getProjectByID())
	r.Get("/project/slug/{slug}", handlers.projectHandler.getProjectBySlug())

	r.Get("/blogs", handlers.blogHandler.listBlogs())
	r.Get("/blog/{slug}", handlers.blogHandler.getBlogBySlug())
	r.Get("/blog/id/{id}", handlers.blogHandler.getBlogByID())

	// Contact form submissions always stay public.
	r.Post("/contact-request", handlers.contactHandler.createContactRequest())
}

func setupAdminRoutes(r chi.Router, handlers *routeHandlers, auth authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(auth.authenticate)

		r.Post("/admin/register", handlers.adminHandler.register())
		r.Get("/admins", handlers.adminHandler.listAdmins())
		r.Get("/admin/profile/{id}", handlers.adminHandler.profile())
		r.Delete("/admin/{id}", handlers.adminHandler.deleteAdmin())

		r.Get("/contact-requests-view", handlers.contactHandler.listContactRequests())
		r.Get("/contact-request/{id}", handlers.contactHandler.getContactRequest())
		r.Patch("/contact-request/{id}", handlers.contactHandler.updateContactRequest())
		r.Delete("/contact-request/{id}", handlers.contactHandler.deleteContactRequest())
	})
}

func setupContentWriteRoutes(r chi.Router, handlers *routeHandlers) {
	r.Post("/create-service", handlers.serviceHandler.createService())
	r.Patch("/update-service/{id}", handlers.serviceHandler.updateService())
	r.Delete("/delete-service/{id}", handlers.serviceHandler.deleteService())

	r.Post("/categories", handlers.serviceCategoryHandler.createCategory())
	r.Patch("/categories/{id}", handlers.serviceCategoryHandler.updateCategory())
	r.Delete("/categories/{id}", handlers.serviceCategoryHandler.deleteCategory())

	r.Post("/project/category/create", handlers.projectCategoryHandler.createCategory())
	r.Patch("/project/category/{id}", handlers.projectCategoryHandler.updateCategory())
	r.Delete("/project/category/{id}", handlers.projectCategoryHandler.deleteCategory())

	r.Post("/project/create", handlers.projectHandler.createProject())
	r.Patch("/project/update/{id}", handlers.projectHandler.updateProject())
	r.Delete("/project/delete/{id}", handlers.projectHandler.deleteProject())

	r.Post("/create-blog", handlers.blogHandler.createBlog())
	r.Patch("/blog/{id}", handlers.blogHandler.updateBlog())
	r.Delete("/blog/{id}", handlers.blogHandler.deleteBlog())
	r.Delete("/blogs/{id}", handlers.blogHandler.deleteBlog())
}
