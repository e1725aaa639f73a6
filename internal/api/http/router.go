package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workforce-service/internal/api/http/handlers"
	"github.com/spec-kit/workforce-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Employees      *handlers.EmployeesHandler
	Projects       *handlers.ProjectsHandler
	Assignments    *handlers.AssignmentsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/forgot-password", cfg.Auth.ForgotPassword)
	authGroup.Get("/me", cfg.Auth.Me)

	employees := app.Group("/employees", cfg.AuthMiddleware.Handle, auth.RequireManagerOrAdmin())
	employees.Post("", cfg.Employees.Create)
	employees.Get("", cfg.Employees.List)
	employees.Get("/search", cfg.Employees.Search)
	employees.Get("/:id", cfg.Employees.Get)
	employees.Put("/:id", cfg.Employees.Update)
	employees.Patch("/:id/status", cfg.Employees.ToggleStatus)

	projects := app.Group("/projects", cfg.AuthMiddleware.Handle)
	projects.Get("", auth.RequireManagerOrAdmin(), cfg.Projects.List)
	projects.Get("/stats", auth.RequireAdmin(), cfg.Projects.Stats)
	projects.Post("", auth.RequireAdmin(), cfg.Projects.Create)
	projects.Get("/:id", auth.RequireAdmin(), cfg.Projects.Get)
	projects.Put("/:id", auth.RequireAdmin(), cfg.Projects.Update)

	assignments := app.Group("/assignments", cfg.AuthMiddleware.Handle)
	assignments.Get("/mine", auth.RequireAuthenticated(), cfg.Assignments.Mine)
	assignments.Get("/mine/:id", auth.RequireAuthenticated(), cfg.Assignments.MyDetail)
	assignments.Post("/mine/:id/complete", auth.RequireAuthenticated(), cfg.Assignments.Complete)
	assignments.Post("", auth.RequireManagerOrAdmin(), cfg.Assignments.Create)
	assignments.Get("", auth.RequireManagerOrAdmin(), cfg.Assignments.List)
	assignments.Put("/:id", auth.RequireManagerOrAdmin(), cfg.Assignments.Update)
	assignments.Delete("/:id", auth.RequireManagerOrAdmin(), cfg.Assignments.Delete)
}
