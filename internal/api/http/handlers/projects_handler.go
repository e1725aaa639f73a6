package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workforce-service/internal/api/dto"
	"github.com/spec-kit/workforce-service/internal/auth"
	"github.com/spec-kit/workforce-service/internal/service"
	apperrors "github.com/spec-kit/workforce-service/pkg/util"
)

// ProjectsHandler exposes the project surface.
type ProjectsHandler struct {
	projects *service.ProjectService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(projectService *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{projects: projectService}
}

// Create handles POST /projects.
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ProjectCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	project, err := h.projects.CreateProject(c.Context(), actor.Employee, service.ProjectInput{
		Name:          req.Name,
		Client:        req.Client,
		ExpectedHours: req.ExpectedHours,
		Active:        active,
		EndDate:       req.EndDate,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.NewProjectResponse(project),
	})
}

// List handles GET /projects.
func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	limit, _ := strconv.Atoi(c.Query("limit", "100"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	list, err := h.projects.ListProjects(c.Context(), actor.Employee, limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.NewProjectResponses(list),
	})
}

// Get handles GET /projects/:id.
func (h *ProjectsHandler) Get(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	project, err := h.projects.GetProject(c.Context(), actor.Employee, id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.NewProjectResponse(project),
	})
}

// Update handles PUT /projects/:id.
func (h *ProjectsHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.ProjectUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	project, err := h.projects.UpdateProject(c.Context(), actor.Employee, id, service.ProjectUpdateInput{
		Name:          req.Name,
		Client:        req.Client,
		ExpectedHours: req.ExpectedHours,
		Active:        req.Active,
		EndDate:       req.EndDate,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.NewProjectResponse(project),
	})
}

// Stats handles GET /projects/stats.
func (h *ProjectsHandler) Stats(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	stats, err := h.projects.Stats(c.Context(), actor.Employee)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": stats,
	})
}
