package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workforce-service/internal/api/dto"
	"github.com/spec-kit/workforce-service/internal/auth"
	"github.com/spec-kit/workforce-service/internal/repository"
	"github.com/spec-kit/workforce-service/internal/service"
	apperrors "github.com/spec-kit/workforce-service/pkg/util"
)

// AssignmentsHandler exposes assignment management and the employee
// self-service routes.
type AssignmentsHandler struct {
	assignments *service.AssignmentService
}

// NewAssignmentsHandler constructs handler.
func NewAssignmentsHandler(assignmentService *service.AssignmentService) *AssignmentsHandler {
	return &AssignmentsHandler{assignments: assignmentService}
}

// Create handles POST /assignments.
func (h *AssignmentsHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.AssignmentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.EmployeeID <= 0 || req.ProjectID <= 0 {
		return apperrors.NewValidationError("employee_id and project_id required", nil)
	}

	assignment, err := h.assignments.CreateAssignment(c.Context(), actor.Employee, req.EmployeeID, req.ProjectID, req.AllottedHours)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.NewAssignmentResponse(assignment),
	})
}

// List handles GET /assignments.
func (h *AssignmentsHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var filter repository.AssignmentFilter
	if raw := c.Query("employee_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return apperrors.NewValidationError("invalid employee_id", map[string]any{"field": "employee_id"})
		}
		filter.EmployeeID = &id
	}
	if raw := c.Query("project_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return apperrors.NewValidationError("invalid project_id", map[string]any{"field": "project_id"})
		}
		filter.ProjectID = &id
	}

	list, err := h.assignments.ListAssignments(c.Context(), actor.Employee, filter)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.NewAssignmentResponses(list),
	})
}

// Update handles PUT /assignments/:id.
func (h *AssignmentsHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.AssignmentUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	assignment, err := h.assignments.UpdateAllottedHours(c.Context(), actor.Employee, id, req.AllottedHours)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.NewAssignmentResponse(assignment),
	})
}

// Delete handles DELETE /assignments/:id.
func (h *AssignmentsHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.assignments.DeleteAssignment(c.Context(), actor.Employee, id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{"message": "assignment deleted"},
	})
}

// Mine handles GET /assignments/mine.
func (h *AssignmentsHandler) Mine(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	list, err := h.assignments.MyAssignments(c.Context(), actor.Employee)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.NewAssignmentResponses(list),
	})
}

// MyDetail handles GET /assignments/mine/:id.
func (h *AssignmentsHandler) MyDetail(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	assignment, err := h.assignments.MyAssignment(c.Context(), actor.Employee, id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.NewAssignmentResponse(assignment),
	})
}

// Complete handles POST /assignments/mine/:id/complete.
func (h *AssignmentsHandler) Complete(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.AssignmentCompleteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	assignment, err := h.assignments.CompleteAssignment(c.Context(), actor.Employee, id, req.HoursWorked, req.CompletionNotes)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.NewAssignmentResponse(assignment),
	})
}
