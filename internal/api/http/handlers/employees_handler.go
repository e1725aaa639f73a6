package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workforce-service/internal/api/dto"
	"github.com/spec-kit/workforce-service/internal/auth"
	"github.com/spec-kit/workforce-service/internal/domain"
	"github.com/spec-kit/workforce-service/internal/service"
	apperrors "github.com/spec-kit/workforce-service/pkg/util"
)

// EmployeesHandler exposes the manager/admin employee surface.
type EmployeesHandler struct {
	employees *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employeeService *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{employees: employeeService}
}

// Create handles POST /employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.EmployeeCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}

	emp, err := h.employees.CreateEmployee(c.Context(), actor.Employee, service.CreateEmployeeInput{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		Department:    req.Department,
		Skills:        req.Skills,
		Experience:    req.Experience,
		BillableHours: req.BillableHours,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.NewEmployeeResponse(emp),
	})
}

// List handles GET /employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var role *domain.Role
	if raw := c.Query("role"); raw != "" {
		parsed := domain.Role(raw)
		if !parsed.Valid() {
			return apperrors.NewValidationError("unknown role", map[string]any{"field": "role"})
		}
		role = &parsed
	}

	list, err := h.employees.ListEmployees(c.Context(), actor.Employee, role)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.NewEmployeeResponses(list),
	})
}

// Get handles GET /employees/:id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	emp, err := h.employees.GetEmployee(c.Context(), actor.Employee, id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.NewEmployeeResponse(emp),
	})
}

// Update handles PUT /employees/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.EmployeeUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	emp, err := h.employees.UpdateEmployee(c.Context(), actor.Employee, id, service.UpdateEmployeeInput{
		Name:          req.Name,
		Email:         req.Email,
		Department:    req.Department,
		Skills:        req.Skills,
		Experience:    req.Experience,
		BillableHours: req.BillableHours,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.NewEmployeeResponse(emp),
	})
}

// ToggleStatus handles PATCH /employees/:id/status.
func (h *EmployeesHandler) ToggleStatus(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	emp, err := h.employees.ToggleActive(c.Context(), actor.Employee, id)
	if err != nil {
		return err
	}

	status := "deactivated"
	if emp.Active {
		status = "activated"
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"message":  "employee " + status + " successfully",
			"employee": dto.NewEmployeeResponse(emp),
		},
	})
}

// Search handles GET /employees/search.
func (h *EmployeesHandler) Search(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	skills := c.Query("skills")
	if skills == "" {
		return apperrors.NewValidationError("skills query parameter required", map[string]any{"field": "skills"})
	}

	var minExperience *int
	if raw := c.Query("min_experience"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return apperrors.NewValidationError("min_experience must be a non-negative integer", map[string]any{"field": "min_experience"})
		}
		minExperience = &parsed
	}

	list, err := h.employees.SearchBySkills(c.Context(), actor.Employee, skills, minExperience)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.NewEmployeeResponses(list),
	})
}

func parseIDParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+name+" parameter", map[string]any{"field": name})
	}
	return id, nil
}
