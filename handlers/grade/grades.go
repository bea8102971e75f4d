package grade

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academic-records-api/model"
	"github.com/sahilchouksey/academic-records-api/services"
	"github.com/sahilchouksey/academic-records-api/services/academic"
	"github.com/sahilchouksey/academic-records-api/utils/response"
	"github.com/sahilchouksey/academic-records-api/utils/validation"
	"gorm.io/gorm"
)

// GradeHandler handles grade-related requests
type GradeHandler struct {
	db        *gorm.DB
	grades    *services.GradeService
	validator *validation.Validator
}

// NewGradeHandler creates a new grade handler
func NewGradeHandler(db *gorm.DB, grades *services.GradeService) *GradeHandler {
	return &GradeHandler{
		db:        db,
		grades:    grades,
		validator: validation.NewValidator(),
	}
}

// GradeRequest represents the request body for creating or updating a grade.
// Component is the scheme key, e.g. "Exam 1" or "Final Exam 1".
type GradeRequest struct {
	EnrollmentID uint    `json:"enrollment_id" validate:"required,min=1"`
	Component    string  `json:"component" validate:"required,max=100"`
	Score        float64 `json:"score" validate:"required"`
	Date         string  `json:"date" validate:"required,datetime=2006-01-02"`
	ProfessorID  uint    `json:"professor_id" validate:"required,min=1"`
}

// ListGrades handles GET /api/v1/grades. Every listing returns display rows
// grouped per enrollment: component order, derived labels, scheme weights and
// a synthesized final grade row for each enrollment with a complete scheme.
// Filters: enrollment_id, student_id, course_id, professor_id.
func (h *GradeHandler) ListGrades(c *fiber.Ctx) error {
	if enrollmentID := c.Query("enrollment_id"); enrollmentID != "" {
		id, err := strconv.ParseUint(enrollmentID, 10, 32)
		if err != nil {
			return response.BadRequest(c, "Invalid enrollment ID")
		}
		rows, err := h.grades.RowsForEnrollment(c.Context(), uint(id))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NotFound(c, "Enrollment not found")
			}
			return response.InternalServerError(c, "Failed to fetch grades")
		}
		return response.Success(c, rows)
	}

	var filter services.GradeFilter
	var err error
	if filter.StudentID, err = queryID(c, "student_id"); err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}
	if filter.CourseID, err = queryID(c, "course_id"); err != nil {
		return response.BadRequest(c, "Invalid course ID")
	}
	if filter.ProfessorID, err = queryID(c, "professor_id"); err != nil {
		return response.BadRequest(c, "Invalid professor ID")
	}

	rows, err := h.grades.Rows(c.Context(), filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch grades")
	}
	return response.Success(c, rows)
}

// queryID parses an optional numeric query parameter, zero when absent.
func queryID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// GetGrade handles GET /api/v1/grades/:id
func (h *GradeHandler) GetGrade(c *fiber.Ctx) error {
	id := c.Params("id")

	var grade model.Grade
	if err := h.db.First(&grade, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Grade not found")
		}
		return response.InternalServerError(c, "Failed to fetch grade")
	}
	return response.Success(c, grade)
}

// CreateGrade handles POST /api/v1/grades
func (h *GradeHandler) CreateGrade(c *fiber.Ctx) error {
	in, err := h.parseInput(c)
	if err != nil {
		return err
	}

	grade, err := h.grades.Create(c.Context(), *in)
	if err != nil {
		return h.serviceError(c, err)
	}
	return response.Created(c, grade)
}

// UpdateGrade handles PUT /api/v1/grades/:id. The enrollment of an existing
// grade cannot change; the component, score and date can.
func (h *GradeHandler) UpdateGrade(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Grade ID is required")
	}

	in, err := h.parseInput(c)
	if err != nil {
		return err
	}

	grade, err := h.grades.Update(c.Context(), uint(id), *in)
	if err != nil {
		return h.serviceError(c, err)
	}
	return response.SuccessWithMessage(c, "Grade updated successfully", grade)
}

// DeleteGrade handles DELETE /api/v1/grades/:id. Grades have no dependents,
// so deletion is unconditional.
func (h *GradeHandler) DeleteGrade(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Grade ID is required")
	}

	var grade model.Grade
	if err := h.db.First(&grade, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Grade not found")
		}
		return response.InternalServerError(c, "Failed to fetch grade")
	}

	if err := h.db.Delete(&grade).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete grade")
	}
	return response.SuccessWithMessage(c, "Grade deleted successfully", nil)
}

func (h *GradeHandler) parseInput(c *fiber.Ctx) (*services.GradeInput, error) {
	var req GradeRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return nil, response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, response.BadRequest(c, "Date must be in YYYY-MM-DD format")
	}

	return &services.GradeInput{
		EnrollmentID: req.EnrollmentID,
		Component:    req.Component,
		Score:        req.Score,
		Date:         date,
		ProfessorID:  req.ProfessorID,
	}, nil
}

// serviceError maps grade service failures onto the response envelope.
func (h *GradeHandler) serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrDuplicateGrade):
		return response.Duplicate(c, services.ErrDuplicateGrade.Error())
	case errors.Is(err, services.ErrUnknownComponent):
		return response.BadRequest(c, services.ErrUnknownComponent.Error())
	case errors.Is(err, services.ErrScoreOutOfRange):
		return response.BadRequest(c, services.ErrScoreOutOfRange.Error())
	case errors.Is(err, services.ErrDateOutsideTerm):
		return response.BadRequest(c, services.ErrDateOutsideTerm.Error())
	case errors.Is(err, academic.ErrInvalidComponentKey):
		return response.BadRequest(c, "Component must look like \"Exam 1\"")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return response.NotFound(c, "Enrollment not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return response.Duplicate(c, services.ErrDuplicateGrade.Error())
	default:
		return response.InternalServerError(c, "Failed to save grade")
	}
}
