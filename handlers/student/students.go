package student

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academic-records-api/model"
	"github.com/sahilchouksey/academic-records-api/services"
	"github.com/sahilchouksey/academic-records-api/utils/response"
	"github.com/sahilchouksey/academic-records-api/utils/validation"
	"gorm.io/gorm"
)

// StudentHandler handles student-related requests
type StudentHandler struct {
	db        *gorm.DB
	deletion  *services.DeletionService
	validator *validation.Validator
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(db *gorm.DB, deletion *services.DeletionService) *StudentHandler {
	return &StudentHandler{
		db:        db,
		deletion:  deletion,
		validator: validation.NewValidator(),
	}
}

// CreateStudentRequest represents the request body for creating a student
type CreateStudentRequest struct {
	RUT        string `json:"rut" validate:"required,rut"`
	FirstNames string `json:"first_names" validate:"required,min=2,max=100"`
	LastNames  string `json:"last_names" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email"`
}

// UpdateStudentRequest represents the request body for updating a student.
// The RUT is immutable and deliberately absent.
type UpdateStudentRequest struct {
	FirstNames string `json:"first_names" validate:"omitempty,min=2,max=100"`
	LastNames  string `json:"last_names" validate:"omitempty,min=2,max=100"`
	Email      string `json:"email" validate:"omitempty,email"`
}

// ListStudents handles GET /api/v1/students
func (h *StudentHandler) ListStudents(c *fiber.Ctx) error {
	query := h.db.Model(&model.Student{})

	// Optional text search over RUT and names
	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"rut ILIKE ? OR first_names ILIKE ? OR last_names ILIKE ?",
			like, like, like,
		)
	}

	var students []model.Student
	if err := query.Order("last_names ASC, first_names ASC").Find(&students).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch students")
	}

	return response.Success(c, students)
}

// GetStudent handles GET /api/v1/students/:id
func (h *StudentHandler) GetStudent(c *fiber.Ctx) error {
	id := c.Params("id")

	var student model.Student
	if err := h.db.First(&student, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Student not found")
		}
		return response.InternalServerError(c, "Failed to fetch student")
	}

	return response.Success(c, student)
}

// CreateStudent handles POST /api/v1/students
func (h *StudentHandler) CreateStudent(c *fiber.Ctx) error {
	var req CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	// RUT must be unique
	var existing int64
	if err := h.db.Model(&model.Student{}).Where("rut = ?", req.RUT).Count(&existing).Error; err != nil {
		return response.InternalServerError(c, "Failed to check existing student")
	}
	if existing > 0 {
		return response.Conflict(c, "A student with this RUT already exists")
	}

	student := model.Student{
		RUT:        req.RUT,
		FirstNames: req.FirstNames,
		LastNames:  req.LastNames,
		Email:      req.Email,
	}
	if err := h.db.Create(&student).Error; err != nil {
		return response.InternalServerError(c, "Failed to create student")
	}

	return response.Created(c, student)
}

// UpdateStudent handles PUT /api/v1/students/:id
func (h *StudentHandler) UpdateStudent(c *fiber.Ctx) error {
	id := c.Params("id")

	var student model.Student
	if err := h.db.First(&student, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Student not found")
		}
		return response.InternalServerError(c, "Failed to fetch student")
	}

	var req UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	if req.FirstNames != "" {
		student.FirstNames = req.FirstNames
	}
	if req.LastNames != "" {
		student.LastNames = req.LastNames
	}
	if req.Email != "" {
		student.Email = req.Email
	}

	if err := h.db.Save(&student).Error; err != nil {
		return response.InternalServerError(c, "Failed to update student")
	}

	return response.Success(c, student)
}

// DeleteStudent handles DELETE /api/v1/students/:id. The deletion guard
// decides; a student with enrollments (or grades through them) is never
// removed.
func (h *StudentHandler) DeleteStudent(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Student ID is required")
	}

	var student model.Student
	if err := h.db.First(&student, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Student not found")
		}
		return response.InternalServerError(c, "Failed to fetch student")
	}

	verdict, err := h.deletion.DeleteStudent(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to delete student")
	}
	if !verdict.Allowed {
		return response.Blocked(c, verdict.Reason, verdict.Blocking)
	}

	return response.SuccessWithMessage(c, "Student deleted successfully", nil)
}
