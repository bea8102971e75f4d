package course

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academic-records-api/model"
	"github.com/sahilchouksey/academic-records-api/services"
	"github.com/sahilchouksey/academic-records-api/utils/response"
	"github.com/sahilchouksey/academic-records-api/utils/validation"
	"gorm.io/gorm"
)

// CourseHandler handles course-related requests
type CourseHandler struct {
	db        *gorm.DB
	deletion  *services.DeletionService
	validator *validation.Validator
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(db *gorm.DB, deletion *services.DeletionService) *CourseHandler {
	return &CourseHandler{
		db:        db,
		deletion:  deletion,
		validator: validation.NewValidator(),
	}
}

// CreateCourseRequest represents the request body for creating a course
type CreateCourseRequest struct {
	Code    string `json:"code" validate:"required,min=2,max=20"`
	Name    string `json:"name" validate:"required,min=3,max=150"`
	Credits int    `json:"credits" validate:"required,min=1,max=20"`
}

// UpdateCourseRequest represents the request body for updating a course.
// The code is immutable and deliberately absent; the evaluation scheme has
// its own endpoint.
type UpdateCourseRequest struct {
	Name    string `json:"name" validate:"omitempty,min=3,max=150"`
	Credits *int   `json:"credits" validate:"omitempty,min=1,max=20"`
}

// ListCourses handles GET /api/v1/courses
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	query := h.db.Model(&model.Course{})

	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ?", like, like)
	}

	var courses []model.Course
	if err := query.Order("code ASC").Find(&courses).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch courses")
	}

	return response.Success(c, courses)
}

// GetCourse handles GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	id := c.Params("id")

	var course model.Course
	if err := h.db.First(&course, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	return response.Success(c, course)
}

// CreateCourse handles POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	var existing int64
	if err := h.db.Model(&model.Course{}).Where("code = ?", req.Code).Count(&existing).Error; err != nil {
		return response.InternalServerError(c, "Failed to check existing course")
	}
	if existing > 0 {
		return response.Conflict(c, "A course with this code already exists")
	}

	course := model.Course{
		Code:    req.Code,
		Name:    req.Name,
		Credits: req.Credits,
	}
	if err := h.db.Create(&course).Error; err != nil {
		return response.InternalServerError(c, "Failed to create course")
	}

	return response.Created(c, course)
}

// UpdateCourse handles PUT /api/v1/courses/:id
func (h *CourseHandler) UpdateCourse(c *fiber.Ctx) error {
	id := c.Params("id")

	var course model.Course
	if err := h.db.First(&course, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	var req UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	if req.Name != "" {
		course.Name = req.Name
	}
	if req.Credits != nil {
		course.Credits = *req.Credits
	}

	if err := h.db.Save(&course).Error; err != nil {
		return response.InternalServerError(c, "Failed to update course")
	}

	return response.Success(c, course)
}

// DeleteCourse handles DELETE /api/v1/courses/:id. Enrollments block the
// delete; course assignments do not, they are removed in the same
// transaction as the course.
func (h *CourseHandler) DeleteCourse(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Course ID is required")
	}

	var course model.Course
	if err := h.db.First(&course, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	verdict, err := h.deletion.DeleteCourse(c.Context(), uint(id))
	if err != nil {
		// The transaction rolled back: neither the assignments nor the
		// course were removed.
		return response.InternalServerError(c, "Failed to delete course; nothing was removed")
	}
	if !verdict.Allowed {
		return response.Blocked(c, verdict.Reason, verdict.Blocking)
	}

	return response.SuccessWithMessage(c, "Course deleted successfully", nil)
}
