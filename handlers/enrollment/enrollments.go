package enrollment

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academic-records-api/model"
	"github.com/sahilchouksey/academic-records-api/services"
	"github.com/sahilchouksey/academic-records-api/utils/response"
	"github.com/sahilchouksey/academic-records-api/utils/validation"
	"gorm.io/gorm"
)

// EnrollmentHandler handles enrollment-related requests
type EnrollmentHandler struct {
	db        *gorm.DB
	deletion  *services.DeletionService
	grades    *services.GradeService
	validator *validation.Validator
}

// NewEnrollmentHandler creates a new enrollment handler
func NewEnrollmentHandler(db *gorm.DB, deletion *services.DeletionService, grades *services.GradeService) *EnrollmentHandler {
	return &EnrollmentHandler{
		db:        db,
		deletion:  deletion,
		grades:    grades,
		validator: validation.NewValidator(),
	}
}

// CreateEnrollmentRequest represents the request body for creating an
// enrollment. Enrollments are immutable once created; there is no update.
type CreateEnrollmentRequest struct {
	StudentID   uint `json:"student_id" validate:"required,min=1"`
	CourseID    uint `json:"course_id" validate:"required,min=1"`
	ProfessorID uint `json:"professor_id" validate:"required,min=1"`
	Term        int  `json:"term" validate:"required,oneof=1 2"`
	Year        int  `json:"year" validate:"required,min=1990,max=2100"`
}

// ListEnrollments handles GET /api/v1/enrollments
func (h *EnrollmentHandler) ListEnrollments(c *fiber.Ctx) error {
	query := h.db.Model(&model.Enrollment{}).
		Preload("Student").
		Preload("Course").
		Preload("Professor")

	if studentID := c.Query("student_id"); studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}
	if courseID := c.Query("course_id"); courseID != "" {
		query = query.Where("course_id = ?", courseID)
	}
	if year := c.Query("year"); year != "" {
		query = query.Where("year = ?", year)
	}
	if term := c.Query("term"); term != "" {
		query = query.Where("term = ?", term)
	}

	var enrollments []model.Enrollment
	if err := query.Order("year DESC, term DESC, id ASC").Find(&enrollments).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch enrollments")
	}

	return response.Success(c, enrollments)
}

// GetEnrollment handles GET /api/v1/enrollments/:id
func (h *EnrollmentHandler) GetEnrollment(c *fiber.Ctx) error {
	id := c.Params("id")

	var enrollment model.Enrollment
	if err := h.db.Preload("Student").
		Preload("Course").
		Preload("Professor").
		First(&enrollment, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Enrollment not found")
		}
		return response.InternalServerError(c, "Failed to fetch enrollment")
	}

	return response.Success(c, enrollment)
}

// CreateEnrollment handles POST /api/v1/enrollments. The professor must
// already be assigned to the course.
func (h *EnrollmentHandler) CreateEnrollment(c *fiber.Ctx) error {
	var req CreateEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	var student model.Student
	if err := h.db.First(&student, req.StudentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Student not found")
		}
		return response.InternalServerError(c, "Failed to fetch student")
	}

	var course model.Course
	if err := h.db.First(&course, req.CourseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	// The professor must be linked to the course via a CourseAssignment
	var assigned int64
	if err := h.db.Model(&model.CourseAssignment{}).
		Where("course_id = ? AND professor_id = ?", req.CourseID, req.ProfessorID).
		Count(&assigned).Error; err != nil {
		return response.InternalServerError(c, "Failed to check professor assignment")
	}
	if assigned == 0 {
		return response.BadRequest(c, "Professor is not assigned to this course")
	}

	// One enrollment per student/course/term/year
	var existing int64
	if err := h.db.Model(&model.Enrollment{}).
		Where("student_id = ? AND course_id = ? AND term = ? AND year = ?",
			req.StudentID, req.CourseID, req.Term, req.Year).
		Count(&existing).Error; err != nil {
		return response.InternalServerError(c, "Failed to check existing enrollment")
	}
	if existing > 0 {
		return response.Duplicate(c, "Student is already enrolled in this course for the selected term")
	}

	enrollment := model.Enrollment{
		StudentID:   req.StudentID,
		CourseID:    req.CourseID,
		ProfessorID: req.ProfessorID,
		Term:        req.Term,
		Year:        req.Year,
	}
	if err := h.db.Create(&enrollment).Error; err != nil {
		return response.InternalServerError(c, "Failed to create enrollment")
	}

	return response.Created(c, enrollment)
}

// DeleteEnrollment handles DELETE /api/v1/enrollments/:id. Any grade
// referencing the enrollment blocks the delete.
func (h *EnrollmentHandler) DeleteEnrollment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Enrollment ID is required")
	}

	var enrollment model.Enrollment
	if err := h.db.First(&enrollment, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Enrollment not found")
		}
		return response.InternalServerError(c, "Failed to fetch enrollment")
	}

	verdict, err := h.deletion.DeleteEnrollment(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to delete enrollment")
	}
	if !verdict.Allowed {
		return response.Blocked(c, verdict.Reason, verdict.Blocking)
	}

	return response.SuccessWithMessage(c, "Enrollment deleted successfully", nil)
}

// GetFinalGrade handles GET /api/v1/enrollments/:id/final-grade. The final
// grade is recomputed from the scheme and scores on every call, never stored.
func (h *EnrollmentHandler) GetFinalGrade(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Enrollment ID is required")
	}

	result, err := h.grades.FinalGrade(c.Context(), uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Enrollment not found")
		}
		return response.InternalServerError(c, "Failed to compute final grade")
	}

	return response.Success(c, result)
}
