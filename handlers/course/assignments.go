package course

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academic-records-api/model"
	"github.com/sahilchouksey/academic-records-api/utils/response"
	"github.com/sahilchouksey/academic-records-api/utils/validation"
	"gorm.io/gorm"
)

// AssignProfessorRequest links a professor to a course
type AssignProfessorRequest struct {
	ProfessorID uint `json:"professor_id" validate:"required,min=1"`
}

// ListAssignments handles GET /api/v1/courses/:id/professors
func (h *CourseHandler) ListAssignments(c *fiber.Ctx) error {
	id := c.Params("id")

	var course model.Course
	if err := h.db.First(&course, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	var assignments []model.CourseAssignment
	if err := h.db.Preload("Professor").
		Where("course_id = ?", id).
		Find(&assignments).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch assignments")
	}

	return response.Success(c, assignments)
}

// AssignProfessor handles POST /api/v1/courses/:id/professors
func (h *CourseHandler) AssignProfessor(c *fiber.Ctx) error {
	id := c.Params("id")

	var course model.Course
	if err := h.db.First(&course, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	var req AssignProfessorRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	var professor model.Professor
	if err := h.db.First(&professor, req.ProfessorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Professor not found")
		}
		return response.InternalServerError(c, "Failed to fetch professor")
	}

	var existing int64
	if err := h.db.Model(&model.CourseAssignment{}).
		Where("course_id = ? AND professor_id = ?", course.ID, professor.ID).
		Count(&existing).Error; err != nil {
		return response.InternalServerError(c, "Failed to check existing assignment")
	}
	if existing > 0 {
		return response.Duplicate(c, "Professor is already assigned to this course")
	}

	assignment := model.CourseAssignment{
		CourseID:    course.ID,
		ProfessorID: professor.ID,
	}
	if err := h.db.Create(&assignment).Error; err != nil {
		return response.InternalServerError(c, "Failed to assign professor")
	}

	return response.Created(c, assignment)
}

// UnassignProfessor handles DELETE /api/v1/courses/:id/professors/:professor_id.
// Assignments have no dependents of their own, so no guard applies.
func (h *CourseHandler) UnassignProfessor(c *fiber.Ctx) error {
	id := c.Params("id")
	professorID := c.Params("professor_id")

	var assignment model.CourseAssignment
	if err := h.db.Where("course_id = ? AND professor_id = ?", id, professorID).
		First(&assignment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Assignment not found")
		}
		return response.InternalServerError(c, "Failed to fetch assignment")
	}

	if err := h.db.Delete(&assignment).Error; err != nil {
		return response.InternalServerError(c, "Failed to remove assignment")
	}

	return response.SuccessWithMessage(c, "Professor unassigned successfully", nil)
}
