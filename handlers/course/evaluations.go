package course

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academic-records-api/model"
	"github.com/sahilchouksey/academic-records-api/services/academic"
	"github.com/sahilchouksey/academic-records-api/utils/response"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UpdateEvaluationsRequest replaces a course's evaluation scheme wholesale.
// A course may transiently hold an invalid total while being edited client
// side; persistence is the only point where the sum must be exactly 100.
type UpdateEvaluationsRequest struct {
	Evaluations []model.EvaluationComponent `json:"evaluations"`
}

// UpdateEvaluations handles PUT /api/v1/courses/:id/evaluations
func (h *CourseHandler) UpdateEvaluations(c *fiber.Ctx) error {
	id := c.Params("id")

	var course model.Course
	if err := h.db.First(&course, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	var req UpdateEvaluationsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := academic.ValidateScheme(req.Evaluations); err != nil {
		var sumErr *academic.WeightSumError
		if errors.As(err, &sumErr) {
			return response.ValidationError(c, fiber.Map{
				"evaluations": err.Error(),
				"sum":         sumErr.Sum,
			})
		}
		return response.ValidationError(c, fiber.Map{"evaluations": err.Error()})
	}

	course.Evaluations = datatypes.NewJSONSlice(req.Evaluations)
	if err := h.db.Save(&course).Error; err != nil {
		return response.InternalServerError(c, "Failed to update evaluation scheme")
	}

	return response.SuccessWithMessage(c, "Evaluation scheme updated successfully", course)
}

// NextComponentNumber handles GET /api/v1/courses/:id/evaluations/next-number.
// Convenience for clients adding a component: returns the sequence number the
// new component of the given type should take.
func (h *CourseHandler) NextComponentNumber(c *fiber.Ctx) error {
	id := c.Params("id")

	componentType := c.Query("type")
	if !academic.IsValidComponentType(componentType) {
		return response.BadRequest(c, "Unknown component type")
	}

	var course model.Course
	if err := h.db.First(&course, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	return response.Success(c, fiber.Map{
		"type":   componentType,
		"number": academic.NextNumber(course.Evaluations, componentType),
	})
}
