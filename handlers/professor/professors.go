package professor

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academic-records-api/model"
	"github.com/sahilchouksey/academic-records-api/services"
	"github.com/sahilchouksey/academic-records-api/utils/response"
	"github.com/sahilchouksey/academic-records-api/utils/validation"
	"gorm.io/gorm"
)

// ProfessorHandler handles professor-related requests
type ProfessorHandler struct {
	db        *gorm.DB
	deletion  *services.DeletionService
	validator *validation.Validator
}

// NewProfessorHandler creates a new professor handler
func NewProfessorHandler(db *gorm.DB, deletion *services.DeletionService) *ProfessorHandler {
	return &ProfessorHandler{
		db:        db,
		deletion:  deletion,
		validator: validation.NewValidator(),
	}
}

// CreateProfessorRequest represents the request body for creating a professor
type CreateProfessorRequest struct {
	RUT        string `json:"rut" validate:"required,rut"`
	FirstNames string `json:"first_names" validate:"required,min=2,max=100"`
	LastNames  string `json:"last_names" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email"`
}

// UpdateProfessorRequest represents the request body for updating a professor.
// The RUT is immutable and deliberately absent.
type UpdateProfessorRequest struct {
	FirstNames string `json:"first_names" validate:"omitempty,min=2,max=100"`
	LastNames  string `json:"last_names" validate:"omitempty,min=2,max=100"`
	Email      string `json:"email" validate:"omitempty,email"`
}

// ListProfessors handles GET /api/v1/professors
func (h *ProfessorHandler) ListProfessors(c *fiber.Ctx) error {
	query := h.db.Model(&model.Professor{})

	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"rut ILIKE ? OR first_names ILIKE ? OR last_names ILIKE ?",
			like, like, like,
		)
	}

	var professors []model.Professor
	if err := query.Order("last_names ASC, first_names ASC").Find(&professors).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch professors")
	}

	return response.Success(c, professors)
}

// GetProfessor handles GET /api/v1/professors/:id
func (h *ProfessorHandler) GetProfessor(c *fiber.Ctx) error {
	id := c.Params("id")

	var professor model.Professor
	if err := h.db.First(&professor, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Professor not found")
		}
		return response.InternalServerError(c, "Failed to fetch professor")
	}

	return response.Success(c, professor)
}

// CreateProfessor handles POST /api/v1/professors
func (h *ProfessorHandler) CreateProfessor(c *fiber.Ctx) error {
	var req CreateProfessorRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	var existing int64
	if err := h.db.Model(&model.Professor{}).Where("rut = ?", req.RUT).Count(&existing).Error; err != nil {
		return response.InternalServerError(c, "Failed to check existing professor")
	}
	if existing > 0 {
		return response.Conflict(c, "A professor with this RUT already exists")
	}

	professor := model.Professor{
		RUT:        req.RUT,
		FirstNames: req.FirstNames,
		LastNames:  req.LastNames,
		Email:      req.Email,
	}
	if err := h.db.Create(&professor).Error; err != nil {
		return response.InternalServerError(c, "Failed to create professor")
	}

	return response.Created(c, professor)
}

// UpdateProfessor handles PUT /api/v1/professors/:id
func (h *ProfessorHandler) UpdateProfessor(c *fiber.Ctx) error {
	id := c.Params("id")

	var professor model.Professor
	if err := h.db.First(&professor, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Professor not found")
		}
		return response.InternalServerError(c, "Failed to fetch professor")
	}

	var req UpdateProfessorRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	if req.FirstNames != "" {
		professor.FirstNames = req.FirstNames
	}
	if req.LastNames != "" {
		professor.LastNames = req.LastNames
	}
	if req.Email != "" {
		professor.Email = req.Email
	}

	if err := h.db.Save(&professor).Error; err != nil {
		return response.InternalServerError(c, "Failed to update professor")
	}

	return response.Success(c, professor)
}

// DeleteProfessor handles DELETE /api/v1/professors/:id. Blocked while any
// course assignment or authored grade references the professor.
func (h *ProfessorHandler) DeleteProfessor(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Professor ID is required")
	}

	var professor model.Professor
	if err := h.db.First(&professor, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Professor not found")
		}
		return response.InternalServerError(c, "Failed to fetch professor")
	}

	verdict, err := h.deletion.DeleteProfessor(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to delete professor")
	}
	if !verdict.Allowed {
		return response.Blocked(c, verdict.Reason, verdict.Blocking)
	}

	return response.SuccessWithMessage(c, "Professor deleted successfully", nil)
}
