package handler

import (
	"github.com/findtutor/findtutor-backend/internal/models"
	"github.com/findtutor/findtutor-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type premiumManager interface {
	TeacherStatus(teacherEmail string) (*models.PremiumStatusResponse, error)
	StudentStatus(studentEmail string) (*models.PremiumStatusResponse, error)
	UpdateContent(req models.UpdatePremiumContentRequest) (*models.TeacherPremium, error)
}

type PremiumHandler struct {
	premiumService premiumManager
	validator      *utils.Validator
}

func NewPremiumHandler(premiumService premiumManager, validator *utils.Validator) *PremiumHandler {
	return &PremiumHandler{
		premiumService: premiumService,
		validator:      validator,
	}
}

func (h *PremiumHandler) CheckTeacherPremiumStatus(c *fiber.Ctx) error {
	teacherEmail := c.Params("teacherEmail")

	status, err := h.premiumService.TeacherStatus(teacherEmail)
	if err != nil {
		return c.Status(statusForError(err)).JSON(models.ErrorResponse("Failed to check premium status"))
	}

	return c.JSON(status)
}

func (h *PremiumHandler) CheckStudentPremiumStatus(c *fiber.Ctx) error {
	studentEmail := c.Params("studentEmail")

	status, err := h.premiumService.StudentStatus(studentEmail)
	if err != nil {
		return c.Status(statusForError(err)).JSON(models.ErrorResponse("Failed to check premium status"))
	}

	return c.JSON(status)
}

func (h *PremiumHandler) UpdatePremiumContent(c *fiber.Ctx) error {
	var req models.UpdatePremiumContentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	premium, err := h.premiumService.UpdateContent(req)
	if err != nil {
		return c.Status(statusForError(err)).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(premium, "Premium content updated successfully"))
}
