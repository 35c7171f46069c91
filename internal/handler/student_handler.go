package handler

import (
	"strconv"

	"github.com/findtutor/findtutor-backend/internal/models"
	"github.com/findtutor/findtutor-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type studentManager interface {
	Register(req models.StudentRegisterRequest) (*models.StudentAuthResponse, error)
	Login(req models.StudentLoginRequest) (*models.StudentAuthResponse, error)
	GetByID(id uint) (*models.Student, error)
	Update(id uint, req models.UpdateStudentRequest) (*models.Student, error)
}

type StudentHandler struct {
	studentService studentManager
	validator      *utils.Validator
}

func NewStudentHandler(studentService studentManager, validator *utils.Validator) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
		validator:      validator,
	}
}

func (h *StudentHandler) Register(c *fiber.Ctx) error {
	var req models.StudentRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	resp, err := h.studentService.Register(req)
	if err != nil {
		return c.Status(statusForError(err)).JSON(models.ErrorResponse(err.Error()))
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *StudentHandler) Login(c *fiber.Ctx) error {
	var req models.StudentLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	resp, err := h.studentService.Login(req)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(resp)
}

// GetStudent returns the full profile including contact details, so it is
// restricted to the student's own account. Teachers see contact details
// only through their request inbox once a contact purchase revealed them.
func (h *StudentHandler) GetStudent(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid student ID"))
	}

	accountID, ok := c.Locals("accountID").(uint)
	if !ok || accountID != uint(id) || c.Locals("accountRole") != "student" {
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("You can only view your own profile"))
	}

	student, err := h.studentService.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Student not found"))
	}

	return c.JSON(student)
}

func (h *StudentHandler) UpdateStudent(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid student ID"))
	}

	accountID, ok := c.Locals("accountID").(uint)
	if !ok || accountID != uint(id) || c.Locals("accountRole") != "student" {
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("You can only update your own profile"))
	}

	var req models.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	student, err := h.studentService.Update(uint(id), req)
	if err != nil {
		return c.Status(statusForError(err)).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(student, "Profile updated"))
}
