package handler

import (
	"mime/multipart"
	"strconv"

	"github.com/findtutor/findtutor-backend/internal/models"
	"github.com/findtutor/findtutor-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type teacherManager interface {
	Register(req models.TeacherRegisterRequest, photo *multipart.FileHeader) (*models.TeacherAuthResponse, error)
	Login(req models.TeacherLoginRequest) (*models.TeacherAuthResponse, error)
	GetByID(id uint) (*models.Teacher, error)
	Update(id uint, req models.UpdateTeacherRequest) (*models.Teacher, error)
}

type TeacherHandler struct {
	teacherService teacherManager
	validator      *utils.Validator
}

func NewTeacherHandler(teacherService teacherManager, validator *utils.Validator) *TeacherHandler {
	return &TeacherHandler{
		teacherService: teacherService,
		validator:      validator,
	}
}

// Register accepts the multipart registration form, the optional
// profilePhoto file part is uploaded to object storage.
func (h *TeacherHandler) Register(c *fiber.Ctx) error {
	req := models.TeacherRegisterRequest{
		Name:        c.FormValue("name"),
		Email:       c.FormValue("email"),
		Password:    c.FormValue("password"),
		PhoneNumber: c.FormValue("phoneNumber"),
		CityOrTown:  c.FormValue("cityOrTown"),
		Country:     c.FormValue("country"),
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	photo, err := c.FormFile("profilePhoto")
	if err != nil {
		photo = nil
	}

	resp, err := h.teacherService.Register(req, photo)
	if err != nil {
		return c.Status(statusForError(err)).JSON(models.ErrorResponse(err.Error()))
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *TeacherHandler) Login(c *fiber.Ctx) error {
	var req models.TeacherLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	resp, err := h.teacherService.Login(req)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(resp)
}

func (h *TeacherHandler) GetTeacher(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid teacher ID"))
	}

	teacher, err := h.teacherService.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Teacher not found"))
	}

	return c.JSON(teacher)
}

func (h *TeacherHandler) UpdateTeacher(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid teacher ID"))
	}

	accountID, ok := c.Locals("accountID").(uint)
	if !ok || accountID != uint(id) || c.Locals("accountRole") != "teacher" {
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("You can only update your own profile"))
	}

	var req models.UpdateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	teacher, err := h.teacherService.Update(uint(id), req)
	if err != nil {
		return c.Status(statusForError(err)).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(teacher, "Profile updated"))
}
