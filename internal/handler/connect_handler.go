package handler

import (
	"strconv"

	"github.com/findtutor/findtutor-backend/internal/models"
	"github.com/findtutor/findtutor-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type connectManager interface {
	SendRequest(req models.SendRequestRequest) (*models.ConnectionRequest, error)
	ListForTeacher(teacherID uint) ([]models.TeacherRequestView, error)
	CountsForTeacher(teacherID uint) (*models.RequestCounts, error)
	RejectRequest(requestID string) error
	RequestStatus(studentID, postID uint) (*models.RequestStatusResponse, error)
}

type ConnectHandler struct {
	connectService connectManager
	validator      *utils.Validator
}

func NewConnectHandler(connectService connectManager, validator *utils.Validator) *ConnectHandler {
	return &ConnectHandler{
		connectService: connectService,
		validator:      validator,
	}
}

func (h *ConnectHandler) SendRequest(c *fiber.Ctx) error {
	var req models.SendRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	request, err := h.connectService.SendRequest(req)
	if err != nil {
		return c.Status(statusForError(err)).JSON(models.ErrorResponse(err.Error()))
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(request, "Connection request sent"))
}

func (h *ConnectHandler) GetTeacherRequests(c *fiber.Ctx) error {
	teacherID, err := strconv.ParseUint(c.Params("teacherId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid teacher ID"))
	}

	requests, err := h.connectService.ListForTeacher(uint(teacherID))
	if err != nil {
		return c.Status(statusForError(err)).JSON(models.ErrorResponse("Failed to load requests"))
	}

	return c.JSON(models.SuccessResponse(requests, ""))
}

func (h *ConnectHandler) GetTeacherRequestCounts(c *fiber.Ctx) error {
	teacherID, err := strconv.ParseUint(c.Params("teacherId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid teacher ID"))
	}

	counts, err := h.connectService.CountsForTeacher(uint(teacherID))
	if err != nil {
		return c.Status(statusForError(err)).JSON(models.ErrorResponse("Failed to load request counts"))
	}

	return c.JSON(counts)
}

func (h *ConnectHandler) RejectRequest(c *fiber.Ctx) error {
	requestID := c.Params("requestId")

	if err := h.connectService.RejectRequest(requestID); err != nil {
		return c.Status(statusForError(err)).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(nil, "Request rejected"))
}

func (h *ConnectHandler) GetRequestStatus(c *fiber.Ctx) error {
	postID, err := strconv.ParseUint(c.Params("postId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid post ID"))
	}
	studentID, err := strconv.ParseUint(c.Params("studentId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid student ID"))
	}

	status, err := h.connectService.RequestStatus(uint(studentID), uint(postID))
	if err != nil {
		return c.Status(statusForError(err)).JSON(models.ErrorResponse("Failed to load request status"))
	}

	return c.JSON(status)
}
