package handler

import (
	"strconv"

	"github.com/findtutor/findtutor-backend/internal/models"
	"github.com/findtutor/findtutor-backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type postManager interface {
	Create(teacherID uint, req models.CreatePostRequest) (*models.TeacherPost, error)
	ListActive() ([]models.TeacherPost, error)
	ListByTeacher(teacherID uint) ([]models.TeacherPost, error)
	Update(postID, teacherID uint, req models.UpdatePostRequest) (*models.TeacherPost, error)
	Delete(postID, teacherID uint) error
}

type PostHandler struct {
	postService postManager
	validator   *utils.Validator
}

func NewPostHandler(postService postManager, validator *utils.Validator) *PostHandler {
	return &PostHandler{
		postService: postService,
		validator:   validator,
	}
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	teacherID, ok := teacherFromContext(c)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("Only teachers can create posts"))
	}

	var req models.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	post, err := h.postService.Create(teacherID, req)
	if err != nil {
		return c.Status(statusForError(err)).JSON(models.ErrorResponse(err.Error()))
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(post, "Post created"))
}

func (h *PostHandler) GetAllPosts(c *fiber.Ctx) error {
	posts, err := h.postService.ListActive()
	if err != nil {
		return c.Status(statusForError(err)).JSON(models.ErrorResponse("Failed to load posts"))
	}

	return c.JSON(posts)
}

func (h *PostHandler) GetTeacherPosts(c *fiber.Ctx) error {
	teacherID, err := strconv.ParseUint(c.Params("teacherId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid teacher ID"))
	}

	posts, err := h.postService.ListByTeacher(uint(teacherID))
	if err != nil {
		return c.Status(statusForError(err)).JSON(models.ErrorResponse("Failed to load posts"))
	}

	return c.JSON(posts)
}

func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	teacherID, ok := teacherFromContext(c)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("Only teachers can update posts"))
	}

	postID, err := strconv.ParseUint(c.Params("postId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid post ID"))
	}

	var req models.UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	post, err := h.postService.Update(uint(postID), teacherID, req)
	if err != nil {
		return c.Status(statusForError(err)).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(post, "Post updated"))
}

func (h *PostHandler) DeletePost(c *fiber.Ctx) error {
	teacherID, ok := teacherFromContext(c)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("Only teachers can delete posts"))
	}

	postID, err := strconv.ParseUint(c.Params("postId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid post ID"))
	}

	if err := h.postService.Delete(uint(postID), teacherID); err != nil {
		return c.Status(statusForError(err)).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(nil, "Post deleted"))
}

func teacherFromContext(c *fiber.Ctx) (uint, bool) {
	accountID, ok := c.Locals("accountID").(uint)
	if !ok {
		return 0, false
	}
	if c.Locals("accountRole") != "teacher" {
		return 0, false
	}
	return accountID, true
}
