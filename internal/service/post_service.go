package service

import (
	"errors"
	"fmt"

	"github.com/findtutor/findtutor-backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type postStore interface {
	Create(post *models.TeacherPost) error
	GetByID(id uint) (*models.TeacherPost, error)
	GetAllActive() ([]models.TeacherPost, error)
	GetByTeacherID(teacherID uint) ([]models.TeacherPost, error)
	Update(post *models.TeacherPost) error
	Delete(id uint) error
}

type PostService struct {
	postRepo postStore
	logger   *zap.Logger
}

func NewPostService(postRepo postStore, logger *zap.Logger) *PostService {
	return &PostService{
		postRepo: postRepo,
		logger:   logger,
	}
}

func (s *PostService) Create(teacherID uint, req models.CreatePostRequest) (*models.TeacherPost, error) {
	post := &models.TeacherPost{
		TeacherID:   teacherID,
		Subject:     req.Subject,
		Title:       req.Title,
		Description: req.Description,
		HourlyRate:  req.HourlyRate,
		Location:    req.Location,
		Online:      req.Online,
		InPerson:    req.InPerson,
		Status:      "active",
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	s.logger.Info("post created",
		zap.Uint("post_id", post.ID), zap.Uint("teacher_id", teacherID))

	return post, nil
}

func (s *PostService) ListActive() ([]models.TeacherPost, error) {
	return s.postRepo.GetAllActive()
}

func (s *PostService) ListByTeacher(teacherID uint) ([]models.TeacherPost, error) {
	return s.postRepo.GetByTeacherID(teacherID)
}

func (s *PostService) Update(postID, teacherID uint, req models.UpdatePostRequest) (*models.TeacherPost, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: post not found", ErrNotFound)
		}
		return nil, err
	}
	if post.TeacherID != teacherID {
		return nil, fmt.Errorf("%w: post belongs to another teacher", ErrPermission)
	}

	if req.Subject != nil {
		post.Subject = *req.Subject
	}
	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Description != nil {
		post.Description = *req.Description
	}
	if req.HourlyRate != nil {
		post.HourlyRate = *req.HourlyRate
	}
	if req.Location != nil {
		post.Location = *req.Location
	}
	if req.Online != nil {
		post.Online = *req.Online
	}
	if req.InPerson != nil {
		post.InPerson = *req.InPerson
	}
	if req.Status != nil {
		post.Status = *req.Status
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *PostService) Delete(postID, teacherID uint) error {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: post not found", ErrNotFound)
		}
		return err
	}
	if post.TeacherID != teacherID {
		return fmt.Errorf("%w: post belongs to another teacher", ErrPermission)
	}

	return s.postRepo.Delete(postID)
}
