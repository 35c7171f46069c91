package service

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/findtutor/findtutor-backend/internal/models"
	"github.com/findtutor/findtutor-backend/pkg/bcrypt"
	jwtPkg "github.com/findtutor/findtutor-backend/pkg/jwt"
	"github.com/findtutor/findtutor-backend/pkg/storage"
	"github.com/findtutor/findtutor-backend/pkg/utils"
	"go.uber.org/zap"
)

type teacherStore interface {
	Create(teacher *models.Teacher) error
	GetByID(id uint) (*models.Teacher, error)
	GetByEmail(email string) (*models.Teacher, error)
	EmailExists(email string) (bool, error)
	Update(teacher *models.Teacher) error
}

type TeacherService struct {
	teacherRepo teacherStore
	photoStore  storage.StorageService
	logger      *zap.Logger
}

func NewTeacherService(teacherRepo teacherStore, photoStore storage.StorageService, logger *zap.Logger) *TeacherService {
	return &TeacherService{
		teacherRepo: teacherRepo,
		photoStore:  photoStore,
		logger:      logger,
	}
}

func (s *TeacherService) Register(req models.TeacherRegisterRequest, photo *multipart.FileHeader) (*models.TeacherAuthResponse, error) {
	exists, err := s.teacherRepo.EmailExists(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: email already registered", ErrValidation)
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	teacher := &models.Teacher{
		Name:        req.Name,
		Email:       req.Email,
		Password:    hashedPassword,
		PhoneNumber: req.PhoneNumber,
		CityOrTown:  req.CityOrTown,
		Country:     req.Country,
	}

	if photo != nil {
		url, err := s.uploadProfilePhoto(photo)
		if err != nil {
			// Registration still goes through without the photo.
			s.logger.Error("profile photo upload failed",
				zap.String("email", req.Email), zap.Error(err))
		} else {
			teacher.ProfilePhotoURL = url
		}
	}

	if err := s.teacherRepo.Create(teacher); err != nil {
		return nil, err
	}

	token, err := jwtPkg.GenerateToken(teacher.Email, teacher.ID, "teacher")
	if err != nil {
		return nil, err
	}

	s.logger.Info("teacher registered", zap.Uint("teacher_id", teacher.ID))

	return &models.TeacherAuthResponse{
		Token:     token,
		TeacherID: teacher.ID,
		Teacher:   *teacher,
	}, nil
}

func (s *TeacherService) Login(req models.TeacherLoginRequest) (*models.TeacherAuthResponse, error) {
	teacher, err := s.teacherRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.ComparePassword(teacher.Password, req.Password); err != nil {
		return nil, errors.New("invalid email or password")
	}

	token, err := jwtPkg.GenerateToken(teacher.Email, teacher.ID, "teacher")
	if err != nil {
		return nil, fmt.Errorf("token generation failed: %v", err)
	}

	return &models.TeacherAuthResponse{
		Token:     token,
		TeacherID: teacher.ID,
		Teacher:   *teacher,
	}, nil
}

func (s *TeacherService) GetByID(id uint) (*models.Teacher, error) {
	return s.teacherRepo.GetByID(id)
}

func (s *TeacherService) Update(id uint, req models.UpdateTeacherRequest) (*models.Teacher, error) {
	teacher, err := s.teacherRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		teacher.Name = *req.Name
	}
	if req.PhoneNumber != nil {
		teacher.PhoneNumber = *req.PhoneNumber
	}
	if req.CityOrTown != nil {
		teacher.CityOrTown = *req.CityOrTown
	}
	if req.Country != nil {
		teacher.Country = *req.Country
	}

	if err := s.teacherRepo.Update(teacher); err != nil {
		return nil, err
	}

	return teacher, nil
}

func (s *TeacherService) uploadProfilePhoto(photo *multipart.FileHeader) (string, error) {
	file, err := photo.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(photo.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	key := "profiles/" + utils.GenerateRecordID() + ext

	contentType := photo.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := s.photoStore.Upload(key, file, photo.Size, contentType); err != nil {
		return "", err
	}

	return s.photoStore.PublicURL(key), nil
}
