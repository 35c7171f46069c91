package service

import (
	"errors"
	"fmt"

	"github.com/findtutor/findtutor-backend/internal/models"
	jwtPkg "github.com/findtutor/findtutor-backend/pkg/jwt"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type studentStore interface {
	Create(student *models.Student) error
	GetByID(id uint) (*models.Student, error)
	GetByEmail(email string) (*models.Student, error)
	EmailExists(email string) (bool, error)
	Update(student *models.Student) error
}

type StudentService struct {
	studentRepo studentStore
	logger      *zap.Logger
}

func NewStudentService(studentRepo studentStore, logger *zap.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

func (s *StudentService) Register(req models.StudentRegisterRequest) (*models.StudentAuthResponse, error) {
	exists, err := s.studentRepo.EmailExists(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: email already registered", ErrValidation)
	}

	student := &models.Student{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Location:    req.Location,
		Country:     req.Country,
	}

	if err := s.studentRepo.Create(student); err != nil {
		return nil, err
	}

	token, err := jwtPkg.GenerateToken(student.Email, student.ID, "student")
	if err != nil {
		return nil, err
	}

	s.logger.Info("student registered", zap.Uint("student_id", student.ID))

	return &models.StudentAuthResponse{
		Token:     token,
		StudentID: student.ID,
		Student:   *student,
	}, nil
}

// Login resolves a student by email alone. The platform never issued
// student passwords and changing that contract is out of scope.
func (s *StudentService) Login(req models.StudentLoginRequest) (*models.StudentAuthResponse, error) {
	student, err := s.studentRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("no account registered for this email")
		}
		return nil, err
	}

	token, err := jwtPkg.GenerateToken(student.Email, student.ID, "student")
	if err != nil {
		return nil, fmt.Errorf("token generation failed: %v", err)
	}

	return &models.StudentAuthResponse{
		Token:     token,
		StudentID: student.ID,
		Student:   *student,
	}, nil
}

func (s *StudentService) GetByID(id uint) (*models.Student, error) {
	return s.studentRepo.GetByID(id)
}

func (s *StudentService) Update(id uint, req models.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.PhoneNumber != nil {
		student.PhoneNumber = *req.PhoneNumber
	}
	if req.Location != nil {
		student.Location = *req.Location
	}
	if req.Country != nil {
		student.Country = *req.Country
	}

	if err := s.studentRepo.Update(student); err != nil {
		return nil, err
	}

	return student, nil
}
