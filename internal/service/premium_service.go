package service

import (
	"errors"
	"fmt"

	"github.com/findtutor/findtutor-backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type teacherPremiumStore interface {
	GetByEmail(email string) (*models.TeacherPremium, error)
	UpdateContent(email string, content models.PremiumContentData) (int64, error)
}

type studentPremiumStore interface {
	GetByEmail(email string) (*models.StudentPremium, error)
}

type PremiumService struct {
	teacherPremiumRepo teacherPremiumStore
	studentPremiumRepo studentPremiumStore
	logger             *zap.Logger
}

func NewPremiumService(teacherPremiumRepo teacherPremiumStore, studentPremiumRepo studentPremiumStore, logger *zap.Logger) *PremiumService {
	return &PremiumService{
		teacherPremiumRepo: teacherPremiumRepo,
		studentPremiumRepo: studentPremiumRepo,
		logger:             logger,
	}
}

// TeacherStatus reports the premium state for an email. Status queries
// never create rows, the webhook is the only writer of premium records.
func (s *PremiumService) TeacherStatus(teacherEmail string) (*models.PremiumStatusResponse, error) {
	premium, err := s.teacherPremiumRepo.GetByEmail(teacherEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.PremiumStatusResponse{HasPremium: false, IsPaid: false}, nil
		}
		return nil, err
	}

	return &models.PremiumStatusResponse{
		HasPremium:  true,
		IsPaid:      premium.IsPaid,
		PremiumData: premium,
	}, nil
}

func (s *PremiumService) StudentStatus(studentEmail string) (*models.PremiumStatusResponse, error) {
	premium, err := s.studentPremiumRepo.GetByEmail(studentEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.PremiumStatusResponse{HasPremium: false, IsPaid: false}, nil
		}
		return nil, err
	}

	return &models.PremiumStatusResponse{
		HasPremium:  true,
		IsPaid:      premium.IsPayed,
		PremiumData: premium,
	}, nil
}

// UpdateContent rewrites a paying teacher's showcase columns. The paid
// flag is re-checked inside the UPDATE itself, so an expired or missing
// subscription surfaces as zero affected rows.
func (s *PremiumService) UpdateContent(req models.UpdatePremiumContentRequest) (*models.TeacherPremium, error) {
	if req.TeacherEmail == "" {
		return nil, fmt.Errorf("%w: teacher email is required", ErrValidation)
	}

	rows, err := s.teacherPremiumRepo.UpdateContent(req.TeacherEmail, req.ContentData)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		s.logger.Warn("premium content update rejected",
			zap.String("teacher_email", req.TeacherEmail))
		return nil, ErrPermission
	}

	return s.teacherPremiumRepo.GetByEmail(req.TeacherEmail)
}
