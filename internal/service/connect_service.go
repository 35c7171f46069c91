package service

import (
	"errors"
	"fmt"

	"github.com/findtutor/findtutor-backend/internal/models"
	"github.com/findtutor/findtutor-backend/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type connectionRequestStore interface {
	Create(request *models.ConnectionRequest) error
	GetByTeacherID(teacherID uint) ([]models.ConnectionRequest, error)
	GetByStudentAndPost(studentID, postID uint) (*models.ConnectionRequest, error)
	HasPending(studentID, postID uint) (bool, error)
	CountByTeacherID(teacherID uint) (*models.RequestCounts, error)
	Reject(requestID string) (int64, error)
}

type studentReader interface {
	GetByID(id uint) (*models.Student, error)
}

type postReader interface {
	GetByID(id uint) (*models.TeacherPost, error)
}

type ConnectService struct {
	requestRepo connectionRequestStore
	studentRepo studentReader
	postRepo    postReader
	logger      *zap.Logger
}

func NewConnectService(requestRepo connectionRequestStore, studentRepo studentReader, postRepo postReader, logger *zap.Logger) *ConnectService {
	return &ConnectService{
		requestRepo: requestRepo,
		studentRepo: studentRepo,
		postRepo:    postRepo,
		logger:      logger,
	}
}

func (s *ConnectService) SendRequest(req models.SendRequestRequest) (*models.ConnectionRequest, error) {
	post, err := s.postRepo.GetByID(req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: post not found", ErrValidation)
		}
		return nil, err
	}
	if post.TeacherID != req.TeacherID {
		return nil, fmt.Errorf("%w: post does not belong to this teacher", ErrValidation)
	}

	if _, err := s.studentRepo.GetByID(req.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: student not found", ErrValidation)
		}
		return nil, err
	}

	pending, err := s.requestRepo.HasPending(req.StudentID, req.PostID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, fmt.Errorf("%w: a pending request for this post already exists", ErrValidation)
	}

	request := &models.ConnectionRequest{
		ID:            utils.GenerateRecordID(),
		StudentID:     req.StudentID,
		TeacherID:     req.TeacherID,
		PostID:        req.PostID,
		Message:       req.Message,
		Status:        models.RequestStatusPending,
		PaymentStatus: models.PaymentStatusUnpaid,
	}

	if err := s.requestRepo.Create(request); err != nil {
		return nil, err
	}

	s.logger.Info("connection request created",
		zap.String("request_id", request.ID),
		zap.Uint("student_id", req.StudentID),
		zap.Uint("teacher_id", req.TeacherID))

	return request, nil
}

// ListForTeacher returns the teacher's inbox. Student contact details are
// only included once the contact purchase revealed them.
func (s *ConnectService) ListForTeacher(teacherID uint) ([]models.TeacherRequestView, error) {
	requests, err := s.requestRepo.GetByTeacherID(teacherID)
	if err != nil {
		return nil, err
	}

	views := make([]models.TeacherRequestView, 0, len(requests))
	for _, req := range requests {
		view := models.TeacherRequestView{
			ID:              req.ID,
			PostID:          req.PostID,
			Message:         req.Message,
			Status:          req.Status,
			PaymentStatus:   req.PaymentStatus,
			ContactRevealed: req.ContactRevealed,
			PurchaseDate:    req.PurchaseDate,
			CreatedAt:       req.CreatedAt,
		}

		if post, err := s.postRepo.GetByID(req.PostID); err == nil {
			view.PostTitle = post.Title
		}

		if student, err := s.studentRepo.GetByID(req.StudentID); err == nil {
			view.StudentName = student.Name
			if req.ContactRevealed {
				view.StudentEmail = student.Email
				view.StudentPhoneNumber = student.PhoneNumber
			}
		}

		views = append(views, view)
	}

	return views, nil
}

func (s *ConnectService) CountsForTeacher(teacherID uint) (*models.RequestCounts, error) {
	return s.requestRepo.CountByTeacherID(teacherID)
}

func (s *ConnectService) RejectRequest(requestID string) error {
	rows, err := s.requestRepo.Reject(requestID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: no pending request with this id", ErrNotFound)
	}
	return nil
}

func (s *ConnectService) RequestStatus(studentID, postID uint) (*models.RequestStatusResponse, error) {
	request, err := s.requestRepo.GetByStudentAndPost(studentID, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.RequestStatusResponse{HasRequested: false}, nil
		}
		return nil, err
	}

	return &models.RequestStatusResponse{
		HasRequested: true,
		Status:       request.Status,
	}, nil
}
