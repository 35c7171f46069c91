package repository

import (
	"time"

	"github.com/findtutor/findtutor-backend/internal/models"
	"gorm.io/gorm"
)

type ConnectionRequestRepository struct {
	db *gorm.DB
}

func NewConnectionRequestRepository(db *gorm.DB) *ConnectionRequestRepository {
	return &ConnectionRequestRepository{
		db: db,
	}
}

func (r *ConnectionRequestRepository) Create(request *models.ConnectionRequest) error {
	return r.db.Create(request).Error
}

func (r *ConnectionRequestRepository) GetByID(id string) (*models.ConnectionRequest, error) {
	var request models.ConnectionRequest
	err := r.db.Where("id = ?", id).First(&request).Error
	return &request, err
}

func (r *ConnectionRequestRepository) GetByTeacherID(teacherID uint) ([]models.ConnectionRequest, error) {
	var requests []models.ConnectionRequest
	err := r.db.Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *ConnectionRequestRepository) GetByStudentAndPost(studentID, postID uint) (*models.ConnectionRequest, error) {
	var request models.ConnectionRequest
	err := r.db.Where("student_id = ? AND post_id = ?", studentID, postID).
		Order("created_at DESC").
		First(&request).Error
	return &request, err
}

func (r *ConnectionRequestRepository) HasPending(studentID, postID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ConnectionRequest{}).
		Where("student_id = ? AND post_id = ? AND status = ?", studentID, postID, models.RequestStatusPending).
		Count(&count).Error
	return count > 0, err
}

func (r *ConnectionRequestRepository) CountByTeacherID(teacherID uint) (*models.RequestCounts, error) {
	counts := &models.RequestCounts{}

	if err := r.db.Model(&models.ConnectionRequest{}).
		Where("teacher_id = ?", teacherID).
		Count(&counts.TotalRequests).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.ConnectionRequest{}).
		Where("teacher_id = ? AND status = ?", teacherID, models.RequestStatusPending).
		Count(&counts.PendingRequests).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.ConnectionRequest{}).
		Where("teacher_id = ? AND status = ?", teacherID, models.RequestStatusPurchased).
		Count(&counts.PurchasedRequests).Error; err != nil {
		return nil, err
	}

	return counts, nil
}

// MarkPurchased applies the contact-purchase transition as one UPDATE.
// Re-delivery of the same webhook re-applies identical values, so repeated
// executions converge on the same row state. Rejected is terminal: a
// webhook arriving after the teacher rejected the request matches no rows.
func (r *ConnectionRequestRepository) MarkPurchased(requestID string, teacherID uint, stripeSessionID string) (int64, error) {
	now := time.Now()
	result := r.db.Model(&models.ConnectionRequest{}).
		Where("id = ? AND teacher_id = ? AND status <> ?", requestID, teacherID, models.RequestStatusRejected).
		Updates(map[string]interface{}{
			"status":            models.RequestStatusPurchased,
			"payment_status":    models.PaymentStatusPaid,
			"contact_revealed":  true,
			"purchase_date":     now,
			"stripe_session_id": stripeSessionID,
		})
	return result.RowsAffected, result.Error
}

// Reject only moves pending requests, purchased and rejected are terminal.
func (r *ConnectionRequestRepository) Reject(requestID string) (int64, error) {
	result := r.db.Model(&models.ConnectionRequest{}).
		Where("id = ? AND status = ?", requestID, models.RequestStatusPending).
		Update("status", models.RequestStatusRejected)
	return result.RowsAffected, result.Error
}
