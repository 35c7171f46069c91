package models

import (
	"time"
)

const (
	RequestStatusPending   = "pending"
	RequestStatusPurchased = "purchased"
	RequestStatusRejected  = "rejected"

	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// ConnectionRequest is a student's contact request against a teacher's post.
// Pending is the only non-terminal status: purchased and rejected are final.
type ConnectionRequest struct {
	ID              string     `json:"id" gorm:"primaryKey;type:varchar(15)"`
	StudentID       uint       `json:"studentId" gorm:"not null;index:idx_request_student_post"`
	TeacherID       uint       `json:"teacherId" gorm:"not null;index"`
	PostID          uint       `json:"postId" gorm:"not null;index:idx_request_student_post"`
	Message         string     `json:"message"`
	Status          string     `json:"status" gorm:"not null;default:'pending'"`
	PaymentStatus   string     `json:"paymentStatus" gorm:"not null;default:'unpaid'"`
	ContactRevealed bool       `json:"contactRevealed" gorm:"default:false"`
	PurchaseDate    *time.Time `json:"purchaseDate"`
	StripeSessionID string     `json:"stripeSessionId"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type SendRequestRequest struct {
	StudentID uint   `json:"studentId" validate:"required"`
	TeacherID uint   `json:"teacherId" validate:"required"`
	PostID    uint   `json:"postId" validate:"required"`
	Message   string `json:"message"`
}

// TeacherRequestView is what the teacher dashboard sees. Student contact
// details stay empty until the contact purchase went through.
type TeacherRequestView struct {
	ID                 string     `json:"id"`
	PostID             uint       `json:"postId"`
	PostTitle          string     `json:"postTitle"`
	Message            string     `json:"message"`
	Status             string     `json:"status"`
	PaymentStatus      string     `json:"paymentStatus"`
	ContactRevealed    bool       `json:"contactRevealed"`
	PurchaseDate       *time.Time `json:"purchaseDate"`
	StudentName        string     `json:"studentName"`
	StudentEmail       string     `json:"studentEmail,omitempty"`
	StudentPhoneNumber string     `json:"studentPhoneNumber,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

type RequestCounts struct {
	TotalRequests     int64 `json:"totalRequests"`
	PendingRequests   int64 `json:"pendingRequests"`
	PurchasedRequests int64 `json:"purchasedRequests"`
}

type RequestStatusResponse struct {
	HasRequested bool   `json:"hasRequested"`
	Status       string `json:"status,omitempty"`
}
