package models

import (
	"time"
)

// TeacherPremium is the paid feature-unlock row for a teacher, keyed by the
// mail column. Column and JSON names follow the findtutor_premium_teachers
// collection the dashboard already consumes.
type TeacherPremium struct {
	ID              string     `json:"id" gorm:"primaryKey;type:varchar(15)"`
	Mail            string     `json:"mail" gorm:"uniqueIndex;not null"`
	LinkOrVideo     bool       `json:"link_or_video" gorm:"default:true"`
	Link1           string     `json:"link1"`
	Link2           string     `json:"link2"`
	Link3           string     `json:"link3"`
	Video1          string     `json:"video1"`
	Video2          string     `json:"video2"`
	Video3          string     `json:"video3"`
	IsPaid          bool       `json:"ispaid" gorm:"default:false"`
	PaymentDate     *time.Time `json:"paymentDate"`
	StripeSessionID string     `json:"stripeSessionId"`
	PaymentAmount   float64    `json:"paymentAmount"`
	CreatedAt       time.Time  `json:"created"`
	UpdatedAt       time.Time  `json:"updated"`
}

// StudentPremium mirrors the findtitor_premium_student collection, typos
// (topix, descripton, ispayed) included, the frontend depends on them.
type StudentPremium struct {
	ID              string     `json:"id" gorm:"primaryKey;type:varchar(15)"`
	Email           string     `json:"email" gorm:"uniqueIndex;not null"`
	Subject         string     `json:"subject"`
	Mobile          string     `json:"mobile"`
	Topix           string     `json:"topix"`
	Descripton      string     `json:"descripton"`
	IsPayed         bool       `json:"ispayed" gorm:"default:false"`
	PaymentDate     *time.Time `json:"paymentDate"`
	StripeSessionID string     `json:"stripeSessionId"`
	PaymentAmount   float64    `json:"paymentAmount"`
	CreatedAt       time.Time  `json:"created"`
	UpdatedAt       time.Time  `json:"updated"`
}

type PremiumStatusResponse struct {
	HasPremium  bool        `json:"hasPremium"`
	IsPaid      bool        `json:"isPaid"`
	PremiumData interface{} `json:"premiumData,omitempty"`
}

type PremiumContentData struct {
	LinkOrVideo bool   `json:"link_or_video"`
	Link1       string `json:"link1"`
	Link2       string `json:"link2"`
	Link3       string `json:"link3"`
	Video1      string `json:"video1"`
	Video2      string `json:"video2"`
	Video3      string `json:"video3"`
}

type UpdatePremiumContentRequest struct {
	TeacherEmail string             `json:"teacherEmail" validate:"required,email"`
	ContentData  PremiumContentData `json:"contentData"`
}
