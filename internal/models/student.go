package models

import (
	"time"
)

type Student struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Email       string    `json:"email" gorm:"unique;not null"`
	PhoneNumber string    `json:"phoneNumber"`
	Location    string    `json:"location"`
	Country     string    `json:"country"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type StudentRegisterRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber"`
	Location    string `json:"location"`
	Country     string `json:"country"`
}

// Students sign in with their email only. The original platform never had
// student passwords and redesigning that flow is out of scope here.
type StudentLoginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type UpdateStudentRequest struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phoneNumber"`
	Location    *string `json:"location"`
	Country     *string `json:"country"`
}

type StudentAuthResponse struct {
	Token     string  `json:"token"`
	StudentID uint    `json:"studentId"`
	Student   Student `json:"student"`
}
