package models

import (
	"time"
)

type TeacherPost struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	TeacherID   uint      `json:"teacherId" gorm:"not null;index"`
	Subject     string    `json:"subject" gorm:"not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	HourlyRate  float64   `json:"hourlyRate"`
	Location    string    `json:"location"`
	Online      bool      `json:"online" gorm:"default:false"`
	InPerson    bool      `json:"inPerson" gorm:"default:true"`
	Status      string    `json:"status" gorm:"not null;default:'active'"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreatePostRequest struct {
	Subject     string  `json:"subject" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	HourlyRate  float64 `json:"hourlyRate" validate:"gte=0"`
	Location    string  `json:"location"`
	Online      bool    `json:"online"`
	InPerson    bool    `json:"inPerson"`
}

type UpdatePostRequest struct {
	Subject     *string  `json:"subject"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	HourlyRate  *float64 `json:"hourlyRate"`
	Location    *string  `json:"location"`
	Online      *bool    `json:"online"`
	InPerson    *bool    `json:"inPerson"`
	Status      *string  `json:"status"`
}
