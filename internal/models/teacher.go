package models

import (
	"time"
)

type Teacher struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name" gorm:"not null"`
	Email           string    `json:"email" gorm:"unique;not null"`
	Password        string    `json:"-" gorm:"not null"`
	PhoneNumber     string    `json:"phoneNumber"`
	CityOrTown      string    `json:"cityOrTown"`
	Country         string    `json:"country"`
	ProfilePhotoURL string    `json:"profilePhotoUrl"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TeacherRegisterRequest is parsed from the multipart registration form,
// the profile photo arrives as a separate file part.
type TeacherRegisterRequest struct {
	Name        string `form:"name" validate:"required"`
	Email       string `form:"email" validate:"required,email"`
	Password    string `form:"password" validate:"required,min=6"`
	PhoneNumber string `form:"phoneNumber"`
	CityOrTown  string `form:"cityOrTown"`
	Country     string `form:"country"`
}

type TeacherLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateTeacherRequest struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phoneNumber"`
	CityOrTown  *string `json:"cityOrTown"`
	Country     *string `json:"country"`
}

type TeacherAuthResponse struct {
	Token     string  `json:"token"`
	TeacherID uint    `json:"teacherId"`
	Teacher   Teacher `json:"teacher"`
}
