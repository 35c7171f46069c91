package repository

import (
	"github.com/findtutor/findtutor-backend/internal/models"
	"gorm.io/gorm"
)

type StudentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

func (r *StudentRepository) Create(student *models.Student) error {
	return r.db.Create(student).Error
}

func (r *StudentRepository) GetByID(id uint) (*models.Student, error) {
	var student models.Student
	err := r.db.First(&student, id).Error
	return &student, err
}

func (r *StudentRepository) GetByEmail(email string) (*models.Student, error) {
	var student models.Student
	err := r.db.Where("email = ?", email).First(&student).Error
	return &student, err
}

func (r *StudentRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Student{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *StudentRepository) Update(student *models.Student) error {
	return r.db.Save(student).Error
}
