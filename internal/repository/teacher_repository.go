package repository

import (
	"github.com/findtutor/findtutor-backend/internal/models"
	"gorm.io/gorm"
)

type TeacherRepository struct {
	db *gorm.DB
}

func NewTeacherRepository(db *gorm.DB) *TeacherRepository {
	return &TeacherRepository{
		db: db,
	}
}

func (r *TeacherRepository) Create(teacher *models.Teacher) error {
	return r.db.Create(teacher).Error
}

func (r *TeacherRepository) GetByID(id uint) (*models.Teacher, error) {
	var teacher models.Teacher
	err := r.db.First(&teacher, id).Error
	return &teacher, err
}

func (r *TeacherRepository) GetByEmail(email string) (*models.Teacher, error) {
	var teacher models.Teacher
	err := r.db.Where("email = ?", email).First(&teacher).Error
	return &teacher, err
}

func (r *TeacherRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Teacher{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *TeacherRepository) Update(teacher *models.Teacher) error {
	return r.db.Save(teacher).Error
}
