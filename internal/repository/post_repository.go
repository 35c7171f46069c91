package repository

import (
	"github.com/findtutor/findtutor-backend/internal/models"
	"gorm.io/gorm"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{
		db: db,
	}
}

func (r *PostRepository) Create(post *models.TeacherPost) error {
	return r.db.Create(post).Error
}

func (r *PostRepository) GetByID(id uint) (*models.TeacherPost, error) {
	var post models.TeacherPost
	err := r.db.First(&post, id).Error
	return &post, err
}

func (r *PostRepository) GetAllActive() ([]models.TeacherPost, error) {
	var posts []models.TeacherPost
	err := r.db.Where("status = ?", "active").
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *PostRepository) GetByTeacherID(teacherID uint) ([]models.TeacherPost, error) {
	var posts []models.TeacherPost
	err := r.db.Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *PostRepository) Update(post *models.TeacherPost) error {
	return r.db.Save(post).Error
}

func (r *PostRepository) Delete(id uint) error {
	return r.db.Delete(&models.TeacherPost{}, id).Error
}
