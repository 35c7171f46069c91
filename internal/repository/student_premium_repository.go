package repository

import (
	"github.com/findtutor/findtutor-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StudentPremiumRepository struct {
	db *gorm.DB
}

func NewStudentPremiumRepository(db *gorm.DB) *StudentPremiumRepository {
	return &StudentPremiumRepository{
		db: db,
	}
}

func (r *StudentPremiumRepository) GetByEmail(email string) (*models.StudentPremium, error) {
	var premium models.StudentPremium
	err := r.db.Where("email = ?", email).First(&premium).Error
	return &premium, err
}

// UpsertPayment keeps at most one row per email. On replay the payment
// columns take the latest event's values, profile fields from the first
// insert stay as they are.
func (r *StudentPremiumRepository) UpsertPayment(premium *models.StudentPremium) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"is_payed", "payment_date", "stripe_session_id", "payment_amount",
		}),
	}).Create(premium).Error
}
