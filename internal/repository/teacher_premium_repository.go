package repository

import (
	"github.com/findtutor/findtutor-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TeacherPremiumRepository struct {
	db *gorm.DB
}

func NewTeacherPremiumRepository(db *gorm.DB) *TeacherPremiumRepository {
	return &TeacherPremiumRepository{
		db: db,
	}
}

func (r *TeacherPremiumRepository) GetByEmail(email string) (*models.TeacherPremium, error) {
	var premium models.TeacherPremium
	err := r.db.Where("mail = ?", email).First(&premium).Error
	return &premium, err
}

// UpsertPayment inserts the record or, when a row for the mail already
// exists, refreshes only the payment columns. Showcase content set by the
// teacher is never touched. One statement, so concurrent duplicate
// webhooks cannot race a check-then-write pair.
func (r *TeacherPremiumRepository) UpsertPayment(premium *models.TeacherPremium) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "mail"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"is_paid", "payment_date", "stripe_session_id", "payment_amount",
		}),
	}).Create(premium).Error
}

// UpdateContent rewrites the content columns of the mode selected by
// link_or_video and leaves the other mode's columns alone. The WHERE
// clause re-checks the paid flag, the row count tells the caller whether
// the write was authorized.
func (r *TeacherPremiumRepository) UpdateContent(email string, content models.PremiumContentData) (int64, error) {
	values := map[string]interface{}{
		"link_or_video": content.LinkOrVideo,
	}
	if content.LinkOrVideo {
		values["link1"] = content.Link1
		values["link2"] = content.Link2
		values["link3"] = content.Link3
	} else {
		values["video1"] = content.Video1
		values["video2"] = content.Video2
		values["video3"] = content.Video3
	}

	result := r.db.Model(&models.TeacherPremium{}).
		Where("mail = ? AND is_paid = ?", email, true).
		Updates(values)
	return result.RowsAffected, result.Error
}
