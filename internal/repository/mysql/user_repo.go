package mysql

import (
	"flowdeck/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ? OR email = ?", username, username).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByID(id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) UpdatePassword(user *model.User, newPassword string) error {
	return r.DB.Model(user).Update("password", newPassword).Error
}

func (r *UserRepository) UpdateDigestPrefs(id uint64, enabled bool, freq model.DigestFrequency) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).
		Updates(map[string]any{
			"email_digest_enabled":   enabled,
			"email_digest_frequency": freq,
		}).Error
}

// ListDigestCandidates returns users that have the digest switched on with a
// real cadence; the scheduler decides per user whether one is actually due.
func (r *UserRepository) ListDigestCandidates() ([]model.User, error) {
	var list []model.User
	err := r.DB.
		Where("email_digest_enabled = ? AND email_digest_frequency <> ?",
			true, model.DigestNever).
		Find(&list).Error
	return list, err
}
