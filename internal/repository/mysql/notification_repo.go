package mysql

import (
	"time"

	"flowdeck/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func (r *NotificationRepository) Create(n *model.Notification) error {
	return r.DB.Create(n).Error
}

func (r *NotificationRepository) ListByReceiver(receiverID uint64, offset, limit int) ([]model.Notification, error) {
	var list []model.Notification
	err := r.DB.Where("receiver_id = ?", receiverID).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *NotificationRepository) MarkRead(receiverID, id uint64) error {
	return r.DB.Model(&model.Notification{}).
		Where("id = ? AND receiver_id = ?", id, receiverID).
		Update("is_read", true).Error
}

func (r *NotificationRepository) UnreadCount(receiverID uint64) (int64, error) {
	var n int64
	err := r.DB.Model(&model.Notification{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&n).Error
	return n, err
}

// ListUnemailed returns every notification for the user that has never been
// included in a digest.
func (r *NotificationRepository) ListUnemailed(receiverID uint64) ([]model.Notification, error) {
	var list []model.Notification
	err := r.DB.Where("receiver_id = ? AND emailed_at IS NULL", receiverID).
		Order("id").
		Find(&list).Error
	return list, err
}

// MarkDigestSent stamps emailed_at on the included notifications and
// last_digest_sent_at on the user in one transaction. It runs only after the
// digest mail went out; if the send failed the rows stay pending for the
// next run.
func (r *NotificationRepository) MarkDigestSent(userID uint64, ids []uint64, at time.Time) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if len(ids) > 0 {
			if err := tx.Model(&model.Notification{}).
				Where("id IN ?", ids).
				Update("emailed_at", at).Error; err != nil {
				return err
			}
		}
		return tx.Model(&model.User{}).Where("id = ?", userID).
			Update("last_digest_sent_at", at).Error
	})
}
