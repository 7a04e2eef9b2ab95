package mysql

import (
	"context"
	"time"

	"flowdeck/internal/model"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	DB *gorm.DB
}

// Insert writes the audit row and its outbox mirror together.
func (r *ActivityRepository) Insert(entry *model.ActivityLog, payload string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return tx.Create(&model.ActivityOutbox{
			Action:  entry.Action,
			UserID:  entry.UserID,
			Payload: payload,
			Status:  0,
		}).Error
	})
}

func (r *ActivityRepository) ListByEntity(entityType string, entityID uint64, limit int) ([]model.ActivityLog, error) {
	var list []model.ActivityLog
	err := r.DB.Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("id DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

// DeleteLogsBefore is the >30d retention sweep; the only path that ever
// removes audit rows.
func (r *ActivityRepository) DeleteLogsBefore(cutoff time.Time) (int64, error) {
	tx := r.DB.Where("created_at < ?", cutoff).Delete(&model.ActivityLog{})
	return tx.RowsAffected, tx.Error
}

// ListPendingOutbox returns un-relayed outbox rows, oldest first.
func (r *ActivityRepository) ListPendingOutbox(ctx context.Context, batchSize int) ([]model.ActivityOutbox, error) {
	var list []model.ActivityOutbox
	err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error
	return list, err
}

func (r *ActivityRepository) MarkOutboxSent(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.ActivityOutbox{}).Where("id = ?", id).
		Update("status", 1).Error
}

func (r *ActivityRepository) MarkOutboxFailed(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.ActivityOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error
}
