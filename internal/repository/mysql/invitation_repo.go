package mysql

import (
	"time"

	"flowdeck/internal/model"

	"gorm.io/gorm"
)

type InvitationRepository struct {
	DB *gorm.DB
}

func (r *InvitationRepository) Create(inv *model.WorkspaceInvitation) error {
	return r.DB.Create(inv).Error
}

func (r *InvitationRepository) FindByID(id uint64) (*model.WorkspaceInvitation, error) {
	var inv model.WorkspaceInvitation
	err := r.DB.First(&inv, id).Error
	return &inv, err
}

func (r *InvitationRepository) CountPending(workspaceID uint64, email string) (int64, error) {
	var n int64
	err := r.DB.Model(&model.WorkspaceInvitation{}).
		Where("workspace_id = ? AND email = ? AND status = ?",
			workspaceID, email, model.InvitationPending).
		Count(&n).Error
	return n, err
}

func (r *InvitationRepository) ListPendingByEmail(email string) ([]model.WorkspaceInvitation, error) {
	var list []model.WorkspaceInvitation
	err := r.DB.Where("email = ? AND status = ?", email, model.InvitationPending).
		Order("id").
		Find(&list).Error
	return list, err
}

func (r *InvitationRepository) UpdateStatus(id uint64, status model.InvitationStatus) error {
	return r.DB.Model(&model.WorkspaceInvitation{}).Where("id = ?", id).
		Update("status", status).Error
}

// ExpirePendingBefore flips stale pending invitations to expired; run by the
// retention worker.
func (r *InvitationRepository) ExpirePendingBefore(cutoff time.Time) (int64, error) {
	tx := r.DB.Model(&model.WorkspaceInvitation{}).
		Where("status = ? AND created_at < ?", model.InvitationPending, cutoff).
		Update("status", model.InvitationExpired)
	return tx.RowsAffected, tx.Error
}
