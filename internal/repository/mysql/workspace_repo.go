package mysql

import (
	"flowdeck/internal/model"

	"gorm.io/gorm"
)

type WorkspaceRepository struct {
	DB *gorm.DB
}

// Create inserts the workspace and the creator's owner membership row in one
// transaction.
func (r *WorkspaceRepository) Create(w *model.Workspace) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(w).Error; err != nil {
			return err
		}
		return tx.Create(&model.WorkspaceMember{
			WorkspaceID: w.ID,
			UserID:      w.OwnerID,
			Role:        model.RoleOwner,
		}).Error
	})
}

func (r *WorkspaceRepository) FindByID(id uint64) (*model.Workspace, error) {
	var w model.Workspace
	err := r.DB.First(&w, id).Error
	return &w, err
}

func (r *WorkspaceRepository) ListByUser(userID uint64) ([]model.Workspace, error) {
	var list []model.Workspace
	err := r.DB.
		Joins("JOIN workspace_members m ON m.workspace_id = workspaces.id").
		Where("m.user_id = ?", userID).
		Order("workspaces.id").
		Find(&list).Error
	return list, err
}

func (r *WorkspaceRepository) Update(w *model.Workspace) error {
	return r.DB.Save(w).Error
}

// Delete removes the workspace and everything beneath it. The storage layer
// does not auto-cascade, so every dependent table is cleared explicitly.
func (r *WorkspaceRepository) Delete(id uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var boardIDs []uint64
		if err := tx.Model(&model.Board{}).Where("workspace_id = ?", id).
			Pluck("id", &boardIDs).Error; err != nil {
			return err
		}
		for _, boardID := range boardIDs {
			if err := deleteBoardTree(tx, boardID); err != nil {
				return err
			}
		}
		if err := tx.Where("workspace_id = ?", id).Delete(&model.Label{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workspace_id = ?", id).Delete(&model.WorkspaceInvitation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workspace_id = ?", id).Delete(&model.WorkspaceMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Workspace{}, id).Error
	})
}
