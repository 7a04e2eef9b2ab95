package mysql

import (
	"flowdeck/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MemberRepository struct {
	DB *gorm.DB
}

// Add is idempotent: an existing (workspace_id, user_id) row is left as-is.
func (r *MemberRepository) Add(m *model.WorkspaceMember) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "workspace_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(m).Error
}

func (r *MemberRepository) Find(workspaceID, userID uint64) (*model.WorkspaceMember, error) {
	var m model.WorkspaceMember
	err := r.DB.Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		First(&m).Error
	return &m, err
}

func (r *MemberRepository) ListByWorkspace(workspaceID uint64) ([]model.WorkspaceMember, error) {
	var list []model.WorkspaceMember
	err := r.DB.Where("workspace_id = ?", workspaceID).
		Order("id").
		Find(&list).Error
	return list, err
}

func (r *MemberRepository) UpdateRole(workspaceID, userID uint64, role model.Role) error {
	return r.DB.Model(&model.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Update("role", role).Error
}

func (r *MemberRepository) Remove(workspaceID, userID uint64) error {
	return r.DB.Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Delete(&model.WorkspaceMember{}).Error
}
