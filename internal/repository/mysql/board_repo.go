package mysql

import (
	"time"

	"flowdeck/internal/model"

	"gorm.io/gorm"
)

type BoardRepository struct {
	DB *gorm.DB
}

// Create inserts the board together with its default lists in one
// transaction, so a half-created board is never visible.
func (r *BoardRepository) Create(b *model.Board, defaultLists []string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return err
		}
		for i, name := range defaultLists {
			list := &model.List{
				BoardID:  b.ID,
				Name:     name,
				OrderIdx: i,
				IsDone:   i == len(defaultLists)-1,
			}
			if err := tx.Create(list).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *BoardRepository) FindByID(id uint64) (*model.Board, error) {
	var b model.Board
	err := r.DB.First(&b, id).Error
	return &b, err
}

func (r *BoardRepository) CountByName(workspaceID uint64, name string) (int64, error) {
	var n int64
	err := r.DB.Model(&model.Board{}).
		Where("workspace_id = ? AND name = ?", workspaceID, name).
		Count(&n).Error
	return n, err
}

func (r *BoardRepository) ListByWorkspace(workspaceID uint64, trashed bool) ([]model.Board, error) {
	var list []model.Board
	q := r.DB.Where("workspace_id = ?", workspaceID)
	if trashed {
		q = q.Where("archived_at IS NOT NULL")
	} else {
		q = q.Where("archived_at IS NULL")
	}
	err := q.Order("is_pinned DESC, id").Find(&list).Error
	return list, err
}

func (r *BoardRepository) Update(b *model.Board) error {
	return r.DB.Save(b).Error
}

func (r *BoardRepository) Archive(id uint64, at time.Time) error {
	return r.DB.Model(&model.Board{}).Where("id = ?", id).
		Update("archived_at", at).Error
}

func (r *BoardRepository) Restore(id uint64) error {
	return r.DB.Model(&model.Board{}).Where("id = ?", id).
		Update("archived_at", nil).Error
}

// NextKeySeq derives the next per-board card sequence from the running max,
// so deleted cards never free their number. Call inside the card-insert
// transaction.
func NextKeySeq(tx *gorm.DB, boardID uint64) (uint64, error) {
	var max *uint64
	err := tx.Model(&model.Card{}).
		Where("board_id = ?", boardID).
		Select("MAX(key_seq)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 1, nil
	}
	return *max + 1, nil
}

// PermanentDelete removes the board and its whole subtree.
func (r *BoardRepository) PermanentDelete(id uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return deleteBoardTree(tx, id)
	})
}

// ListTrashedBefore returns boards archived before the cutoff, for the
// retention sweep.
func (r *BoardRepository) ListTrashedBefore(cutoff time.Time) ([]model.Board, error) {
	var list []model.Board
	err := r.DB.Where("archived_at IS NOT NULL AND archived_at < ?", cutoff).
		Find(&list).Error
	return list, err
}

// deleteBoardTree deletes a board and everything it owns: cards (with their
// comments, members and label links) and lists. Shared by board delete and
// workspace delete.
func deleteBoardTree(tx *gorm.DB, boardID uint64) error {
	var cardIDs []uint64
	if err := tx.Model(&model.Card{}).Where("board_id = ?", boardID).
		Pluck("id", &cardIDs).Error; err != nil {
		return err
	}
	if len(cardIDs) > 0 {
		if err := tx.Where("card_id IN ?", cardIDs).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("card_id IN ?", cardIDs).Delete(&model.CardMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("card_id IN ?", cardIDs).Delete(&model.CardLabel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", boardID).Delete(&model.Card{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("board_id = ?", boardID).Delete(&model.List{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Board{}, boardID).Error
}
