package mysql

import (
	"flowdeck/internal/model"

	"gorm.io/gorm"
)

type ListRepository struct {
	DB *gorm.DB
}

// Create appends the list at the end of its board: the max(order_idx) read
// and the insert share one transaction.
func (r *ListRepository) Create(list *model.List) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		idx, err := nextOrderIdx(tx, &model.List{}, "board_id", list.BoardID)
		if err != nil {
			return err
		}
		list.OrderIdx = idx
		return tx.Create(list).Error
	})
}

func (r *ListRepository) FindByID(id uint64) (*model.List, error) {
	var list model.List
	err := r.DB.First(&list, id).Error
	return &list, err
}

func (r *ListRepository) ListByBoard(boardID uint64) ([]model.List, error) {
	var lists []model.List
	err := r.DB.Where("board_id = ?", boardID).
		Order("order_idx, id").
		Find(&lists).Error
	return lists, err
}

func (r *ListRepository) Update(list *model.List) error {
	return r.DB.Save(list).Error
}

// Reorder re-sequences the lists of a board in one transaction. The request
// must name every list of the board; requested indices need not be
// contiguous, the result always is.
func (r *ListRepository) Reorder(boardID uint64, updates []OrderUpdate) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var ids []uint64
		if err := tx.Model(&model.List{}).Where("board_id = ?", boardID).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		inScope := make(map[uint64]bool, len(ids))
		for _, id := range ids {
			inScope[id] = true
		}
		ordered, err := normalizeOrder(updates, inScope)
		if err != nil {
			return err
		}
		for i, id := range ordered {
			if err := tx.Model(&model.List{}).Where("id = ?", id).
				UpdateColumn("order_idx", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteAndCompact deletes a list. A list still holding cards is only deleted
// when moveCardsTo names a sibling list; its cards are re-appended there in
// their existing relative order. Remaining sibling lists are not renumbered,
// gaps are allowed until the next reorder.
func (r *ListRepository) DeleteAndCompact(listID uint64, moveCardsTo *uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var list model.List
		if err := tx.First(&list, listID).Error; err != nil {
			return err
		}

		var cardCount int64
		if err := tx.Model(&model.Card{}).Where("list_id = ?", listID).
			Count(&cardCount).Error; err != nil {
			return err
		}
		if cardCount > 0 {
			if moveCardsTo == nil {
				return &HasChildrenError{Count: cardCount}
			}
			var target model.List
			if err := tx.First(&target, *moveCardsTo).Error; err != nil {
				return err
			}
			if target.BoardID != list.BoardID || target.ID == list.ID {
				return ErrTargetScopeMismatch
			}
			base, err := nextOrderIdx(tx, &model.Card{}, "list_id", target.ID)
			if err != nil {
				return err
			}
			var cardIDs []uint64
			if err := tx.Model(&model.Card{}).Where("list_id = ?", listID).
				Order("order_idx, id").
				Pluck("id", &cardIDs).Error; err != nil {
				return err
			}
			for i, cardID := range cardIDs {
				if err := tx.Model(&model.Card{}).Where("id = ?", cardID).
					UpdateColumns(map[string]any{
						"list_id":   target.ID,
						"order_idx": base + i,
					}).Error; err != nil {
					return err
				}
			}
		}

		return tx.Delete(&model.List{}, listID).Error
	})
}
