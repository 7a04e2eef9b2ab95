package mysql

import (
	"time"

	"flowdeck/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CardRepository struct {
	DB *gorm.DB
}

// Create assigns the per-board key sequence and the per-list order index in
// the same transaction as the insert; the two reads must not race with a
// concurrent create on the same board.
func (r *CardRepository) Create(card *model.Card) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		seq, err := NextKeySeq(tx, card.BoardID)
		if err != nil {
			return err
		}
		idx, err := nextOrderIdx(tx, &model.Card{}, "list_id", card.ListID)
		if err != nil {
			return err
		}
		card.KeySeq = seq
		card.OrderIdx = idx
		return tx.Create(card).Error
	})
}

func (r *CardRepository) FindByID(id uint64) (*model.Card, error) {
	var card model.Card
	err := r.DB.First(&card, id).Error
	return &card, err
}

func (r *CardRepository) ListByList(listID uint64) ([]model.Card, error) {
	var cards []model.Card
	err := r.DB.Where("list_id = ? AND archived_at IS NULL", listID).
		Order("order_idx, id").
		Find(&cards).Error
	return cards, err
}

func (r *CardRepository) Update(card *model.Card) error {
	return r.DB.Save(card).Error
}

// Move relocates a card to targetIdx within targetListID. The shift of
// existing cards and the write of the moved card are one transaction;
// partial application would corrupt the ordering. The target list must
// belong to the card's own board.
func (r *CardRepository) Move(cardID, targetListID uint64, targetIdx int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var card model.Card
		if err := tx.First(&card, cardID).Error; err != nil {
			return err
		}
		var target model.List
		if err := tx.First(&target, targetListID).Error; err != nil {
			return err
		}
		if target.BoardID != card.BoardID {
			return ErrTargetScopeMismatch
		}
		if err := shiftUpFrom(tx, &model.Card{}, "list_id", target.ID, targetIdx, card.ID); err != nil {
			return err
		}
		return tx.Model(&model.Card{}).Where("id = ?", card.ID).
			UpdateColumns(map[string]any{
				"list_id":   target.ID,
				"order_idx": targetIdx,
			}).Error
	})
}

// Reorder re-sequences cards within one list, same contract as list reorder:
// the request must name every card of the list.
func (r *CardRepository) Reorder(listID uint64, updates []OrderUpdate) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var ids []uint64
		if err := tx.Model(&model.Card{}).
			Where("list_id = ? AND archived_at IS NULL", listID).
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
			if err := tx.Model(&model.Card{}).Where("id = ?", id).
				UpdateColumn("order_idx", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *CardRepository) Archive(id uint64, at time.Time) error {
	return r.DB.Model(&model.Card{}).Where("id = ?", id).
		Update("archived_at", at).Error
}

func (r *CardRepository) Restore(id uint64) error {
	return r.DB.Model(&model.Card{}).Where("id = ?", id).
		Update("archived_at", nil).Error
}

// PermanentDelete removes the card and its dependent rows. Sibling cards
// keep their order_idx; gaps close on the next reorder or move.
func (r *CardRepository) PermanentDelete(id uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("card_id = ?", id).Delete(&model.CardMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("card_id = ?", id).Delete(&model.CardLabel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Card{}, id).Error
	})
}

func (r *CardRepository) ListTrashedBefore(cutoff time.Time) ([]model.Card, error) {
	var list []model.Card
	err := r.DB.Where("archived_at IS NOT NULL AND archived_at < ?", cutoff).
		Find(&list).Error
	return list, err
}

// AddMember is idempotent on (card_id, user_id); it reports whether a row
// was actually inserted so callers can skip side effects on a re-add.
func (r *CardRepository) AddMember(m *model.CardMember) (bool, error) {
	res := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "card_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(m)
	return res.RowsAffected > 0, res.Error
}

// RemoveMember is a no-op when the pair does not exist.
func (r *CardRepository) RemoveMember(cardID, userID uint64) error {
	return r.DB.Where("card_id = ? AND user_id = ?", cardID, userID).
		Delete(&model.CardMember{}).Error
}

func (r *CardRepository) ListMembers(cardID uint64) ([]model.CardMember, error) {
	var list []model.CardMember
	err := r.DB.Where("card_id = ?", cardID).Find(&list).Error
	return list, err
}
