package mysql

import (
	"flowdeck/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LabelRepository struct {
	DB *gorm.DB
}

func (r *LabelRepository) Create(l *model.Label) error {
	return r.DB.Create(l).Error
}

func (r *LabelRepository) FindByID(id uint64) (*model.Label, error) {
	var l model.Label
	err := r.DB.First(&l, id).Error
	return &l, err
}

func (r *LabelRepository) ListByWorkspace(workspaceID uint64) ([]model.Label, error) {
	var list []model.Label
	err := r.DB.Where("workspace_id = ?", workspaceID).Order("id").Find(&list).Error
	return list, err
}

func (r *LabelRepository) Update(l *model.Label) error {
	return r.DB.Save(l).Error
}

// Delete removes the label and its card links together.
func (r *LabelRepository) Delete(id uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("label_id = ?", id).Delete(&model.CardLabel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Label{}, id).Error
	})
}

// Attach is idempotent: re-adding an existing (card, label) pair is not an
// error and leaves a single row.
func (r *LabelRepository) Attach(cardID, labelID uint64) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "card_id"}, {Name: "label_id"}},
		DoNothing: true,
	}).Create(&model.CardLabel{CardID: cardID, LabelID: labelID}).Error
}

// Detach is a no-op when the pair does not exist.
func (r *LabelRepository) Detach(cardID, labelID uint64) error {
	return r.DB.Where("card_id = ? AND label_id = ?", cardID, labelID).
		Delete(&model.CardLabel{}).Error
}

func (r *LabelRepository) ListByCard(cardID uint64) ([]model.Label, error) {
	var list []model.Label
	err := r.DB.
		Joins("JOIN card_labels ON card_labels.label_id = labels.id").
		Where("card_labels.card_id = ?", cardID).
		Order("labels.id").
		Find(&list).Error
	return list, err
}
