package mysql

import (
	"flowdeck/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func (r *CommentRepository) Create(c *model.Comment) error {
	return r.DB.Create(c).Error
}

func (r *CommentRepository) FindByID(id uint64) (*model.Comment, error) {
	var c model.Comment
	err := r.DB.First(&c, id).Error
	return &c, err
}

func (r *CommentRepository) ListByCard(cardID uint64) ([]model.Comment, error) {
	var list []model.Comment
	err := r.DB.Where("card_id = ?", cardID).Order("id").Find(&list).Error
	return list, err
}

// Delete removes a comment together with its direct replies.
func (r *CommentRepository) Delete(id uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Comment{}, id).Error
	})
}
