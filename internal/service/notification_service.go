package service

import (
	"log"

	"flowdeck/internal/model"
	"flowdeck/internal/repository/mysql"

	"gorm.io/gorm"
)

type NotificationService struct {
	repo *mysql.NotificationRepository
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{repo: &mysql.NotificationRepository{DB: db}}
}

// Notify creates a notification row off the request path. Failures are
// logged and never reach the caller.
func (s *NotificationService) Notify(n *model.Notification) {
	if s == nil {
		return
	}
	go func() {
		if err := s.repo.Create(n); err != nil {
			log.Printf("notification create err: %v", err)
		}
	}()
}

func (s *NotificationService) List(receiverID uint64, page, size int) ([]model.Notification, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return s.repo.ListByReceiver(receiverID, (page-1)*size, size)
}

func (s *NotificationService) MarkRead(receiverID, id uint64) error {
	return s.repo.MarkRead(receiverID, id)
}

func (s *NotificationService) UnreadCount(receiverID uint64) (int64, error) {
	return s.repo.UnreadCount(receiverID)
}
