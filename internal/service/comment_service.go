package service

import (
	"fmt"

	"flowdeck/internal/model"
	"flowdeck/internal/repository/mysql"

	"gorm.io/gorm"
)

type CommentService struct {
	repo          *mysql.CommentRepository
	cards         *mysql.CardRepository
	boards        *mysql.BoardRepository
	access        *AccessControl
	activity      *ActivityService
	notifications *NotificationService
}

func NewCommentService(db *gorm.DB, activity *ActivityService, notifications *NotificationService) *CommentService {
	return &CommentService{
		repo:          &mysql.CommentRepository{DB: db},
		cards:         &mysql.CardRepository{DB: db},
		boards:        &mysql.BoardRepository{DB: db},
		access:        NewAccessControl(db),
		activity:      activity,
		notifications: notifications,
	}
}

// Create adds a comment, optionally as a reply. The parent must live on the
// same card. Card assignees other than the author get a notification.
func (s *CommentService) Create(authorID, cardID uint64, parentID *uint64, body string) (*model.Comment, error) {
	if body == "" {
		return nil, ErrValidation
	}
	card, err := s.cards.FindByID(cardID)
	if err != nil {
		return nil, asNotFound(err)
	}
	board, err := s.boards.FindByID(card.BoardID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if _, err := s.access.AuthorizeOp(board.WorkspaceID, authorID, OpCommentWrite); err != nil {
		return nil, err
	}
	if parentID != nil {
		parent, err := s.repo.FindByID(*parentID)
		if err != nil {
			return nil, asNotFound(err)
		}
		if parent.CardID != cardID {
			return nil, ErrValidation
		}
	}
	comment := &model.Comment{
		CardID:   cardID,
		AuthorID: authorID,
		ParentID: parentID,
		Body:     body,
	}
	if err := s.repo.Create(comment); err != nil {
		return nil, err
	}

	if members, err := s.cards.ListMembers(cardID); err == nil {
		for _, m := range members {
			if m.UserID == authorID {
				continue
			}
			s.notifications.Notify(&model.Notification{
				ReceiverID: m.UserID,
				ActorID:    authorID,
				Type:       model.NotifyCommentAdded,
				EntityType: "card",
				EntityID:   cardID,
				Message:    fmt.Sprintf("New comment on %s", HumanKey(board, card)),
			})
		}
	}

	s.activity.Record(authorID, "comment.create", "comment", comment.ID,
		map[string]any{"card": cardID})
	return comment, nil
}

func (s *CommentService) ListByCard(userID, cardID uint64) ([]model.Comment, error) {
	card, err := s.cards.FindByID(cardID)
	if err != nil {
		return nil, asNotFound(err)
	}
	board, err := s.boards.FindByID(card.BoardID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if _, err := s.access.Authorize(board.WorkspaceID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByCard(cardID)
}

// Delete: the author may always delete their own comment; anyone else needs
// the moderation roles of the owning workspace.
func (s *CommentService) Delete(userID, commentID uint64) error {
	comment, err := s.repo.FindByID(commentID)
	if err != nil {
		return asNotFound(err)
	}
	if comment.AuthorID != userID {
		card, err := s.cards.FindByID(comment.CardID)
		if err != nil {
			return asNotFound(err)
		}
		board, err := s.boards.FindByID(card.BoardID)
		if err != nil {
			return asNotFound(err)
		}
		if _, err := s.access.AuthorizeOp(board.WorkspaceID, userID, OpCommentModerate); err != nil {
			return err
		}
	}
	if err := s.repo.Delete(commentID); err != nil {
		return err
	}
	s.activity.Record(userID, "comment.delete", "comment", commentID, nil)
	return nil
}
