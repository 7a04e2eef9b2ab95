package service

import (
	"fmt"
	"time"

	"flowdeck/internal/model"
	"flowdeck/internal/repository/mysql"

	"gorm.io/gorm"
)

type CardService struct {
	repo          *mysql.CardRepository
	lists         *mysql.ListRepository
	boards        *mysql.BoardRepository
	access        *AccessControl
	activity      *ActivityService
	notifications *NotificationService
}

func NewCardService(db *gorm.DB, activity *ActivityService, notifications *NotificationService) *CardService {
	return &CardService{
		repo:          &mysql.CardRepository{DB: db},
		lists:         &mysql.ListRepository{DB: db},
		boards:        &mysql.BoardRepository{DB: db},
		access:        NewAccessControl(db),
		activity:      activity,
		notifications: notifications,
	}
}

// CardInput carries the optional card fields shared by create and update.
type CardInput struct {
	Title       string
	Description string
	Priority    model.Priority
	StartDate   *time.Time
	DueDate     *time.Time
}

// HumanKey is the PREFIX-seq form shown in the UI.
func HumanKey(board *model.Board, card *model.Card) string {
	return fmt.Sprintf("%s-%d", board.KeySlug, card.KeySeq)
}

// Create places a new card at the end of the list. Key sequence and order
// index are assigned inside the insert transaction.
func (s *CardService) Create(userID, boardID, listID uint64, in CardInput) (*model.Card, error) {
	if in.Title == "" {
		return nil, ErrValidation
	}
	board, err := s.boards.FindByID(boardID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if board.ArchivedAt != nil {
		return nil, ErrState
	}
	if _, err := s.access.AuthorizeOp(board.WorkspaceID, userID, OpCardCreate); err != nil {
		return nil, err
	}
	list, err := s.lists.FindByID(listID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if list.BoardID != boardID {
		return nil, ErrValidation
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}
	card := &model.Card{
		BoardID:     boardID,
		ListID:      listID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		StartDate:   in.StartDate,
		DueDate:     in.DueDate,
	}
	if err := s.repo.Create(card); err != nil {
		return nil, err
	}
	s.activity.Record(userID, "card.create", "card", card.ID,
		map[string]any{"key": HumanKey(board, card)})
	return card, nil
}

func (s *CardService) Get(userID, cardID uint64) (*model.Card, error) {
	card, err := s.repo.FindByID(cardID)
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
	return card, nil
}

func (s *CardService) ListByList(userID, listID uint64) ([]model.Card, error) {
	list, err := s.lists.FindByID(listID)
	if err != nil {
		return nil, asNotFound(err)
	}
	board, err := s.boards.FindByID(list.BoardID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if _, err := s.access.Authorize(board.WorkspaceID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByList(listID)
}

func (s *CardService) Update(userID, cardID uint64, in CardInput) (*model.Card, error) {
	card, _, err := s.authorized(userID, cardID, OpCardEdit)
	if err != nil {
		return nil, err
	}
	if in.Title != "" {
		card.Title = in.Title
	}
	if in.Description != "" {
		card.Description = in.Description
	}
	if in.Priority != "" {
		card.Priority = in.Priority
	}
	if in.StartDate != nil {
		card.StartDate = in.StartDate
	}
	if in.DueDate != nil {
		card.DueDate = in.DueDate
	}
	if err := s.repo.Update(card); err != nil {
		return nil, err
	}
	return card, nil
}

// Move relocates the card to targetIdx within targetListID on the same
// board. The repository runs the shift and the write as one transaction.
func (s *CardService) Move(userID, cardID, targetListID uint64, targetIdx int) error {
	if targetIdx < 0 {
		return ErrValidation
	}
	if _, _, err := s.authorized(userID, cardID, OpCardEdit); err != nil {
		return err
	}
	if err := s.repo.Move(cardID, targetListID, targetIdx); err != nil {
		return asNotFound(err)
	}
	s.activity.Record(userID, "card.move", "card", cardID,
		map[string]any{"list": targetListID, "index": targetIdx})
	return nil
}

// Reorder re-sequences the cards of one list.
func (s *CardService) Reorder(userID, listID uint64, updates []mysql.OrderUpdate) error {
	if len(updates) == 0 {
		return ErrValidation
	}
	list, err := s.lists.FindByID(listID)
	if err != nil {
		return asNotFound(err)
	}
	board, err := s.boards.FindByID(list.BoardID)
	if err != nil {
		return asNotFound(err)
	}
	if _, err := s.access.AuthorizeOp(board.WorkspaceID, userID, OpCardEdit); err != nil {
		return err
	}
	return s.repo.Reorder(listID, updates)
}

// Trash archives a card independently of its board.
func (s *CardService) Trash(userID, cardID uint64) error {
	card, _, err := s.authorized(userID, cardID, OpCardTrash)
	if err != nil {
		return err
	}
	if card.ArchivedAt != nil {
		return ErrState
	}
	if err := s.repo.Archive(cardID, time.Now()); err != nil {
		return err
	}
	s.activity.Record(userID, "card.trash", "card", cardID, nil)
	return nil
}

func (s *CardService) Restore(userID, cardID uint64) error {
	card, _, err := s.authorized(userID, cardID, OpCardTrash)
	if err != nil {
		return err
	}
	if card.ArchivedAt == nil {
		return ErrState
	}
	if time.Since(*card.ArchivedAt) > TrashRetention {
		return ErrState
	}
	if err := s.repo.Restore(cardID); err != nil {
		return err
	}
	s.activity.Record(userID, "card.restore", "card", cardID, nil)
	return nil
}

// Delete permanently removes the card; its key sequence number is never
// reused.
func (s *CardService) Delete(userID, cardID uint64) error {
	if _, _, err := s.authorized(userID, cardID, OpCardTrash); err != nil {
		return err
	}
	if err := s.repo.PermanentDelete(cardID); err != nil {
		return err
	}
	s.activity.Record(userID, "card.delete", "card", cardID, nil)
	return nil
}

// Assign adds a member to the card and notifies them; re-assigning an
// existing member is a silent no-op.
func (s *CardService) Assign(userID, cardID, assigneeID uint64) error {
	card, board, err := s.authorized(userID, cardID, OpCardEdit)
	if err != nil {
		return err
	}
	// the assignee must belong to the workspace too
	if _, err := s.access.Authorize(board.WorkspaceID, assigneeID); err != nil {
		return err
	}
	added, err := s.repo.AddMember(&model.CardMember{CardID: cardID, UserID: assigneeID})
	if err != nil {
		return err
	}
	if !added {
		// already assigned; do not notify again
		return nil
	}
	if assigneeID != userID {
		s.notifications.Notify(&model.Notification{
			ReceiverID: assigneeID,
			ActorID:    userID,
			Type:       model.NotifyCardAssigned,
			EntityType: "card",
			EntityID:   cardID,
			Message:    fmt.Sprintf("You were assigned to %s: %s", HumanKey(board, card), card.Title),
		})
	}
	s.activity.Record(userID, "card.assign", "card", cardID,
		map[string]any{"assignee": assigneeID})
	return nil
}

// Unassign is a no-op when the pair does not exist.
func (s *CardService) Unassign(userID, cardID, assigneeID uint64) error {
	if _, _, err := s.authorized(userID, cardID, OpCardEdit); err != nil {
		return err
	}
	return s.repo.RemoveMember(cardID, assigneeID)
}

func (s *CardService) authorized(userID, cardID uint64, op Op) (*model.Card, *model.Board, error) {
	card, err := s.repo.FindByID(cardID)
	if err != nil {
		return nil, nil, asNotFound(err)
	}
	board, err := s.boards.FindByID(card.BoardID)
	if err != nil {
		return nil, nil, asNotFound(err)
	}
	if _, err := s.access.AuthorizeOp(board.WorkspaceID, userID, op); err != nil {
		return nil, nil, err
	}
	return card, board, nil
}
