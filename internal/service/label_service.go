package service

import (
	"flowdeck/internal/model"
	"flowdeck/internal/repository/mysql"

	"gorm.io/gorm"
)

type LabelService struct {
	repo     *mysql.LabelRepository
	cards    *mysql.CardRepository
	boards   *mysql.BoardRepository
	access   *AccessControl
	activity *ActivityService
}

func NewLabelService(db *gorm.DB, activity *ActivityService) *LabelService {
	return &LabelService{
		repo:     &mysql.LabelRepository{DB: db},
		cards:    &mysql.CardRepository{DB: db},
		boards:   &mysql.BoardRepository{DB: db},
		access:   NewAccessControl(db),
		activity: activity,
	}
}

func (s *LabelService) Create(userID, workspaceID uint64, name, color string) (*model.Label, error) {
	if name == "" {
		return nil, ErrValidation
	}
	if _, err := s.access.AuthorizeOp(workspaceID, userID, OpLabelManage); err != nil {
		return nil, err
	}
	l := &model.Label{WorkspaceID: workspaceID, Name: name}
	if color != "" {
		l.Color = color
	}
	if err := s.repo.Create(l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *LabelService) ListByWorkspace(userID, workspaceID uint64) ([]model.Label, error) {
	if _, err := s.access.Authorize(workspaceID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByWorkspace(workspaceID)
}

func (s *LabelService) Update(userID, labelID uint64, name, color string) (*model.Label, error) {
	l, err := s.repo.FindByID(labelID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if _, err := s.access.AuthorizeOp(l.WorkspaceID, userID, OpLabelManage); err != nil {
		return nil, err
	}
	if name != "" {
		l.Name = name
	}
	if color != "" {
		l.Color = color
	}
	if err := s.repo.Update(l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *LabelService) Delete(userID, labelID uint64) error {
	l, err := s.repo.FindByID(labelID)
	if err != nil {
		return asNotFound(err)
	}
	if _, err := s.access.AuthorizeOp(l.WorkspaceID, userID, OpLabelManage); err != nil {
		return err
	}
	return s.repo.Delete(labelID)
}

// Attach links a label to a card. Re-attaching is not an error; the label
// and the card must belong to the same workspace.
func (s *LabelService) Attach(userID, cardID, labelID uint64) error {
	l, card, err := s.pairAuthorized(userID, cardID, labelID)
	if err != nil {
		return err
	}
	if err := s.repo.Attach(card.ID, l.ID); err != nil {
		return err
	}
	s.activity.Record(userID, "label.attach", "card", cardID,
		map[string]any{"label": labelID})
	return nil
}

// Detach is a no-op when the link does not exist.
func (s *LabelService) Detach(userID, cardID, labelID uint64) error {
	l, card, err := s.pairAuthorized(userID, cardID, labelID)
	if err != nil {
		return err
	}
	return s.repo.Detach(card.ID, l.ID)
}

func (s *LabelService) ListByCard(userID, cardID uint64) ([]model.Label, error) {
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

func (s *LabelService) pairAuthorized(userID, cardID, labelID uint64) (*model.Label, *model.Card, error) {
	l, err := s.repo.FindByID(labelID)
	if err != nil {
		return nil, nil, asNotFound(err)
	}
	card, err := s.cards.FindByID(cardID)
	if err != nil {
		return nil, nil, asNotFound(err)
	}
	board, err := s.boards.FindByID(card.BoardID)
	if err != nil {
		return nil, nil, asNotFound(err)
	}
	if board.WorkspaceID != l.WorkspaceID {
		return nil, nil, ErrValidation
	}
	if _, err := s.access.AuthorizeOp(board.WorkspaceID, userID, OpCardEdit); err != nil {
		return nil, nil, err
	}
	return l, card, nil
}
