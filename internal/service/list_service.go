package service

import (
	"flowdeck/internal/model"
	"flowdeck/internal/repository/mysql"

	"gorm.io/gorm"
)

type ListService struct {
	repo     *mysql.ListRepository
	boards   *mysql.BoardRepository
	access   *AccessControl
	activity *ActivityService
}

func NewListService(db *gorm.DB, activity *ActivityService) *ListService {
	return &ListService{
		repo:     &mysql.ListRepository{DB: db},
		boards:   &mysql.BoardRepository{DB: db},
		access:   NewAccessControl(db),
		activity: activity,
	}
}

// Create appends a list at the end of the board.
func (s *ListService) Create(userID, boardID uint64, name string) (*model.List, error) {
	if name == "" {
		return nil, ErrValidation
	}
	board, err := s.boards.FindByID(boardID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if _, err := s.access.AuthorizeOp(board.WorkspaceID, userID, OpListManage); err != nil {
		return nil, err
	}
	list := &model.List{BoardID: boardID, Name: name}
	if err := s.repo.Create(list); err != nil {
		return nil, err
	}
	s.activity.Record(userID, "list.create", "list", list.ID, map[string]any{"name": name})
	return list, nil
}

func (s *ListService) Update(userID, listID uint64, name string, isDone *bool) (*model.List, error) {
	list, err := s.repo.FindByID(listID)
	if err != nil {
		return nil, asNotFound(err)
	}
	board, err := s.boards.FindByID(list.BoardID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if _, err := s.access.AuthorizeOp(board.WorkspaceID, userID, OpListManage); err != nil {
		return nil, err
	}
	if name != "" {
		list.Name = name
	}
	if isDone != nil {
		list.IsDone = *isDone
	}
	if err := s.repo.Update(list); err != nil {
		return nil, err
	}
	return list, nil
}

// Reorder re-sequences the board's lists. Lists only ever reorder within
// their own board; the repository rejects ids from another board.
func (s *ListService) Reorder(userID, boardID uint64, updates []mysql.OrderUpdate) error {
	if len(updates) == 0 {
		return ErrValidation
	}
	board, err := s.boards.FindByID(boardID)
	if err != nil {
		return asNotFound(err)
	}
	if _, err := s.access.AuthorizeOp(board.WorkspaceID, userID, OpListManage); err != nil {
		return err
	}
	if err := s.repo.Reorder(boardID, updates); err != nil {
		return err
	}
	s.activity.Record(userID, "list.reorder", "board", boardID, nil)
	return nil
}

// Delete removes a list. When the list still holds cards the caller must
// name a sibling list to take them, otherwise the repository reports the
// blocking card count.
func (s *ListService) Delete(userID, listID uint64, moveCardsTo *uint64) error {
	list, err := s.repo.FindByID(listID)
	if err != nil {
		return asNotFound(err)
	}
	board, err := s.boards.FindByID(list.BoardID)
	if err != nil {
		return asNotFound(err)
	}
	if _, err := s.access.AuthorizeOp(board.WorkspaceID, userID, OpListManage); err != nil {
		return err
	}
	if err := s.repo.DeleteAndCompact(listID, moveCardsTo); err != nil {
		return err
	}
	s.activity.Record(userID, "list.delete", "list", listID, nil)
	return nil
}
