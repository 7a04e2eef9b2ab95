package service

import (
	"strings"
	"time"
	"unicode"

	"flowdeck/internal/model"
	"flowdeck/internal/repository/mysql"

	"gorm.io/gorm"
)

// TrashRetention is how long a trashed board or card can still be restored;
// after that the retention sweep deletes it for good.
const TrashRetention = 15 * 24 * time.Hour

// DefaultLists are created with every board, at order_idx 0..2; the last one
// is the terminal column.
var DefaultLists = []string{"Todo", "In Progress", "Done"}

type BoardService struct {
	repo     *mysql.BoardRepository
	lists    *mysql.ListRepository
	access   *AccessControl
	activity *ActivityService
}

func NewBoardService(db *gorm.DB, activity *ActivityService) *BoardService {
	return &BoardService{
		repo:     &mysql.BoardRepository{DB: db},
		lists:    &mysql.ListRepository{DB: db},
		access:   NewAccessControl(db),
		activity: activity,
	}
}

// Create adds a board with its three default lists. Board names are unique
// within a workspace.
func (s *BoardService) Create(userID, workspaceID uint64, name string, mode model.BoardMode) (*model.Board, error) {
	if name == "" {
		return nil, ErrValidation
	}
	if mode == "" {
		mode = model.BoardWorkspace
	}
	if _, err := s.access.AuthorizeOp(workspaceID, userID, OpBoardCreate); err != nil {
		return nil, err
	}
	n, err := s.repo.CountByName(workspaceID, name)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrConflict
	}
	b := &model.Board{
		WorkspaceID: workspaceID,
		Name:        name,
		KeySlug:     makeKeySlug(name),
		Mode:        mode,
	}
	if err := s.repo.Create(b, DefaultLists); err != nil {
		return nil, err
	}
	s.activity.Record(userID, "board.create", "board", b.ID, map[string]any{"name": name})
	return b, nil
}

func (s *BoardService) Get(userID, boardID uint64) (*model.Board, []model.List, error) {
	b, err := s.repo.FindByID(boardID)
	if err != nil {
		return nil, nil, asNotFound(err)
	}
	if _, err := s.access.Authorize(b.WorkspaceID, userID); err != nil {
		return nil, nil, err
	}
	lists, err := s.lists.ListByBoard(boardID)
	if err != nil {
		return nil, nil, err
	}
	return b, lists, nil
}

func (s *BoardService) ListByWorkspace(userID, workspaceID uint64, trashed bool) ([]model.Board, error) {
	if _, err := s.access.Authorize(workspaceID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByWorkspace(workspaceID, trashed)
}

// Update renames the board or changes mode/pin state.
func (s *BoardService) Update(userID, boardID uint64, name string, mode model.BoardMode, pinned *bool) (*model.Board, error) {
	b, err := s.repo.FindByID(boardID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if _, err := s.access.AuthorizeOp(b.WorkspaceID, userID, OpBoardUpdate); err != nil {
		return nil, err
	}
	if name != "" && name != b.Name {
		n, err := s.repo.CountByName(b.WorkspaceID, name)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, ErrConflict
		}
		b.Name = name
	}
	if mode != "" {
		b.Mode = mode
	}
	if pinned != nil {
		b.IsPinned = *pinned
	}
	if err := s.repo.Update(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Trash moves an active board into the trash.
func (s *BoardService) Trash(userID, boardID uint64) error {
	b, err := s.repo.FindByID(boardID)
	if err != nil {
		return asNotFound(err)
	}
	if _, err := s.access.AuthorizeOp(b.WorkspaceID, userID, OpBoardTrash); err != nil {
		return err
	}
	if b.ArchivedAt != nil {
		return ErrState
	}
	if err := s.repo.Archive(boardID, time.Now()); err != nil {
		return err
	}
	s.activity.Record(userID, "board.trash", "board", boardID, nil)
	return nil
}

// Restore brings a trashed board back, only within the retention window.
func (s *BoardService) Restore(userID, boardID uint64) error {
	b, err := s.repo.FindByID(boardID)
	if err != nil {
		return asNotFound(err)
	}
	if _, err := s.access.AuthorizeOp(b.WorkspaceID, userID, OpBoardTrash); err != nil {
		return err
	}
	if b.ArchivedAt == nil {
		return ErrState
	}
	if time.Since(*b.ArchivedAt) > TrashRetention {
		return ErrState
	}
	if err := s.repo.Restore(boardID); err != nil {
		return err
	}
	s.activity.Record(userID, "board.restore", "board", boardID, nil)
	return nil
}

// Delete permanently removes the board and everything under it, from either
// the active or the trashed state. Irreversible.
func (s *BoardService) Delete(userID, boardID uint64) error {
	b, err := s.repo.FindByID(boardID)
	if err != nil {
		return asNotFound(err)
	}
	if _, err := s.access.AuthorizeOp(b.WorkspaceID, userID, OpBoardDelete); err != nil {
		return err
	}
	if err := s.repo.PermanentDelete(boardID); err != nil {
		return err
	}
	s.activity.Record(userID, "board.delete", "board", boardID, nil)
	return nil
}

// makeKeySlug builds the short human prefix for card keys from the board
// name's initials, e.g. "Mobile App Rewrite" -> "MAR".
func makeKeySlug(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r := []rune(word)[0]
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
		if b.Len() >= 4 {
			break
		}
	}
	if b.Len() == 0 {
		return "BRD"
	}
	return b.String()
}
