package service

import (
	"flowdeck/internal/model"
	"flowdeck/internal/repository/mysql"

	"gorm.io/gorm"
)

type WorkspaceService struct {
	repo     *mysql.WorkspaceRepository
	members  *mysql.MemberRepository
	access   *AccessControl
	activity *ActivityService
}

func NewWorkspaceService(db *gorm.DB, activity *ActivityService) *WorkspaceService {
	return &WorkspaceService{
		repo:     &mysql.WorkspaceRepository{DB: db},
		members:  &mysql.MemberRepository{DB: db},
		access:   NewAccessControl(db),
		activity: activity,
	}
}

// Create makes the caller the workspace owner; the owner membership row is
// written in the same transaction as the workspace.
func (s *WorkspaceService) Create(userID uint64, name string, visibility model.Visibility) (*model.Workspace, error) {
	if name == "" {
		return nil, ErrValidation
	}
	if visibility == "" {
		visibility = model.VisibilityPrivate
	}
	w := &model.Workspace{
		Name:       name,
		Visibility: visibility,
		OwnerID:    userID,
	}
	if err := s.repo.Create(w); err != nil {
		return nil, err
	}
	s.activity.Record(userID, "workspace.create", "workspace", w.ID, map[string]any{"name": name})
	return w, nil
}

func (s *WorkspaceService) Get(userID, workspaceID uint64) (*model.Workspace, error) {
	if _, err := s.access.Authorize(workspaceID, userID); err != nil {
		return nil, err
	}
	w, err := s.repo.FindByID(workspaceID)
	return w, asNotFound(err)
}

func (s *WorkspaceService) ListMine(userID uint64) ([]model.Workspace, error) {
	return s.repo.ListByUser(userID)
}

// Delete is owner-only and cascades to every board beneath the workspace.
func (s *WorkspaceService) Delete(userID, workspaceID uint64) error {
	if _, err := s.access.AuthorizeOp(workspaceID, userID, OpWorkspaceDelete); err != nil {
		return err
	}
	if err := s.repo.Delete(workspaceID); err != nil {
		return err
	}
	s.activity.Record(userID, "workspace.delete", "workspace", workspaceID, nil)
	return nil
}

func (s *WorkspaceService) ListMembers(userID, workspaceID uint64) ([]model.WorkspaceMember, error) {
	if _, err := s.access.Authorize(workspaceID, userID); err != nil {
		return nil, err
	}
	return s.members.ListByWorkspace(workspaceID)
}

// ChangeRole updates a member's role. The owner role is assigned at creation
// only and can never be granted or taken through this endpoint.
func (s *WorkspaceService) ChangeRole(actorID, workspaceID, targetUserID uint64, role model.Role) error {
	if role == model.RoleOwner || !validMemberRole(role) {
		return ErrValidation
	}
	actor, err := s.access.AuthorizeOp(workspaceID, actorID, OpMemberManage)
	if err != nil {
		return err
	}
	ws, err := s.repo.FindByID(workspaceID)
	if err != nil {
		return asNotFound(err)
	}
	target, err := s.members.Find(workspaceID, targetUserID)
	if err != nil {
		return asNotFound(err)
	}
	if err := s.access.CheckMemberChange(ws, actor, target); err != nil {
		return err
	}
	if err := s.members.UpdateRole(workspaceID, targetUserID, role); err != nil {
		return err
	}
	s.activity.Record(actorID, "member.role_change", "workspace", workspaceID,
		map[string]any{"target": targetUserID, "role": role})
	return nil
}

// RemoveMember kicks a member out; the owner row is never removable.
func (s *WorkspaceService) RemoveMember(actorID, workspaceID, targetUserID uint64) error {
	actor, err := s.access.AuthorizeOp(workspaceID, actorID, OpMemberManage)
	if err != nil {
		return err
	}
	ws, err := s.repo.FindByID(workspaceID)
	if err != nil {
		return asNotFound(err)
	}
	target, err := s.members.Find(workspaceID, targetUserID)
	if err != nil {
		return asNotFound(err)
	}
	if err := s.access.CheckMemberChange(ws, actor, target); err != nil {
		return err
	}
	if err := s.members.Remove(workspaceID, targetUserID); err != nil {
		return err
	}
	s.activity.Record(actorID, "member.remove", "workspace", workspaceID,
		map[string]any{"target": targetUserID})
	return nil
}

// Leave lets a member exit on their own. The owner cannot leave their own
// workspace; they must delete it or transfer ownership first.
func (s *WorkspaceService) Leave(userID, workspaceID uint64) error {
	m, err := s.access.Authorize(workspaceID, userID)
	if err != nil {
		return err
	}
	if m.Role == model.RoleOwner {
		return ErrState
	}
	return s.members.Remove(workspaceID, userID)
}

func validMemberRole(role model.Role) bool {
	switch role {
	case model.RoleAdmin, model.RoleMember, model.RoleGuest:
		return true
	}
	return false
}
