package service

import (
	"errors"
	"log"

	"flowdeck/internal/model"
	"flowdeck/internal/pkg"
	"flowdeck/internal/repository/mysql"

	"gorm.io/gorm"
)

type InvitationService struct {
	db            *gorm.DB
	repo          *mysql.InvitationRepository
	workspaces    *mysql.WorkspaceRepository
	members       *mysql.MemberRepository
	users         *mysql.UserRepository
	access        *AccessControl
	activity      *ActivityService
	notifications *NotificationService
	mailer        pkg.Mailer
}

func NewInvitationService(db *gorm.DB, activity *ActivityService, notifications *NotificationService, mailer pkg.Mailer) *InvitationService {
	return &InvitationService{
		db:            db,
		repo:          &mysql.InvitationRepository{DB: db},
		workspaces:    &mysql.WorkspaceRepository{DB: db},
		members:       &mysql.MemberRepository{DB: db},
		users:         &mysql.UserRepository{DB: db},
		access:        NewAccessControl(db),
		activity:      activity,
		notifications: notifications,
		mailer:        mailer,
	}
}

// Invite creates a pending invitation. Only one pending invitation may exist
// per (workspace, email); inviting an existing member is a conflict too. The
// invitation email and the notification are fire-and-forget.
func (s *InvitationService) Invite(actorID, workspaceID uint64, email string, role model.Role) (*model.WorkspaceInvitation, error) {
	if email == "" {
		return nil, ErrValidation
	}
	if role == "" {
		role = model.RoleMember
	}
	if role == model.RoleOwner || !validMemberRole(role) {
		return nil, ErrValidation
	}
	if _, err := s.access.AuthorizeOp(workspaceID, actorID, OpMemberInvite); err != nil {
		return nil, err
	}
	ws, err := s.workspaces.FindByID(workspaceID)
	if err != nil {
		return nil, asNotFound(err)
	}

	invitee, err := s.users.FindByEmail(email)
	switch {
	case err == nil:
		if _, err := s.members.Find(workspaceID, invitee.ID); err == nil {
			return nil, ErrConflict
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		invitee = nil
	default:
		return nil, err
	}

	pending, err := s.repo.CountPending(workspaceID, email)
	if err != nil {
		return nil, err
	}
	if pending > 0 {
		return nil, ErrConflict
	}

	inv := &model.WorkspaceInvitation{
		WorkspaceID: workspaceID,
		Email:       email,
		Role:        role,
		Status:      model.InvitationPending,
		InviterID:   actorID,
	}
	if err := s.repo.Create(inv); err != nil {
		return nil, err
	}

	inviter, err := s.users.FindByID(actorID)
	inviterName := "A workspace admin"
	if err == nil {
		inviterName = inviter.Username
	}
	go func() {
		html := pkg.InvitationHTML(ws.Name, inviterName)
		if err := s.mailer(email, "You have been invited to "+ws.Name, html); err != nil {
			log.Printf("invitation mail err: %v", err)
		}
	}()
	if invitee != nil {
		s.notifications.Notify(&model.Notification{
			ReceiverID: invitee.ID,
			ActorID:    actorID,
			Type:       model.NotifyInvitation,
			EntityType: "workspace",
			EntityID:   workspaceID,
			Message:    inviterName + " invited you to " + ws.Name,
		})
	}
	s.activity.Record(actorID, "invitation.create", "workspace", workspaceID,
		map[string]any{"email": email, "role": role})
	return inv, nil
}

// ListPending returns the caller's open invitations, matched by email.
func (s *InvitationService) ListPending(email string) ([]model.WorkspaceInvitation, error) {
	return s.repo.ListPendingByEmail(email)
}

// Accept turns a pending invitation into a membership. The member row insert
// and the status flip happen in one transaction; the insert is idempotent.
func (s *InvitationService) Accept(userID uint64, email string, invitationID uint64) error {
	inv, err := s.repo.FindByID(invitationID)
	if err != nil {
		return asNotFound(err)
	}
	if inv.Email != email {
		return ErrNotFound
	}
	if inv.Status != model.InvitationPending {
		return ErrState
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		members := &mysql.MemberRepository{DB: tx}
		invs := &mysql.InvitationRepository{DB: tx}
		if err := members.Add(&model.WorkspaceMember{
			WorkspaceID: inv.WorkspaceID,
			UserID:      userID,
			Role:        inv.Role,
		}); err != nil {
			return err
		}
		return invs.UpdateStatus(inv.ID, model.InvitationAccepted)
	})
	if err != nil {
		return err
	}
	s.activity.Record(userID, "invitation.accept", "workspace", inv.WorkspaceID, nil)
	return nil
}

func (s *InvitationService) Reject(email string, invitationID uint64) error {
	inv, err := s.repo.FindByID(invitationID)
	if err != nil {
		return asNotFound(err)
	}
	if inv.Email != email {
		return ErrNotFound
	}
	if inv.Status != model.InvitationPending {
		return ErrState
	}
	return s.repo.UpdateStatus(inv.ID, model.InvitationRejected)
}
