package service

import (
	"testing"

	"flowdeck/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizeOp(t *testing.T) {
	db := openTestDB(t)
	owner := seedUser(t, db, "owner")
	admin := seedUser(t, db, "admin")
	member := seedUser(t, db, "member")
	guest := seedUser(t, db, "guest")
	outsider := seedUser(t, db, "outsider")

	ws := seedWorkspace(t, db, owner.ID, "acme")
	seedMember(t, db, ws.ID, admin.ID, model.RoleAdmin)
	seedMember(t, db, ws.ID, member.ID, model.RoleMember)
	seedMember(t, db, ws.ID, guest.ID, model.RoleGuest)

	ac := NewAccessControl(db)

	cases := []struct {
		name    string
		op      Op
		userID  uint64
		wantErr error
	}{
		{"owner deletes workspace", OpWorkspaceDelete, owner.ID, nil},
		{"admin cannot delete workspace", OpWorkspaceDelete, admin.ID, ErrInsufficientRole},
		{"admin creates board", OpBoardCreate, admin.ID, nil},
		{"member cannot create board", OpBoardCreate, member.ID, ErrInsufficientRole},
		{"member edits card", OpCardEdit, member.ID, nil},
		{"guest cannot edit card", OpCardEdit, guest.ID, ErrInsufficientRole},
		{"guest writes comment", OpCommentWrite, guest.ID, nil},
		{"member cannot moderate comments", OpCommentModerate, member.ID, ErrInsufficientRole},
		{"outsider is not a member", OpCommentWrite, outsider.ID, ErrNotMember},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ac.AuthorizeOp(ws.ID, tc.userID, tc.op)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestAuthorizeMembershipOnly(t *testing.T) {
	db := openTestDB(t)
	owner := seedUser(t, db, "owner")
	guest := seedUser(t, db, "guest")
	ws := seedWorkspace(t, db, owner.ID, "acme")
	seedMember(t, db, ws.ID, guest.ID, model.RoleGuest)

	ac := NewAccessControl(db)
	m, err := ac.Authorize(ws.ID, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleGuest, m.Role)
}

func TestCheckMemberChange(t *testing.T) {
	ws := &model.Workspace{ID: 1, OwnerID: 10}
	ownerRow := &model.WorkspaceMember{WorkspaceID: 1, UserID: 10, Role: model.RoleOwner}
	adminA := &model.WorkspaceMember{WorkspaceID: 1, UserID: 20, Role: model.RoleAdmin}
	adminB := &model.WorkspaceMember{WorkspaceID: 1, UserID: 21, Role: model.RoleAdmin}
	member := &model.WorkspaceMember{WorkspaceID: 1, UserID: 30, Role: model.RoleMember}

	ac := &AccessControl{}

	cases := []struct {
		name    string
		actor   *model.WorkspaceMember
		target  *model.WorkspaceMember
		wantErr error
	}{
		{"nobody touches the owner", adminA, ownerRow, ErrInsufficientRole},
		{"no self modification", adminA, adminA, ErrValidation},
		{"admin cannot touch admin", adminA, adminB, ErrInsufficientRole},
		{"admin manages member", adminA, member, nil},
		{"owner manages admin", ownerRow, adminA, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ac.CheckMemberChange(ws, tc.actor, tc.target)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}
