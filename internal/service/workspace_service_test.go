package service

import (
	"testing"

	"flowdeck/internal/model"
	"flowdeck/internal/repository/mysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceCreateMakesOwner(t *testing.T) {
	db := openTestDB(t)
	owner := seedUser(t, db, "owner")
	svc := NewWorkspaceService(db, nil)

	w, err := svc.Create(owner.ID, "acme", "")
	require.NoError(t, err)
	assert.Equal(t, model.VisibilityPrivate, w.Visibility)
	assert.Equal(t, owner.ID, w.OwnerID)

	members := &mysql.MemberRepository{DB: db}
	m, err := members.Find(w.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleOwner, m.Role)

	_, err = svc.Create(owner.ID, "", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestChangeRole(t *testing.T) {
	db := openTestDB(t)
	owner := seedUser(t, db, "owner")
	admin := seedUser(t, db, "admin")
	member := seedUser(t, db, "member")
	svc := NewWorkspaceService(db, nil)

	w, err := svc.Create(owner.ID, "acme", "")
	require.NoError(t, err)
	seedMember(t, db, w.ID, admin.ID, model.RoleAdmin)
	seedMember(t, db, w.ID, member.ID, model.RoleMember)

	// owner can never be granted
	err = svc.ChangeRole(owner.ID, w.ID, member.ID, model.RoleOwner)
	assert.ErrorIs(t, err, ErrValidation)

	// admin promotes a member
	require.NoError(t, svc.ChangeRole(admin.ID, w.ID, member.ID, model.RoleGuest))
	members := &mysql.MemberRepository{DB: db}
	m, err := members.Find(w.ID, member.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleGuest, m.Role)

	// admin cannot change the owner's role
	err = svc.ChangeRole(admin.ID, w.ID, owner.ID, model.RoleMember)
	assert.ErrorIs(t, err, ErrInsufficientRole)

	// member lacks the management role entirely
	err = svc.ChangeRole(member.ID, w.ID, admin.ID, model.RoleMember)
	assert.ErrorIs(t, err, ErrInsufficientRole)
}

func TestRemoveMemberAndLeave(t *testing.T) {
	db := openTestDB(t)
	owner := seedUser(t, db, "owner")
	admin := seedUser(t, db, "admin")
	member := seedUser(t, db, "member")
	svc := NewWorkspaceService(db, nil)

	w, err := svc.Create(owner.ID, "acme", "")
	require.NoError(t, err)
	seedMember(t, db, w.ID, admin.ID, model.RoleAdmin)
	seedMember(t, db, w.ID, member.ID, model.RoleMember)

	// the owner row is never removable
	err = svc.RemoveMember(admin.ID, w.ID, owner.ID)
	assert.ErrorIs(t, err, ErrInsufficientRole)

	// and the owner cannot walk away from their own workspace
	err = svc.Leave(owner.ID, w.ID)
	assert.ErrorIs(t, err, ErrState)

	require.NoError(t, svc.Leave(member.ID, w.ID))
	members := &mysql.MemberRepository{DB: db}
	_, err = members.Find(w.ID, member.ID)
	assert.Error(t, err)

	require.NoError(t, svc.RemoveMember(owner.ID, w.ID, admin.ID))
	_, err = members.Find(w.ID, admin.ID)
	assert.Error(t, err)
}

func TestWorkspaceDeleteCascades(t *testing.T) {
	db := openTestDB(t)
	owner := seedUser(t, db, "owner")
	svc := NewWorkspaceService(db, nil)
	boards := NewBoardService(db, nil)

	w, err := svc.Create(owner.ID, "acme", "")
	require.NoError(t, err)
	_, err = boards.Create(owner.ID, w.ID, "Product", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(owner.ID, w.ID))

	for _, probe := range []any{&model.Workspace{}, &model.WorkspaceMember{}, &model.Board{}, &model.List{}} {
		var n int64
		require.NoError(t, db.Model(probe).Count(&n).Error)
		assert.Zero(t, n)
	}
}
