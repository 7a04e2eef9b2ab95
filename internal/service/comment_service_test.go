package service

import (
	"testing"

	"flowdeck/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func commentFixture(t *testing.T) (*gorm.DB, *CommentService, *model.Card, map[string]*model.User) {
	t.Helper()
	db := openTestDB(t)
	users := map[string]*model.User{
		"owner":  seedUser(t, db, "owner"),
		"member": seedUser(t, db, "member"),
		"guest":  seedUser(t, db, "guest"),
	}
	ws := seedWorkspace(t, db, users["owner"].ID, "acme")
	seedMember(t, db, ws.ID, users["member"].ID, model.RoleMember)
	seedMember(t, db, ws.ID, users["guest"].ID, model.RoleGuest)

	boards := NewBoardService(db, nil)
	cards := NewCardService(db, nil, nil)
	board, err := boards.Create(users["owner"].ID, ws.ID, "Product", "")
	require.NoError(t, err)
	_, lists, err := boards.Get(users["owner"].ID, board.ID)
	require.NoError(t, err)
	card, err := cards.Create(users["owner"].ID, board.ID, lists[0].ID, CardInput{Title: "a"})
	require.NoError(t, err)

	return db, NewCommentService(db, nil, nil), card, users
}

func TestCommentThreading(t *testing.T) {
	db, svc, card, users := commentFixture(t)

	root, err := svc.Create(users["guest"].ID, card.ID, nil, "looks wrong")
	require.NoError(t, err, "guests may comment")

	reply, err := svc.Create(users["member"].ID, card.ID, &root.ID, "agreed")
	require.NoError(t, err)
	assert.Equal(t, root.ID, *reply.ParentID)

	// a parent on another card is rejected
	boards := NewBoardService(db, nil)
	cards := NewCardService(db, nil, nil)
	_, lists, err := boards.Get(users["owner"].ID, card.BoardID)
	require.NoError(t, err)
	other, err := cards.Create(users["owner"].ID, card.BoardID, lists[0].ID, CardInput{Title: "b"})
	require.NoError(t, err)
	_, err = svc.Create(users["member"].ID, other.ID, &root.ID, "misplaced")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(users["member"].ID, card.ID, nil, "")
	assert.ErrorIs(t, err, ErrValidation)

	got, err := svc.ListByCard(users["member"].ID, card.ID)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestCommentDeleteRules(t *testing.T) {
	_, svc, card, users := commentFixture(t)

	c, err := svc.Create(users["guest"].ID, card.ID, nil, "mine")
	require.NoError(t, err)

	// another non-moderator cannot delete it
	assert.ErrorIs(t, svc.Delete(users["member"].ID, c.ID), ErrInsufficientRole)

	// the author always can
	require.NoError(t, svc.Delete(users["guest"].ID, c.ID))

	// moderators can delete anyone's comment, replies included
	c2, err := svc.Create(users["guest"].ID, card.ID, nil, "again")
	require.NoError(t, err)
	_, err = svc.Create(users["member"].ID, card.ID, &c2.ID, "reply")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(users["owner"].ID, c2.ID))

	got, err := svc.ListByCard(users["owner"].ID, card.ID)
	require.NoError(t, err)
	assert.Empty(t, got, "deleting a comment removes its replies")
}
