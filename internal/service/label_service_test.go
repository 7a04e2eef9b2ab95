package service

import (
	"testing"

	"flowdeck/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelAttachDetach(t *testing.T) {
	db := openTestDB(t)
	owner := seedUser(t, db, "owner")
	member := seedUser(t, db, "member")
	ws := seedWorkspace(t, db, owner.ID, "acme")
	seedMember(t, db, ws.ID, member.ID, model.RoleMember)

	boards := NewBoardService(db, nil)
	cards := NewCardService(db, nil, nil)
	labels := NewLabelService(db, nil)

	board, err := boards.Create(owner.ID, ws.ID, "Product", "")
	require.NoError(t, err)
	_, lists, err := boards.Get(owner.ID, board.ID)
	require.NoError(t, err)
	card, err := cards.Create(owner.ID, board.ID, lists[0].ID, CardInput{Title: "a"})
	require.NoError(t, err)

	bug, err := labels.Create(owner.ID, ws.ID, "bug", "#ff0000")
	require.NoError(t, err)

	// members attach through the card-edit permission
	require.NoError(t, labels.Attach(member.ID, card.ID, bug.ID))
	// attaching twice stays a single link
	require.NoError(t, labels.Attach(member.ID, card.ID, bug.ID))

	got, err := labels.ListByCard(member.ID, card.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "bug", got[0].Name)

	// a label from another workspace never lands on this card
	stranger := seedUser(t, db, "stranger")
	otherWs := seedWorkspace(t, db, stranger.ID, "other")
	foreign, err := labels.Create(stranger.ID, otherWs.ID, "foreign", "")
	require.NoError(t, err)
	assert.ErrorIs(t, labels.Attach(owner.ID, card.ID, foreign.ID), ErrValidation)

	require.NoError(t, labels.Detach(member.ID, card.ID, bug.ID))
	// detaching a missing link is a no-op
	require.NoError(t, labels.Detach(member.ID, card.ID, bug.ID))
	got, err = labels.ListByCard(member.ID, card.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLabelDeleteClearsLinks(t *testing.T) {
	db := openTestDB(t)
	owner := seedUser(t, db, "owner")
	ws := seedWorkspace(t, db, owner.ID, "acme")

	boards := NewBoardService(db, nil)
	cards := NewCardService(db, nil, nil)
	labels := NewLabelService(db, nil)

	board, err := boards.Create(owner.ID, ws.ID, "Product", "")
	require.NoError(t, err)
	_, lists, err := boards.Get(owner.ID, board.ID)
	require.NoError(t, err)
	card, err := cards.Create(owner.ID, board.ID, lists[0].ID, CardInput{Title: "a"})
	require.NoError(t, err)

	l, err := labels.Create(owner.ID, ws.ID, "bug", "")
	require.NoError(t, err)
	require.NoError(t, labels.Attach(owner.ID, card.ID, l.ID))

	require.NoError(t, labels.Delete(owner.ID, l.ID))

	var links int64
	require.NoError(t, db.Model(&model.CardLabel{}).Count(&links).Error)
	assert.Zero(t, links)
}
