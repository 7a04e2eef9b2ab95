package service

import (
	"testing"

	"flowdeck/internal/model"
	"flowdeck/internal/repository/mysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListReorderAndDelete(t *testing.T) {
	db := openTestDB(t)
	owner := seedUser(t, db, "owner")
	member := seedUser(t, db, "member")
	ws := seedWorkspace(t, db, owner.ID, "acme")
	seedMember(t, db, ws.ID, member.ID, model.RoleMember)

	boards := NewBoardService(db, nil)
	lists := NewListService(db, nil)
	cards := NewCardService(db, nil, nil)

	board, err := boards.Create(owner.ID, ws.ID, "Product", "")
	require.NoError(t, err)
	_, defaults, err := boards.Get(owner.ID, board.ID)
	require.NoError(t, err)

	extra, err := lists.Create(owner.ID, board.ID, "Review")
	require.NoError(t, err)
	assert.Equal(t, 3, extra.OrderIdx)

	// members cannot manage lists
	_, err = lists.Create(member.ID, board.ID, "Nope")
	assert.ErrorIs(t, err, ErrInsufficientRole)

	// a request that leaves lists out is refused before anything moves
	assert.ErrorIs(t, lists.Reorder(owner.ID, board.ID, []mysql.OrderUpdate{
		{ID: extra.ID, OrderIdx: 0},
	}), mysql.ErrPartialReorder)

	// move Review to the front
	require.NoError(t, lists.Reorder(owner.ID, board.ID, []mysql.OrderUpdate{
		{ID: extra.ID, OrderIdx: 0},
		{ID: defaults[0].ID, OrderIdx: 1},
		{ID: defaults[1].ID, OrderIdx: 2},
		{ID: defaults[2].ID, OrderIdx: 3},
	}))
	_, after, err := boards.Get(owner.ID, board.ID)
	require.NoError(t, err)
	assert.Equal(t, "Review", after[0].Name)
	assert.Equal(t, 0, after[0].OrderIdx)

	// deleting a list with cards needs a destination
	card, err := cards.Create(owner.ID, board.ID, extra.ID, CardInput{Title: "pending"})
	require.NoError(t, err)
	err = lists.Delete(owner.ID, extra.ID, nil)
	var hc *mysql.HasChildrenError
	require.ErrorAs(t, err, &hc)
	assert.Equal(t, int64(1), hc.Count)

	require.NoError(t, lists.Delete(owner.ID, extra.ID, &defaults[0].ID))
	moved, err := cards.Get(owner.ID, card.ID)
	require.NoError(t, err)
	assert.Equal(t, defaults[0].ID, moved.ListID)
}

func TestListUpdate(t *testing.T) {
	db := openTestDB(t)
	owner := seedUser(t, db, "owner")
	ws := seedWorkspace(t, db, owner.ID, "acme")
	boards := NewBoardService(db, nil)
	lists := NewListService(db, nil)

	board, err := boards.Create(owner.ID, ws.ID, "Product", "")
	require.NoError(t, err)
	_, defaults, err := boards.Get(owner.ID, board.ID)
	require.NoError(t, err)

	done := true
	got, err := lists.Update(owner.ID, defaults[0].ID, "Backlog", &done)
	require.NoError(t, err)
	assert.Equal(t, "Backlog", got.Name)
	assert.True(t, got.IsDone)
}
