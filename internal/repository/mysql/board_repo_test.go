package mysql

import (
	"testing"
	"time"

	"flowdeck/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardCreateWithDefaultLists(t *testing.T) {
	db := openTestDB(t)
	repo := &BoardRepository{DB: db}
	lists := &ListRepository{DB: db}

	b := &model.Board{WorkspaceID: 1, Name: "Mobile App", KeySlug: "MA"}
	require.NoError(t, repo.Create(b, []string{"Todo", "In Progress", "Done"}))

	got, err := lists.ListByBoard(b.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Todo", got[0].Name)
	assert.Equal(t, "Done", got[2].Name)
	for i, l := range got {
		assert.Equal(t, i, l.OrderIdx)
		assert.Equal(t, i == 2, l.IsDone)
	}
}

func TestNextKeySeqStartsAtOne(t *testing.T) {
	db := openTestDB(t)
	board := seedBoard(t, db, 1, "dev")

	seq, err := NextKeySeq(db, board.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), seq)
}

func TestBoardPermanentDeleteRemovesSubtree(t *testing.T) {
	db := openTestDB(t)
	board := seedBoard(t, db, 1, "dev")
	list := seedList(t, db, board.ID, "todo", 0)
	repo := &BoardRepository{DB: db}
	cards := &CardRepository{DB: db}

	card := &model.Card{BoardID: board.ID, ListID: list.ID, Title: "a"}
	require.NoError(t, cards.Create(card))
	require.NoError(t, db.Create(&model.Comment{CardID: card.ID, AuthorID: 9, Body: "hi"}).Error)
	require.NoError(t, db.Create(&model.CardMember{CardID: card.ID, UserID: 9}).Error)
	require.NoError(t, db.Create(&model.CardLabel{CardID: card.ID, LabelID: 7}).Error)

	require.NoError(t, repo.PermanentDelete(board.ID))

	for _, probe := range []struct {
		name string
		mdl  any
	}{
		{"board", &model.Board{}},
		{"list", &model.List{}},
		{"card", &model.Card{}},
		{"comment", &model.Comment{}},
		{"card member", &model.CardMember{}},
		{"card label", &model.CardLabel{}},
	} {
		var n int64
		require.NoError(t, db.Model(probe.mdl).Count(&n).Error)
		assert.Zero(t, n, "%s rows left behind", probe.name)
	}
}

func TestListTrashedBefore(t *testing.T) {
	db := openTestDB(t)
	repo := &BoardRepository{DB: db}

	old := seedBoard(t, db, 1, "old")
	fresh := seedBoard(t, db, 1, "fresh")
	seedBoard(t, db, 1, "active")

	require.NoError(t, repo.Archive(old.ID, time.Now().Add(-20*24*time.Hour)))
	require.NoError(t, repo.Archive(fresh.ID, time.Now().Add(-time.Hour)))

	got, err := repo.ListTrashedBefore(time.Now().Add(-15 * 24 * time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, old.ID, got[0].ID)
}

func TestListByWorkspacePinnedFirst(t *testing.T) {
	db := openTestDB(t)
	repo := &BoardRepository{DB: db}

	a := seedBoard(t, db, 1, "a")
	b := &model.Board{WorkspaceID: 1, Name: "b", KeySlug: "B", IsPinned: true}
	require.NoError(t, db.Create(b).Error)
	trashed := seedBoard(t, db, 1, "trashed")
	require.NoError(t, repo.Archive(trashed.ID, time.Now()))

	got, err := repo.ListByWorkspace(1, false)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, b.ID, got[0].ID)
	assert.Equal(t, a.ID, got[1].ID)

	gone, err := repo.ListByWorkspace(1, true)
	require.NoError(t, err)
	require.Len(t, gone, 1)
	assert.Equal(t, trashed.ID, gone[0].ID)
}
