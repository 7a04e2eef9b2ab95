package mysql

import (
	"testing"

	"flowdeck/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListByCardReturnsLabelRows(t *testing.T) {
	db := openTestDB(t)
	repo := &LabelRepository{DB: db}

	bug := &model.Label{WorkspaceID: 1, Name: "bug", Color: "#ff0000"}
	chore := &model.Label{WorkspaceID: 1, Name: "chore"}
	unused := &model.Label{WorkspaceID: 1, Name: "unused"}
	for _, l := range []*model.Label{bug, chore, unused} {
		require.NoError(t, repo.Create(l))
	}

	require.NoError(t, repo.Attach(10, bug.ID))
	require.NoError(t, repo.Attach(10, chore.ID))
	require.NoError(t, repo.Attach(11, unused.ID))

	got, err := repo.ListByCard(10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "bug", got[0].Name)
	assert.Equal(t, "#ff0000", got[0].Color)
	assert.Equal(t, "chore", got[1].Name)

	none, err := repo.ListByCard(99)
	require.NoError(t, err)
	assert.Empty(t, none)
}
