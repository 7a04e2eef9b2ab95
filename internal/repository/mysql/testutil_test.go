package mysql

import (
	"testing"

	"flowdeck/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB gives every test its own in-memory database with the full
// schema. Single connection, otherwise the pool would hand out separate
// empty memory databases.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, AutoMigrate(db))
	return db
}

func seedBoard(t *testing.T, db *gorm.DB, workspaceID uint64, name string) *model.Board {
	t.Helper()
	b := &model.Board{WorkspaceID: workspaceID, Name: name, KeySlug: "T"}
	require.NoError(t, db.Create(b).Error)
	return b
}

func seedList(t *testing.T, db *gorm.DB, boardID uint64, name string, idx int) *model.List {
	t.Helper()
	l := &model.List{BoardID: boardID, Name: name, OrderIdx: idx}
	require.NoError(t, db.Create(l).Error)
	return l
}
