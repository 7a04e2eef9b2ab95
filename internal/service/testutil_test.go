package service

import (
	"testing"

	"flowdeck/internal/model"
	"flowdeck/internal/repository/mysql"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB gives each test an isolated in-memory database. A single
// connection keeps the pool from handing out fresh empty databases.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, mysql.AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{Username: username, Password: "x", Email: username + "@example.com"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedMember(t *testing.T, db *gorm.DB, workspaceID, userID uint64, role model.Role) {
	t.Helper()
	require.NoError(t, db.Create(&model.WorkspaceMember{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        role,
	}).Error)
}

// seedWorkspace creates the workspace the way the service does: owner
// membership included.
func seedWorkspace(t *testing.T, db *gorm.DB, ownerID uint64, name string) *model.Workspace {
	t.Helper()
	svc := NewWorkspaceService(db, nil)
	w, err := svc.Create(ownerID, name, model.VisibilityPrivate)
	require.NoError(t, err)
	return w
}
