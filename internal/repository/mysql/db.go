package mysql

import (
	"flowdeck/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func InitDB(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}

// AutoMigrate creates/updates tables; fine for the dev stage.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Workspace{},
		&model.WorkspaceMember{},
		&model.WorkspaceInvitation{},
		&model.Board{},
		&model.List{},
		&model.Card{},
		&model.CardMember{},
		&model.CardLabel{},
		&model.Label{},
		&model.Comment{},
		&model.Notification{},
		&model.ActivityLog{},
		&model.ActivityOutbox{},
	)
}
