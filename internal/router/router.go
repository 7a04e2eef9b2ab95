package router

import (
	"flowdeck/internal/handler"
	"flowdeck/internal/middleware"
	"flowdeck/internal/pkg"
	redisrepo "flowdeck/internal/repository/redis"
	"flowdeck/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps is everything the HTTP layer needs; main builds it once.
type Deps struct {
	DB       *gorm.DB
	Sessions *redisrepo.SessionRepository
	Codes    *redisrepo.CodeRepository
	Mailer   pkg.Mailer
}

func InitRouter(d Deps) *gin.Engine {
	r := gin.Default()

	activity := service.NewActivityService(d.DB)
	notifications := service.NewNotificationService(d.DB)
	emailSvc := service.NewEmailService(d.Codes, d.Mailer)

	user := handler.NewUserHandler(service.NewUserService(d.DB, d.Sessions, emailSvc))
	email := handler.NewEmailHandler(emailSvc)
	workspace := handler.NewWorkspaceHandler(service.NewWorkspaceService(d.DB, activity))
	invitation := handler.NewInvitationHandler(service.NewInvitationService(d.DB, activity, notifications, d.Mailer))
	board := handler.NewBoardHandler(service.NewBoardService(d.DB, activity))
	list := handler.NewListHandler(service.NewListService(d.DB, activity))
	card := handler.NewCardHandler(service.NewCardService(d.DB, activity, notifications))
	comment := handler.NewCommentHandler(service.NewCommentService(d.DB, activity, notifications))
	label := handler.NewLabelHandler(service.NewLabelService(d.DB, activity))
	notification := handler.NewNotificationHandler(notifications)

	auth := middleware.AuthMiddleware(d.Sessions)

	emailGroup := r.Group("/api/email")
	{
		emailGroup.POST("/:scope/code", email.SendCode)
	}

	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", user.Register)
		userGroup.POST("/login", user.Login)
		userGroup.POST("/reset", user.ResetPassword)
	}

	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", user.TokenRefresh)
	}

	authGroup := r.Group("/api/auth")
	authGroup.Use(auth)
	{
		authGroup.POST("/logout", user.Logout)
		authGroup.POST("/change-password", user.ChangePassword)
		authGroup.PUT("/digest-prefs", user.UpdateDigestPrefs)
	}

	workspaceGroup := r.Group("/api/workspace")
	workspaceGroup.Use(auth)
	{
		workspaceGroup.POST("/create", workspace.Create)
		workspaceGroup.GET("/list", workspace.ListMine)
		workspaceGroup.GET("/:id", workspace.Get)
		workspaceGroup.DELETE("/:id", workspace.Delete)
		workspaceGroup.GET("/:id/members", workspace.ListMembers)
		workspaceGroup.PUT("/:id/members/role", workspace.ChangeRole)
		workspaceGroup.DELETE("/:id/members/:userId", workspace.RemoveMember)
		workspaceGroup.POST("/:id/leave", workspace.Leave)
		workspaceGroup.GET("/:id/boards", board.ListByWorkspace)
		workspaceGroup.GET("/:id/labels", label.ListByWorkspace)
		workspaceGroup.POST("/:id/invite", invitation.Invite)
	}

	invitationGroup := r.Group("/api/invitation")
	invitationGroup.Use(auth)
	{
		invitationGroup.GET("/list", invitation.ListMine)
		invitationGroup.POST("/:id/accept", invitation.Accept)
		invitationGroup.POST("/:id/reject", invitation.Reject)
	}

	boardGroup := r.Group("/api/board")
	boardGroup.Use(auth)
	{
		boardGroup.POST("/create", board.Create)
		boardGroup.GET("/:id", board.Get)
		boardGroup.PUT("/:id", board.Update)
		boardGroup.POST("/:id/trash", board.Trash)
		boardGroup.POST("/:id/restore", board.Restore)
		boardGroup.DELETE("/:id", board.Delete)
	}

	listGroup := r.Group("/api/list")
	listGroup.Use(auth)
	{
		listGroup.POST("/create", list.Create)
		listGroup.PUT("/:id", list.Update)
		listGroup.PUT("/board/:id/reorder", list.Reorder)
		listGroup.DELETE("/:id", list.Delete)
	}

	cardGroup := r.Group("/api/card")
	cardGroup.Use(auth)
	{
		cardGroup.POST("/create", card.Create)
		cardGroup.GET("/:id", card.Get)
		cardGroup.GET("/list/:id", card.ListByList)
		cardGroup.PUT("/:id", card.Update)
		cardGroup.POST("/:id/move", card.Move)
		cardGroup.PUT("/reorder/:id", card.Reorder)
		cardGroup.POST("/:id/trash", card.Trash)
		cardGroup.POST("/:id/restore", card.Restore)
		cardGroup.DELETE("/:id", card.Delete)
		cardGroup.POST("/:id/assign", card.Assign)
		cardGroup.DELETE("/:id/assign/:userId", card.Unassign)
		cardGroup.GET("/:id/labels", label.ListByCard)
		cardGroup.POST("/:id/label/:labelId", label.Attach)
		cardGroup.DELETE("/:id/label/:labelId", label.Detach)
		cardGroup.GET("/:id/comments", comment.ListByCard)
	}

	commentGroup := r.Group("/api/comment")
	commentGroup.Use(auth)
	{
		commentGroup.POST("/create", comment.Create)
		commentGroup.DELETE("/:id", comment.Delete)
	}

	labelGroup := r.Group("/api/label")
	labelGroup.Use(auth)
	{
		labelGroup.POST("/create", label.Create)
		labelGroup.PUT("/:id", label.Update)
		labelGroup.DELETE("/:id", label.Delete)
	}

	notificationGroup := r.Group("/api/notification")
	notificationGroup.Use(auth)
	{
		notificationGroup.GET("/list", notification.List)
		notificationGroup.GET("/unread", notification.UnreadCount)
		notificationGroup.POST("/:id/read", notification.MarkRead)
	}

	return r
}
