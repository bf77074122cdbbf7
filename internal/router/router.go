package router

import (
	"net/http"
	"time"

	"github.com/emgbraker/greencompanions/config"
	"github.com/emgbraker/greencompanions/internal/cache"
	"github.com/emgbraker/greencompanions/internal/handler"
	"github.com/emgbraker/greencompanions/internal/middleware"
	"github.com/emgbraker/greencompanions/internal/repository"
	"github.com/emgbraker/greencompanions/internal/service"
	"github.com/emgbraker/greencompanions/internal/ws"
	"github.com/emgbraker/greencompanions/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps are the process-wide singletons the router wires handlers onto.
type Deps struct {
	Cfg   *config.Config
	DB    *gorm.DB
	Cache *cache.Cache
	Cloud cloudinary.Client
	Mail  *service.MailService
	Hub   *ws.Hub
}

func Setup(d Deps) *gin.Engine {
	if d.Cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(d.DB)
	profileRepo := repository.NewProfileRepository(d.DB)
	matchRepo := repository.NewMatchRepository(d.DB)
	messageRepo := repository.NewMessageRepository(d.DB)
	convRepo := repository.NewConversationRepository(d.DB)
	dirRepo := repository.NewDirectoryRepository(d.DB)
	membershipRepo := repository.NewMembershipRepository(d.DB)
	notificationRepo := repository.NewNotificationRepository(d.DB)
	warningRepo := repository.NewWarningRepository(d.DB)
	clubRepo := repository.NewClubRepository(d.DB)
	sponsorRepo := repository.NewSponsorRepository(d.DB)
	contentRepo := repository.NewContentRepository(d.DB)

	// Services
	notifSvc := service.NewNotificationService(notificationRepo)
	authSvc := service.NewAuthService(d.Cfg, userRepo, profileRepo, membershipRepo, d.Mail)
	matchSvc := service.NewMatchService(matchRepo, profileRepo, notifSvc)
	chatSvc := service.NewChatService(messageRepo, convRepo, matchSvc, d.Hub, d.Cache)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	googleOAuthHandler := handler.NewGoogleOAuthHandler(d.Cfg, authSvc)
	profileHandler := handler.NewProfileHandler(profileRepo, d.Cloud)
	directoryHandler := handler.NewDirectoryHandler(dirRepo, membershipRepo)
	matchHandler := handler.NewMatchHandler(matchSvc)
	conversationHandler := handler.NewConversationHandler(chatSvc)
	notificationHandler := handler.NewNotificationHandler(notifSvc)
	membershipHandler := handler.NewMembershipHandler(membershipRepo)
	adminHandler := handler.NewAdminHandler(profileRepo, warningRepo, notifSvc)
	contentHandler := handler.NewContentHandler(clubRepo, sponsorRepo, contentRepo)

	authMw := middleware.AuthRequired(&d.Cfg.JWT)
	adminMw := middleware.AdminRequired()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.PATCH("/change-password", authMw, authHandler.ChangePassword)
			authGroup.GET("/google", googleOAuthHandler.Redirect)
			authGroup.GET("/google/callback", googleOAuthHandler.Callback)
		}

		// Public content pages
		api.GET("/clubs", contentHandler.ListClubs)
		api.GET("/clubs/:id", contentHandler.GetClub)
		api.GET("/sponsors", contentHandler.ListSponsors)
		api.GET("/content/:page", contentHandler.GetPageContent)

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/profile", profileHandler.Me)
			me.PATCH("/profile", profileHandler.UpdateMe)
			me.POST("/avatar", profileHandler.UploadAvatar)
			me.GET("/membership", membershipHandler.Me)
			me.POST("/membership/upgrade", membershipHandler.Upgrade)
			me.GET("/notifications", notificationHandler.List)
			me.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
		}

		api.GET("/members", authMw, directoryHandler.Search)
		api.GET("/members/:id", authMw, directoryHandler.Get)

		api.POST("/likes", authMw, matchHandler.Like)
		api.GET("/likes", authMw, matchHandler.Likes)

		conv := api.Group("/conversations")
		conv.Use(authMw)
		{
			conv.GET("", conversationHandler.Inbox)
			conv.GET("/unread", conversationHandler.UnreadBadge)
			conv.GET("/:peer_id/messages", conversationHandler.History)
			conv.POST("/:peer_id/messages", conversationHandler.Send)
			conv.PATCH("/:peer_id/read", conversationHandler.MarkRead)
		}

		// WebSocket auth rides in the query string; browsers cannot set
		// headers on a socket upgrade.
		api.GET("/ws/chat", handler.UpgradeChatWS(&d.Cfg.JWT, d.Hub, chatSvc, messageRepo, d.Cache))

		admin := api.Group("/admin")
		admin.Use(authMw, adminMw)
		{
			admin.GET("/members", adminHandler.ListMembers)
			admin.POST("/members/:id/block", adminHandler.Block)
			admin.POST("/members/:id/unblock", adminHandler.Unblock)
			admin.POST("/members/:id/warnings", adminHandler.Warn)
			admin.GET("/members/:id/warnings", adminHandler.Warnings)
			admin.PATCH("/warnings/:warning_id/resolve", adminHandler.ResolveWarning)
			admin.POST("/clubs", contentHandler.CreateClub)
			admin.PUT("/clubs/:id", contentHandler.UpdateClub)
			admin.DELETE("/clubs/:id", contentHandler.DeleteClub)
			admin.GET("/sponsors", contentHandler.ListAllSponsors)
			admin.POST("/sponsors", contentHandler.CreateSponsor)
			admin.PUT("/sponsors/:id", contentHandler.UpdateSponsor)
			admin.DELETE("/sponsors/:id", contentHandler.DeleteSponsor)
			admin.PUT("/content/:page", contentHandler.UpsertContent)
		}
	}

	return r
}
