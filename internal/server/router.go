package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/ecotrack-backend/internal/handlers"
	"github.com/yungbote/ecotrack-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware      *middleware.AuthMiddleware
	UserHandler         *handlers.UserHandler
	ActivityHandler     *handlers.ActivityHandler
	ReceiptHandler      *handlers.ReceiptHandler
	LeaderboardHandler  *handlers.LeaderboardHandler
	RewardHandler       *handlers.RewardHandler
	GroupHandler        *handlers.GroupHandler
	ProfileHandler      *handlers.ProfileHandler
	WasteHandler        *handlers.WasteHandler
	NotificationHandler *handlers.NotificationHandler
	VoiceHandler        *handlers.VoiceHandler
	AllowOrigins        []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	// The voice platform calls in server-to-server; identity rides in the
	// call metadata, not a bearer token.
	router.GET("/api/voice/functions", cfg.VoiceHandler.Status)
	router.POST("/api/voice/functions", cfg.VoiceHandler.Webhook)

	// ===============
	// || Protected ||
	// ===============
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	// User
	api.GET("/user", cfg.UserHandler.GetMe)
	api.GET("/profile", cfg.ProfileHandler.Get)
	api.PUT("/profile/weekly-goal", cfg.ProfileHandler.SetWeeklyGoal)
	api.GET("/profile/goal-progress", cfg.ProfileHandler.GoalProgress)

	// Activities
	api.GET("/activities", cfg.ActivityHandler.Catalog)
	api.POST("/logs", cfg.ActivityHandler.Log)
	api.GET("/logs", cfg.ActivityHandler.History)
	api.GET("/summary/daily", cfg.ActivityHandler.DailySummary)
	api.GET("/summary/weekly", cfg.ActivityHandler.WeeklySummary)
	api.GET("/tips", cfg.ActivityHandler.Tips)

	// Receipts
	api.POST("/receipts/analyze", cfg.ReceiptHandler.Analyze)
	api.POST("/receipts", cfg.ReceiptHandler.Save)
	api.GET("/receipts", cfg.ReceiptHandler.History)
	api.GET("/receipts/stats", cfg.ReceiptHandler.Stats)
	api.GET("/receipts/:id/items", cfg.ReceiptHandler.Items)

	// Leaderboard
	api.GET("/leaderboard", cfg.LeaderboardHandler.Top)
	api.GET("/leaderboard/me", cfg.LeaderboardHandler.Standing)
	api.GET("/leaderboard/groups", cfg.LeaderboardHandler.Groups)

	// Rewards
	api.GET("/rewards", cfg.RewardHandler.Balance)
	api.GET("/rewards/transactions", cfg.RewardHandler.Ledger)
	api.POST("/rewards/redeem", cfg.RewardHandler.Redeem)

	// Campus groups
	api.GET("/groups", cfg.GroupHandler.List)
	api.POST("/groups", cfg.GroupHandler.Create)
	api.POST("/groups/:id/join", cfg.GroupHandler.Join)

	// Waste
	api.POST("/waste/verify", cfg.WasteHandler.Verify)
	api.POST("/waste/reports", cfg.WasteHandler.Report)
	api.GET("/waste/reports", cfg.WasteHandler.Reports)
	api.GET("/waste/pending", cfg.WasteHandler.Pending)
	api.POST("/waste/reports/:id/collect", cfg.WasteHandler.Collect)
	api.GET("/waste/offset", cfg.WasteHandler.Offset)

	// Notifications
	api.GET("/notifications", cfg.NotificationHandler.Unread)
	api.POST("/notifications/:id/read", cfg.NotificationHandler.MarkRead)

	return router
}
