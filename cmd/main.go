package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/yungbote/ecotrack-backend/internal/clients/gemini"
	"github.com/yungbote/ecotrack-backend/internal/db"
	"github.com/yungbote/ecotrack-backend/internal/handlers"
	"github.com/yungbote/ecotrack-backend/internal/logger"
	"github.com/yungbote/ecotrack-backend/internal/middleware"
	"github.com/yungbote/ecotrack-backend/internal/repos"
	"github.com/yungbote/ecotrack-backend/internal/server"
	"github.com/yungbote/ecotrack-backend/internal/services"
	"github.com/yungbote/ecotrack-backend/internal/utils"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	port := utils.GetEnv("PORT", "8080", log)
	allowOrigins := strings.Split(utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000", log), ",")

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	profileRepo := repos.NewUserProfileRepo(thePG, log)
	activityRepo := repos.NewCarbonActivityRepo(thePG, log)
	dailyLogRepo := repos.NewDailyLogRepo(thePG, log)
	rewardRepo := repos.NewRewardRepo(thePG, log)
	ledgerRepo := repos.NewPointTransactionRepo(thePG, log)
	groupRepo := repos.NewCampusGroupRepo(thePG, log)
	scanRepo := repos.NewReceiptScanRepo(thePG, log)
	itemRepo := repos.NewScannedItemRepo(thePG, log)
	wasteReportRepo := repos.NewWasteReportRepo(thePG, log)
	collectedRepo := repos.NewCollectedWasteRepo(thePG, log)
	notificationRepo := repos.NewNotificationRepo(thePG, log)
	conversationRepo := repos.NewVoiceConversationRepo(thePG, log)

	// Clients
	geminiClient, err := gemini.NewClient(log)
	if err != nil {
		log.Error("Could not init GeminiClient", "error", err)
		os.Exit(1)
	}

	// Services
	log.Info("Setting up Services from main...")
	userService := services.NewUserService(thePG, log, userRepo, profileRepo, rewardRepo)
	activityService := services.NewActivityService(thePG, log, activityRepo, dailyLogRepo, rewardRepo, ledgerRepo, profileRepo, userRepo, groupRepo)
	summaryService := services.NewSummaryService(log, dailyLogRepo)
	leaderboardService := services.NewLeaderboardService(log, rewardRepo, groupRepo)
	rewardService := services.NewRewardService(thePG, log, rewardRepo, ledgerRepo)
	groupService := services.NewGroupService(thePG, log, groupRepo, userRepo)
	profileService := services.NewProfileService(log, profileRepo, summaryService)
	receiptService := services.NewReceiptService(thePG, log, geminiClient, scanRepo, itemRepo, rewardRepo, ledgerRepo, profileRepo, userRepo, groupRepo)
	tipsService := services.NewTipsService(log, geminiClient, dailyLogRepo)
	wasteService := services.NewWasteService(thePG, log, geminiClient, wasteReportRepo, collectedRepo, rewardRepo, ledgerRepo, notificationRepo)
	notificationService := services.NewNotificationService(log, notificationRepo)
	voiceService := services.NewVoiceService(log, activityService, summaryService, leaderboardService, conversationRepo)

	// Seed the emission factor catalog on first boot.
	if err := activityService.SeedCatalog(context.Background()); err != nil {
		log.Error("Could not seed activity catalog", "error", err)
		os.Exit(1)
	}

	// Handlers
	log.Info("Setting up Handlers from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, userService, jwtSecretKey)
	routerCfg := server.RouterConfig{
		AuthMiddleware:      authMiddleware,
		UserHandler:         handlers.NewUserHandler(log, userService),
		ActivityHandler:     handlers.NewActivityHandler(log, activityService, summaryService, tipsService),
		ReceiptHandler:      handlers.NewReceiptHandler(log, receiptService),
		LeaderboardHandler:  handlers.NewLeaderboardHandler(log, leaderboardService),
		RewardHandler:       handlers.NewRewardHandler(log, rewardService),
		GroupHandler:        handlers.NewGroupHandler(log, groupService),
		ProfileHandler:      handlers.NewProfileHandler(log, profileService),
		WasteHandler:        handlers.NewWasteHandler(log, wasteService),
		NotificationHandler: handlers.NewNotificationHandler(log, notificationService),
		VoiceHandler:        handlers.NewVoiceHandler(log, voiceService),
		AllowOrigins:        allowOrigins,
	}

	router := server.NewRouter(routerCfg)
	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
