package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/ecotrack-backend/internal/apperr"
	"github.com/yungbote/ecotrack-backend/internal/logger"
	"github.com/yungbote/ecotrack-backend/internal/receipt"
	"github.com/yungbote/ecotrack-backend/internal/repos"
	"github.com/yungbote/ecotrack-backend/internal/types"
)

func newTestDB(t *testing.T) (*gorm.DB, *logger.Logger) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file:services_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&types.User{},
		&types.CampusGroup{},
		&types.UserProfile{},
		&types.CarbonActivity{},
		&types.DailyLog{},
		&types.Reward{},
		&types.PointTransaction{},
		&types.Notification{},
		&types.ReceiptScan{},
		&types.ScannedItem{},
	))
	log, err := logger.New("development")
	require.NoError(t, err)
	return gdb, log
}

type serviceHarness struct {
	db         *gorm.DB
	users      UserService
	activities ActivityService
	receipts   ReceiptService
	rewards    RewardService
	groups     GroupService
	rewardRepo repos.RewardRepo
	ledger     repos.PointTransactionRepo
	profiles   repos.UserProfileRepo
	groupRepo  repos.CampusGroupRepo
}

func newHarness(t *testing.T) *serviceHarness {
	t.Helper()
	gdb, log := newTestDB(t)

	userRepo := repos.NewUserRepo(gdb, log)
	profileRepo := repos.NewUserProfileRepo(gdb, log)
	rewardRepo := repos.NewRewardRepo(gdb, log)
	ledgerRepo := repos.NewPointTransactionRepo(gdb, log)
	activityRepo := repos.NewCarbonActivityRepo(gdb, log)
	dailyLogRepo := repos.NewDailyLogRepo(gdb, log)
	groupRepo := repos.NewCampusGroupRepo(gdb, log)
	scanRepo := repos.NewReceiptScanRepo(gdb, log)
	itemRepo := repos.NewScannedItemRepo(gdb, log)

	return &serviceHarness{
		db:         gdb,
		users:      NewUserService(gdb, log, userRepo, profileRepo, rewardRepo),
		activities: NewActivityService(gdb, log, activityRepo, dailyLogRepo, rewardRepo, ledgerRepo, profileRepo, userRepo, groupRepo),
		receipts:   NewReceiptService(gdb, log, nil, scanRepo, itemRepo, rewardRepo, ledgerRepo, profileRepo, userRepo, groupRepo),
		rewards:    NewRewardService(gdb, log, rewardRepo, ledgerRepo),
		groups:     NewGroupService(gdb, log, groupRepo, userRepo),
		rewardRepo: rewardRepo,
		ledger:     ledgerRepo,
		profiles:   profileRepo,
		groupRepo:  groupRepo,
	}
}

func TestUserGetOrCreateProvisionsProfileAndReward(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	user, err := h.users.GetOrCreate(ctx, "Ada@Campus.edu", "Ada")
	require.NoError(t, err)
	require.Equal(t, "ada@campus.edu", user.Email)

	profile, err := h.profiles.GetByUserID(ctx, nil, user.ID)
	require.NoError(t, err)
	require.Equal(t, 10000, profile.WeeklyGoal)

	reward, err := h.rewardRepo.GetByUserID(ctx, nil, user.ID)
	require.NoError(t, err)
	require.Equal(t, 0, reward.Points)

	again, err := h.users.GetOrCreate(ctx, "ada@campus.edu", "Someone Else")
	require.NoError(t, err)
	require.Equal(t, user.ID, again.ID)
}

func TestActivitySeedCatalogIsIdempotent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.NoError(t, h.activities.SeedCatalog(ctx))
	first, err := h.activities.Catalog(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	require.NoError(t, h.activities.SeedCatalog(ctx))
	second, err := h.activities.Catalog(ctx)
	require.NoError(t, err)
	require.Len(t, second, len(first))
}

func TestActivityLogAwardsPointsAndCounters(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	user, err := h.users.GetOrCreate(ctx, "ben@campus.edu", "Ben")
	require.NoError(t, err)

	grams := 1920
	result, err := h.activities.Log(ctx, user.ID, LogActivityInput{
		Category:      "transport",
		ActivityType:  "car",
		Quantity:      10,
		Unit:          "km",
		CarbonEmitted: &grams,
		Source:        types.LogSourceVoice,
	})
	require.NoError(t, err)
	require.Equal(t, 1920, result.CarbonEmitted)
	require.Equal(t, 6, result.PointsEarned) // 5 + floor(1920/1000)
	require.Equal(t, 1, result.Streak)

	reward, err := h.rewardRepo.GetByUserID(ctx, nil, user.ID)
	require.NoError(t, err)
	require.Equal(t, 6, reward.Points)

	profile, err := h.profiles.GetByUserID(ctx, nil, user.ID)
	require.NoError(t, err)
	require.Equal(t, 1920, profile.TotalCarbonTracked)
	require.Equal(t, 0, profile.EcoScore) // eco score moves only on receipt scans
	require.Equal(t, 1, profile.Streak)
	require.NotNil(t, profile.LastActivityDate)

	entries, err := h.ledger.ListByUser(ctx, nil, user.ID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, types.TransactionEarnedActivity, entries[0].Type)
	require.Equal(t, 6, entries[0].Amount)
}

func TestReceiptSaveAdvancesEcoScoreByCarbon(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	user, err := h.users.GetOrCreate(ctx, "dana@campus.edu", "Dana")
	require.NoError(t, err)

	analysis := &receipt.Analysis{
		StoreName:    "Campus Market",
		PurchaseDate: "2026-03-11",
		TotalAmount:  "42.50",
		Items: []receipt.Item{
			{ItemName: "Ground beef", Category: "meat-products", Quantity: 1, CarbonEmission: 5000, Confidence: 90},
			{ItemName: "Chocolate bar", Category: "snacks-candy", Quantity: 1, CarbonEmission: 800, Confidence: 85},
		},
		TotalCarbon: 5800,
		ItemCount:   2,
	}

	result, err := h.receipts.Save(ctx, user.ID, analysis, "")
	require.NoError(t, err)
	require.Equal(t, 15, result.PointsEarned) // 10 + floor(5800/1000)

	profile, err := h.profiles.GetByUserID(ctx, nil, user.ID)
	require.NoError(t, err)
	require.Equal(t, 5800, profile.TotalCarbonTracked)
	require.Equal(t, 1, profile.ReceiptsScanned)
	require.Equal(t, 5, profile.EcoScore) // floor(5800/1000), not the point award
}

func TestActivityLogCreditsGroup(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	user, err := h.users.GetOrCreate(ctx, "cara@campus.edu", "Cara")
	require.NoError(t, err)
	group, err := h.groups.Create(ctx, CreateGroupInput{Name: "West Dorm", Type: "dorm"})
	require.NoError(t, err)
	require.NoError(t, h.groups.Join(ctx, user.ID, group.ID))

	grams := 2500
	_, err = h.activities.Log(ctx, user.ID, LogActivityInput{
		Category:      "energy",
		ActivityType:  "electricity",
		Quantity:      5,
		CarbonEmitted: &grams,
	})
	require.NoError(t, err)

	updated, err := h.groupRepo.GetByID(ctx, nil, group.ID)
	require.NoError(t, err)
	require.Equal(t, 2500, updated.TotalCarbonTracked)
	require.Equal(t, 1, updated.MemberCount)
}

func TestActivityLogRejectsBadInput(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	user, err := h.users.GetOrCreate(ctx, "dan@campus.edu", "Dan")
	require.NoError(t, err)

	_, err = h.activities.Log(ctx, user.ID, LogActivityInput{Quantity: 0})
	require.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = h.activities.Log(ctx, user.ID, LogActivityInput{Quantity: 2})
	require.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestRewardRedeem(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	user, err := h.users.GetOrCreate(ctx, "eve@campus.edu", "Eve")
	require.NoError(t, err)
	require.NoError(t, h.rewardRepo.IncrementPoints(ctx, nil, user.ID, 50))

	_, err = h.rewards.Redeem(ctx, user.ID, 80, "")
	require.ErrorIs(t, err, apperr.ErrInvalidInput)

	reward, err := h.rewards.Redeem(ctx, user.ID, 20, "Campus coffee voucher")
	require.NoError(t, err)
	require.Equal(t, 30, reward.Points)

	reward, err = h.rewards.Redeem(ctx, user.ID, 0, "")
	require.NoError(t, err)
	require.Equal(t, 0, reward.Points)

	balance, err := h.rewards.LedgerBalance(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 0, balance)
}

func TestGroupJoinMovesMemberCounts(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	user, err := h.users.GetOrCreate(ctx, "fay@campus.edu", "Fay")
	require.NoError(t, err)
	first, err := h.groups.Create(ctx, CreateGroupInput{Name: "North Dorm", Type: "dorm"})
	require.NoError(t, err)
	second, err := h.groups.Create(ctx, CreateGroupInput{Name: "Physics", Type: "department"})
	require.NoError(t, err)

	require.NoError(t, h.groups.Join(ctx, user.ID, first.ID))
	require.NoError(t, h.groups.Join(ctx, user.ID, second.ID))

	a, err := h.groupRepo.GetByID(ctx, nil, first.ID)
	require.NoError(t, err)
	require.Equal(t, 0, a.MemberCount)
	b, err := h.groupRepo.GetByID(ctx, nil, second.ID)
	require.NoError(t, err)
	require.Equal(t, 1, b.MemberCount)
}

func TestGroupCreateValidatesType(t *testing.T) {
	h := newHarness(t)
	_, err := h.groups.Create(context.Background(), CreateGroupInput{Name: "X", Type: "club"})
	require.Error(t, err)
	require.True(t, errors.Is(err, apperr.ErrInvalidInput))
}

func TestActivityStreakAdvancesOnConsecutiveDays(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	user, err := h.users.GetOrCreate(ctx, "gil@campus.edu", "Gil")
	require.NoError(t, err)

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	require.NoError(t, h.db.Model(&types.UserProfile{}).
		Where("user_id = ?", user.ID).
		Updates(map[string]interface{}{"streak": 3, "last_activity_date": yesterday}).Error)

	grams := 100
	result, err := h.activities.Log(ctx, user.ID, LogActivityInput{
		Category:      "transport",
		ActivityType:  "bus",
		Quantity:      1,
		CarbonEmitted: &grams,
	})
	require.NoError(t, err)
	require.Equal(t, 4, result.Streak)
}
