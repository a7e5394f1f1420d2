package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/ecotrack-backend/internal/logger"
	"github.com/yungbote/ecotrack-backend/internal/types"
)

func newTestDB(t *testing.T) (*gorm.DB, *logger.Logger) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&types.User{},
		&types.UserProfile{},
		&types.DailyLog{},
		&types.Reward{},
		&types.PointTransaction{},
	))
	log, err := logger.New("development")
	require.NoError(t, err)
	return gdb, log
}

func seedUser(t *testing.T, gdb *gorm.DB, name, email string) *types.User {
	t.Helper()
	u := &types.User{ID: uuid.New(), Email: email, Name: name}
	require.NoError(t, gdb.Create(u).Error)
	return u
}

func TestDailyLogListByUserBetween(t *testing.T) {
	gdb, log := newTestDB(t)
	repo := NewDailyLogRepo(gdb, log)
	ctx := context.Background()

	user := seedUser(t, gdb, "Ada", "ada@campus.edu")
	other := seedUser(t, gdb, "Ben", "ben@campus.edu")

	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	insert := func(owner uuid.UUID, at time.Time, grams int) {
		_, err := repo.Create(ctx, nil, &types.DailyLog{
			ID:            uuid.New(),
			UserID:        owner,
			Category:      "transport",
			ActivityType:  "bus",
			Quantity:      1,
			CarbonEmitted: grams,
			Date:          at,
			Source:        types.LogSourceManual,
		})
		require.NoError(t, err)
	}
	insert(user.ID, now.Add(-2*time.Hour), 100)
	insert(user.ID, now.Add(-30*time.Minute), 200)
	insert(user.ID, now.Add(-48*time.Hour), 400)
	insert(other.ID, now.Add(-1*time.Hour), 999)

	got, err := repo.ListByUserBetween(ctx, nil, user.ID, now.Add(-24*time.Hour), now)
	require.NoError(t, err)
	require.Len(t, got, 2)
	total := 0
	for _, l := range got {
		total += l.CarbonEmitted
	}
	require.Equal(t, 300, total)
}

func TestRewardIncrementPointsIsRelative(t *testing.T) {
	gdb, log := newTestDB(t)
	repo := NewRewardRepo(gdb, log)
	ctx := context.Background()

	user := seedUser(t, gdb, "Ada", "ada@campus.edu")
	_, err := repo.Create(ctx, nil, &types.Reward{ID: uuid.New(), UserID: user.ID, Points: 10, Level: 1})
	require.NoError(t, err)

	require.NoError(t, repo.IncrementPoints(ctx, nil, user.ID, 6))
	require.NoError(t, repo.IncrementPoints(ctx, nil, user.ID, 5))

	reward, err := repo.GetByUserID(ctx, nil, user.ID)
	require.NoError(t, err)
	require.Equal(t, 21, reward.Points)
}

func TestRewardListRankedOrdersByPointsDesc(t *testing.T) {
	gdb, log := newTestDB(t)
	repo := NewRewardRepo(gdb, log)
	ctx := context.Background()

	ada := seedUser(t, gdb, "Ada", "ada@campus.edu")
	ben := seedUser(t, gdb, "Ben", "ben@campus.edu")
	cal := seedUser(t, gdb, "Cal", "cal@campus.edu")
	// Cal has no reward row and must not be ranked.
	for _, row := range []*types.Reward{
		{ID: uuid.New(), UserID: ada.ID, Points: 40, Level: 1},
		{ID: uuid.New(), UserID: ben.ID, Points: 90, Level: 1},
	} {
		_, err := repo.Create(ctx, nil, row)
		require.NoError(t, err)
	}

	ranked, err := repo.ListRanked(ctx, nil)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	require.Equal(t, ben.ID, ranked[0].UserID)
	require.Equal(t, "Ben", ranked[0].Name)
	require.Equal(t, ada.ID, ranked[1].UserID)
	_ = cal
}
