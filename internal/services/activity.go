package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ecotrack-backend/internal/apperr"
	"github.com/yungbote/ecotrack-backend/internal/carbon"
	"github.com/yungbote/ecotrack-backend/internal/logger"
	"github.com/yungbote/ecotrack-backend/internal/repos"
	"github.com/yungbote/ecotrack-backend/internal/rollup"
	"github.com/yungbote/ecotrack-backend/internal/types"
)

// activityBasePoints is awarded for any logged activity; one bonus point is
// added per completed kilogram of tracked CO2.
const activityBasePoints = 5

type LogActivityInput struct {
	ActivityID    *uuid.UUID `json:"activity_id,omitempty"`
	Category      string     `json:"category"`
	ActivityType  string     `json:"activity_type"`
	Quantity      float64    `json:"quantity"`
	Unit          string     `json:"unit,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	// CarbonEmitted overrides factor lookup when the caller already computed
	// grams (the voice assistant does its own estimation).
	CarbonEmitted *int   `json:"carbon_emitted,omitempty"`
	Source        string `json:"source,omitempty"`
}

type LogActivityResult struct {
	Log             *types.DailyLog `json:"log"`
	CarbonEmitted   int             `json:"carbon_emitted"`
	CarbonFormatted string          `json:"carbon_formatted"`
	Level           carbon.Level    `json:"level"`
	PointsEarned    int             `json:"points_earned"`
	Streak          int             `json:"streak"`
}

type ActivityService interface {
	// Catalog lists the predefined emission-factor activities.
	Catalog(ctx context.Context) ([]*types.CarbonActivity, error)
	// SeedCatalog loads the built-in factor table on first boot. Idempotent.
	SeedCatalog(ctx context.Context) error
	// Log records one activity and, in the same transaction, awards points,
	// advances the profile counters and streak, and credits the user's campus
	// group. Either all of it lands or the activity is not logged.
	Log(ctx context.Context, userID uuid.UUID, input LogActivityInput) (*LogActivityResult, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]*types.DailyLog, error)
}

type activityService struct {
	db           *gorm.DB
	log          *logger.Logger
	activityRepo repos.CarbonActivityRepo
	dailyLogRepo repos.DailyLogRepo
	rewardRepo   repos.RewardRepo
	ledgerRepo   repos.PointTransactionRepo
	profileRepo  repos.UserProfileRepo
	userRepo     repos.UserRepo
	groupRepo    repos.CampusGroupRepo
}

func NewActivityService(
	db *gorm.DB,
	log *logger.Logger,
	activityRepo repos.CarbonActivityRepo,
	dailyLogRepo repos.DailyLogRepo,
	rewardRepo repos.RewardRepo,
	ledgerRepo repos.PointTransactionRepo,
	profileRepo repos.UserProfileRepo,
	userRepo repos.UserRepo,
	groupRepo repos.CampusGroupRepo,
) ActivityService {
	return &activityService{
		db:           db,
		log:          log.With("service", "ActivityService"),
		activityRepo: activityRepo,
		dailyLogRepo: dailyLogRepo,
		rewardRepo:   rewardRepo,
		ledgerRepo:   ledgerRepo,
		profileRepo:  profileRepo,
		userRepo:     userRepo,
		groupRepo:    groupRepo,
	}
}

func (s *activityService) Catalog(ctx context.Context) ([]*types.CarbonActivity, error) {
	return s.activityRepo.GetAll(ctx, nil)
}

func (s *activityService) SeedCatalog(ctx context.Context) error {
	count, err := s.activityRepo.Count(ctx, nil)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	now := time.Now().UTC()
	seed := make([]*types.CarbonActivity, 0, len(carbon.DefaultActivities))
	for _, factor := range carbon.DefaultActivities {
		seed = append(seed, &types.CarbonActivity{
			ID:             uuid.New(),
			Category:       string(factor.Category),
			ActivityName:   factor.ActivityName,
			EmissionFactor: factor.GramsPerUnit,
			Unit:           factor.Unit,
			Description:    factor.Description,
			CreatedAt:      now,
		})
	}
	if _, err := s.activityRepo.CreateBatch(ctx, nil, seed); err != nil {
		return fmt.Errorf("seed activity catalog: %w", err)
	}
	s.log.Info("Seeded activity catalog", "count", len(seed))
	return nil
}

// ActivityPoints is the award for a logged activity: a flat base plus one
// point per completed kilogram.
func ActivityPoints(grams int) int {
	return activityBasePoints + grams/1000
}

func (s *activityService) Log(ctx context.Context, userID uuid.UUID, input LogActivityInput) (*LogActivityResult, error) {
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", apperr.ErrInvalidInput)
	}

	grams := 0
	category := strings.TrimSpace(input.Category)
	activityType := strings.TrimSpace(input.ActivityType)
	unit := strings.TrimSpace(input.Unit)

	switch {
	case input.ActivityID != nil:
		activity, err := s.activityRepo.GetByID(ctx, nil, *input.ActivityID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown activity", apperr.ErrInvalidInput)
			}
			return nil, err
		}
		grams = carbon.CalculateEmission(float64(activity.EmissionFactor), input.Quantity)
		if category == "" {
			category = activity.Category
		}
		if activityType == "" {
			activityType = activity.ActivityName
		}
		if unit == "" {
			unit = activity.Unit
		}
	case input.CarbonEmitted != nil:
		grams = *input.CarbonEmitted
		if grams < 0 {
			return nil, fmt.Errorf("%w: carbon_emitted must not be negative", apperr.ErrInvalidInput)
		}
	default:
		return nil, fmt.Errorf("%w: either activity_id or carbon_emitted is required", apperr.ErrInvalidInput)
	}

	if category == "" {
		category = "other"
	}
	if unit == "" {
		unit = "units"
	}
	source := input.Source
	if source == "" {
		source = types.LogSourceManual
	}
	notes := input.Notes
	if notes == "" {
		notes = fmt.Sprintf("%v %s logged via %s", input.Quantity, activityType, source)
	}

	points := ActivityPoints(grams)
	now := time.Now().UTC()

	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	streak := rollup.NextStreak(profile.Streak, profile.LastActivityDate, now)

	entry := &types.DailyLog{
		ID:            uuid.New(),
		UserID:        userID,
		ActivityID:    input.ActivityID,
		Category:      category,
		ActivityType:  activityType,
		Quantity:      input.Quantity,
		Unit:          unit,
		CarbonEmitted: grams,
		Date:          now,
		Notes:         notes,
		Source:        source,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.dailyLogRepo.Create(ctx, tx, entry); err != nil {
			return fmt.Errorf("create log: %w", err)
		}
		if err := s.rewardRepo.IncrementPoints(ctx, tx, userID, points); err != nil {
			return fmt.Errorf("award points: %w", err)
		}
		ledger := &types.PointTransaction{
			ID:          uuid.New(),
			UserID:      userID,
			Type:        types.TransactionEarnedActivity,
			Amount:      points,
			Description: fmt.Sprintf("Points earned for logging %s", activityType),
			Date:        now,
		}
		if _, err := s.ledgerRepo.Create(ctx, tx, ledger); err != nil {
			return fmt.Errorf("record transaction: %w", err)
		}
		if err := s.profileRepo.IncrementCounters(ctx, tx, userID, grams, 0, 0, now); err != nil {
			return fmt.Errorf("update profile: %w", err)
		}
		if err := s.profileRepo.SetStreak(ctx, tx, userID, streak); err != nil {
			return fmt.Errorf("update streak: %w", err)
		}
		if user.CampusGroupID != nil {
			if err := s.groupRepo.IncrementCarbon(ctx, tx, *user.CampusGroupID, grams); err != nil {
				return fmt.Errorf("update group total: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error("Failed to log activity", "user_id", userID, "error", err)
		return nil, err
	}

	s.log.Info("Logged activity", "user_id", userID, "category", category, "grams", grams, "points", points)
	return &LogActivityResult{
		Log:             entry,
		CarbonEmitted:   grams,
		CarbonFormatted: carbon.FormatEmission(grams),
		Level:           carbon.ActivityLevel(grams),
		PointsEarned:    points,
		Streak:          streak,
	}, nil
}

func (s *activityService) History(ctx context.Context, userID uuid.UUID, limit int) ([]*types.DailyLog, error) {
	return s.dailyLogRepo.ListByUser(ctx, nil, userID, limit)
}
