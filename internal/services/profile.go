package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/ecotrack-backend/internal/apperr"
	"github.com/yungbote/ecotrack-backend/internal/logger"
	"github.com/yungbote/ecotrack-backend/internal/repos"
	"github.com/yungbote/ecotrack-backend/internal/types"
)

// WeeklyGoalProgress compares the trailing week's footprint against the
// user's budget. OnTrack means the week so far is at or under the goal.
type WeeklyGoalProgress struct {
	GoalGrams    int     `json:"goal_grams"`
	TrackedGrams int     `json:"tracked_grams"`
	Ratio        float64 `json:"ratio"`
	OnTrack      bool    `json:"on_track"`
}

type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error)
	SetWeeklyGoal(ctx context.Context, userID uuid.UUID, goalGrams int) error
	GoalProgress(ctx context.Context, userID uuid.UUID, now time.Time) (*WeeklyGoalProgress, error)
}

type profileService struct {
	log         *logger.Logger
	profileRepo repos.UserProfileRepo
	summaries   SummaryService
}

func NewProfileService(log *logger.Logger, profileRepo repos.UserProfileRepo, summaries SummaryService) ProfileService {
	return &profileService{
		log:         log.With("service", "ProfileService"),
		profileRepo: profileRepo,
		summaries:   summaries,
	}
}

func (s *profileService) Get(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error) {
	return s.profileRepo.GetByUserID(ctx, nil, userID)
}

func (s *profileService) SetWeeklyGoal(ctx context.Context, userID uuid.UUID, goalGrams int) error {
	if goalGrams <= 0 {
		return fmt.Errorf("%w: weekly goal must be positive", apperr.ErrInvalidInput)
	}
	return s.profileRepo.SetWeeklyGoal(ctx, nil, userID, goalGrams)
}

func (s *profileService) GoalProgress(ctx context.Context, userID uuid.UUID, now time.Time) (*WeeklyGoalProgress, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	week, err := s.summaries.Weekly(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	progress := &WeeklyGoalProgress{
		GoalGrams:    profile.WeeklyGoal,
		TrackedGrams: week.TotalEmissions,
		OnTrack:      week.TotalEmissions <= profile.WeeklyGoal,
	}
	if profile.WeeklyGoal > 0 {
		progress.Ratio = float64(week.TotalEmissions) / float64(profile.WeeklyGoal)
	}
	return progress, nil
}
