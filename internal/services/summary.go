package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/ecotrack-backend/internal/logger"
	"github.com/yungbote/ecotrack-backend/internal/repos"
	"github.com/yungbote/ecotrack-backend/internal/rollup"
	"github.com/yungbote/ecotrack-backend/internal/types"
)

type SummaryService interface {
	Daily(ctx context.Context, userID uuid.UUID, now time.Time) (rollup.DailySummary, error)
	Weekly(ctx context.Context, userID uuid.UUID, now time.Time) (rollup.WeeklySummary, error)
}

type summaryService struct {
	log          *logger.Logger
	dailyLogRepo repos.DailyLogRepo
}

func NewSummaryService(log *logger.Logger, dailyLogRepo repos.DailyLogRepo) SummaryService {
	return &summaryService{
		log:          log.With("service", "SummaryService"),
		dailyLogRepo: dailyLogRepo,
	}
}

func (s *summaryService) Daily(ctx context.Context, userID uuid.UUID, now time.Time) (rollup.DailySummary, error) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	logs, err := s.dailyLogRepo.ListByUserBetween(ctx, nil, userID, start, start.AddDate(0, 0, 1))
	if err != nil {
		return rollup.DailySummary{}, err
	}
	return rollup.DailyFootprint(deref(logs), now), nil
}

func (s *summaryService) Weekly(ctx context.Context, userID uuid.UUID, now time.Time) (rollup.WeeklySummary, error) {
	logs, err := s.dailyLogRepo.ListByUserBetween(ctx, nil, userID, now.AddDate(0, 0, -7), now)
	if err != nil {
		return rollup.WeeklySummary{}, err
	}
	return rollup.WeeklyTrend(deref(logs), now), nil
}

func deref(logs []*types.DailyLog) []types.DailyLog {
	out := make([]types.DailyLog, 0, len(logs))
	for _, l := range logs {
		out = append(out, *l)
	}
	return out
}
