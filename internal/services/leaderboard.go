package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/ecotrack-backend/internal/logger"
	"github.com/yungbote/ecotrack-backend/internal/repos"
	"github.com/yungbote/ecotrack-backend/internal/rollup"
	"github.com/yungbote/ecotrack-backend/internal/types"
)

type LeaderboardService interface {
	// Top returns the ranked leaderboard, optionally truncated. Users without
	// a reward row never appear on it.
	Top(ctx context.Context, limit int) ([]rollup.RankEntry, error)
	// Standing locates one user on the leaderboard. An unranked user gets
	// Position 0, never a synthetic rank.
	Standing(ctx context.Context, userID uuid.UUID) (rollup.Standing, error)
	// GroupRanking orders campus groups by total tracked carbon, highest
	// first. Tracking more carbon means more participation.
	GroupRanking(ctx context.Context) ([]*types.CampusGroup, error)
}

type leaderboardService struct {
	log        *logger.Logger
	rewardRepo repos.RewardRepo
	groupRepo  repos.CampusGroupRepo
}

func NewLeaderboardService(log *logger.Logger, rewardRepo repos.RewardRepo, groupRepo repos.CampusGroupRepo) LeaderboardService {
	return &leaderboardService{
		log:        log.With("service", "LeaderboardService"),
		rewardRepo: rewardRepo,
		groupRepo:  groupRepo,
	}
}

func (s *leaderboardService) entries(ctx context.Context) ([]rollup.RankEntry, error) {
	ranked, err := s.rewardRepo.ListRanked(ctx, nil)
	if err != nil {
		return nil, err
	}
	entries := make([]rollup.RankEntry, 0, len(ranked))
	for _, row := range ranked {
		entries = append(entries, rollup.RankEntry{
			UserID: row.UserID,
			Name:   row.Name,
			Points: row.Points,
		})
	}
	return entries, nil
}

func (s *leaderboardService) Top(ctx context.Context, limit int) ([]rollup.RankEntry, error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return nil, err
	}
	ranked := rollup.Rank(entries)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

func (s *leaderboardService) Standing(ctx context.Context, userID uuid.UUID) (rollup.Standing, error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return rollup.Standing{}, err
	}
	return rollup.Position(entries, userID), nil
}

func (s *leaderboardService) GroupRanking(ctx context.Context) ([]*types.CampusGroup, error) {
	return s.groupRepo.ListByCarbonDesc(ctx, nil)
}
