package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ecotrack-backend/internal/apperr"
	"github.com/yungbote/ecotrack-backend/internal/logger"
	"github.com/yungbote/ecotrack-backend/internal/types"
)

// RankedReward is one leaderboard row: a user joined with their point
// balance. Users without a reward row are not ranked at all.
type RankedReward struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Points int       `json:"points"`
}

type RewardRepo interface {
	Create(ctx context.Context, tx *gorm.DB, reward *types.Reward) (*types.Reward, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Reward, error)
	// IncrementPoints applies a relative delta at the database so concurrent
	// awards never clobber each other.
	IncrementPoints(ctx context.Context, tx *gorm.DB, userID uuid.UUID, delta int) error
	SetPoints(ctx context.Context, tx *gorm.DB, userID uuid.UUID, points int) error
	ListRanked(ctx context.Context, tx *gorm.DB) ([]RankedReward, error)
}

type rewardRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRewardRepo(db *gorm.DB, baseLog *logger.Logger) RewardRepo {
	return &rewardRepo{db: db, log: baseLog.With("repo", "RewardRepo")}
}

func (r *rewardRepo) Create(ctx context.Context, tx *gorm.DB, reward *types.Reward) (*types.Reward, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(reward).Error; err != nil {
		return nil, err
	}
	return reward, nil
}

func (r *rewardRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Reward, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.Reward
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (r *rewardRepo) IncrementPoints(ctx context.Context, tx *gorm.DB, userID uuid.UUID, delta int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Reward{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"points":     gorm.Expr("points + ?", delta),
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *rewardRepo) SetPoints(ctx context.Context, tx *gorm.DB, userID uuid.UUID, points int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Reward{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"points":     points,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *rewardRepo) ListRanked(ctx context.Context, tx *gorm.DB) ([]RankedReward, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []RankedReward
	if err := transaction.WithContext(ctx).
		Model(&types.Reward{}).
		Select(`reward.user_id AS user_id, "user".name AS name, reward.points AS points`).
		Joins(`JOIN "user" ON "user".id = reward.user_id`).
		Order("reward.points DESC").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
