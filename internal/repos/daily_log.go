package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ecotrack-backend/internal/logger"
	"github.com/yungbote/ecotrack-backend/internal/types"
)

type DailyLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, log *types.DailyLog) (*types.DailyLog, error)
	ListByUserBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.DailyLog, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.DailyLog, error)
}

type dailyLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyLogRepo(db *gorm.DB, baseLog *logger.Logger) DailyLogRepo {
	return &dailyLogRepo{db: db, log: baseLog.With("repo", "DailyLogRepo")}
}

func (r *dailyLogRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.DailyLog) (*types.DailyLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *dailyLogRepo) ListByUserBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.DailyLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.DailyLog
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *dailyLogRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.DailyLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	query := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var results []*types.DailyLog
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
