package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ecotrack-backend/internal/apperr"
	"github.com/yungbote/ecotrack-backend/internal/logger"
	"github.com/yungbote/ecotrack-backend/internal/types"
)

type CarbonActivityRepo interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, activities []*types.CarbonActivity) ([]*types.CarbonActivity, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.CarbonActivity, error)
	GetByID(ctx context.Context, tx *gorm.DB, activityID uuid.UUID) (*types.CarbonActivity, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type carbonActivityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCarbonActivityRepo(db *gorm.DB, baseLog *logger.Logger) CarbonActivityRepo {
	return &carbonActivityRepo{db: db, log: baseLog.With("repo", "CarbonActivityRepo")}
}

func (r *carbonActivityRepo) CreateBatch(ctx context.Context, tx *gorm.DB, activities []*types.CarbonActivity) ([]*types.CarbonActivity, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(activities) == 0 {
		return []*types.CarbonActivity{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *carbonActivityRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.CarbonActivity, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.CarbonActivity
	if err := transaction.WithContext(ctx).
		Order("category, activity_name").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *carbonActivityRepo) GetByID(ctx context.Context, tx *gorm.DB, activityID uuid.UUID) (*types.CarbonActivity, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.CarbonActivity
	if err := transaction.WithContext(ctx).
		Where("id = ?", activityID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (r *carbonActivityRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.CarbonActivity{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
