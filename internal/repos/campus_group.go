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

type CampusGroupRepo interface {
	Create(ctx context.Context, tx *gorm.DB, group *types.CampusGroup) (*types.CampusGroup, error)
	GetByID(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) (*types.CampusGroup, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.CampusGroup, error)
	// ListByCarbonDesc orders groups by raw tracked carbon, highest first.
	// This is a participation metric, not an efficiency metric.
	ListByCarbonDesc(ctx context.Context, tx *gorm.DB) ([]*types.CampusGroup, error)
	IncrementMembers(ctx context.Context, tx *gorm.DB, groupID uuid.UUID, delta int) error
	IncrementCarbon(ctx context.Context, tx *gorm.DB, groupID uuid.UUID, delta int) error
}

type campusGroupRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCampusGroupRepo(db *gorm.DB, baseLog *logger.Logger) CampusGroupRepo {
	return &campusGroupRepo{db: db, log: baseLog.With("repo", "CampusGroupRepo")}
}

func (r *campusGroupRepo) Create(ctx context.Context, tx *gorm.DB, group *types.CampusGroup) (*types.CampusGroup, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

func (r *campusGroupRepo) GetByID(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) (*types.CampusGroup, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.CampusGroup
	if err := transaction.WithContext(ctx).
		Where("id = ?", groupID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (r *campusGroupRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.CampusGroup, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.CampusGroup
	if err := transaction.WithContext(ctx).
		Order("name").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *campusGroupRepo) ListByCarbonDesc(ctx context.Context, tx *gorm.DB) ([]*types.CampusGroup, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.CampusGroup
	if err := transaction.WithContext(ctx).
		Order("total_carbon_tracked DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *campusGroupRepo) IncrementMembers(ctx context.Context, tx *gorm.DB, groupID uuid.UUID, delta int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.CampusGroup{}).
		Where("id = ?", groupID).
		Update("member_count", gorm.Expr("member_count + ?", delta)).Error
}

func (r *campusGroupRepo) IncrementCarbon(ctx context.Context, tx *gorm.DB, groupID uuid.UUID, delta int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.CampusGroup{}).
		Where("id = ?", groupID).
		Update("total_carbon_tracked", gorm.Expr("total_carbon_tracked + ?", delta)).Error
}
