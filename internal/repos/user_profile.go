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

type UserProfileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, profile *types.UserProfile) (*types.UserProfile, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserProfile, error)
	// IncrementCounters applies relative deltas to the aggregate counters in
	// one statement; pass 0 for counters that should not move.
	IncrementCounters(ctx context.Context, tx *gorm.DB, userID uuid.UUID, carbonDelta, receiptsDelta, ecoDelta int, activityAt time.Time) error
	SetStreak(ctx context.Context, tx *gorm.DB, userID uuid.UUID, streak int) error
	IncrementStreak(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	SetWeeklyGoal(ctx context.Context, tx *gorm.DB, userID uuid.UUID, goalGrams int) error
}

type userProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserProfileRepo(db *gorm.DB, baseLog *logger.Logger) UserProfileRepo {
	return &userProfileRepo{db: db, log: baseLog.With("repo", "UserProfileRepo")}
}

func (r *userProfileRepo) Create(ctx context.Context, tx *gorm.DB, profile *types.UserProfile) (*types.UserProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *userProfileRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.UserProfile
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

func (r *userProfileRepo) IncrementCounters(ctx context.Context, tx *gorm.DB, userID uuid.UUID, carbonDelta, receiptsDelta, ecoDelta int, activityAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.UserProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"total_carbon_tracked": gorm.Expr("total_carbon_tracked + ?", carbonDelta),
			"receipts_scanned":     gorm.Expr("receipts_scanned + ?", receiptsDelta),
			"eco_score":            gorm.Expr("eco_score + ?", ecoDelta),
			"last_activity_date":   activityAt,
			"updated_at":           time.Now().UTC(),
		}).Error
}

func (r *userProfileRepo) SetStreak(ctx context.Context, tx *gorm.DB, userID uuid.UUID, streak int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.UserProfile{}).
		Where("user_id = ?", userID).
		Update("streak", streak).Error
}

func (r *userProfileRepo) SetWeeklyGoal(ctx context.Context, tx *gorm.DB, userID uuid.UUID, goalGrams int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.UserProfile{}).
		Where("user_id = ?", userID).
		Update("weekly_goal", goalGrams).Error
}

func (r *userProfileRepo) IncrementStreak(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.UserProfile{}).
		Where("user_id = ?", userID).
		Update("streak", gorm.Expr("streak + 1")).Error
}
