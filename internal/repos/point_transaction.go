package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ecotrack-backend/internal/logger"
	"github.com/yungbote/ecotrack-backend/internal/types"
)

type PointTransactionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, txn *types.PointTransaction) (*types.PointTransaction, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.PointTransaction, error)
}

type pointTransactionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPointTransactionRepo(db *gorm.DB, baseLog *logger.Logger) PointTransactionRepo {
	return &pointTransactionRepo{db: db, log: baseLog.With("repo", "PointTransactionRepo")}
}

func (r *pointTransactionRepo) Create(ctx context.Context, tx *gorm.DB, txn *types.PointTransaction) (*types.PointTransaction, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(txn).Error; err != nil {
		return nil, err
	}
	return txn, nil
}

func (r *pointTransactionRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.PointTransaction, error) {
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
	var results []*types.PointTransaction
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
