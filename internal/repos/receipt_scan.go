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

type ReceiptScanRepo interface {
	Create(ctx context.Context, tx *gorm.DB, scan *types.ReceiptScan) (*types.ReceiptScan, error)
	GetByID(ctx context.Context, tx *gorm.DB, scanID uuid.UUID) (*types.ReceiptScan, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.ReceiptScan, error)
}

type receiptScanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReceiptScanRepo(db *gorm.DB, baseLog *logger.Logger) ReceiptScanRepo {
	return &receiptScanRepo{db: db, log: baseLog.With("repo", "ReceiptScanRepo")}
}

func (r *receiptScanRepo) Create(ctx context.Context, tx *gorm.DB, scan *types.ReceiptScan) (*types.ReceiptScan, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(scan).Error; err != nil {
		return nil, err
	}
	return scan, nil
}

func (r *receiptScanRepo) GetByID(ctx context.Context, tx *gorm.DB, scanID uuid.UUID) (*types.ReceiptScan, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.ReceiptScan
	if err := transaction.WithContext(ctx).
		Where("id = ?", scanID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (r *receiptScanRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.ReceiptScan, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	query := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var results []*types.ReceiptScan
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type ScannedItemRepo interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, items []*types.ScannedItem) ([]*types.ScannedItem, error)
	ListByReceipt(ctx context.Context, tx *gorm.DB, receiptID uuid.UUID) ([]*types.ScannedItem, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ScannedItem, error)
}

type scannedItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewScannedItemRepo(db *gorm.DB, baseLog *logger.Logger) ScannedItemRepo {
	return &scannedItemRepo{db: db, log: baseLog.With("repo", "ScannedItemRepo")}
}

func (r *scannedItemRepo) CreateBatch(ctx context.Context, tx *gorm.DB, items []*types.ScannedItem) ([]*types.ScannedItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(items) == 0 {
		return []*types.ScannedItem{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *scannedItemRepo) ListByReceipt(ctx context.Context, tx *gorm.DB, receiptID uuid.UUID) ([]*types.ScannedItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ScannedItem
	if err := transaction.WithContext(ctx).
		Where("receipt_id = ?", receiptID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *scannedItemRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ScannedItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ScannedItem
	if err := transaction.WithContext(ctx).
		Joins("JOIN receipt_scan ON receipt_scan.id = scanned_item.receipt_id").
		Where("receipt_scan.user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
