package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ecotrack-backend/internal/logger"
	"github.com/yungbote/ecotrack-backend/internal/types"
)

type WasteReportRepo interface {
	Create(ctx context.Context, tx *gorm.DB, report *types.WasteReport) (*types.WasteReport, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.WasteReport, error)
	ListPending(ctx context.Context, tx *gorm.DB) ([]*types.WasteReport, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, reportID uuid.UUID, status string, collectorID *uuid.UUID) error
}

type wasteReportRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWasteReportRepo(db *gorm.DB, baseLog *logger.Logger) WasteReportRepo {
	return &wasteReportRepo{db: db, log: baseLog.With("repo", "WasteReportRepo")}
}

func (r *wasteReportRepo) Create(ctx context.Context, tx *gorm.DB, report *types.WasteReport) (*types.WasteReport, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}

func (r *wasteReportRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.WasteReport, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.WasteReport
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *wasteReportRepo) ListPending(ctx context.Context, tx *gorm.DB) ([]*types.WasteReport, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.WasteReport
	if err := transaction.WithContext(ctx).
		Where("status = ?", "pending").
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *wasteReportRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, reportID uuid.UUID, status string, collectorID *uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	updates := map[string]interface{}{"status": status}
	if collectorID != nil {
		updates["collector_id"] = *collectorID
	}
	return transaction.WithContext(ctx).
		Model(&types.WasteReport{}).
		Where("id = ?", reportID).
		Updates(updates).Error
}

type CollectedWasteRepo interface {
	Create(ctx context.Context, tx *gorm.DB, collected *types.CollectedWaste) (*types.CollectedWaste, error)
	// AmountsByCollector returns the free-text amounts of every report this
	// user has collected, for carbon-offset estimation.
	AmountsByCollector(ctx context.Context, tx *gorm.DB, collectorID uuid.UUID) ([]string, error)
}

type collectedWasteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCollectedWasteRepo(db *gorm.DB, baseLog *logger.Logger) CollectedWasteRepo {
	return &collectedWasteRepo{db: db, log: baseLog.With("repo", "CollectedWasteRepo")}
}

func (r *collectedWasteRepo) Create(ctx context.Context, tx *gorm.DB, collected *types.CollectedWaste) (*types.CollectedWaste, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(collected).Error; err != nil {
		return nil, err
	}
	return collected, nil
}

func (r *collectedWasteRepo) AmountsByCollector(ctx context.Context, tx *gorm.DB, collectorID uuid.UUID) ([]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var amounts []string
	if err := transaction.WithContext(ctx).
		Model(&types.CollectedWaste{}).
		Select("waste_report.amount").
		Joins("JOIN waste_report ON waste_report.id = collected_waste.report_id").
		Where("collected_waste.collector_id = ?", collectorID).
		Scan(&amounts).Error; err != nil {
		return nil, err
	}
	return amounts, nil
}
