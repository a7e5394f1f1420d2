package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/ecotrack-backend/internal/apperr"
	"github.com/yungbote/ecotrack-backend/internal/carbon"
	"github.com/yungbote/ecotrack-backend/internal/clients/gemini"
	"github.com/yungbote/ecotrack-backend/internal/logger"
	"github.com/yungbote/ecotrack-backend/internal/receipt"
	"github.com/yungbote/ecotrack-backend/internal/repos"
	"github.com/yungbote/ecotrack-backend/internal/rollup"
	"github.com/yungbote/ecotrack-backend/internal/types"
)

// receiptBasePoints is awarded per saved scan, plus one point per completed
// kilogram of carbon on the receipt.
const receiptBasePoints = 10

type ReceiptAnalysisResult struct {
	Analysis *receipt.Analysis `json:"analysis"`
	Insights []string          `json:"insights"`
	Savings  []receipt.Saving  `json:"potential_savings"`
}

type SaveReceiptResult struct {
	Scan         *types.ReceiptScan `json:"scan"`
	PointsEarned int                `json:"points_earned"`
	Streak       int                `json:"streak"`
}

type ReceiptStats struct {
	TotalScans       int    `json:"total_scans"`
	TotalCarbon      int    `json:"total_carbon"` // grams
	AvgPerReceipt    int    `json:"avg_per_receipt"`
	FormattedAverage string `json:"formatted_average"`
}

type ReceiptService interface {
	// Analyze sends a receipt photo through the model and normalizes the
	// response. Nothing is persisted; a bad photo costs nothing.
	Analyze(ctx context.Context, image []byte, mimeType string) (*ReceiptAnalysisResult, error)
	// Save persists an analyzed receipt with its items and, atomically,
	// awards points and advances the profile counters and streak.
	Save(ctx context.Context, userID uuid.UUID, analysis *receipt.Analysis, imageURL string) (*SaveReceiptResult, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]*types.ReceiptScan, error)
	Items(ctx context.Context, receiptID uuid.UUID) ([]*types.ScannedItem, error)
	Stats(ctx context.Context, userID uuid.UUID) (*ReceiptStats, error)
}

type receiptService struct {
	db          *gorm.DB
	log         *logger.Logger
	model       gemini.Client
	scanRepo    repos.ReceiptScanRepo
	itemRepo    repos.ScannedItemRepo
	rewardRepo  repos.RewardRepo
	ledgerRepo  repos.PointTransactionRepo
	profileRepo repos.UserProfileRepo
	userRepo    repos.UserRepo
	groupRepo   repos.CampusGroupRepo
}

func NewReceiptService(
	db *gorm.DB,
	log *logger.Logger,
	model gemini.Client,
	scanRepo repos.ReceiptScanRepo,
	itemRepo repos.ScannedItemRepo,
	rewardRepo repos.RewardRepo,
	ledgerRepo repos.PointTransactionRepo,
	profileRepo repos.UserProfileRepo,
	userRepo repos.UserRepo,
	groupRepo repos.CampusGroupRepo,
) ReceiptService {
	return &receiptService{
		db:          db,
		log:         log.With("service", "ReceiptService"),
		model:       model,
		scanRepo:    scanRepo,
		itemRepo:    itemRepo,
		rewardRepo:  rewardRepo,
		ledgerRepo:  ledgerRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
		groupRepo:   groupRepo,
	}
}

func (s *receiptService) Analyze(ctx context.Context, image []byte, mimeType string) (*ReceiptAnalysisResult, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: image is required", apperr.ErrInvalidInput)
	}
	raw, err := s.model.GenerateFromImage(ctx, receipt.AnalysisPrompt(), image, mimeType)
	if err != nil {
		s.log.Error("Receipt analysis call failed", "error", err)
		return nil, err
	}
	analysis, err := receipt.ParseAnalysis(raw)
	if err != nil {
		s.log.Warn("Receipt analysis unusable", "error", err)
		return nil, err
	}
	return &ReceiptAnalysisResult{
		Analysis: analysis,
		Insights: receipt.Insights(analysis.Items),
		Savings:  receipt.PotentialSavings(analysis.Items),
	}, nil
}

// ReceiptPoints is the award for a saved scan: a flat base plus one point per
// completed kilogram.
func ReceiptPoints(totalGrams int) int {
	return receiptBasePoints + totalGrams/1000
}

func (s *receiptService) Save(ctx context.Context, userID uuid.UUID, analysis *receipt.Analysis, imageURL string) (*SaveReceiptResult, error) {
	if analysis == nil || analysis.ItemCount == 0 {
		return nil, fmt.Errorf("%w: analysis has no items", apperr.ErrInvalidInput)
	}

	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	points := ReceiptPoints(analysis.TotalCarbon)
	streak := rollup.NextStreak(profile.Streak, profile.LastActivityDate, now)

	rawAnalysis, err := json.Marshal(analysis)
	if err != nil {
		return nil, fmt.Errorf("marshal analysis: %w", err)
	}

	scan := &types.ReceiptScan{
		ID:           uuid.New(),
		UserID:       userID,
		ImageURL:     imageURL,
		StoreName:    analysis.StoreName,
		PurchaseDate: analysis.PurchaseDate,
		TotalAmount:  analysis.TotalAmount,
		TotalCarbon:  analysis.TotalCarbon,
		ItemCount:    analysis.ItemCount,
		Status:       "processed",
		AIAnalysis:   datatypes.JSON(rawAnalysis),
		CreatedAt:    now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.scanRepo.Create(ctx, tx, scan); err != nil {
			return fmt.Errorf("create scan: %w", err)
		}
		items := make([]*types.ScannedItem, 0, len(analysis.Items))
		for _, item := range analysis.Items {
			items = append(items, &types.ScannedItem{
				ID:             uuid.New(),
				ReceiptID:      scan.ID,
				ItemName:       item.ItemName,
				Category:       item.Category,
				Quantity:       item.Quantity,
				Price:          item.Price,
				CarbonEmission: item.CarbonEmission,
				Confidence:     item.Confidence,
				CreatedAt:      now,
			})
		}
		if _, err := s.itemRepo.CreateBatch(ctx, tx, items); err != nil {
			return fmt.Errorf("create items: %w", err)
		}
		if err := s.rewardRepo.IncrementPoints(ctx, tx, userID, points); err != nil {
			return fmt.Errorf("award points: %w", err)
		}
		ledger := &types.PointTransaction{
			ID:          uuid.New(),
			UserID:      userID,
			Type:        types.TransactionEarnedScan,
			Amount:      points,
			Description: fmt.Sprintf("Points earned for scanning a receipt from %s", analysis.StoreName),
			Date:        now,
		}
		if _, err := s.ledgerRepo.Create(ctx, tx, ledger); err != nil {
			return fmt.Errorf("record transaction: %w", err)
		}
		if err := s.profileRepo.IncrementCounters(ctx, tx, userID, analysis.TotalCarbon, 1, analysis.TotalCarbon/1000, now); err != nil {
			return fmt.Errorf("update profile: %w", err)
		}
		if err := s.profileRepo.SetStreak(ctx, tx, userID, streak); err != nil {
			return fmt.Errorf("update streak: %w", err)
		}
		if user.CampusGroupID != nil {
			if err := s.groupRepo.IncrementCarbon(ctx, tx, *user.CampusGroupID, analysis.TotalCarbon); err != nil {
				return fmt.Errorf("update group total: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error("Failed to save receipt", "user_id", userID, "error", err)
		return nil, err
	}

	s.log.Info("Saved receipt", "user_id", userID, "store", analysis.StoreName, "grams", analysis.TotalCarbon, "points", points)
	return &SaveReceiptResult{Scan: scan, PointsEarned: points, Streak: streak}, nil
}

func (s *receiptService) History(ctx context.Context, userID uuid.UUID, limit int) ([]*types.ReceiptScan, error) {
	return s.scanRepo.ListByUser(ctx, nil, userID, limit)
}

func (s *receiptService) Items(ctx context.Context, receiptID uuid.UUID) ([]*types.ScannedItem, error) {
	return s.itemRepo.ListByReceipt(ctx, nil, receiptID)
}

func (s *receiptService) Stats(ctx context.Context, userID uuid.UUID) (*ReceiptStats, error) {
	scans, err := s.scanRepo.ListByUser(ctx, nil, userID, 0)
	if err != nil {
		return nil, err
	}
	stats := &ReceiptStats{TotalScans: len(scans)}
	for _, scan := range scans {
		stats.TotalCarbon += scan.TotalCarbon
	}
	stats.AvgPerReceipt = carbon.DailyAverage(stats.TotalCarbon, stats.TotalScans)
	stats.FormattedAverage = carbon.FormatEmission(stats.AvgPerReceipt)
	return stats, nil
}
