package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/ecotrack-backend/internal/aijson"
	"github.com/yungbote/ecotrack-backend/internal/apperr"
	"github.com/yungbote/ecotrack-backend/internal/carbon"
	"github.com/yungbote/ecotrack-backend/internal/clients/gemini"
	"github.com/yungbote/ecotrack-backend/internal/logger"
	"github.com/yungbote/ecotrack-backend/internal/repos"
	"github.com/yungbote/ecotrack-backend/internal/types"
)

const (
	reportPoints  = 10
	collectPoints = 15
)

// WasteVerification is the model's read of a waste photo. Quantity stays
// free text on purpose; the offset heuristic copes with it.
type WasteVerification struct {
	WasteType  string  `json:"wasteType"`
	Quantity   string  `json:"quantity"`
	Confidence float64 `json:"confidence"` // 0-1
}

type ReportWasteInput struct {
	Location     string             `json:"location"`
	WasteType    string             `json:"waste_type"`
	Amount       string             `json:"amount"`
	ImageURL     string             `json:"image_url,omitempty"`
	Verification *WasteVerification `json:"verification,omitempty"`
}

type WasteService interface {
	// Verify classifies a waste photo into type, rough quantity, and model
	// confidence. Nothing is persisted.
	Verify(ctx context.Context, image []byte, mimeType string) (*WasteVerification, error)
	// Report files a waste sighting and, atomically, awards points, records
	// the ledger entry, and notifies the reporter.
	Report(ctx context.Context, userID uuid.UUID, input ReportWasteInput) (*types.WasteReport, error)
	Reports(ctx context.Context, userID uuid.UUID) ([]*types.WasteReport, error)
	Pending(ctx context.Context) ([]*types.WasteReport, error)
	// Collect marks a pending report as collected by this user and awards
	// collection points.
	Collect(ctx context.Context, collectorID, reportID uuid.UUID) error
	// OffsetEarned estimates the total CO2 offset, in grams, from everything
	// this user has collected.
	OffsetEarned(ctx context.Context, collectorID uuid.UUID) (int, error)
}

type wasteService struct {
	db               *gorm.DB
	log              *logger.Logger
	model            gemini.Client
	reportRepo       repos.WasteReportRepo
	collectedRepo    repos.CollectedWasteRepo
	rewardRepo       repos.RewardRepo
	ledgerRepo       repos.PointTransactionRepo
	notificationRepo repos.NotificationRepo
}

func NewWasteService(
	db *gorm.DB,
	log *logger.Logger,
	model gemini.Client,
	reportRepo repos.WasteReportRepo,
	collectedRepo repos.CollectedWasteRepo,
	rewardRepo repos.RewardRepo,
	ledgerRepo repos.PointTransactionRepo,
	notificationRepo repos.NotificationRepo,
) WasteService {
	return &wasteService{
		db:               db,
		log:              log.With("service", "WasteService"),
		model:            model,
		reportRepo:       reportRepo,
		collectedRepo:    collectedRepo,
		rewardRepo:       rewardRepo,
		ledgerRepo:       ledgerRepo,
		notificationRepo: notificationRepo,
	}
}

// VerificationPrompt instructs the model to classify a waste photo.
func VerificationPrompt() string {
	return `You are an expert in waste management and recycling. Analyze this image and provide:
1. The type of waste (e.g., plastic, paper, glass, metal, organic, mixed)
2. An estimate of the quantity or amount (be concise, e.g., "5 kg", "2-3 bags", "small pile")
3. Your confidence level in this assessment (as a number between 0 and 1)

IMPORTANT: Respond ONLY with valid JSON format, no markdown or extra text:
{
  "wasteType": "type of waste",
  "quantity": "estimated quantity with unit (keep it short)",
  "confidence": confidence level as a number between 0 and 1
}`
}

func (s *wasteService) Verify(ctx context.Context, image []byte, mimeType string) (*WasteVerification, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: image is required", apperr.ErrInvalidInput)
	}
	raw, err := s.model.GenerateFromImage(ctx, VerificationPrompt(), image, mimeType)
	if err != nil {
		s.log.Error("Waste verification call failed", "error", err)
		return nil, err
	}
	obj, err := aijson.ExtractObject(raw)
	if err != nil {
		s.log.Warn("Waste verification unusable", "error", err)
		return nil, err
	}
	wasteType := strings.TrimSpace(aijson.Str(obj["wasteType"]))
	if wasteType == "" {
		return nil, &aijson.ValidationError{Field: "wasteType", Reason: "missing"}
	}
	quantity := strings.TrimSpace(aijson.Str(obj["quantity"]))
	if quantity == "" {
		return nil, &aijson.ValidationError{Field: "quantity", Reason: "missing"}
	}
	confidence, ok := aijson.Float(obj["confidence"])
	if !ok {
		return nil, &aijson.ValidationError{Field: "confidence", Reason: "missing or not a number"}
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return &WasteVerification{
		WasteType:  wasteType,
		Quantity:   aijson.Truncate(quantity, aijson.MaxFreeTextLen),
		Confidence: confidence,
	}, nil
}

func (s *wasteService) Report(ctx context.Context, userID uuid.UUID, input ReportWasteInput) (*types.WasteReport, error) {
	location := strings.TrimSpace(input.Location)
	wasteType := strings.TrimSpace(input.WasteType)
	amount := strings.TrimSpace(input.Amount)
	if location == "" || wasteType == "" || amount == "" {
		return nil, fmt.Errorf("%w: location, waste_type and amount are required", apperr.ErrInvalidInput)
	}

	now := time.Now().UTC()
	report := &types.WasteReport{
		ID:        uuid.New(),
		UserID:    userID,
		Location:  location,
		WasteType: wasteType,
		Amount:    aijson.Truncate(amount, aijson.MaxFreeTextLen),
		ImageURL:  input.ImageURL,
		Status:    "pending",
		CreatedAt: now,
	}
	if input.Verification != nil {
		raw, err := json.Marshal(input.Verification)
		if err != nil {
			return nil, fmt.Errorf("marshal verification: %w", err)
		}
		report.VerificationResult = datatypes.JSON(raw)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.reportRepo.Create(ctx, tx, report); err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		if err := s.rewardRepo.IncrementPoints(ctx, tx, userID, reportPoints); err != nil {
			return fmt.Errorf("award points: %w", err)
		}
		ledger := &types.PointTransaction{
			ID:          uuid.New(),
			UserID:      userID,
			Type:        types.TransactionEarnedReport,
			Amount:      reportPoints,
			Description: "Points earned for reporting waste",
			Date:        now,
		}
		if _, err := s.ledgerRepo.Create(ctx, tx, ledger); err != nil {
			return fmt.Errorf("record transaction: %w", err)
		}
		notification := &types.Notification{
			ID:        uuid.New(),
			UserID:    userID,
			Message:   fmt.Sprintf("You've earned %d points for reporting waste!", reportPoints),
			Type:      "reward",
			CreatedAt: now,
		}
		if _, err := s.notificationRepo.Create(ctx, tx, notification); err != nil {
			return fmt.Errorf("create notification: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Error("Failed to report waste", "user_id", userID, "error", err)
		return nil, err
	}

	s.log.Info("Waste reported", "user_id", userID, "type", wasteType)
	return report, nil
}

func (s *wasteService) Reports(ctx context.Context, userID uuid.UUID) ([]*types.WasteReport, error) {
	return s.reportRepo.ListByUser(ctx, nil, userID)
}

func (s *wasteService) Pending(ctx context.Context) ([]*types.WasteReport, error) {
	return s.reportRepo.ListPending(ctx, nil)
}

func (s *wasteService) Collect(ctx context.Context, collectorID, reportID uuid.UUID) error {
	now := time.Now().UTC()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.reportRepo.UpdateStatus(ctx, tx, reportID, "collected", &collectorID); err != nil {
			return fmt.Errorf("update report: %w", err)
		}
		collected := &types.CollectedWaste{
			ID:             uuid.New(),
			ReportID:       reportID,
			CollectorID:    collectorID,
			CollectionDate: now,
			Status:         "collected",
		}
		if _, err := s.collectedRepo.Create(ctx, tx, collected); err != nil {
			return fmt.Errorf("record collection: %w", err)
		}
		if err := s.rewardRepo.IncrementPoints(ctx, tx, collectorID, collectPoints); err != nil {
			return fmt.Errorf("award points: %w", err)
		}
		ledger := &types.PointTransaction{
			ID:          uuid.New(),
			UserID:      collectorID,
			Type:        types.TransactionEarnedCollect,
			Amount:      collectPoints,
			Description: "Points earned for collecting waste",
			Date:        now,
		}
		if _, err := s.ledgerRepo.Create(ctx, tx, ledger); err != nil {
			return fmt.Errorf("record transaction: %w", err)
		}
		notification := &types.Notification{
			ID:        uuid.New(),
			UserID:    collectorID,
			Message:   fmt.Sprintf("You've earned %d points for collecting waste!", collectPoints),
			Type:      "reward",
			CreatedAt: now,
		}
		_, err := s.notificationRepo.Create(ctx, tx, notification)
		return err
	})
	if err != nil {
		s.log.Error("Failed to collect waste", "collector_id", collectorID, "report_id", reportID, "error", err)
		return err
	}
	s.log.Info("Waste collected", "collector_id", collectorID, "report_id", reportID)
	return nil
}

func (s *wasteService) OffsetEarned(ctx context.Context, collectorID uuid.UUID) (int, error) {
	amounts, err := s.collectedRepo.AmountsByCollector(ctx, nil, collectorID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, amount := range amounts {
		total += carbon.WasteCarbonOffset(amount)
	}
	return total, nil
}
