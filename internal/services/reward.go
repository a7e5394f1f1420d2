package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ecotrack-backend/internal/apperr"
	"github.com/yungbote/ecotrack-backend/internal/logger"
	"github.com/yungbote/ecotrack-backend/internal/repos"
	"github.com/yungbote/ecotrack-backend/internal/types"
)

type RewardService interface {
	Balance(ctx context.Context, userID uuid.UUID) (*types.Reward, error)
	Ledger(ctx context.Context, userID uuid.UUID, limit int) ([]*types.PointTransaction, error)
	// LedgerBalance recomputes the balance from the transaction ledger:
	// earned entries add, redemptions subtract, floored at zero.
	LedgerBalance(ctx context.Context, userID uuid.UUID) (int, error)
	// Redeem spends points atomically. points == 0 redeems the whole balance;
	// spending more than the balance fails without any partial write.
	Redeem(ctx context.Context, userID uuid.UUID, points int, description string) (*types.Reward, error)
}

type rewardService struct {
	db         *gorm.DB
	log        *logger.Logger
	rewardRepo repos.RewardRepo
	ledgerRepo repos.PointTransactionRepo
}

func NewRewardService(db *gorm.DB, log *logger.Logger, rewardRepo repos.RewardRepo, ledgerRepo repos.PointTransactionRepo) RewardService {
	return &rewardService{
		db:         db,
		log:        log.With("service", "RewardService"),
		rewardRepo: rewardRepo,
		ledgerRepo: ledgerRepo,
	}
}

func (s *rewardService) Balance(ctx context.Context, userID uuid.UUID) (*types.Reward, error) {
	return s.rewardRepo.GetByUserID(ctx, nil, userID)
}

func (s *rewardService) Ledger(ctx context.Context, userID uuid.UUID, limit int) ([]*types.PointTransaction, error) {
	return s.ledgerRepo.ListByUser(ctx, nil, userID, limit)
}

func (s *rewardService) LedgerBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	entries, err := s.ledgerRepo.ListByUser(ctx, nil, userID, 0)
	if err != nil {
		return 0, err
	}
	balance := 0
	for _, entry := range entries {
		if strings.HasPrefix(entry.Type, "earned") {
			balance += entry.Amount
		} else {
			balance -= entry.Amount
		}
	}
	if balance < 0 {
		balance = 0
	}
	return balance, nil
}

func (s *rewardService) Redeem(ctx context.Context, userID uuid.UUID, points int, description string) (*types.Reward, error) {
	if points < 0 {
		return nil, fmt.Errorf("%w: points must not be negative", apperr.ErrInvalidInput)
	}

	reward, err := s.rewardRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}

	redeemAll := points == 0
	if redeemAll {
		points = reward.Points
	}
	if points > reward.Points {
		return nil, fmt.Errorf("%w: insufficient points", apperr.ErrInvalidInput)
	}
	if description == "" {
		if redeemAll {
			description = fmt.Sprintf("Redeemed all points: %d", points)
		} else {
			description = fmt.Sprintf("Redeemed %d points", points)
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if redeemAll {
			if err := s.rewardRepo.SetPoints(ctx, tx, userID, 0); err != nil {
				return err
			}
		} else if err := s.rewardRepo.IncrementPoints(ctx, tx, userID, -points); err != nil {
			return err
		}
		ledger := &types.PointTransaction{
			ID:          uuid.New(),
			UserID:      userID,
			Type:        types.TransactionRedeemed,
			Amount:      points,
			Description: description,
			Date:        time.Now().UTC(),
		}
		_, err := s.ledgerRepo.Create(ctx, tx, ledger)
		return err
	})
	if err != nil {
		s.log.Error("Failed to redeem points", "user_id", userID, "points", points, "error", err)
		return nil, err
	}

	s.log.Info("Redeemed points", "user_id", userID, "points", points)
	return s.rewardRepo.GetByUserID(ctx, nil, userID)
}
