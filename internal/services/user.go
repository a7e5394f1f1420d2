package services

import (
	"context"
	"errors"
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

type UserService interface {
	// GetOrCreate resolves an identity-provider email to a local user,
	// creating the user together with its profile and reward rows on first
	// sight.
	GetOrCreate(ctx context.Context, email, name string) (*types.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
}

type userService struct {
	db          *gorm.DB
	log         *logger.Logger
	userRepo    repos.UserRepo
	profileRepo repos.UserProfileRepo
	rewardRepo  repos.RewardRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, profileRepo repos.UserProfileRepo, rewardRepo repos.RewardRepo) UserService {
	return &userService{
		db:          db,
		log:         log.With("service", "UserService"),
		userRepo:    userRepo,
		profileRepo: profileRepo,
		rewardRepo:  rewardRepo,
	}
}

func (s *userService) GetOrCreate(ctx context.Context, email, name string) (*types.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", apperr.ErrInvalidInput)
	}

	existing, err := s.userRepo.GetByEmail(ctx, nil, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	if strings.TrimSpace(name) == "" {
		name = "Anonymous Student"
	}

	var created *types.User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		user := &types.User{
			ID:        uuid.New(),
			Email:     email,
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := s.userRepo.Create(ctx, tx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		profile := &types.UserProfile{
			ID:         uuid.New(),
			UserID:     user.ID,
			WeeklyGoal: 10000,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if _, err := s.profileRepo.Create(ctx, tx, profile); err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		reward := &types.Reward{
			ID:        uuid.New(),
			UserID:    user.ID,
			Level:     1,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := s.rewardRepo.Create(ctx, tx, reward); err != nil {
			return fmt.Errorf("create reward: %w", err)
		}
		created = user
		return nil
	})
	if err != nil {
		s.log.Error("Failed to create user", "email", email, "error", err)
		return nil, err
	}
	s.log.Info("Created user", "user_id", created.ID)
	return created, nil
}

func (s *userService) GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	return s.userRepo.GetByID(ctx, nil, userID)
}
