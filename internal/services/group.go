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

type CreateGroupInput struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

type GroupService interface {
	List(ctx context.Context) ([]*types.CampusGroup, error)
	Create(ctx context.Context, input CreateGroupInput) (*types.CampusGroup, error)
	// Join moves the user into a group, keeping both groups' member counters
	// consistent in one transaction.
	Join(ctx context.Context, userID, groupID uuid.UUID) error
}

type groupService struct {
	db        *gorm.DB
	log       *logger.Logger
	groupRepo repos.CampusGroupRepo
	userRepo  repos.UserRepo
}

func NewGroupService(db *gorm.DB, log *logger.Logger, groupRepo repos.CampusGroupRepo, userRepo repos.UserRepo) GroupService {
	return &groupService{
		db:        db,
		log:       log.With("service", "GroupService"),
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

func (s *groupService) List(ctx context.Context) ([]*types.CampusGroup, error) {
	return s.groupRepo.GetAll(ctx, nil)
}

var validGroupTypes = map[string]struct{}{
	"dorm":       {},
	"department": {},
}

func (s *groupService) Create(ctx context.Context, input CreateGroupInput) (*types.CampusGroup, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperr.ErrInvalidInput)
	}
	groupType := strings.ToLower(strings.TrimSpace(input.Type))
	if _, ok := validGroupTypes[groupType]; !ok {
		return nil, fmt.Errorf("%w: type must be dorm or department", apperr.ErrInvalidInput)
	}
	group := &types.CampusGroup{
		ID:          uuid.New(),
		Name:        name,
		Type:        groupType,
		Description: strings.TrimSpace(input.Description),
		CreatedAt:   time.Now().UTC(),
	}
	return s.groupRepo.Create(ctx, nil, group)
}

func (s *groupService) Join(ctx context.Context, userID, groupID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return err
	}
	if user.CampusGroupID != nil && *user.CampusGroupID == groupID {
		return nil
	}
	if _, err := s.groupRepo.GetByID(ctx, nil, groupID); err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.UpdateCampusGroup(ctx, tx, userID, groupID); err != nil {
			return err
		}
		if user.CampusGroupID != nil {
			if err := s.groupRepo.IncrementMembers(ctx, tx, *user.CampusGroupID, -1); err != nil {
				return err
			}
		}
		return s.groupRepo.IncrementMembers(ctx, tx, groupID, 1)
	})
	if err != nil {
		s.log.Error("Failed to join group", "user_id", userID, "group_id", groupID, "error", err)
		return err
	}
	s.log.Info("User joined group", "user_id", userID, "group_id", groupID)
	return nil
}
