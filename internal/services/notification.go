package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/ecotrack-backend/internal/logger"
	"github.com/yungbote/ecotrack-backend/internal/repos"
	"github.com/yungbote/ecotrack-backend/internal/types"
)

type NotificationService interface {
	Unread(ctx context.Context, userID uuid.UUID) ([]*types.Notification, error)
	MarkRead(ctx context.Context, notificationID uuid.UUID) error
}

type notificationService struct {
	log              *logger.Logger
	notificationRepo repos.NotificationRepo
}

func NewNotificationService(log *logger.Logger, notificationRepo repos.NotificationRepo) NotificationService {
	return &notificationService{
		log:              log.With("service", "NotificationService"),
		notificationRepo: notificationRepo,
	}
}

func (s *notificationService) Unread(ctx context.Context, userID uuid.UUID) ([]*types.Notification, error) {
	return s.notificationRepo.ListUnread(ctx, nil, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID uuid.UUID) error {
	return s.notificationRepo.MarkRead(ctx, nil, notificationID)
}
