package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/torcriss/CocoReddit-sub000/internal/entity"
	"github.com/torcriss/CocoReddit-sub000/internal/identity"
	notifRepo "github.com/torcriss/CocoReddit-sub000/internal/modules/notification/repository"
	"github.com/torcriss/CocoReddit-sub000/pkg/apperror"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Channel returns the redis pub/sub channel carrying live notifications for
// a recipient username.
func Channel(username string) string {
	return fmt.Sprintf("notifications:%s", username)
}

type NotificationService interface {
	CreateNotification(ctx context.Context, notification *entity.Notification) error
	GetNotifications(ctx context.Context, ident identity.Identity, limit, offset int) ([]entity.Notification, error)
	MarkAsRead(ctx context.Context, ident identity.Identity, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, ident identity.Identity) error
	UnreadCount(ctx context.Context, ident identity.Identity) (int64, error)
}

type notificationService struct {
	repo        notifRepo.NotificationRepository
	redisClient *redis.Client
}

func NewNotificationService(repo notifRepo.NotificationRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{
		repo:        repo,
		redisClient: redisClient,
	}
}

func (s *notificationService) CreateNotification(ctx context.Context, notification *entity.Notification) error {
	if err := s.repo.Create(ctx, notification); err != nil {
		return err
	}

	// Publish for live delivery; DB row is the source of truth either way.
	if s.redisClient != nil {
		if payload, err := json.Marshal(notification); err == nil {
			s.redisClient.Publish(ctx, Channel(notification.Username), payload)
		}
	}

	return nil
}

func (s *notificationService) GetNotifications(ctx context.Context, ident identity.Identity, limit, offset int) ([]entity.Notification, error) {
	return s.repo.GetByUsernames(ctx, ident.Aliases(), limit, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, ident identity.Identity, id uuid.UUID) error {
	// Scoped to the requester's aliases so one user cannot mark another
	// user's notifications read.
	affected, err := s.repo.MarkAsRead(ctx, id, ident.Aliases())
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.NotFound("notification not found")
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, ident identity.Identity) error {
	return s.repo.MarkAllAsRead(ctx, ident.Aliases())
}

func (s *notificationService) UnreadCount(ctx context.Context, ident identity.Identity) (int64, error) {
	return s.repo.CountUnread(ctx, ident.Aliases())
}
