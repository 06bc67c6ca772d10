package repository

import (
	"context"

	"github.com/torcriss/CocoReddit-sub000/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	// GetByUsernames lists notifications for any of the recipient's aliases,
	// newest first.
	GetByUsernames(ctx context.Context, usernames []string, limit, offset int) ([]entity.Notification, error)
	// MarkAsRead flips is_read for the notification only when it belongs to
	// one of the given recipient aliases. Returns the number of rows updated.
	MarkAsRead(ctx context.Context, id uuid.UUID, usernames []string) (int64, error)
	MarkAllAsRead(ctx context.Context, usernames []string) error
	CountUnread(ctx context.Context, usernames []string) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) GetByUsernames(ctx context.Context, usernames []string, limit, offset int) ([]entity.Notification, error) {
	var notifications []entity.Notification
	err := r.db.WithContext(ctx).
		Where("username IN ?", usernames).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id uuid.UUID, usernames []string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&entity.Notification{}).
		Where("id = ? AND username IN ?", id, usernames).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, usernames []string) error {
	return r.db.WithContext(ctx).Model(&entity.Notification{}).
		Where("username IN ? AND is_read = ?", usernames, false).
		Update("is_read", true).Error
}

func (r *notificationRepository) CountUnread(ctx context.Context, usernames []string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Notification{}).
		Where("username IN ? AND is_read = ?", usernames, false).
		Count(&count).Error
	return count, err
}
