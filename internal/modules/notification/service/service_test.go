package service

import (
	"context"
	"testing"

	"github.com/torcriss/CocoReddit-sub000/internal/entity"
	"github.com/torcriss/CocoReddit-sub000/internal/identity"
	"github.com/torcriss/CocoReddit-sub000/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeNotificationRepo struct {
	notifications map[uuid.UUID]*entity.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[uuid.UUID]*entity.Notification)}
}

func (r *fakeNotificationRepo) Create(_ context.Context, notification *entity.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	stored := *notification
	r.notifications[notification.ID] = &stored
	return nil
}

func (r *fakeNotificationRepo) GetByUsernames(_ context.Context, usernames []string, _, _ int) ([]entity.Notification, error) {
	set := make(map[string]struct{}, len(usernames))
	for _, u := range usernames {
		set[u] = struct{}{}
	}
	var out []entity.Notification
	for _, n := range r.notifications {
		if _, ok := set[n.Username]; ok {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkAsRead(_ context.Context, id uuid.UUID, usernames []string) (int64, error) {
	n, ok := r.notifications[id]
	if !ok {
		return 0, nil
	}
	for _, u := range usernames {
		if n.Username == u {
			n.IsRead = true
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeNotificationRepo) MarkAllAsRead(_ context.Context, usernames []string) error {
	set := make(map[string]struct{}, len(usernames))
	for _, u := range usernames {
		set[u] = struct{}{}
	}
	for _, n := range r.notifications {
		if _, ok := set[n.Username]; ok {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, usernames []string) (int64, error) {
	set := make(map[string]struct{}, len(usernames))
	for _, u := range usernames {
		set[u] = struct{}{}
	}
	var count int64
	for _, n := range r.notifications {
		if _, ok := set[n.Username]; ok && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func TestMarkAsReadOnlyForRecipient(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo, nil)

	recipient := identity.Identity{UserID: uuid.New(), FirstName: "Ana"}
	notification := &entity.Notification{
		Username:      "Ana",
		ActorUsername: "Bob",
		PostID:        uuid.New(),
		Type:          "reply_post",
		Message:       "Someone commented on your post",
	}
	assert.NoError(t, svc.CreateNotification(context.Background(), notification))

	// A different authenticated user cannot mark it read.
	stranger := identity.Identity{UserID: uuid.New(), FirstName: "Carol"}
	err := svc.MarkAsRead(context.Background(), stranger, notification.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.False(t, repo.notifications[notification.ID].IsRead)

	assert.NoError(t, svc.MarkAsRead(context.Background(), recipient, notification.ID))
	assert.True(t, repo.notifications[notification.ID].IsRead)
}

func TestMarkAsReadUnknownID(t *testing.T) {
	svc := NewNotificationService(newFakeNotificationRepo(), nil)
	ident := identity.Identity{UserID: uuid.New(), FirstName: "Ana"}

	err := svc.MarkAsRead(context.Background(), ident, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUnreadCountAcrossAliases(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo, nil)
	ident := identity.Identity{UserID: uuid.New(), Email: "ana@example.com", FirstName: "Ana"}

	// Recipient recorded under different aliases over time.
	for _, username := range []string{"Ana", "ana@example.com", ident.UserID.String()} {
		assert.NoError(t, svc.CreateNotification(context.Background(), &entity.Notification{
			Username: username,
			PostID:   uuid.New(),
			Type:     "vote",
			Message:  "Someone voted on your post",
		}))
	}

	count, err := svc.UnreadCount(context.Background(), ident)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)

	assert.NoError(t, svc.MarkAllAsRead(context.Background(), ident))
	count, err = svc.UnreadCount(context.Background(), ident)
	assert.NoError(t, err)
	assert.Zero(t, count)
}
