package services

import (
	"context"
	"errors"
	"testing"

	"github.com/akshat1423/scaleup-backend/internal/app/models"
	"github.com/akshat1423/scaleup-backend/internal/pkg/apperrors"
)

func TestNotificationFeed(t *testing.T) {
	sink := &fakeNotifications{}
	service := NewNotificationService(sink, testLogger())
	ctx := context.Background()

	service.Notify(ctx, 1, models.NotificationWelcome, map[string]any{"communityId": int64(7)})
	service.Notify(ctx, 1, models.NotificationAnnouncement, map[string]any{"communityId": int64(7)})
	service.Notify(ctx, 2, models.NotificationWelcome, nil)

	all, err := service.ListNotifications(ctx, 1, false)
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 notifications for user 1, got %d", len(all))
	}

	if err := service.MarkRead(ctx, all[0].ID, 1); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}

	unread, err := service.ListNotifications(ctx, 1, true)
	if err != nil {
		t.Fatalf("ListNotifications unread: %v", err)
	}
	if len(unread) != 1 {
		t.Fatalf("expected 1 unread notification, got %d", len(unread))
	}

	// A user cannot mark someone else's notification read
	if err := service.MarkRead(ctx, all[1].ID, 2); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected ErrResourceNotFound marking another user's notification, got %v", err)
	}
}
