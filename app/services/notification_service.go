package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/campuskart/app/models"
	"github.com/shashiranjanraj/campuskart/app/repositories"
	"github.com/shashiranjanraj/campuskart/pkg/logger"
	"github.com/shashiranjanraj/campuskart/pkg/ws"
)

// NotificationStore is the slice of the notifications repository the service
// needs.
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByRecipient(ctx context.Context, recipientID primitive.ObjectID, page, limit int64) ([]models.Notification, error)
	CountUnread(ctx context.Context, recipientID primitive.ObjectID) (int64, error)
	MarkRead(ctx context.Context, id, recipientID primitive.ObjectID) error
	MarkAllRead(ctx context.Context, recipientID primitive.ObjectID) error
	Delete(ctx context.Context, id, recipientID primitive.ObjectID) error
	PurgeReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// NotificationService owns the in-app notification feed. Every read and
// write is scoped to the recipient; another user's notification looks exactly
// like a missing one.
type NotificationService struct {
	notifications NotificationStore
	push          func(userID string, payload interface{})
}

func NewNotificationService() *NotificationService {
	return &NotificationService{
		notifications: repositories.NewNotificationRepository(),
		push:          ws.Hub.SendTo,
	}
}

// Notify appends a notification and pushes it to the recipient's open
// sockets. The push is best effort; persistence is what counts.
func (s *NotificationService) Notify(ctx context.Context, recipientID primitive.ObjectID, typ, message string, orderID primitive.ObjectID) (models.Notification, error) {
	n := models.Notification{
		RecipientID: recipientID,
		Type:        typ,
		Message:     message,
		OrderID:     orderID,
	}
	if err := s.notifications.Create(ctx, &n); err != nil {
		return models.Notification{}, err
	}

	if s.push != nil {
		s.push(recipientID.Hex(), n)
	}
	return n, nil
}

// List returns the caller's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, recipientID primitive.ObjectID, page, limit int64) ([]models.Notification, error) {
	return s.notifications.ListByRecipient(ctx, recipientID, page, limit)
}

// UnreadCount returns how many notifications the caller has not read.
func (s *NotificationService) UnreadCount(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	return s.notifications.CountUnread(ctx, recipientID)
}

// MarkRead flips one of the caller's notifications to read.
func (s *NotificationService) MarkRead(ctx context.Context, recipientID primitive.ObjectID, id primitive.ObjectID) error {
	if err := s.notifications.MarkRead(ctx, id, recipientID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return E(ErrNotFound, "notification not found")
		}
		return err
	}
	return nil
}

// MarkAllRead flips every unread notification of the caller.
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID primitive.ObjectID) error {
	return s.notifications.MarkAllRead(ctx, recipientID)
}

// Delete removes one of the caller's notifications.
func (s *NotificationService) Delete(ctx context.Context, recipientID primitive.ObjectID, id primitive.ObjectID) error {
	if err := s.notifications.Delete(ctx, id, recipientID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return E(ErrNotFound, "notification not found")
		}
		return err
	}
	return nil
}

// PurgeOld deletes read notifications older than 30 days. Wired to the daily
// scheduler.
func (s *NotificationService) PurgeOld(ctx context.Context) {
	n, err := s.notifications.PurgeReadBefore(ctx, time.Now().AddDate(0, 0, -30))
	if err != nil {
		logger.Error("notifications: purge failed", "error", err)
		return
	}
	if n > 0 {
		logger.Info("notifications: purged old read notifications", "count", n)
	}
}
