package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/campuskart/app/models"
)

func TestNotifyPersistsAndPushes(t *testing.T) {
	store := newFakeNotificationStore()
	var pushed []string
	svc := &NotificationService{
		notifications: store,
		push:          func(userID string, _ interface{}) { pushed = append(pushed, userID) },
	}

	recipient := primitive.NewObjectID()
	n, err := svc.Notify(context.Background(), recipient, models.NotifyOrder, "you have an order", primitive.NewObjectID())
	require.NoError(t, err)

	assert.False(t, n.ID.IsZero())
	assert.Len(t, store.notes, 1)
	require.Len(t, pushed, 1)
	assert.Equal(t, recipient.Hex(), pushed[0])
}

func TestNotificationsScopedToRecipient(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	note := &models.Notification{RecipientID: alice, Type: models.NotifyOrder, Message: "for alice"}
	store := newFakeNotificationStore(note)
	svc := &NotificationService{notifications: store}

	// Bob cannot read, flip or delete Alice's notification; each call looks
	// like the notification does not exist.
	err := svc.MarkRead(context.Background(), bob, note.ID)
	require.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(context.Background(), bob, note.ID)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, store.notes, 1, "nothing was deleted")

	list, err := svc.List(context.Background(), bob, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, list)

	// The owner succeeds.
	require.NoError(t, svc.MarkRead(context.Background(), alice, note.ID))
	assert.True(t, store.notes[note.ID].Read)
}

func TestUnreadCountAndMarkAllRead(t *testing.T) {
	alice := primitive.NewObjectID()
	store := newFakeNotificationStore(
		&models.Notification{RecipientID: alice, Message: "one"},
		&models.Notification{RecipientID: alice, Message: "two"},
		&models.Notification{RecipientID: alice, Message: "three", Read: true},
		&models.Notification{RecipientID: primitive.NewObjectID(), Message: "someone else's"},
	)
	svc := &NotificationService{notifications: store}

	count, err := svc.UnreadCount(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, svc.MarkAllRead(context.Background(), alice))

	count, err = svc.UnreadCount(context.Background(), alice)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPurgeOldRemovesOnlyStaleReadNotes(t *testing.T) {
	alice := primitive.NewObjectID()
	old := time.Now().AddDate(0, 0, -45)

	stale := &models.Notification{RecipientID: alice, Read: true, CreatedAt: old}
	unreadOld := &models.Notification{RecipientID: alice, Read: false, CreatedAt: old}
	fresh := &models.Notification{RecipientID: alice, Read: true, CreatedAt: time.Now()}
	store := newFakeNotificationStore(stale, unreadOld, fresh)

	svc := &NotificationService{notifications: store}
	svc.PurgeOld(context.Background())

	assert.Len(t, store.notes, 2)
	_, staleLeft := store.notes[stale.ID]
	assert.False(t, staleLeft, "old read notification is purged")
	_, unreadLeft := store.notes[unreadOld.ID]
	assert.True(t, unreadLeft, "unread notifications are kept regardless of age")
}
