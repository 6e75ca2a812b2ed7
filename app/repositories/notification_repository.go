package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/campuskart/app/models"
	"github.com/shashiranjanraj/campuskart/pkg/database"
)

// NotificationRepository handles the notifications collection. Every query
// that touches a single notification filters by recipient as well as ID, so
// another user's notification is indistinguishable from a missing one.
type NotificationRepository struct {
	col *mongo.Collection
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{col: database.Collection("notifications")}
}

// Create appends a notification and fills in its ID.
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	n.CreatedAt = time.Now()

	res, err := r.col.InsertOne(ctx, n)
	if err != nil {
		return err
	}
	n.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// ListByRecipient returns the recipient's notifications, newest first.
func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID primitive.ObjectID, page, limit int64) ([]models.Notification, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"recipientId": recipientID},
		findPage(page, limit, bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}

	var notifications []models.Notification
	if err := cur.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// CountUnread returns how many of the recipient's notifications are unread.
func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"recipientId": recipientID, "read": false})
}

// MarkRead flips one notification to read. Returns mongo.ErrNoDocuments when
// the notification does not exist or belongs to someone else.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipientID primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "recipientId": recipientID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkAllRead flips every unread notification of the recipient.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID primitive.ObjectID) error {
	_, err := r.col.UpdateMany(ctx,
		bson.M{"recipientId": recipientID, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	return err
}

// Delete removes one notification, recipient-scoped like MarkRead.
func (r *NotificationRepository) Delete(ctx context.Context, id, recipientID primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "recipientId": recipientID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// PurgeReadBefore deletes read notifications created before the cutoff.
// Returns the number removed.
func (r *NotificationRepository) PurgeReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{
		"read":      true,
		"createdAt": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
