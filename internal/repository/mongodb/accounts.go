package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/livestock/internal/domain/models"
	"github.com/mamadbah2/livestock/internal/repository"
)

// GetProfile loads the account's profile.
func (r *MongoDBRepository) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	var p models.Profile
	err := r.findOne(ctx, profilesCollection, bson.M{"_id": userID}, &p)
	return p, err
}

// UpsertProfile creates or replaces the account's profile.
func (r *MongoDBRepository) UpsertProfile(ctx context.Context, p models.Profile) error {
	return r.upsert(ctx, profilesCollection, p.UserID, p)
}

// ListDailySummaryProfiles returns every profile opted into the email digest.
func (r *MongoDBRepository) ListDailySummaryProfiles(ctx context.Context) ([]models.Profile, error) {
	filter := bson.M{
		"notify_daily_summary": true,
		"email_notifications":  true,
		"email":                bson.M{"$nin": bson.A{nil, ""}},
	}

	out := make([]models.Profile, 0)
	if err := r.findAll(ctx, profilesCollection, filter, bson.D{{Key: "_id", Value: 1}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSettings loads the account's settings, or repository.ErrNotFound when unset.
func (r *MongoDBRepository) GetSettings(ctx context.Context, userID string) (models.Settings, error) {
	var s models.Settings
	err := r.findOne(ctx, settingsCollection, bson.M{"_id": userID}, &s)
	return s, err
}

// UpsertSettings creates or replaces the account's settings.
func (r *MongoDBRepository) UpsertSettings(ctx context.Context, s models.Settings) error {
	return r.upsert(ctx, settingsCollection, s.UserID, s)
}

// CreateNotificationLog appends a delivery attempt to the audit trail.
func (r *MongoDBRepository) CreateNotificationLog(ctx context.Context, l models.NotificationLog) error {
	return r.insert(ctx, notificationsCollection, l)
}

// UpdateNotificationStatus records a provider receipt against the matching log
// entry. Receipts that would move the status backwards are ignored.
func (r *MongoDBRepository) UpdateNotificationStatus(ctx context.Context, providerMessageID string, status models.DeliveryStatus, errMsg string) error {
	set := bson.M{"status": status, "updated_at": time.Now().UTC()}
	if errMsg != "" {
		set["error"] = errMsg
	}

	coll := r.db.Collection(notificationsCollection)
	res, err := coll.UpdateOne(ctx,
		bson.M{"provider_message_id": providerMessageID, "status": bson.M{"$in": models.StatusesBefore(status)}},
		bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update notification status: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := coll.CountDocuments(ctx, bson.M{"provider_message_id": providerMessageID})
	if err != nil {
		return fmt.Errorf("count notifications: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListNotificationLogs returns the account's latest delivery attempts.
func (r *MongoDBRepository) ListNotificationLogs(ctx context.Context, userID string, limit int) ([]models.NotificationLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.db.Collection(notificationsCollection).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", notificationsCollection, err)
	}

	out := make([]models.NotificationLog, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", notificationsCollection, err)
	}
	return out, nil
}
