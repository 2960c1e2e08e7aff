package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mamadbah2/livestock/internal/domain/models"
	"github.com/mamadbah2/livestock/internal/repository"
)

// CreateInsemination inserts a breeding event.
func (r *MongoDBRepository) CreateInsemination(ctx context.Context, in models.Insemination) error {
	return r.insert(ctx, inseminationsCollection, in)
}

// CompleteInsemination replaces a breeding event only while the stored record
// is still pregnant. It reports false when no pregnant record matched.
func (r *MongoDBRepository) CompleteInsemination(ctx context.Context, in models.Insemination) (bool, error) {
	res, err := r.db.Collection(inseminationsCollection).ReplaceOne(ctx,
		bson.M{"_id": in.ID, "user_id": in.UserID, "is_pregnant": true}, in)
	if err != nil {
		return false, fmt.Errorf("complete insemination %s: %w", in.ID, err)
	}
	return res.MatchedCount > 0, nil
}

// DeleteInsemination removes a breeding event of the account.
func (r *MongoDBRepository) DeleteInsemination(ctx context.Context, userID, id string) error {
	res, err := r.db.Collection(inseminationsCollection).DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete insemination %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// GetInsemination loads one breeding event of the account.
func (r *MongoDBRepository) GetInsemination(ctx context.Context, userID, id string) (models.Insemination, error) {
	var in models.Insemination
	err := r.findOne(ctx, inseminationsCollection, bson.M{"_id": id, "user_id": userID}, &in)
	return in, err
}

// ListInseminations lists breeding events, newest first.
func (r *MongoDBRepository) ListInseminations(ctx context.Context, userID string, f models.InseminationFilter) ([]models.Insemination, error) {
	filter := bson.M{"user_id": userID}
	if f.AnimalID != "" {
		filter["animal_id"] = f.AnimalID
	}
	if f.PregnantOnly {
		filter["is_pregnant"] = true
	}

	out := make([]models.Insemination, 0)
	if err := r.findAll(ctx, inseminationsCollection, filter, bson.D{{Key: "date", Value: -1}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateReminders inserts the milestone reminders of an insemination.
func (r *MongoDBRepository) CreateReminders(ctx context.Context, reminders []models.PregnancyReminder) error {
	if len(reminders) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(reminders))
	for _, rem := range reminders {
		docs = append(docs, rem)
	}
	if _, err := r.db.Collection(remindersCollection).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert reminders: %w", err)
	}
	return nil
}

// GetReminder loads one reminder of the account.
func (r *MongoDBRepository) GetReminder(ctx context.Context, userID, id string) (models.PregnancyReminder, error) {
	var rem models.PregnancyReminder
	err := r.findOne(ctx, remindersCollection, bson.M{"_id": id, "user_id": userID}, &rem)
	return rem, err
}

// UpdateReminder replaces a reminder.
func (r *MongoDBRepository) UpdateReminder(ctx context.Context, rem models.PregnancyReminder) error {
	return r.replace(ctx, remindersCollection, rem.UserID, rem.ID, rem)
}

// ListReminders lists reminders by reminder date.
func (r *MongoDBRepository) ListReminders(ctx context.Context, userID string, pendingOnly bool) ([]models.PregnancyReminder, error) {
	filter := bson.M{"user_id": userID}
	if pendingOnly {
		filter["sent"] = false
	}

	out := make([]models.PregnancyReminder, 0)
	if err := r.findAll(ctx, remindersCollection, filter, bson.D{{Key: "reminder_date", Value: 1}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
