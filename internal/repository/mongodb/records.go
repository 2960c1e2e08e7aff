package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mamadbah2/livestock/internal/domain/calendar"
	"github.com/mamadbah2/livestock/internal/domain/models"
)

// CreateVaccination inserts a vaccination.
func (r *MongoDBRepository) CreateVaccination(ctx context.Context, v models.Vaccination) error {
	return r.insert(ctx, vaccinationsCollection, v)
}

// UpdateVaccination replaces a vaccination.
func (r *MongoDBRepository) UpdateVaccination(ctx context.Context, v models.Vaccination) error {
	return r.replace(ctx, vaccinationsCollection, v.UserID, v.ID, v)
}

// GetVaccination loads one vaccination of the account.
func (r *MongoDBRepository) GetVaccination(ctx context.Context, userID, id string) (models.Vaccination, error) {
	var v models.Vaccination
	err := r.findOne(ctx, vaccinationsCollection, bson.M{"_id": id, "user_id": userID}, &v)
	return v, err
}

// ListVaccinations lists the account's vaccinations, optionally for one animal.
func (r *MongoDBRepository) ListVaccinations(ctx context.Context, userID, animalID string) ([]models.Vaccination, error) {
	filter := bson.M{"user_id": userID}
	if animalID != "" {
		filter["animal_id"] = animalID
	}

	out := make([]models.Vaccination, 0)
	if err := r.findAll(ctx, vaccinationsCollection, filter, bson.D{{Key: "date", Value: -1}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTransaction inserts an income or expense entry.
func (r *MongoDBRepository) CreateTransaction(ctx context.Context, t models.Transaction) error {
	return r.insert(ctx, transactionsCollection, t)
}

// ListTransactions lists transactions inside the date range, newest first.
func (r *MongoDBRepository) ListTransactions(ctx context.Context, userID string, rng calendar.Range) ([]models.Transaction, error) {
	filter := dateRangeFilter(bson.M{"user_id": userID}, rng)

	out := make([]models.Transaction, 0)
	if err := r.findAll(ctx, transactionsCollection, filter, bson.D{{Key: "date", Value: -1}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateMilkRecord inserts a milk record. The unique (user_id, animal_id, date)
// index rejects a second record for the same day with repository.ErrDuplicate.
func (r *MongoDBRepository) CreateMilkRecord(ctx context.Context, m models.MilkProduction) error {
	return r.insert(ctx, milkCollection, m)
}

// ListMilkRecords lists milk records inside the date range, newest first.
func (r *MongoDBRepository) ListMilkRecords(ctx context.Context, userID string, rng calendar.Range) ([]models.MilkProduction, error) {
	filter := dateRangeFilter(bson.M{"user_id": userID}, rng)

	out := make([]models.MilkProduction, 0)
	if err := r.findAll(ctx, milkCollection, filter, bson.D{{Key: "date", Value: -1}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateHealthRecord inserts a health record.
func (r *MongoDBRepository) CreateHealthRecord(ctx context.Context, h models.HealthRecord) error {
	return r.insert(ctx, healthCollection, h)
}

// ListHealthRecords lists health records, optionally for one animal.
func (r *MongoDBRepository) ListHealthRecords(ctx context.Context, userID, animalID string) ([]models.HealthRecord, error) {
	filter := bson.M{"user_id": userID}
	if animalID != "" {
		filter["animal_id"] = animalID
	}

	out := make([]models.HealthRecord, 0)
	if err := r.findAll(ctx, healthCollection, filter, bson.D{{Key: "date", Value: -1}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
