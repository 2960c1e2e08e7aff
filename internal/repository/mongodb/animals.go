package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mamadbah2/livestock/internal/domain/models"
)

// CreateAnimal inserts an animal. A second animal with the same ear tag in the
// same account is rejected with repository.ErrDuplicate.
func (r *MongoDBRepository) CreateAnimal(ctx context.Context, a models.Animal) error {
	return r.insert(ctx, animalsCollection, a)
}

// UpdateAnimal replaces the stored animal.
func (r *MongoDBRepository) UpdateAnimal(ctx context.Context, a models.Animal) error {
	return r.replace(ctx, animalsCollection, a.UserID, a.ID, a)
}

// GetAnimal loads one animal of the account.
func (r *MongoDBRepository) GetAnimal(ctx context.Context, userID, id string) (models.Animal, error) {
	var a models.Animal
	err := r.findOne(ctx, animalsCollection, bson.M{"_id": id, "user_id": userID}, &a)
	return a, err
}

// ListAnimals lists the account's animals ordered by ear tag.
func (r *MongoDBRepository) ListAnimals(ctx context.Context, userID string, f models.AnimalFilter) ([]models.Animal, error) {
	filter := bson.M{"user_id": userID}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Species != "" {
		filter["species"] = f.Species
	}

	out := make([]models.Animal, 0)
	if err := r.findAll(ctx, animalsCollection, filter, bson.D{{Key: "ear_tag", Value: 1}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
