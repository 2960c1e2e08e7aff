package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestock/internal/domain/calendar"
	"github.com/mamadbah2/livestock/internal/repository"
)

const (
	animalsCollection       = "animals"
	vaccinationsCollection  = "vaccinations"
	inseminationsCollection = "inseminations"
	remindersCollection     = "pregnancy_reminders"
	transactionsCollection  = "transactions"
	milkCollection          = "milk_production"
	healthCollection        = "health_records"
	profilesCollection      = "profiles"
	settingsCollection      = "settings"
	notificationsCollection = "notification_logs"
)

// MongoDBRepository stores every farm entity in its own collection. All
// queries are scoped by the account's user_id.
type MongoDBRepository struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// NewMongoDBRepository connects, verifies the connection and ensures indexes.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string, logger *zap.Logger) (*MongoDBRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	r := &MongoDBRepository{
		client: client,
		db:     client.Database(dbName),
		logger: logger,
	}

	if err := r.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *MongoDBRepository) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string][]mongo.IndexModel{
		animalsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "ear_tag", Value: 1}}, Options: unique},
		},
		milkCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "animal_id", Value: 1}, {Key: "date", Value: 1}}, Options: unique},
		},
		vaccinationsCollection:  {{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "next_date", Value: 1}}}},
		inseminationsCollection: {{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_pregnant", Value: 1}}}},
		remindersCollection:     {{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "reminder_date", Value: 1}}}},
		transactionsCollection:  {{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}}}},
		healthCollection:        {{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "animal_id", Value: 1}}}},
		notificationsCollection: {
			{Keys: bson.D{{Key: "provider_message_id", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
	}

	for coll, idx := range indexes {
		if _, err := r.db.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}

	r.logger.Debug("mongodb indexes ensured")
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoDBRepository) insert(ctx context.Context, coll string, doc any) error {
	if _, err := r.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert into %s: %w", coll, err)
	}
	return nil
}

func (r *MongoDBRepository) replace(ctx context.Context, coll, userID, id string, doc any) error {
	res, err := r.db.Collection(coll).ReplaceOne(ctx, bson.M{"_id": id, "user_id": userID}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("replace in %s: %w", coll, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoDBRepository) upsert(ctx context.Context, coll, id string, doc any) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.db.Collection(coll).ReplaceOne(ctx, bson.M{"_id": id}, doc, opts); err != nil {
		return fmt.Errorf("upsert into %s: %w", coll, err)
	}
	return nil
}

func (r *MongoDBRepository) findOne(ctx context.Context, coll string, filter bson.M, out any) error {
	err := r.db.Collection(coll).FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("find in %s: %w", coll, err)
	}
	return nil
}

func (r *MongoDBRepository) findAll(ctx context.Context, coll string, filter bson.M, sort bson.D, out any) error {
	opts := options.Find()
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	cur, err := r.db.Collection(coll).Find(ctx, filter, opts)
	if err != nil {
		return fmt.Errorf("query %s: %w", coll, err)
	}
	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s: %w", coll, err)
	}
	return nil
}

func dateRangeFilter(filter bson.M, rng calendar.Range) bson.M {
	bounds := bson.M{}
	if !rng.From.IsZero() {
		bounds["$gte"] = calendar.Day(rng.From)
	}
	if !rng.To.IsZero() {
		bounds["$lte"] = calendar.Day(rng.To)
	}
	if len(bounds) > 0 {
		filter["date"] = bounds
	}
	return filter
}
