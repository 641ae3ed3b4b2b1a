package hashes

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shastore/shastore/internal/server/models"
)

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

// Insert stores one hash record. Records are append-only: nothing in the
// service ever updates or deletes them.
func (r *MongoRepository) Insert(ctx context.Context, record *models.HashRecord) error {
	res, err := r.coll.InsertOne(ctx, record)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		record.ID = id
	}

	return nil
}

// ListRecent returns up to limit records ordered by timestamp descending.
// A non-positive limit falls back to DefaultListLimit.
func (r *MongoRepository) ListRecent(ctx context.Context, limit int64) ([]models.HashRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]models.HashRecord, 0, limit)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return records, nil
}
