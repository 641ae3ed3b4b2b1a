// Package storage owns the MongoDB client lifecycle and hands out the
// repositories built on top of it. The manager is constructed once at
// startup and injected into services; nothing opens connections at import
// time.
package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shastore/shastore/internal/server/repositories/hashes"
	"github.com/shastore/shastore/internal/server/repositories/users"
)

const (
	databaseName        = "sha2_project"
	hashCollectionName  = "hash_records"
	usersCollectionName = "users"

	connectTimeout = 10 * time.Second
)

// RepositoryManager exposes the repositories and the store lifecycle.
type RepositoryManager interface {
	Hashes() hashes.Repository
	Users() users.Repository
	Bootstrap(ctx context.Context) error
	Close(ctx context.Context) error
}

type MongoRepositoryManager struct {
	client *mongo.Client
	db     *mongo.Database
	hashes hashes.Repository
	users  users.Repository
}

// NewMongoRepositoryManager connects to the MongoDB instance at uri and
// wires the hash-record and user repositories over its collections.
func NewMongoRepositoryManager(ctx context.Context, uri string) (RepositoryManager, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("db connect error: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	db := client.Database(databaseName)

	return &MongoRepositoryManager{
		client: client,
		db:     db,
		hashes: hashes.NewMongoRepository(db.Collection(hashCollectionName)),
		users:  users.NewMongoRepository(db.Collection(usersCollectionName)),
	}, nil
}

func (m *MongoRepositoryManager) Hashes() hashes.Repository {
	return m.hashes
}

func (m *MongoRepositoryManager) Users() users.Repository {
	return m.users
}

// Bootstrap creates the indexes the repositories rely on. The unique index
// on username makes duplicate registration detection authoritative at the
// store, not just a pre-insert lookup.
func (m *MongoRepositoryManager) Bootstrap(ctx context.Context) error {
	_, err := m.db.Collection(usersCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating username index: %w", err)
	}

	_, err = m.db.Collection(hashCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "timestamp", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("creating timestamp index: %w", err)
	}

	return nil
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
