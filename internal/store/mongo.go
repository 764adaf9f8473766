package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const emissionsCollection = "emissions"

// MongoStore persists emissions in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(emissionsCollection),
	}, nil
}

// Record inserts an emission document.
func (s *MongoStore) Record(ctx context.Context, e Emission) error {
	if _, err := s.coll.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("insert emission: %w", err)
	}
	return nil
}

// Recent returns up to limit emissions, newest first.
func (s *MongoStore) Recent(ctx context.Context, limit int) ([]Emission, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("query emissions: %w", err)
	}
	defer cur.Close(ctx)

	var out []Emission
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode emissions: %w", err)
	}
	return out, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
