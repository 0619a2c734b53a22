package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const defaultMongoDatabase = "merosanjal"

// ConnectMongo creates a MongoDB client for the given URI and verifies
// connectivity with a ping.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(strings.TrimSpace(uri)))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}
	return client, nil
}

// NewMongoFromEnv reads MONGO_URL (and optional MONGO_DB) and returns the
// client together with the selected database handle.
func NewMongoFromEnv(ctx context.Context) (*mongo.Client, *mongo.Database, error) {
	uri := strings.TrimSpace(os.Getenv("MONGO_URL"))
	if uri == "" {
		return nil, nil, errors.New("mongo: MONGO_URL environment variable is not set")
	}
	client, err := ConnectMongo(ctx, uri)
	if err != nil {
		return nil, nil, err
	}
	name := strings.TrimSpace(os.Getenv("MONGO_DB"))
	if name == "" {
		name = defaultMongoDatabase
	}
	return client, client.Database(name), nil
}
