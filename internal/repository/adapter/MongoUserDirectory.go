package adapter

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	repository "github.com/adityaspaudel/MeroSanjal/internal/repository/port"
)

type MongoUserDirectory struct {
	coll *mongo.Collection
}

func NewMongoUserDirectory(db *mongo.Database) *MongoUserDirectory {
	return &MongoUserDirectory{coll: db.Collection("users")}
}

var _ repository.UserDirectory = (*MongoUserDirectory)(nil)

func (r *MongoUserDirectory) FindUsername(ctx context.Context, userID string) (string, error) {
	if r == nil || r.coll == nil {
		return "", errors.New("MongoUserDirectory: nil collection")
	}
	var doc struct {
		Username string `bson:"username"`
	}
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: userID}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", repository.ErrUserNotFound
	}
	if err != nil {
		return "", err
	}
	return doc.Username, nil
}
