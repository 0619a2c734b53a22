package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	notification "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/domain"
	repository "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/persistence/repository/port"
)

const notificationCollection = "notifications"

// MongoNotificationRepository stores one document per notification record.
type MongoNotificationRepository struct {
	coll *mongo.Collection
}

func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{coll: db.Collection(notificationCollection)}
}

var _ repository.NotificationRepository = (*MongoNotificationRepository)(nil)

type notificationDoc struct {
	ID            string    `bson:"_id"`
	RecipientID   string    `bson:"recipient_id"`
	SenderID      string    `bson:"sender_id"`
	Category      string    `bson:"category"`
	RelatedEntity string    `bson:"related_entity,omitempty"`
	Message       string    `bson:"message"`
	IsRead        bool      `bson:"is_read"`
	CreatedAt     time.Time `bson:"created_at"`
}

func (r *MongoNotificationRepository) Create(ctx context.Context, n notification.Notification) (string, error) {
	if r == nil || r.coll == nil {
		return "", errors.New("MongoNotificationRepository: nil collection")
	}
	doc := notificationDoc{
		ID:            uuid.NewString(),
		RecipientID:   n.RecipientID,
		SenderID:      n.SenderID,
		Category:      string(n.Category),
		RelatedEntity: n.RelatedEntity,
		Message:       n.Message,
		IsRead:        n.IsRead,
		CreatedAt:     n.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return doc.ID, nil
}

func (r *MongoNotificationRepository) ListForUser(ctx context.Context, recipientID string) ([]notification.Notification, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("MongoNotificationRepository: nil collection")
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.D{{Key: "recipient_id", Value: recipientID}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := make([]notification.Notification, 0)
	for cur.Next(ctx) {
		var doc notificationDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		items = append(items, notification.Notification{
			ID:            doc.ID,
			RecipientID:   doc.RecipientID,
			SenderID:      doc.SenderID,
			Category:      notification.Category(doc.Category),
			RelatedEntity: doc.RelatedEntity,
			Message:       doc.Message,
			IsRead:        doc.IsRead,
			CreatedAt:     doc.CreatedAt,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *MongoNotificationRepository) MarkRead(ctx context.Context, recipientID, notificationID string) error {
	if r == nil || r.coll == nil {
		return errors.New("MongoNotificationRepository: nil collection")
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: notificationID}, {Key: "recipient_id", Value: recipientID}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "is_read", Value: true}}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoNotificationRepository) CountUnread(ctx context.Context, recipientID string, category notification.Category) (int64, error) {
	if r == nil || r.coll == nil {
		return 0, errors.New("MongoNotificationRepository: nil collection")
	}
	filter := bson.D{
		{Key: "recipient_id", Value: recipientID},
		{Key: "is_read", Value: false},
	}
	if category != "" {
		filter = append(filter, bson.E{Key: "category", Value: string(category)})
	}
	return r.coll.CountDocuments(ctx, filter)
}

// MarkConversationRead is a single UpdateMany whose filter only matches
// still-unread records, keeping concurrent acknowledgements race-tolerant.
func (r *MongoNotificationRepository) MarkConversationRead(ctx context.Context, recipientID, senderID string) (int64, error) {
	if r == nil || r.coll == nil {
		return 0, errors.New("MongoNotificationRepository: nil collection")
	}
	res, err := r.coll.UpdateMany(ctx,
		bson.D{
			{Key: "recipient_id", Value: recipientID},
			{Key: "sender_id", Value: senderID},
			{Key: "category", Value: string(notification.CategoryMessage)},
			{Key: "is_read", Value: false},
		},
		bson.D{{Key: "$set", Value: bson.D{{Key: "is_read", Value: true}}}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
