package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	messaging "github.com/adityaspaudel/MeroSanjal/internal/pkg/messaging/domain"
	repository "github.com/adityaspaudel/MeroSanjal/internal/pkg/messaging/persistence/repository/port"
)

const conversationCollection = "conversations"

// MongoConversationRepository stores each conversation as a single document
// with an embedded, append-only message array, keyed by the canonical
// participant pair.
type MongoConversationRepository struct {
	coll *mongo.Collection
}

func NewMongoConversationRepository(db *mongo.Database) *MongoConversationRepository {
	r := &MongoConversationRepository{coll: db.Collection(conversationCollection)}

	// Without a unique index the upsert's query phase can race: two first
	// writers for one pair both see no match and both insert. The index is
	// the single-conversation-per-pair guarantee, like the unique pair
	// constraint on the relational side.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.coll.Indexes().CreateOne(ctx, conversationPairIndex); err != nil {
		log.Warn().Err(err).Str("collection", conversationCollection).Msg("ensure unique participants index failed")
	}
	return r
}

var conversationPairIndex = mongo.IndexModel{
	Keys:    bson.D{{Key: "participants", Value: 1}},
	Options: options.Index().SetUnique(true),
}

var _ repository.ConversationRepository = (*MongoConversationRepository)(nil)

type conversationDoc struct {
	ID           string       `bson:"_id"`
	Participants []string     `bson:"participants"`
	CreatedAt    time.Time    `bson:"created_at"`
	Messages     []messageDoc `bson:"messages"`
}

type messageDoc struct {
	ID        string    `bson:"id"`
	SenderID  string    `bson:"sender_id"`
	Text      string    `bson:"text"`
	CreatedAt time.Time `bson:"created_at"`
}

// FindOrCreate upserts on the canonical participant array. $setOnInsert
// keeps concurrent callers for the same pair on one document.
func (r *MongoConversationRepository) FindOrCreate(ctx context.Context, userA, userB string) (*messaging.Conversation, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("MongoConversationRepository: nil collection")
	}
	a, b := messaging.CanonicalPair(userA, userB)

	filter := bson.D{{Key: "participants", Value: bson.A{a, b}}}
	update := bson.D{{Key: "$setOnInsert", Value: bson.D{
		{Key: "_id", Value: uuid.NewString()},
		{Key: "participants", Value: bson.A{a, b}},
		{Key: "created_at", Value: time.Now().UTC()},
		{Key: "messages", Value: bson.A{}},
	}}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc conversationDoc
	for attempt := 0; ; attempt++ {
		err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
		if err == nil {
			break
		}
		// A racing first-send won the insert; re-running the upsert now
		// matches the winner's document instead of inserting.
		if isInsertRace(err) && attempt == 0 {
			continue
		}
		return nil, err
	}
	return &messaging.Conversation{
		ID:           doc.ID,
		ParticipantA: a,
		ParticipantB: b,
		CreatedAt:    doc.CreatedAt,
	}, nil
}

// isInsertRace tells whether the upsert lost an insert race against the
// unique participants index and should be retried as a plain match.
func isInsertRace(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

func (r *MongoConversationRepository) AppendMessage(ctx context.Context, m messaging.Message) (string, error) {
	if r == nil || r.coll == nil {
		return "", errors.New("MongoConversationRepository: nil collection")
	}
	id := uuid.NewString()
	doc := messageDoc{
		ID:        id,
		SenderID:  m.SenderID,
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: m.ConversationID}},
		bson.D{{Key: "$push", Value: bson.D{{Key: "messages", Value: doc}}}},
	)
	if err != nil {
		return "", err
	}
	if res.MatchedCount == 0 {
		return "", mongo.ErrNoDocuments
	}
	return id, nil
}

func (r *MongoConversationRepository) ListMessages(ctx context.Context, userA, userB string) ([]messaging.Message, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("MongoConversationRepository: nil collection")
	}
	a, b := messaging.CanonicalPair(userA, userB)

	var doc conversationDoc
	err := r.coll.FindOne(ctx, bson.D{{Key: "participants", Value: bson.A{a, b}}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// "no conversation yet" is a valid, non-exceptional state
		return []messaging.Message{}, nil
	}
	if err != nil {
		return nil, err
	}

	msgs := make([]messaging.Message, 0, len(doc.Messages))
	for _, m := range doc.Messages {
		msgs = append(msgs, messaging.Message{
			ID:             m.ID,
			ConversationID: doc.ID,
			SenderID:       m.SenderID,
			Text:           m.Text,
			CreatedAt:      m.CreatedAt,
		})
	}
	return msgs, nil
}
