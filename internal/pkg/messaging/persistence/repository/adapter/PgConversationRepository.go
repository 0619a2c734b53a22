package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	messaging "github.com/adityaspaudel/MeroSanjal/internal/pkg/messaging/domain"
	repository "github.com/adityaspaudel/MeroSanjal/internal/pkg/messaging/persistence/repository/port"
)

type PgConversationRepository struct {
	pool *pgxpool.Pool
}

func NewPgConversationRepository(pool *pgxpool.Pool) *PgConversationRepository {
	return &PgConversationRepository{pool: pool}
}

var _ repository.ConversationRepository = (*PgConversationRepository)(nil)

// FindOrCreate upserts on the canonical pair in a single round trip. The
// no-op DO UPDATE makes the statement return the existing row when the
// pair already has a conversation, which keeps concurrent callers on the
// same record.
func (r *PgConversationRepository) FindOrCreate(ctx context.Context, userA, userB string) (*messaging.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgConversationRepository: nil pool")
	}
	a, b := messaging.CanonicalPair(userA, userB)

	var conv messaging.Conversation
	err := r.pool.QueryRow(ctx, `
		INSERT INTO chat.conversation (participant_a, participant_b)
		VALUES ($1, $2)
		ON CONFLICT (participant_a, participant_b)
		DO UPDATE SET participant_a = EXCLUDED.participant_a
		RETURNING id::text, participant_a, participant_b, created_at
	`, a, b).Scan(&conv.ID, &conv.ParticipantA, &conv.ParticipantB, &conv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *PgConversationRepository) AppendMessage(ctx context.Context, m messaging.Message) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgConversationRepository: nil pool")
	}
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO chat.message (conversation_id, sender_id, body, created_at)
		VALUES ($1::uuid, $2, $3, $4)
		RETURNING id::text
	`, m.ConversationID, m.SenderID, m.Text, m.CreatedAt).Scan(&id)
	return id, err
}

func (r *PgConversationRepository) ListMessages(ctx context.Context, userA, userB string) ([]messaging.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgConversationRepository: nil pool")
	}
	a, b := messaging.CanonicalPair(userA, userB)

	rows, err := r.pool.Query(ctx, `
		SELECT m.id::text, m.conversation_id::text, m.sender_id, m.body, m.created_at
		FROM chat.message m
		JOIN chat.conversation c ON c.id = m.conversation_id
		WHERE c.participant_a = $1 AND c.participant_b = $2
		ORDER BY m.created_at ASC, m.id ASC
	`, a, b)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := make([]messaging.Message, 0)
	for rows.Next() {
		var m messaging.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Text, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return msgs, nil
}
