package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	notification "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/domain"
	repository "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/persistence/repository/port"
)

type PgNotificationRepository struct {
	pool *pgxpool.Pool
}

func NewPgNotificationRepository(pool *pgxpool.Pool) *PgNotificationRepository {
	return &PgNotificationRepository{pool: pool}
}

var _ repository.NotificationRepository = (*PgNotificationRepository)(nil)

func (r *PgNotificationRepository) Create(ctx context.Context, n notification.Notification) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgNotificationRepository: nil pool")
	}
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO social.notification (recipient_id, sender_id, category, related_entity, message, is_read, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)
		RETURNING id::text
	`, n.RecipientID, n.SenderID, string(n.Category), n.RelatedEntity, n.Message, n.IsRead, n.CreatedAt).Scan(&id)
	return id, err
}

func (r *PgNotificationRepository) ListForUser(ctx context.Context, recipientID string) ([]notification.Notification, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgNotificationRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, recipient_id, sender_id, category, COALESCE(related_entity, ''), message, is_read, created_at
		FROM social.notification
		WHERE recipient_id = $1
		ORDER BY created_at DESC, id DESC
	`, recipientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]notification.Notification, 0)
	for rows.Next() {
		var n notification.Notification
		var category string
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.SenderID, &category, &n.RelatedEntity, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Category = notification.Category(category)
		items = append(items, n)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return items, nil
}

func (r *PgNotificationRepository) MarkRead(ctx context.Context, recipientID, notificationID string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgNotificationRepository: nil pool")
	}
	// Matching an already-read row still counts as affected, which gives the
	// idempotent no-op success the contract requires.
	ct, err := r.pool.Exec(ctx, `
		UPDATE social.notification
		SET is_read = TRUE
		WHERE id = $1::uuid AND recipient_id = $2
	`, notificationID, recipientID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PgNotificationRepository) CountUnread(ctx context.Context, recipientID string, category notification.Category) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgNotificationRepository: nil pool")
	}
	var count int64
	var err error
	if category == "" {
		err = r.pool.QueryRow(ctx, `
			SELECT COUNT(*) FROM social.notification
			WHERE recipient_id = $1 AND is_read = FALSE
		`, recipientID).Scan(&count)
	} else {
		err = r.pool.QueryRow(ctx, `
			SELECT COUNT(*) FROM social.notification
			WHERE recipient_id = $1 AND is_read = FALSE AND category = $2
		`, recipientID, string(category)).Scan(&count)
	}
	return count, err
}

// MarkConversationRead transitions only rows still unread at update time,
// so two racing acknowledgements cannot double-count or leave a partial
// subset unread.
func (r *PgNotificationRepository) MarkConversationRead(ctx context.Context, recipientID, senderID string) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgNotificationRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE social.notification
		SET is_read = TRUE
		WHERE recipient_id = $1 AND sender_id = $2 AND category = 'message' AND is_read = FALSE
	`, recipientID, senderID)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}
