package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/velora-ai/companion/internal/models"
)

type MessageRepository interface {
	Create(ctx context.Context, m *models.Message) (int64, error)
	ListByConversation(ctx context.Context, conversationID int64, limit int) ([]*models.Message, error)
	ListRecent(ctx context.Context, conversationID int64, limit int) ([]*models.Message, error)
}

type messageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, m *models.Message) (int64, error) {
	query := `
		INSERT INTO messages (conversation_id, content, is_from_user)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, m.ConversationID, m.Content, m.IsFromUser).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *messageRepository) ListByConversation(ctx context.Context, conversationID int64, limit int) ([]*models.Message, error) {
	query := `SELECT id, conversation_id, content, is_from_user, timestamp FROM messages
		WHERE conversation_id = $1 ORDER BY timestamp LIMIT $2`

	return r.queryMessages(ctx, query, conversationID, limit)
}

// ListRecent returns the newest messages in chronological order, used to
// build LLM context.
func (r *messageRepository) ListRecent(ctx context.Context, conversationID int64, limit int) ([]*models.Message, error) {
	query := `SELECT id, conversation_id, content, is_from_user, timestamp FROM (
			SELECT id, conversation_id, content, is_from_user, timestamp FROM messages
			WHERE conversation_id = $1 ORDER BY timestamp DESC LIMIT $2
		) recent ORDER BY timestamp`

	return r.queryMessages(ctx, query, conversationID, limit)
}

func (r *messageRepository) queryMessages(ctx context.Context, query string, args ...any) ([]*models.Message, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var msgs []*models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Content, &m.IsFromUser, &m.Timestamp); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		msgs = append(msgs, &m)
	}
	return msgs, rows.Err()
}
