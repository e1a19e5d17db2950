package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/velora-ai/companion/internal/models"
)

type ConversationRepository interface {
	Create(ctx context.Context, c *models.Conversation) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Conversation, error)
	GetByUserAndSource(ctx context.Context, userID int64, source string) (*models.Conversation, bool, error)
	GetByExternalID(ctx context.Context, externalID, source string) (*models.Conversation, bool, error)
	TouchInteraction(ctx context.Context, id int64, at time.Time, language string) error
}

type conversationRepository struct {
	db *sql.DB
}

func NewConversationRepository(db *sql.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

const conversationColumns = `id, user_id, source, external_id, detected_language, created_at, last_interaction`

func scanConversation(row interface{ Scan(...any) error }) (*models.Conversation, error) {
	var c models.Conversation
	err := row.Scan(&c.ID, &c.UserID, &c.Source, &c.ExternalID, &c.DetectedLanguage,
		&c.CreatedAt, &c.LastInteraction)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *conversationRepository) Create(ctx context.Context, c *models.Conversation) (int64, error) {
	query := `
		INSERT INTO conversations (user_id, source, external_id, detected_language)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, c.UserID, c.Source, c.ExternalID, c.DetectedLanguage).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *conversationRepository) GetByID(ctx context.Context, id int64) (*models.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE id = $1`

	c, err := scanConversation(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return c, nil
}

func (r *conversationRepository) GetByUserAndSource(ctx context.Context, userID int64, source string) (*models.Conversation, bool, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE user_id = $1 AND source = $2`

	c, err := scanConversation(r.db.QueryRowContext(ctx, query, userID, source))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return c, true, nil
}

func (r *conversationRepository) GetByExternalID(ctx context.Context, externalID, source string) (*models.Conversation, bool, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE external_id = $1 AND source = $2`

	c, err := scanConversation(r.db.QueryRowContext(ctx, query, externalID, source))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return c, true, nil
}

func (r *conversationRepository) TouchInteraction(ctx context.Context, id int64, at time.Time, language string) error {
	query := `UPDATE conversations SET last_interaction = $1, detected_language = $2 WHERE id = $3`

	_, err := r.db.ExecContext(ctx, query, at, language, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
