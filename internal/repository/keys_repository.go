package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/velora-ai/companion/internal/models"
)

type APIKeyRepository interface {
	Create(ctx context.Context, key *models.APIKey) (int64, error)
	GetByKey(ctx context.Context, apiKey string) (*models.APIKey, bool, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.APIKey, error)
	Remove(ctx context.Context, id, userID int64) error
}

type apiKeyRepository struct {
	db *sql.DB
}

func NewAPIKeyRepository(db *sql.DB) APIKeyRepository {
	return &apiKeyRepository{db: db}
}

func (r *apiKeyRepository) Create(ctx context.Context, key *models.APIKey) (int64, error) {
	query := `INSERT INTO api_keys (user_id, api_key) VALUES ($1, $2) RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query, key.UserID, key.APIKey).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *apiKeyRepository) GetByKey(ctx context.Context, apiKey string) (*models.APIKey, bool, error) {
	query := `SELECT id, user_id, api_key, created_at FROM api_keys WHERE api_key = $1`

	var k models.APIKey
	err := r.db.QueryRowContext(ctx, query, apiKey).Scan(&k.ID, &k.UserID, &k.APIKey, &k.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	return &k, true, nil
}

func (r *apiKeyRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.APIKey, error) {
	query := `SELECT id, user_id, api_key, created_at FROM api_keys WHERE user_id = $1`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var keys []*models.APIKey
	for rows.Next() {
		var k models.APIKey
		if err := rows.Scan(&k.ID, &k.UserID, &k.APIKey, &k.CreatedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		keys = append(keys, &k)
	}
	return keys, rows.Err()
}

func (r *apiKeyRepository) Remove(ctx context.Context, id, userID int64) error {
	query := `DELETE FROM api_keys WHERE id = $1 AND user_id = $2`

	_, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
