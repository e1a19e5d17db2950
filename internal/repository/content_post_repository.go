package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/velora-ai/companion/internal/models"
)

type ContentPostRepository interface {
	Create(ctx context.Context, tx *sql.Tx, post *models.ContentPost) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.ContentPost, error)
	List(ctx context.Context, limit int) ([]*models.ContentPost, error)
	ListDue(ctx context.Context, now time.Time) ([]*models.ContentPost, error)
	CountScheduledInRange(ctx context.Context, contentType string, from, to time.Time) (int, error)
	ClaimForPublishing(ctx context.Context, id int64) (bool, error)
	MarkPublished(ctx context.Context, id int64, publishedAt time.Time) error
	MarkFailed(ctx context.Context, id int64, errorMessage string) error
	UpdateSchedule(ctx context.Context, id int64, scheduledFor time.Time) error
	Remove(ctx context.Context, id int64) error
}

type contentPostRepository struct {
	db *sql.DB
}

func NewContentPostRepository(db *sql.DB) ContentPostRepository {
	return &contentPostRepository{db: db}
}

const postColumns = `id, title, caption, hashtags, image_url, image_prompt, media_path,
	content_type, platforms, status, scheduled_for, published_at, error_message, created_at`

func scanPost(row interface{ Scan(...any) error }) (*models.ContentPost, error) {
	var p models.ContentPost
	err := row.Scan(&p.ID, &p.Title, &p.Caption, &p.Hashtags, &p.ImageURL, &p.ImagePrompt,
		&p.MediaPath, &p.ContentType, &p.Platforms, &p.Status, &p.ScheduledFor,
		&p.PublishedAt, &p.ErrorMessage, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *contentPostRepository) Create(ctx context.Context, tx *sql.Tx, post *models.ContentPost) (int64, error) {
	query := `
		INSERT INTO content_posts (title, caption, hashtags, image_url, image_prompt,
			media_path, content_type, platforms, status, scheduled_for)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	args := []any{post.Title, post.Caption, post.Hashtags, post.ImageURL, post.ImagePrompt,
		post.MediaPath, post.ContentType, post.Platforms, post.Status, post.ScheduledFor}

	var id int64
	var err error
	if tx != nil {
		err = tx.QueryRowContext(ctx, query, args...).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *contentPostRepository) GetByID(ctx context.Context, id int64) (*models.ContentPost, error) {
	query := `SELECT ` + postColumns + ` FROM content_posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

func (r *contentPostRepository) List(ctx context.Context, limit int) ([]*models.ContentPost, error) {
	query := `SELECT ` + postColumns + ` FROM content_posts ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.ContentPost
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *contentPostRepository) ListDue(ctx context.Context, now time.Time) ([]*models.ContentPost, error) {
	query := `SELECT ` + postColumns + ` FROM content_posts
		WHERE status = $1 AND scheduled_for <= $2
		ORDER BY scheduled_for`

	rows, err := r.db.QueryContext(ctx, query, models.PostStatusScheduled, now)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.ContentPost
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *contentPostRepository) CountScheduledInRange(ctx context.Context, contentType string, from, to time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM content_posts
		WHERE status = $1 AND content_type = $2 AND scheduled_for >= $3 AND scheduled_for < $4`

	var count int
	err := r.db.QueryRowContext(ctx, query, models.PostStatusScheduled, contentType, from, to).Scan(&count)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}

// ClaimForPublishing flips a post from scheduled to publishing. It reports
// false when another runner already claimed the post, so a post is never
// published twice.
func (r *contentPostRepository) ClaimForPublishing(ctx context.Context, id int64) (bool, error) {
	query := `UPDATE content_posts SET status = $1 WHERE id = $2 AND status = $3`

	res, err := r.db.ExecContext(ctx, query, models.PostStatusPublishing, id, models.PostStatusScheduled)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *contentPostRepository) MarkPublished(ctx context.Context, id int64, publishedAt time.Time) error {
	query := `UPDATE content_posts SET status = $1, published_at = $2, error_message = NULL WHERE id = $3`

	_, err := r.db.ExecContext(ctx, query, models.PostStatusPublished, publishedAt, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *contentPostRepository) MarkFailed(ctx context.Context, id int64, errorMessage string) error {
	query := `UPDATE content_posts SET status = $1, error_message = $2 WHERE id = $3`

	_, err := r.db.ExecContext(ctx, query, models.PostStatusFailed, errorMessage, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *contentPostRepository) UpdateSchedule(ctx context.Context, id int64, scheduledFor time.Time) error {
	query := `UPDATE content_posts SET status = $1, scheduled_for = $2, published_at = NULL, error_message = NULL
		WHERE id = $3`

	_, err := r.db.ExecContext(ctx, query, models.PostStatusScheduled, scheduledFor, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *contentPostRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM content_posts WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
