package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/velora-ai/companion/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, bool, error)
	SetPaid(ctx context.Context, id int64, imageLimit, callMinutes int) error
	ResetDailyLimits(ctx context.Context, resetDate time.Time) (int64, error)
	ConsumeImageQuota(ctx context.Context, id int64) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, email, password_hash, is_admin, is_paid,
	daily_image_limit, daily_call_minutes, last_reset_date, language, created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.IsPaid,
		&u.DailyImageLimit, &u.DailyCallMinutes, &u.LastResetDate, &u.Language, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	query := `
		INSERT INTO users (username, email, password_hash, language)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, user.Username, user.Email, user.PasswordHash, user.Language).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, bool, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return user, true, nil
}

func (r *userRepository) SetPaid(ctx context.Context, id int64, imageLimit, callMinutes int) error {
	query := `UPDATE users SET is_paid = TRUE, daily_image_limit = $1, daily_call_minutes = $2 WHERE id = $3`

	_, err := r.db.ExecContext(ctx, query, imageLimit, callMinutes, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// ResetDailyLimits restores paid-tier daily allowances for every paid user
// whose counters have not been reset today.
func (r *userRepository) ResetDailyLimits(ctx context.Context, resetDate time.Time) (int64, error) {
	query := `
		UPDATE users
		SET daily_image_limit = $1, daily_call_minutes = $2, last_reset_date = $3
		WHERE is_paid = TRUE AND last_reset_date < $3
	`

	res, err := r.db.ExecContext(ctx, query, models.PaidDailyImageLimit, models.PaidDailyCallMinutes, resetDate)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return res.RowsAffected()
}

func (r *userRepository) ConsumeImageQuota(ctx context.Context, id int64) error {
	query := `UPDATE users SET daily_image_limit = daily_image_limit - 1
		WHERE id = $1 AND daily_image_limit > 0`

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
