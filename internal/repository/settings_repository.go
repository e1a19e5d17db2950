package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/velora-ai/companion/internal/models"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*models.CompanionSettings, bool, error)
	Create(ctx context.Context, s *models.CompanionSettings) (int64, error)
	Update(ctx context.Context, s *models.CompanionSettings) error
}

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

const settingsColumns = `id, personality, content_style, response_length, flirt_level,
	post_frequency, images_per_day, reels_per_day, post_time_start, post_time_end,
	post_days, auto_schedule, allow_nsfw, openrouter_api_key, default_model,
	high_flirt_model, medium_flirt_model, nsfw_model, use_flirt_model_pick,
	tts_voice, tts_speed, sd_url, sd_model, sd_negative_prompt, sd_steps,
	sd_cfg_scale, sd_width, sd_height, subscription_fee, instagram_settings,
	telegram_settings, paypal_settings, created_at, updated_at`

// Get returns the single settings row. The found flag is false when no row
// exists yet; callers fall back to models.DefaultSettings.
func (r *settingsRepository) Get(ctx context.Context) (*models.CompanionSettings, bool, error) {
	query := `SELECT ` + settingsColumns + ` FROM companion_settings ORDER BY id LIMIT 1`

	var s models.CompanionSettings
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.ID, &s.Personality, &s.ContentStyle, &s.ResponseLength, &s.FlirtLevel,
		&s.PostFrequency, &s.ImagesPerDay, &s.ReelsPerDay, &s.PostTimeStart, &s.PostTimeEnd,
		&s.PostDays, &s.AutoSchedule, &s.AllowNSFW, &s.OpenRouterAPIKey, &s.DefaultModel,
		&s.HighFlirtModel, &s.MediumFlirtModel, &s.NSFWModel, &s.UseFlirtModelPick,
		&s.TTSVoice, &s.TTSSpeed, &s.SDURL, &s.SDModel, &s.SDNegativePrompt, &s.SDSteps,
		&s.SDCfgScale, &s.SDWidth, &s.SDHeight, &s.SubscriptionFee, &s.Instagram,
		&s.Telegram, &s.PayPal, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	return &s, true, nil
}

func (r *settingsRepository) Create(ctx context.Context, s *models.CompanionSettings) (int64, error) {
	query := `
		INSERT INTO companion_settings (personality, content_style, response_length, flirt_level,
			post_frequency, images_per_day, reels_per_day, post_time_start, post_time_end,
			post_days, auto_schedule, allow_nsfw, openrouter_api_key, default_model,
			high_flirt_model, medium_flirt_model, nsfw_model, use_flirt_model_pick,
			tts_voice, tts_speed, sd_url, sd_model, sd_negative_prompt, sd_steps,
			sd_cfg_scale, sd_width, sd_height, subscription_fee, instagram_settings,
			telegram_settings, paypal_settings)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		s.Personality, s.ContentStyle, s.ResponseLength, s.FlirtLevel,
		s.PostFrequency, s.ImagesPerDay, s.ReelsPerDay, s.PostTimeStart, s.PostTimeEnd,
		s.PostDays, s.AutoSchedule, s.AllowNSFW, s.OpenRouterAPIKey, s.DefaultModel,
		s.HighFlirtModel, s.MediumFlirtModel, s.NSFWModel, s.UseFlirtModelPick,
		s.TTSVoice, s.TTSSpeed, s.SDURL, s.SDModel, s.SDNegativePrompt, s.SDSteps,
		s.SDCfgScale, s.SDWidth, s.SDHeight, s.SubscriptionFee, s.Instagram,
		s.Telegram, s.PayPal,
	).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *settingsRepository) Update(ctx context.Context, s *models.CompanionSettings) error {
	query := `
		UPDATE companion_settings
		SET personality = $1, content_style = $2, response_length = $3, flirt_level = $4,
			post_frequency = $5, images_per_day = $6, reels_per_day = $7,
			post_time_start = $8, post_time_end = $9, post_days = $10, auto_schedule = $11,
			allow_nsfw = $12, openrouter_api_key = $13, default_model = $14,
			high_flirt_model = $15, medium_flirt_model = $16, nsfw_model = $17,
			use_flirt_model_pick = $18, tts_voice = $19, tts_speed = $20, sd_url = $21,
			sd_model = $22, sd_negative_prompt = $23, sd_steps = $24, sd_cfg_scale = $25,
			sd_width = $26, sd_height = $27, subscription_fee = $28,
			instagram_settings = $29, telegram_settings = $30, paypal_settings = $31,
			updated_at = $32
		WHERE id = $33
	`

	_, err := r.db.ExecContext(ctx, query,
		s.Personality, s.ContentStyle, s.ResponseLength, s.FlirtLevel,
		s.PostFrequency, s.ImagesPerDay, s.ReelsPerDay, s.PostTimeStart, s.PostTimeEnd,
		s.PostDays, s.AutoSchedule, s.AllowNSFW, s.OpenRouterAPIKey, s.DefaultModel,
		s.HighFlirtModel, s.MediumFlirtModel, s.NSFWModel, s.UseFlirtModelPick,
		s.TTSVoice, s.TTSSpeed, s.SDURL, s.SDModel, s.SDNegativePrompt, s.SDSteps,
		s.SDCfgScale, s.SDWidth, s.SDHeight, s.SubscriptionFee, s.Instagram,
		s.Telegram, s.PayPal, time.Now(), s.ID,
	)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}
