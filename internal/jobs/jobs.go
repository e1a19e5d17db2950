package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/robfig/cron"

	config "github.com/velora-ai/companion/configs"
	"github.com/velora-ai/companion/internal/repository"
)

// Jobs holds the recurring maintenance tasks that run outside the content
// scheduler loop.
type Jobs struct {
	users  repository.UserRepository
	cfg    *config.Config
	client *http.Client
	logger *slog.Logger
}

func New(users repository.UserRepository, cfg *config.Config, logger *slog.Logger) *Jobs {
	return &Jobs{
		users:  users,
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// Register attaches the jobs to the cron runner.
func (j *Jobs) Register(c *cron.Cron) {
	c.AddFunc("@daily", j.ResetDailyLimits)
	c.AddFunc("@every 24h", j.RefreshInstagramToken)
}

// ResetDailyLimits restores the daily image and call allowances of paid users
// once per day.
func (j *Jobs) ResetDailyLimits() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	affected, err := j.users.ResetDailyLimits(ctx, today)
	if err != nil {
		j.logger.Error("resetting daily limits", "error", err)
		return
	}
	j.logger.Info("daily limits reset", "users", affected)
}

type tokenRefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// RefreshInstagramToken extends the long-lived Instagram token before it
// expires. The refreshed token replaces the in-memory one; operators persist
// it out of band.
func (j *Jobs) RefreshInstagramToken() {
	token := j.cfg.Instagram.AccessToken()
	if token == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	endpoint := "https://graph.instagram.com/refresh_access_token?" + url.Values{
		"grant_type":   {"ig_refresh_token"},
		"access_token": {token},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		j.logger.Error("building token refresh request", "error", err)
		return
	}

	resp, err := j.client.Do(req)
	if err != nil {
		j.logger.Error("refreshing instagram token", "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		j.logger.Error("refreshing instagram token", "error", fmt.Errorf("status %d", resp.StatusCode))
		return
	}

	var parsed tokenRefreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		j.logger.Error("decoding token refresh response", "error", err)
		return
	}

	j.cfg.Instagram.SetAccessToken(parsed.AccessToken)
	j.logger.Info("instagram token refreshed", "expires_in_days", parsed.ExpiresIn/86400)
}
