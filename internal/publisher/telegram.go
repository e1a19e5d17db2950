package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	config "github.com/velora-ai/companion/configs"
	"github.com/velora-ai/companion/internal/models"
)

// TelegramPublisher sends posts to the configured channel through the Bot
// API. Images go out as photos, reels as videos.
type TelegramPublisher struct {
	cfg    config.Telegram
	client *http.Client
}

func NewTelegramPublisher(cfg config.Telegram, client *http.Client) *TelegramPublisher {
	if client == nil {
		client = http.DefaultClient
	}
	return &TelegramPublisher{cfg: cfg, client: client}
}

func (p *TelegramPublisher) Name() string { return "telegram" }

func (p *TelegramPublisher) Publish(ctx context.Context, post *models.ContentPost) (string, error) {
	if p.cfg.BotToken == "" || p.cfg.ChannelID == "" {
		return "", fmt.Errorf("telegram credentials are not configured")
	}

	caption := post.Caption
	if post.Hashtags != "" {
		caption = caption + "\n\n" + post.Hashtags
	}

	method := "sendPhoto"
	mediaField := "photo"
	if post.ContentType == models.ContentTypeReel {
		method = "sendVideo"
		mediaField = "video"
	}

	payload := map[string]any{
		"chat_id":  p.cfg.ChannelID,
		mediaField: post.MediaURL(),
		"caption":  caption,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/%s", p.cfg.BotToken, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
		Result      struct {
			MessageID int64 `json:"message_id"`
		} `json:"result"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", err
	}
	if !result.OK {
		return "", fmt.Errorf("telegram API error: %s", result.Description)
	}

	return fmt.Sprintf("%d", result.Result.MessageID), nil
}
