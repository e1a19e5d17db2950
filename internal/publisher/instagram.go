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

// InstagramPublisher posts content through the Instagram Graph API using the
// two-step container/publish flow. The config is held by pointer so the token
// refresh job's updates are picked up without restarting.
type InstagramPublisher struct {
	cfg    *config.Instagram
	client *http.Client
}

func NewInstagramPublisher(cfg *config.Instagram, client *http.Client) *InstagramPublisher {
	if client == nil {
		client = http.DefaultClient
	}
	return &InstagramPublisher{cfg: cfg, client: client}
}

func (p *InstagramPublisher) Name() string { return "instagram" }

func (p *InstagramPublisher) Publish(ctx context.Context, post *models.ContentPost) (string, error) {
	if p.cfg.AccessToken() == "" || p.cfg.BusinessID == "" {
		return "", fmt.Errorf("instagram credentials are not configured")
	}

	caption := post.Caption
	if post.Hashtags != "" {
		caption = caption + "\n\n" + post.Hashtags
	}

	containerID, err := p.createContainer(ctx, post, caption)
	if err != nil {
		return "", err
	}

	return p.publishContainer(ctx, containerID)
}

func (p *InstagramPublisher) createContainer(ctx context.Context, post *models.ContentPost, caption string) (string, error) {
	url := fmt.Sprintf("https://graph.instagram.com/v21.0/%s/media", p.cfg.BusinessID)

	payload := map[string]any{
		"caption":      caption,
		"access_token": p.cfg.AccessToken(),
	}
	if post.ContentType == models.ContentTypeReel {
		payload["media_type"] = "REELS"
		payload["video_url"] = post.MediaURL()
	} else {
		payload["image_url"] = post.MediaURL()
	}

	result, err := p.doJSON(ctx, url, payload)
	if err != nil {
		return "", fmt.Errorf("create media container: %w", err)
	}
	if result.ID == "" {
		return "", fmt.Errorf("no container ID returned from Instagram")
	}
	return result.ID, nil
}

func (p *InstagramPublisher) publishContainer(ctx context.Context, containerID string) (string, error) {
	url := fmt.Sprintf("https://graph.instagram.com/v21.0/%s/media_publish", p.cfg.BusinessID)

	payload := map[string]any{
		"creation_id":  containerID,
		"access_token": p.cfg.AccessToken(),
	}

	result, err := p.doJSON(ctx, url, payload)
	if err != nil {
		return "", fmt.Errorf("publish media container: %w", err)
	}
	if result.ID == "" {
		return "", fmt.Errorf("no media ID returned from Instagram")
	}
	return result.ID, nil
}

func (p *InstagramPublisher) doJSON(ctx context.Context, url string, payload map[string]any) (*graphResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr graphError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("instagram API error: %s", apiErr.Error.Message)
		}
		return nil, fmt.Errorf("unexpected status code from Instagram: %d", resp.StatusCode)
	}

	var result graphResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type graphResult struct {
	ID string `json:"id"`
}

type graphError struct {
	Error struct {
		Message     string `json:"message"`
		Type        string `json:"type"`
		Code        int    `json:"code"`
		IsTransient bool   `json:"is_transient"`
	} `json:"error"`
}
