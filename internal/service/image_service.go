package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/velora-ai/companion/internal/models"
	"github.com/velora-ai/companion/internal/repository"
)

type txt2imgRequest struct {
	Prompt         string  `json:"prompt"`
	NegativePrompt string  `json:"negative_prompt"`
	Steps          int     `json:"steps"`
	CfgScale       float64 `json:"cfg_scale"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
}

type txt2imgResponse struct {
	Images []string `json:"images"`
}

// ImageService renders persona images through a Stable Diffusion web UI and
// stores the result in media storage. When the renderer is unreachable a
// stock asset URL is returned instead.
type ImageService interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type imageService struct {
	settingsRepo repository.SettingsRepository
	media        MediaService
	content      ContentService
	client       *http.Client
	logger       *slog.Logger
}

func NewImageService(settingsRepo repository.SettingsRepository, media MediaService, content ContentService, logger *slog.Logger) ImageService {
	return &imageService{
		settingsRepo: settingsRepo,
		media:        media,
		content:      content,
		client:       &http.Client{Timeout: 120 * time.Second},
		logger:       logger,
	}
}

func (s *imageService) Generate(ctx context.Context, prompt string) (string, error) {
	settings, found, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return "", err
	}
	if !found {
		settings = models.DefaultSettings()
	}

	if settings.SDURL == "" {
		s.logger.Info("image renderer not configured, using stock photo")
		return s.content.StockPhoto(), nil
	}

	data, err := s.render(ctx, settings, prompt)
	if err != nil {
		s.logger.Error("rendering image, falling back to stock photo", "error", err)
		return s.content.StockPhoto(), nil
	}

	url, err := s.media.Upload(ctx, data, "images")
	if err != nil {
		s.logger.Error("storing generated image, falling back to stock photo", "error", err)
		return s.content.StockPhoto(), nil
	}
	return url, nil
}

func (s *imageService) render(ctx context.Context, settings *models.CompanionSettings, prompt string) ([]byte, error) {
	body, err := json.Marshal(txt2imgRequest{
		Prompt:         prompt,
		NegativePrompt: settings.SDNegativePrompt,
		Steps:          settings.SDSteps,
		CfgScale:       settings.SDCfgScale,
		Width:          settings.SDWidth,
		Height:         settings.SDHeight,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		settings.SDURL+"/sdapi/v1/txt2img", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling image renderer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image renderer returned status %d", resp.StatusCode)
	}

	var parsed txt2imgResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding renderer response: %w", err)
	}
	if len(parsed.Images) == 0 {
		return nil, fmt.Errorf("renderer returned no images")
	}

	return base64.StdEncoding.DecodeString(parsed.Images[0])
}
