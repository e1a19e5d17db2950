package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/velora-ai/companion/internal/models"
	"github.com/velora-ai/companion/internal/repository"
)

type speechRequest struct {
	Model string  `json:"model"`
	Input string  `json:"input"`
	Voice string  `json:"voice"`
	Speed float64 `json:"speed,omitempty"`
}

// TTSService converts companion replies to speech through an OpenAI-compatible
// audio endpoint and stores the audio in media storage.
type TTSService interface {
	Speak(ctx context.Context, text string) (string, error)
}

type ttsService struct {
	settingsRepo repository.SettingsRepository
	media        MediaService
	endpoint     string
	apiKey       string
	client       *http.Client
	logger       *slog.Logger
}

func NewTTSService(settingsRepo repository.SettingsRepository, media MediaService, endpoint, apiKey string, logger *slog.Logger) TTSService {
	if endpoint == "" {
		endpoint = "https://api.openai.com/v1/audio/speech"
	}
	return &ttsService{
		settingsRepo: settingsRepo,
		media:        media,
		endpoint:     endpoint,
		apiKey:       apiKey,
		client:       &http.Client{Timeout: 60 * time.Second},
		logger:       logger,
	}
}

// Speak synthesizes the text and returns the public URL of the stored audio.
func (s *ttsService) Speak(ctx context.Context, text string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("tts api key is not configured")
	}

	settings, found, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return "", err
	}
	if !found {
		settings = models.DefaultSettings()
	}

	body, err := json.Marshal(speechRequest{
		Model: "tts-1",
		Input: text,
		Voice: settings.TTSVoice,
		Speed: settings.TTSSpeed,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling tts endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tts endpoint returned status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	url, err := s.media.Upload(ctx, audio, "voice")
	if err != nil {
		return "", fmt.Errorf("storing speech audio: %w", err)
	}

	s.logger.Info("speech synthesized", "chars", len(text))
	return url, nil
}
