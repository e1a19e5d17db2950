package config

import (
	"os"
	"sync"
)

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

// Instagram holds Graph API credentials. The access token is rewritten at
// runtime by the refresh job while publishes read it, so it lives behind a
// mutex instead of a bare field.
type Instagram struct {
	BusinessID string

	mu          sync.RWMutex
	accessToken string
}

func (i *Instagram) AccessToken() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.accessToken
}

func (i *Instagram) SetAccessToken(token string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.accessToken = token
}

type Telegram struct {
	BotToken  string
	ChannelID string
}

type Config struct {
	PostgresURI         string
	RedisURI            string
	AppURL              string
	FrontendURL         string
	SecretKey           string
	CookieName          string
	Instagram           Instagram
	Telegram            Telegram
	GoogleClientID      string
	GoogleClientSecret  string
	YouTubeRefreshToken string
	PayPalAPIBase       string
	OpenRouterAPIKey    string
	OpenAIAPIKey        string
	TTSAPIBase          string
	R2                  R2
}

func LoadConfig() *Config {
	cfg := &Config{
		PostgresURI: getEnv("POSTGRES_URI", ""),
		RedisURI:    getEnv("REDIS_URI", "127.0.0.1:6379"),
		AppURL:      getEnv("APP_URL", "http://localhost:3000"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		SecretKey:   getEnv("SECRET_KEY", ""),
		CookieName:  getEnv("COOKIE_NAME", "companion_session"),
		Instagram: Instagram{
			BusinessID: getEnv("INSTAGRAM_BUSINESS_ID", ""),
		},
		Telegram: Telegram{
			BotToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
			ChannelID: getEnv("TELEGRAM_CHANNEL_ID", ""),
		},
		GoogleClientID:      getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:  getEnv("GOOGLE_CLIENT_SECRET", ""),
		YouTubeRefreshToken: getEnv("YOUTUBE_REFRESH_TOKEN", ""),
		PayPalAPIBase:       getEnv("PAYPAL_API_BASE", "https://api-m.sandbox.paypal.com"),
		OpenRouterAPIKey:    getEnv("OPENROUTER_API_KEY", ""),
		OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
		TTSAPIBase:          getEnv("TTS_API_BASE", ""),
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  getEnv("R2_PUBLIC_URL", ""),
		},
	}
	cfg.Instagram.SetAccessToken(getEnv("INSTAGRAM_ACCESS_TOKEN", ""))
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
