package transfer

import "github.com/golang-jwt/jwt/v5"

type CustomClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Language string `json:"language"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChatRequest struct {
	Message    string `json:"message"`
	Source     string `json:"source"`
	ExternalID string `json:"external_id"`
}

type VoiceRequest struct {
	Message string `json:"message"`
	Minutes int    `json:"minutes"`
}

type CreatePostRequest struct {
	Title        string `json:"title"`
	Caption      string `json:"caption"`
	Hashtags     string `json:"hashtags"`
	ImageURL     string `json:"image_url"`
	ContentType  string `json:"content_type"`
	Platforms    string `json:"platforms"`
	ScheduledFor string `json:"scheduled_for"` // RFC 3339; empty means publish now
	Theme        string `json:"theme"`
	Style        string `json:"style"`
}

type ReschedulePostRequest struct {
	ScheduledFor string `json:"scheduled_for"` // RFC 3339
}

type GenerateImageRequest struct {
	Prompt string `json:"prompt"`
}

type CreateOrderRequest struct {
	OrderID string `json:"order_id"`
}

type PayPalSetup struct {
	ClientID        string  `json:"client_id"`
	Environment     string  `json:"environment"`
	SubscriptionFee float64 `json:"subscription_fee"`
	Currency        string  `json:"currency"`
}

type PayPalOrder struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  []struct {
		Href string `json:"href"`
		Rel  string `json:"rel"`
	} `json:"links"`
}
