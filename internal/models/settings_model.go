package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

// InstagramSettings is stored as a JSON column but always handled as a typed
// value; it never round-trips through free-form text.
type InstagramSettings struct {
	HashtagCount int    `json:"hashtag_count"`
	EmojiLevel   string `json:"emoji_level"`
}

type TelegramSettings struct {
	UseStickers bool `json:"use_stickers"`
	AutoReply   bool `json:"auto_reply"`
}

type PayPalSettings struct {
	BusinessEmail string `json:"business_email"`
	ClientID      string `json:"client_id"`
	ClientSecret  string `json:"client_secret"`
	Environment   string `json:"environment"`
}

func (s InstagramSettings) Value() (driver.Value, error) { return json.Marshal(s) }
func (s *InstagramSettings) Scan(src any) error          { return scanJSON(src, s) }

func (s TelegramSettings) Value() (driver.Value, error) { return json.Marshal(s) }
func (s *TelegramSettings) Scan(src any) error          { return scanJSON(src, s) }

func (s PayPalSettings) Value() (driver.Value, error) { return json.Marshal(s) }
func (s *PayPalSettings) Scan(src any) error          { return scanJSON(src, s) }

func scanJSON(src, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	}
	return errors.New("unsupported source for JSON settings column")
}

type CompanionSettings struct {
	ID             int64  `db:"id" json:"id"`
	Personality    string `db:"personality" json:"personality"`
	ContentStyle   string `db:"content_style" json:"content_style"`
	ResponseLength int    `db:"response_length" json:"response_length"`
	FlirtLevel     int    `db:"flirt_level" json:"flirt_level"` // 1-10

	// Social posting settings.
	PostFrequency int    `db:"post_frequency" json:"post_frequency"`
	ImagesPerDay  int    `db:"images_per_day" json:"images_per_day"`
	ReelsPerDay   int    `db:"reels_per_day" json:"reels_per_day"`
	PostTimeStart int    `db:"post_time_start" json:"post_time_start"` // hour 0-23
	PostTimeEnd   int    `db:"post_time_end" json:"post_time_end"`     // hour 0-23
	PostDays      string `db:"post_days" json:"post_days"`             // "0,1,...,6", 0=Monday
	AutoSchedule  bool   `db:"auto_schedule" json:"auto_schedule"`

	// Language model settings.
	AllowNSFW         bool   `db:"allow_nsfw" json:"allow_nsfw"`
	OpenRouterAPIKey  string `db:"openrouter_api_key" json:"-"`
	DefaultModel      string `db:"default_model" json:"default_model"`
	HighFlirtModel    string `db:"high_flirt_model" json:"high_flirt_model"`
	MediumFlirtModel  string `db:"medium_flirt_model" json:"medium_flirt_model"`
	NSFWModel         string `db:"nsfw_model" json:"nsfw_model"`
	UseFlirtModelPick bool   `db:"use_flirt_model_pick" json:"use_flirt_model_pick"`

	// Speech settings.
	TTSVoice string  `db:"tts_voice" json:"tts_voice"`
	TTSSpeed float64 `db:"tts_speed" json:"tts_speed"`

	// Image generation settings.
	SDURL            string  `db:"sd_url" json:"sd_url"`
	SDModel          string  `db:"sd_model" json:"sd_model"`
	SDNegativePrompt string  `db:"sd_negative_prompt" json:"sd_negative_prompt"`
	SDSteps          int     `db:"sd_steps" json:"sd_steps"`
	SDCfgScale       float64 `db:"sd_cfg_scale" json:"sd_cfg_scale"`
	SDWidth          int     `db:"sd_width" json:"sd_width"`
	SDHeight         int     `db:"sd_height" json:"sd_height"`

	SubscriptionFee float64           `db:"subscription_fee" json:"subscription_fee"`
	Instagram       InstagramSettings `db:"instagram_settings" json:"instagram_settings"`
	Telegram        TelegramSettings  `db:"telegram_settings" json:"telegram_settings"`
	PayPal          PayPalSettings    `db:"paypal_settings" json:"paypal_settings"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// DefaultSettings returns the fallback configuration used when no settings
// row exists: one image post per day, no reels, 09-21 posting window, every
// weekday active, auto scheduling on.
func DefaultSettings() *CompanionSettings {
	return &CompanionSettings{
		Personality:       "friendly, flirty, supportive, playful",
		ContentStyle:      "inspirational, positive, expressive",
		ResponseLength:    150,
		FlirtLevel:        8,
		PostFrequency:     1,
		ImagesPerDay:      1,
		ReelsPerDay:       0,
		PostTimeStart:     9,
		PostTimeEnd:       21,
		PostDays:          "0,1,2,3,4,5,6",
		AutoSchedule:      true,
		DefaultModel:      "gryphe/mythomax-l2-13b",
		HighFlirtModel:    "gryphe/mythomax-l2-13b",
		MediumFlirtModel:  "teknium/openhermes-2.5-mistral",
		NSFWModel:         "deepseek-ai/deepseek-chat-7b-nsfw",
		UseFlirtModelPick: true,
		TTSVoice:          "female_natural",
		TTSSpeed:          0.9,
		SDModel:           "RealisticVision",
		SDSteps:           30,
		SDCfgScale:        7.0,
		SDWidth:           1024,
		SDHeight:          1024,
		SubscriptionFee:   9.99,
		Instagram:         InstagramSettings{HashtagCount: 5, EmojiLevel: "medium"},
		Telegram:          TelegramSettings{UseStickers: true, AutoReply: true},
		PayPal:            PayPalSettings{Environment: "sandbox"},
	}
}

// ActiveWeekdays parses PostDays into weekday numbers (0=Monday..6=Sunday).
// Malformed entries are skipped.
func (s *CompanionSettings) ActiveWeekdays() []int {
	var days []int
	for _, part := range strings.Split(s.PostDays, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil || d < 0 || d > 6 {
			continue
		}
		days = append(days, d)
	}
	return days
}

// WeekdayIndex converts a time.Weekday to the stored 0=Monday convention.
func WeekdayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}
