package models

import (
	"database/sql"
	"time"
)

type Conversation struct {
	ID               int64          `db:"id" json:"id"`
	UserID           sql.NullInt64  `db:"user_id" json:"user_id"`
	Source           string         `db:"source" json:"source"` // website, instagram, telegram
	ExternalID       sql.NullString `db:"external_id" json:"external_id"`
	DetectedLanguage string         `db:"detected_language" json:"detected_language"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	LastInteraction  time.Time      `db:"last_interaction" json:"last_interaction"`
}

type Message struct {
	ID             int64     `db:"id" json:"id"`
	ConversationID int64     `db:"conversation_id" json:"conversation_id"`
	Content        string    `db:"content" json:"content"`
	IsFromUser     bool      `db:"is_from_user" json:"is_from_user"`
	Timestamp      time.Time `db:"timestamp" json:"timestamp"`
}
