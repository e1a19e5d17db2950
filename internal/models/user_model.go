package models

import "time"

type User struct {
	ID               int64     `db:"id" json:"id"`
	Username         string    `db:"username" json:"username"`
	Email            string    `db:"email" json:"email"`
	PasswordHash     string    `db:"password_hash" json:"-"`
	IsAdmin          bool      `db:"is_admin" json:"is_admin"`
	IsPaid           bool      `db:"is_paid" json:"is_paid"`
	DailyImageLimit  int       `db:"daily_image_limit" json:"daily_image_limit"`
	DailyCallMinutes int       `db:"daily_call_minutes" json:"daily_call_minutes"`
	LastResetDate    time.Time `db:"last_reset_date" json:"last_reset_date"`
	Language         string    `db:"language" json:"language"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// Paid-tier daily allowances granted on subscription and on the daily reset.
const (
	PaidDailyImageLimit  = 2
	PaidDailyCallMinutes = 10
)

// CanGenerateImage reports whether the user has image quota left today.
// Admins are unlimited, free users have none.
func (u *User) CanGenerateImage() bool {
	if u.IsAdmin {
		return true
	}
	return u.IsPaid && u.DailyImageLimit > 0
}

func (u *User) CanMakeCall(minutes int) bool {
	if u.IsAdmin {
		return true
	}
	return u.IsPaid && u.DailyCallMinutes >= minutes
}
