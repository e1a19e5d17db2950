package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPlatformList(t *testing.T) {
	post := &ContentPost{Platforms: "Instagram, telegram ,, YOUTUBE"}
	assert.Equal(t, []string{"instagram", "telegram", "youtube"}, post.PlatformList())

	empty := &ContentPost{Platforms: ""}
	assert.Empty(t, empty.PlatformList())
}

func TestMediaURLPrefersMediaPath(t *testing.T) {
	post := &ContentPost{ImageURL: "https://cdn.example.com/a.jpg"}
	assert.Equal(t, "https://cdn.example.com/a.jpg", post.MediaURL())

	post.MediaPath = "https://cdn.example.com/a.mp4"
	assert.Equal(t, "https://cdn.example.com/a.mp4", post.MediaURL())
}

func TestActiveWeekdays(t *testing.T) {
	s := &CompanionSettings{PostDays: "0,1,2,3,4,5,6"}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, s.ActiveWeekdays())

	s.PostDays = " 1, 3 ,bad,9,5"
	assert.Equal(t, []int{1, 3, 5}, s.ActiveWeekdays())

	s.PostDays = ""
	assert.Empty(t, s.ActiveWeekdays())
}

func TestWeekdayIndexMondayBased(t *testing.T) {
	assert.Equal(t, 0, WeekdayIndex(time.Monday))
	assert.Equal(t, 4, WeekdayIndex(time.Friday))
	assert.Equal(t, 5, WeekdayIndex(time.Saturday))
	assert.Equal(t, 6, WeekdayIndex(time.Sunday))
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 1, s.ImagesPerDay)
	assert.Equal(t, 0, s.ReelsPerDay)
	assert.Equal(t, 9, s.PostTimeStart)
	assert.Equal(t, 21, s.PostTimeEnd)
	assert.True(t, s.AutoSchedule)
	assert.Len(t, s.ActiveWeekdays(), 7)
}

func TestUserQuotaChecks(t *testing.T) {
	free := &User{}
	assert.False(t, free.CanGenerateImage())
	assert.False(t, free.CanMakeCall(1))

	paid := &User{IsPaid: true, DailyImageLimit: 1, DailyCallMinutes: 5}
	assert.True(t, paid.CanGenerateImage())
	assert.True(t, paid.CanMakeCall(5))
	assert.False(t, paid.CanMakeCall(6))

	exhausted := &User{IsPaid: true}
	assert.False(t, exhausted.CanGenerateImage())

	admin := &User{IsAdmin: true}
	assert.True(t, admin.CanGenerateImage())
	assert.True(t, admin.CanMakeCall(60))
}
