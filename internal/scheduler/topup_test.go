package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora-ai/companion/internal/models"
)

// Tuesday at 10:00; posting window defaults to 9-21.
var testNow = time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

func newTestGenerator(repo *fakePostRepo, settings *models.CompanionSettings, content *fakeContentSource) *Generator {
	settingsRepo := &fakeSettingsRepo{settings: settings, found: settings != nil}
	g := NewGenerator(repo, settingsRepo, content, discardLogger())
	g.now = func() time.Time { return testNow }
	return g
}

func TestGenerateFillsDailyQuota(t *testing.T) {
	repo := newFakePostRepo()
	settings := models.DefaultSettings()
	settings.ImagesPerDay = 2
	settings.ReelsPerDay = 1

	content := &fakeContentSource{}
	g := newTestGenerator(repo, settings, content)

	require.NoError(t, g.GenerateIfNeeded(context.Background()))

	posts, _ := repo.List(context.Background(), 100)
	require.Len(t, posts, 3)

	images, reels := 0, 0
	for _, p := range posts {
		assert.Equal(t, models.PostStatusScheduled, p.Status)
		assert.Equal(t, models.DefaultPlatforms, p.Platforms)
		require.True(t, p.ScheduledFor.Valid)
		assert.True(t, p.ScheduledFor.Time.After(testNow))
		switch p.ContentType {
		case models.ContentTypeImage:
			images++
		case models.ContentTypeReel:
			reels++
		}
	}
	assert.Equal(t, 2, images)
	assert.Equal(t, 1, reels)
	assert.Equal(t, []string{styleLifestyle, styleLifestyle, styleGlamour}, content.styles)
	assert.True(t, g.LastRun().Equal(testNow))
}

func TestGenerateConcurrentPassesRespectQuota(t *testing.T) {
	repo := newFakePostRepo()
	settings := models.DefaultSettings()
	settings.ImagesPerDay = 2

	g := newTestGenerator(repo, settings, &fakeContentSource{})

	// Manual trigger racing the scheduler tick: passes are serialized, so
	// only the first fills the gap and the rest see a full day.
	gate := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-gate
			assert.NoError(t, g.GenerateIfNeeded(context.Background()))
		}()
	}
	close(gate)
	wg.Wait()

	posts, _ := repo.List(context.Background(), 100)
	assert.Len(t, posts, 2)
}

func TestGenerateRespectsExistingScheduledPosts(t *testing.T) {
	repo := newFakePostRepo()
	scheduledPost(repo, testNow.Add(2*time.Hour), models.DefaultPlatforms)

	settings := models.DefaultSettings() // one image per day
	content := &fakeContentSource{}
	g := newTestGenerator(repo, settings, content)

	require.NoError(t, g.GenerateIfNeeded(context.Background()))

	posts, _ := repo.List(context.Background(), 100)
	assert.Len(t, posts, 1)
	assert.Empty(t, content.styles)
}

func TestGenerateSkipsWhenAutoScheduleOff(t *testing.T) {
	repo := newFakePostRepo()
	settings := models.DefaultSettings()
	settings.AutoSchedule = false

	g := newTestGenerator(repo, settings, &fakeContentSource{})
	require.NoError(t, g.GenerateIfNeeded(context.Background()))

	posts, _ := repo.List(context.Background(), 100)
	assert.Empty(t, posts)
}

func TestGenerateSkipsInactiveWeekday(t *testing.T) {
	repo := newFakePostRepo()
	settings := models.DefaultSettings()
	settings.PostDays = "5,6" // weekend only; testNow is a Tuesday

	g := newTestGenerator(repo, settings, &fakeContentSource{})
	require.NoError(t, g.GenerateIfNeeded(context.Background()))

	posts, _ := repo.List(context.Background(), 100)
	assert.Empty(t, posts)
}

func TestGenerateSkipsWhenWindowExhausted(t *testing.T) {
	repo := newFakePostRepo()
	settings := models.DefaultSettings()
	settings.PostTimeStart = 6
	settings.PostTimeEnd = 10 // no hour strictly after 10:00 remains

	g := newTestGenerator(repo, settings, &fakeContentSource{})
	require.NoError(t, g.GenerateIfNeeded(context.Background()))

	posts, _ := repo.List(context.Background(), 100)
	assert.Empty(t, posts)
}

func TestGenerateUsesDefaultsWhenSettingsMissing(t *testing.T) {
	repo := newFakePostRepo()
	content := &fakeContentSource{}
	g := newTestGenerator(repo, nil, content)

	require.NoError(t, g.GenerateIfNeeded(context.Background()))

	posts, _ := repo.List(context.Background(), 100)
	assert.Len(t, posts, 1)
}

func TestAllocateSlotsDistinctAndSorted(t *testing.T) {
	slots := allocateSlots(testNow, 9, 21, 3)
	require.Len(t, slots, 3)

	seen := map[int]bool{}
	for i, s := range slots {
		assert.Greater(t, s.Hour(), testNow.Hour())
		assert.Less(t, s.Hour(), 21)
		assert.GreaterOrEqual(t, s.Minute(), 0)
		assert.Less(t, s.Minute(), 60)
		assert.False(t, seen[s.Hour()], "hours must be distinct when enough remain")
		seen[s.Hour()] = true
		if i > 0 {
			assert.False(t, s.Before(slots[i-1]), "slots must be sorted ascending")
		}
	}
}

func TestAllocateSlotsScarcityReusesHours(t *testing.T) {
	// Only hours 11 and 12 remain but five posts are needed.
	slots := allocateSlots(testNow, 9, 13, 5)
	require.Len(t, slots, 5)

	hours := map[int]bool{}
	for i, s := range slots {
		assert.Contains(t, []int{11, 12}, s.Hour())
		hours[s.Hour()] = true
		if i > 0 {
			assert.False(t, s.Hour() < slots[i-1].Hour())
		}
	}
	// Every remaining hour is used before any repetition.
	assert.Len(t, hours, 2)
}

func TestAllocateSlotsEdgeCases(t *testing.T) {
	assert.Nil(t, allocateSlots(testNow, 9, 21, 0))
	assert.Nil(t, allocateSlots(testNow, 21, 9, 2))
	assert.Nil(t, allocateSlots(testNow, 9, 10, 2)) // nothing after the current hour
}
