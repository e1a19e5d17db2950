package scheduler

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/velora-ai/companion/internal/models"
	"github.com/velora-ai/companion/internal/repository"
	"github.com/velora-ai/companion/internal/service"
)

// Content styles passed to the generator per post type.
const (
	styleLifestyle = "lifestyle"
	styleGlamour   = "glamour"
)

// ContentSource produces a content bundle for a given style hint.
type ContentSource interface {
	Generate(style string) *service.ContentBundle
}

// Generator tops up the current day's posting quota: it counts what is
// already scheduled per content type and fills the gap with new posts spread
// across the remaining hours of the posting window.
type Generator struct {
	posts    repository.ContentPostRepository
	settings repository.SettingsRepository
	content  ContentSource
	logger   *slog.Logger

	now func() time.Time

	mu      sync.Mutex
	lastRun time.Time
}

func NewGenerator(
	posts repository.ContentPostRepository,
	settings repository.SettingsRepository,
	content ContentSource,
	logger *slog.Logger) *Generator {
	return &Generator{
		posts:    posts,
		settings: settings,
		content:  content,
		logger:   logger,
		now:      time.Now,
	}
}

// GenerateIfNeeded runs one top-up pass. Passes are serialized: the manual
// trigger and the scheduler tick must not count today's posts concurrently,
// or both would fill the same gap and overshoot the quota.
func (g *Generator) GenerateIfNeeded(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	settings, found, err := g.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	if !found {
		g.logger.Warn("settings not found, using defaults")
		settings = models.DefaultSettings()
	}

	if !settings.AutoSchedule || settings.PostFrequency <= 0 {
		g.logger.Info("auto scheduling is disabled or post frequency is 0")
		return nil
	}

	now := g.now()
	today := models.WeekdayIndex(now.Weekday())
	if !containsDay(settings.ActiveWeekdays(), today) {
		g.logger.Info("not an active posting day", "weekday", today)
		return nil
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	scheduledImages, err := g.posts.CountScheduledInRange(ctx, models.ContentTypeImage, dayStart, dayEnd)
	if err != nil {
		return fmt.Errorf("counting scheduled image posts: %w", err)
	}
	scheduledReels, err := g.posts.CountScheduledInRange(ctx, models.ContentTypeReel, dayStart, dayEnd)
	if err != nil {
		return fmt.Errorf("counting scheduled reel posts: %w", err)
	}

	imagesNeeded := max(0, settings.ImagesPerDay-scheduledImages)
	reelsNeeded := max(0, settings.ReelsPerDay-scheduledReels)
	total := imagesNeeded + reelsNeeded
	if total == 0 {
		return nil
	}

	g.logger.Info("content needed today", "images", imagesNeeded, "reels", reelsNeeded)

	slots := allocateSlots(now, settings.PostTimeStart, settings.PostTimeEnd, total)
	if len(slots) == 0 {
		g.logger.Info("no more posting hours available today")
		return nil
	}

	// Image posts claim the earliest slots, reels take the rest.
	created := 0
	for i := 0; i < imagesNeeded && len(slots) > 0; i++ {
		if err := g.createPost(ctx, models.ContentTypeImage, styleLifestyle, slots[0]); err != nil {
			return err
		}
		slots = slots[1:]
		created++
	}
	for i := 0; i < reelsNeeded && len(slots) > 0; i++ {
		if err := g.createPost(ctx, models.ContentTypeReel, styleGlamour, slots[0]); err != nil {
			return err
		}
		slots = slots[1:]
		created++
	}

	if created > 0 {
		g.logger.Info("created and scheduled posts for today", "count", created)
	}
	g.lastRun = now
	return nil
}

// LastRun reports when the generation pass last completed.
func (g *Generator) LastRun() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastRun
}

func (g *Generator) createPost(ctx context.Context, contentType, style string, scheduledFor time.Time) error {
	bundle := g.content.Generate(style)

	post := &models.ContentPost{
		Title:        bundle.Title,
		Caption:      bundle.Caption,
		Hashtags:     bundle.Hashtags,
		ImageURL:     bundle.ImageURL,
		ImagePrompt:  bundle.ImagePrompt,
		ContentType:  contentType,
		Platforms:    models.DefaultPlatforms,
		Status:       models.PostStatusScheduled,
		ScheduledFor: sql.NullTime{Time: scheduledFor, Valid: true},
	}

	if _, err := g.posts.Create(ctx, nil, post); err != nil {
		return fmt.Errorf("creating %s post: %w", contentType, err)
	}
	return nil
}

// allocateSlots spreads total posts over the remaining hours of the posting
// window [startHour, endHour). Only hours strictly after the current hour are
// eligible; a closed or empty window yields nothing — tomorrow's quota is
// tomorrow's problem. When enough hours remain, a random distinct subset is
// picked; when slots are scarce every remaining hour is used and the deficit
// is filled by sampling those hours with repetition. Each slot gets a random
// minute within its hour, and slots come back sorted ascending.
func allocateSlots(now time.Time, startHour, endHour, total int) []time.Time {
	if total <= 0 || startHour >= endHour {
		return nil
	}

	var future []int
	for h := startHour; h < endHour; h++ {
		if h > now.Hour() {
			future = append(future, h)
		}
	}
	if len(future) == 0 {
		return nil
	}

	var hours []int
	if len(future) >= total {
		for _, idx := range rand.Perm(len(future))[:total] {
			hours = append(hours, future[idx])
		}
	} else {
		hours = append(hours, future...)
		for len(hours) < total {
			hours = append(hours, future[rand.Intn(len(future))])
		}
	}
	sort.Ints(hours)

	slots := make([]time.Time, 0, len(hours))
	for _, h := range hours {
		slots = append(slots, time.Date(now.Year(), now.Month(), now.Day(), h, rand.Intn(60), 0, 0, now.Location()))
	}
	return slots
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
