package scheduler

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora-ai/companion/internal/models"
	"github.com/velora-ai/companion/internal/publisher"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func scheduledPost(repo *fakePostRepo, at time.Time, platforms string) *models.ContentPost {
	return repo.add(&models.ContentPost{
		Title:        "Morning thoughts",
		Caption:      "A caption",
		ContentType:  models.ContentTypeImage,
		Platforms:    platforms,
		Status:       models.PostStatusScheduled,
		ScheduledFor: sql.NullTime{Time: at, Valid: true},
	})
}

func newTestCoordinator(repo *fakePostRepo, now time.Time, pubs ...publisher.Publisher) *Coordinator {
	c := NewCoordinator(repo, publisher.NewRegistry(pubs...), discardLogger())
	c.now = func() time.Time { return now }
	return c
}

func TestPublishDueMarksPublishedOnAnySuccess(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakePostRepo()
	post := scheduledPost(repo, now.Add(-time.Minute), "instagram,telegram")

	insta := &fakePublisher{name: "instagram", err: fmt.Errorf("token expired")}
	tg := &fakePublisher{name: "telegram"}
	c := newTestCoordinator(repo, now, insta, tg)

	results, err := c.PublishDue(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Published)

	stored, _ := repo.GetByID(context.Background(), post.ID)
	assert.Equal(t, models.PostStatusPublished, stored.Status)
	assert.True(t, stored.PublishedAt.Valid)
	assert.Equal(t, now, stored.PublishedAt.Time)
}

func TestPublishDueMarksFailedWhenAllPlatformsFail(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakePostRepo()
	post := scheduledPost(repo, now.Add(-time.Minute), "instagram,telegram")

	insta := &fakePublisher{name: "instagram", err: fmt.Errorf("token expired")}
	tg := &fakePublisher{name: "telegram", err: fmt.Errorf("chat not found")}
	c := newTestCoordinator(repo, now, insta, tg)

	results, err := c.PublishDue(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Published)

	stored, _ := repo.GetByID(context.Background(), post.ID)
	assert.Equal(t, models.PostStatusFailed, stored.Status)
	require.True(t, stored.ErrorMessage.Valid)

	// The stored error is a structured report of every attempt.
	var report PostResult
	require.NoError(t, json.Unmarshal([]byte(stored.ErrorMessage.String), &report))
	assert.Equal(t, post.ID, report.PostID)
	assert.Len(t, report.Platforms, 2)
	for _, pr := range report.Platforms {
		assert.Equal(t, "error", pr.Status)
		assert.NotEmpty(t, pr.Error)
	}
}

func TestPublishDueSkipsFuturePosts(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakePostRepo()
	scheduledPost(repo, now.Add(time.Hour), "telegram")

	tg := &fakePublisher{name: "telegram"}
	c := newTestCoordinator(repo, now, tg)

	results, err := c.PublishDue(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, tg.callCount())
}

func TestPublishDueIsIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakePostRepo()
	scheduledPost(repo, now.Add(-time.Minute), "telegram")

	tg := &fakePublisher{name: "telegram"}
	c := newTestCoordinator(repo, now, tg)

	first, err := c.PublishDue(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := c.PublishDue(context.Background())
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.Equal(t, 1, tg.callCount())
}

func TestPublishDueUnknownPlatformCountsAsFailure(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakePostRepo()
	post := scheduledPost(repo, now.Add(-time.Minute), "myspace")

	c := newTestCoordinator(repo, now, &fakePublisher{name: "telegram"})

	results, err := c.PublishDue(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Published)
	require.Len(t, results[0].Platforms, 1)
	assert.Contains(t, results[0].Platforms[0].Error, "unknown platform")

	stored, _ := repo.GetByID(context.Background(), post.ID)
	assert.Equal(t, models.PostStatusFailed, stored.Status)
}

func TestPublishDueEmptyPlatformListFails(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakePostRepo()
	post := scheduledPost(repo, now.Add(-time.Minute), "")

	c := newTestCoordinator(repo, now, &fakePublisher{name: "telegram"})

	results, err := c.PublishDue(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Published)

	stored, _ := repo.GetByID(context.Background(), post.ID)
	assert.Equal(t, models.PostStatusFailed, stored.Status)
}

func TestPublishPostSkipsNonScheduledPost(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakePostRepo()
	post := repo.add(&models.ContentPost{
		Title:     "Already out",
		Platforms: "telegram",
		Status:    models.PostStatusPublished,
	})

	tg := &fakePublisher{name: "telegram"}
	c := newTestCoordinator(repo, now, tg)

	result, err := c.PublishPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Zero(t, tg.callCount())
}

func TestPublishPostPublishesScheduledPost(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakePostRepo()
	post := scheduledPost(repo, now.Add(time.Hour), "telegram")

	tg := &fakePublisher{name: "telegram"}
	c := newTestCoordinator(repo, now, tg)

	result, err := c.PublishPost(context.Background(), post.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Published)
	assert.Equal(t, "telegram-post-1", result.Platforms[0].PlatformPostID)
}

func TestPublishPostUnknownID(t *testing.T) {
	repo := newFakePostRepo()
	c := newTestCoordinator(repo, time.Now(), &fakePublisher{name: "telegram"})

	_, err := c.PublishPost(context.Background(), 42)
	assert.Error(t, err)
}
