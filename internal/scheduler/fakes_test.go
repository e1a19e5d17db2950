package scheduler

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/velora-ai/companion/internal/models"
	"github.com/velora-ai/companion/internal/service"
)

// fakePostRepo is an in-memory ContentPostRepository for pipeline tests.
type fakePostRepo struct {
	mu     sync.Mutex
	nextID int64
	posts  map[int64]*models.ContentPost

	listDueErr error
	createErr  error
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{nextID: 1, posts: make(map[int64]*models.ContentPost)}
}

func (r *fakePostRepo) add(post *models.ContentPost) *models.ContentPost {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = r.nextID
	r.nextID++
	r.posts[post.ID] = post
	return post
}

func (r *fakePostRepo) Create(ctx context.Context, tx *sql.Tx, post *models.ContentPost) (int64, error) {
	if r.createErr != nil {
		return 0, r.createErr
	}
	return r.add(post).ID, nil
}

func (r *fakePostRepo) GetByID(ctx context.Context, id int64) (*models.ContentPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	copied := *post
	return &copied, nil
}

func (r *fakePostRepo) List(ctx context.Context, limit int) ([]*models.ContentPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.ContentPost
	for _, p := range r.posts {
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakePostRepo) ListDue(ctx context.Context, now time.Time) ([]*models.ContentPost, error) {
	if r.listDueErr != nil {
		return nil, r.listDueErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.ContentPost
	for _, p := range r.posts {
		if p.Status == models.PostStatusScheduled && p.ScheduledFor.Valid && !p.ScheduledFor.Time.After(now) {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakePostRepo) CountScheduledInRange(ctx context.Context, contentType string, from, to time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, p := range r.posts {
		if p.ContentType != contentType || p.Status != models.PostStatusScheduled || !p.ScheduledFor.Valid {
			continue
		}
		at := p.ScheduledFor.Time
		if !at.Before(from) && at.Before(to) {
			count++
		}
	}
	return count, nil
}

func (r *fakePostRepo) ClaimForPublishing(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok || post.Status != models.PostStatusScheduled {
		return false, nil
	}
	post.Status = models.PostStatusPublishing
	return true, nil
}

func (r *fakePostRepo) MarkPublished(ctx context.Context, id int64, publishedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return fmt.Errorf("post %d not found", id)
	}
	post.Status = models.PostStatusPublished
	post.PublishedAt = sql.NullTime{Time: publishedAt, Valid: true}
	return nil
}

func (r *fakePostRepo) MarkFailed(ctx context.Context, id int64, errorMessage string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return fmt.Errorf("post %d not found", id)
	}
	post.Status = models.PostStatusFailed
	post.ErrorMessage = sql.NullString{String: errorMessage, Valid: true}
	return nil
}

func (r *fakePostRepo) UpdateSchedule(ctx context.Context, id int64, scheduledFor time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return fmt.Errorf("post %d not found", id)
	}
	post.ScheduledFor = sql.NullTime{Time: scheduledFor, Valid: true}
	return nil
}

func (r *fakePostRepo) Remove(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posts, id)
	return nil
}

// fakeSettingsRepo serves a fixed settings row.
type fakeSettingsRepo struct {
	settings *models.CompanionSettings
	found    bool
	err      error
}

func (r *fakeSettingsRepo) Get(ctx context.Context) (*models.CompanionSettings, bool, error) {
	return r.settings, r.found, r.err
}

func (r *fakeSettingsRepo) Create(ctx context.Context, s *models.CompanionSettings) (int64, error) {
	return 1, nil
}

func (r *fakeSettingsRepo) Update(ctx context.Context, s *models.CompanionSettings) error {
	return nil
}

// fakeContentSource returns deterministic bundles and records requested styles.
type fakeContentSource struct {
	styles []string
}

func (f *fakeContentSource) Generate(style string) *service.ContentBundle {
	f.styles = append(f.styles, style)
	return &service.ContentBundle{
		Title:    "Test Title",
		Caption:  "Test caption",
		Hashtags: "#test",
		ImageURL: "https://cdn.example.com/test.jpg",
	}
}

// fakePublisher succeeds or fails by configuration.
type fakePublisher struct {
	name  string
	err   error
	mu    sync.Mutex
	calls int
}

func (p *fakePublisher) Name() string { return p.name }

func (p *fakePublisher) Publish(ctx context.Context, post *models.ContentPost) (string, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	return p.name + "-post-1", nil
}

func (p *fakePublisher) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
