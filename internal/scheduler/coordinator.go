package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/velora-ai/companion/internal/models"
	"github.com/velora-ai/companion/internal/publisher"
	"github.com/velora-ai/companion/internal/repository"
)

// publishTimeout bounds each platform call; a timed-out call counts as that
// platform's failure.
const publishTimeout = 30 * time.Second

type PlatformResult struct {
	Platform       string `json:"platform"`
	Status         string `json:"status"` // success, error
	PlatformPostID string `json:"platform_post_id,omitempty"`
	Error          string `json:"error,omitempty"`
}

type PostResult struct {
	PostID    int64            `json:"post_id"`
	Title     string           `json:"title"`
	Published bool             `json:"published"`
	Platforms []PlatformResult `json:"platforms"`
}

// Coordinator publishes due posts across their target platforms. A post is
// published when at least one platform accepts it; it fails only when every
// platform fails, with the full attempt report stored on the post.
type Coordinator struct {
	posts    repository.ContentPostRepository
	registry *publisher.Registry
	logger   *slog.Logger

	now func() time.Time
}

func NewCoordinator(posts repository.ContentPostRepository, registry *publisher.Registry, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		posts:    posts,
		registry: registry,
		logger:   logger,
		now:      time.Now,
	}
}

// PublishDue processes every post whose scheduled time has arrived. Each post
// is claimed before publishing and its outcome is persisted immediately, so
// an interrupted run loses no progress and a re-entrant run cannot publish
// the same post twice.
func (c *Coordinator) PublishDue(ctx context.Context) ([]PostResult, error) {
	now := c.now()

	due, err := c.posts.ListDue(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("querying due posts: %w", err)
	}
	if len(due) == 0 {
		return nil, nil
	}

	results := make([]PostResult, 0, len(due))
	for _, post := range due {
		claimed, err := c.posts.ClaimForPublishing(ctx, post.ID)
		if err != nil {
			c.logger.Error("claiming post for publishing", "post_id", post.ID, "error", err)
			continue
		}
		if !claimed {
			// Another runner already took it.
			continue
		}

		results = append(results, c.publishPost(ctx, post, now))
	}

	return results, nil
}

// PublishPost publishes a single post by ID if it is still scheduled. Used by
// the queue worker for manually created posts.
func (c *Coordinator) PublishPost(ctx context.Context, postID int64) (*PostResult, error) {
	post, err := c.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("post %d not found", postID)
	}
	if post.Status != models.PostStatusScheduled {
		c.logger.Info("skipping publish, post no longer scheduled", "post_id", postID, "status", post.Status)
		return nil, nil
	}

	claimed, err := c.posts.ClaimForPublishing(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, nil
	}

	result := c.publishPost(ctx, post, c.now())
	return &result, nil
}

func (c *Coordinator) publishPost(ctx context.Context, post *models.ContentPost, now time.Time) PostResult {
	result := PostResult{PostID: post.ID, Title: post.Title}

	platforms := post.PlatformList()
	if len(platforms) == 0 {
		result.Platforms = append(result.Platforms, PlatformResult{
			Status: "error",
			Error:  "post has no target platforms",
		})
	} else {
		result.Platforms = c.fanOut(ctx, post, platforms)
	}

	anySuccess := false
	for _, pr := range result.Platforms {
		if pr.Status == "success" {
			anySuccess = true
			break
		}
	}
	result.Published = anySuccess

	if anySuccess {
		if err := c.posts.MarkPublished(ctx, post.ID, now); err != nil {
			c.logger.Error("marking post published", "post_id", post.ID, "error", err)
		}
	} else {
		report, err := json.Marshal(result)
		if err != nil {
			report = []byte(fmt.Sprintf("all platforms failed for post %d", post.ID))
		}
		if err := c.posts.MarkFailed(ctx, post.ID, string(report)); err != nil {
			c.logger.Error("marking post failed", "post_id", post.ID, "error", err)
		}
	}

	return result
}

// fanOut publishes to every platform concurrently. Platform calls are
// independent and failure-isolated; each outcome is recorded in the order of
// the post's platform list.
func (c *Coordinator) fanOut(ctx context.Context, post *models.ContentPost, platforms []string) []PlatformResult {
	results := make([]PlatformResult, len(platforms))

	var wg sync.WaitGroup
	for i, name := range platforms {
		pub, ok := c.registry.Lookup(name)
		if !ok {
			results[i] = PlatformResult{
				Platform: name,
				Status:   "error",
				Error:    fmt.Sprintf("unknown platform: %s", name),
			}
			continue
		}

		wg.Add(1)
		go func(i int, name string, pub publisher.Publisher) {
			defer wg.Done()

			callCtx, cancel := context.WithTimeout(ctx, publishTimeout)
			defer cancel()

			platformPostID, err := pub.Publish(callCtx, post)
			if err != nil {
				c.logger.Error("publishing post", "post_id", post.ID, "platform", name, "error", err)
				results[i] = PlatformResult{Platform: name, Status: "error", Error: err.Error()}
				return
			}
			results[i] = PlatformResult{Platform: name, Status: "success", PlatformPostID: platformPostID}
		}(i, name, pub)
	}
	wg.Wait()

	return results
}
