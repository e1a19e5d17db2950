package queue

import (
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// Client enqueues publish tasks for posts created through the API. The
// scheduler loop remains the safety net for anything the queue misses.
type Client struct {
	inner  *asynq.Client
	logger *slog.Logger
}

func NewClient(redisURI string, logger *slog.Logger) *Client {
	return &Client{
		inner:  asynq.NewClient(asynq.RedisClientOpt{Addr: redisURI}),
		logger: logger,
	}
}

// EnqueuePost schedules a publish task to run at the post's publication time.
// A zero time enqueues for immediate processing.
func (c *Client) EnqueuePost(postID int64, at time.Time) error {
	task, err := NewPublishPostTask(postID)
	if err != nil {
		return err
	}

	opts := []asynq.Option{}
	if !at.IsZero() {
		if delay := time.Until(at); delay > 0 {
			opts = append(opts, asynq.ProcessIn(delay))
		}
	}

	info, err := c.inner.Enqueue(task, opts...)
	if err != nil {
		return err
	}

	c.logger.Info("publish task enqueued", "post_id", postID, "task_id", info.ID, "queue", info.Queue)
	return nil
}

func (c *Client) Close() error {
	return c.inner.Close()
}
