package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/velora-ai/companion/internal/scheduler"
)

// Worker consumes publish tasks. It shares the coordinator with the scheduler
// loop, so a post claimed by either path is invisible to the other.
type Worker struct {
	server      *asynq.Server
	coordinator *scheduler.Coordinator
	logger      *slog.Logger
}

func NewWorker(redisURI string, coordinator *scheduler.Coordinator, logger *slog.Logger) *Worker {
	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisURI},
		asynq.Config{Concurrency: 5},
	)
	return &Worker{server: server, coordinator: coordinator, logger: logger}
}

// Run blocks processing tasks until Shutdown is called.
func (w *Worker) Run() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypePublishPost, w.handlePublishPost)
	return w.server.Run(mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

func (w *Worker) handlePublishPost(ctx context.Context, t *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("decoding publish payload: %v: %w", err, asynq.SkipRetry)
	}

	result, err := w.coordinator.PublishPost(ctx, payload.PostID)
	if err != nil {
		w.logger.Error("publish task failed", "post_id", payload.PostID, "error", err)
		return err
	}
	if result == nil {
		// Already handled elsewhere; nothing to retry.
		return nil
	}

	w.logger.Info("publish task finished", "post_id", payload.PostID, "published", result.Published)
	return nil
}
