package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypePublishPost = "publish:post"

type PublishPostPayload struct {
	PostID int64 `json:"post_id"`
}

// NewPublishPostTask builds the task that publishes a single post.
func NewPublishPostTask(postID int64) (*asynq.Task, error) {
	payload, err := json.Marshal(PublishPostPayload{PostID: postID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePublishPost, payload,
		asynq.MaxRetry(3), asynq.Timeout(5*time.Minute)), nil
}
