package publisher

import (
	"context"
	"strings"

	"github.com/velora-ai/companion/internal/models"
)

// Publisher delivers a content post to a single external platform and
// returns the platform-assigned post identifier.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, post *models.ContentPost) (string, error)
}

// Registry maps lowercased platform names to publishers. Platform names
// coming from stored posts are normalized before lookup; unknown names are
// reported by the coordinator as per-platform failures, not process faults.
type Registry struct {
	publishers map[string]Publisher
}

func NewRegistry(publishers ...Publisher) *Registry {
	r := &Registry{publishers: make(map[string]Publisher, len(publishers))}
	for _, p := range publishers {
		r.publishers[strings.ToLower(p.Name())] = p
	}
	return r
}

func (r *Registry) Lookup(name string) (Publisher, bool) {
	p, ok := r.publishers[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.publishers))
	for name := range r.publishers {
		names = append(names, name)
	}
	return names
}
