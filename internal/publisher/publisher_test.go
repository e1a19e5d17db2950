package publisher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora-ai/companion/internal/models"
)

type stubPublisher struct{ name string }

func (s *stubPublisher) Name() string { return s.name }

func (s *stubPublisher) Publish(ctx context.Context, post *models.ContentPost) (string, error) {
	return "id", nil
}

func TestRegistryLookupNormalizesNames(t *testing.T) {
	r := NewRegistry(&stubPublisher{name: "Instagram"}, &stubPublisher{name: "telegram"})

	p, ok := r.Lookup("instagram")
	require.True(t, ok)
	assert.Equal(t, "Instagram", p.Name())

	_, ok = r.Lookup("  TELEGRAM ")
	assert.True(t, ok)

	_, ok = r.Lookup("youtube")
	assert.False(t, ok)
}

func TestRegistryNames(t *testing.T) {
	r := NewRegistry(&stubPublisher{name: "instagram"}, &stubPublisher{name: "telegram"})
	assert.ElementsMatch(t, []string{"instagram", "telegram"}, r.Names())
}
