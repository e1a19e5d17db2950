package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateProducesCompleteBundle(t *testing.T) {
	svc := NewContentService("")

	bundle := svc.Generate("lifestyle")
	require.NotNil(t, bundle)
	assert.NotEmpty(t, bundle.Title)
	assert.NotEmpty(t, bundle.Caption)
	assert.NotEmpty(t, bundle.Hashtags)
	assert.NotEmpty(t, bundle.ImageURL)
	assert.Contains(t, bundle.ImagePrompt, "lifestyle style")
}

func TestGenerateThemedWeavesThemeIn(t *testing.T) {
	svc := NewContentService("")

	bundle := svc.GenerateThemed("summer vibes", "")
	assert.Contains(t, bundle.Title, "about summer vibes")
	assert.Contains(t, bundle.Caption, "about summer vibes")
	assert.Contains(t, bundle.Hashtags, "#summervibes")
	assert.Contains(t, bundle.ImagePrompt, "about summer vibes")
}

func TestGenerateUsesPersonaPrompt(t *testing.T) {
	svc := NewContentService("a woman with red hair")
	bundle := svc.Generate("")
	assert.True(t, strings.HasPrefix(bundle.ImagePrompt, "a woman with red hair"))
}

func TestStockPhotoReturnsKnownAsset(t *testing.T) {
	svc := NewContentService("")
	for i := 0; i < 20; i++ {
		url := svc.StockPhoto()
		assert.True(t, strings.HasPrefix(url, "/static/assets/"))
	}
}
