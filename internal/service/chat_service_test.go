package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/velora-ai/companion/internal/models"
)

func TestPickModelByFlirtLevel(t *testing.T) {
	s := models.DefaultSettings()
	s.DefaultModel = "default"
	s.HighFlirtModel = "high"
	s.MediumFlirtModel = "medium"
	s.NSFWModel = "nsfw"

	s.FlirtLevel = 9
	assert.Equal(t, "high", PickModel(s, false))

	s.FlirtLevel = 8
	assert.Equal(t, "high", PickModel(s, false))

	s.FlirtLevel = 6
	assert.Equal(t, "medium", PickModel(s, false))

	s.FlirtLevel = 3
	assert.Equal(t, "default", PickModel(s, false))
}

func TestPickModelNSFWRouting(t *testing.T) {
	s := models.DefaultSettings()
	s.DefaultModel = "default"
	s.NSFWModel = "nsfw"
	s.FlirtLevel = 3

	s.AllowNSFW = true
	assert.Equal(t, "nsfw", PickModel(s, true))

	// NSFW content disabled routes through the normal pick.
	s.AllowNSFW = false
	assert.Equal(t, "default", PickModel(s, true))
}

func TestPickModelIgnoresFlirtWhenDisabled(t *testing.T) {
	s := models.DefaultSettings()
	s.DefaultModel = "default"
	s.HighFlirtModel = "high"
	s.FlirtLevel = 10
	s.UseFlirtModelPick = false

	assert.Equal(t, "default", PickModel(s, false))
}
