package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora-ai/companion/internal/models"
)

type memSettingsRepo struct {
	stored *models.CompanionSettings
}

func (r *memSettingsRepo) Get(ctx context.Context) (*models.CompanionSettings, bool, error) {
	if r.stored == nil {
		return nil, false, nil
	}
	return r.stored, true, nil
}

func (r *memSettingsRepo) Create(ctx context.Context, s *models.CompanionSettings) (int64, error) {
	r.stored = s
	return 1, nil
}

func (r *memSettingsRepo) Update(ctx context.Context, s *models.CompanionSettings) error {
	r.stored = s
	return nil
}

func TestSettingsGetFallsBackToDefaults(t *testing.T) {
	svc := NewSettingsService(&memSettingsRepo{})

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings().ImagesPerDay, settings.ImagesPerDay)
}

func TestSettingsSaveCreatesThenUpdates(t *testing.T) {
	repo := &memSettingsRepo{}
	svc := NewSettingsService(repo)

	first := models.DefaultSettings()
	saved, err := svc.Save(context.Background(), first)
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)

	second := models.DefaultSettings()
	second.ImagesPerDay = 3
	saved, err = svc.Save(context.Background(), second)
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)
	assert.Equal(t, 3, repo.stored.ImagesPerDay)
}

func TestSettingsSaveValidation(t *testing.T) {
	svc := NewSettingsService(&memSettingsRepo{})

	bad := models.DefaultSettings()
	bad.FlirtLevel = 11
	_, err := svc.Save(context.Background(), bad)
	assert.Error(t, err)

	bad = models.DefaultSettings()
	bad.PostTimeStart = 21
	bad.PostTimeEnd = 9
	_, err = svc.Save(context.Background(), bad)
	assert.Error(t, err)

	bad = models.DefaultSettings()
	bad.PostDays = ""
	_, err = svc.Save(context.Background(), bad)
	assert.Error(t, err)

	bad = models.DefaultSettings()
	bad.ImagesPerDay = -1
	_, err = svc.Save(context.Background(), bad)
	assert.Error(t, err)
}
