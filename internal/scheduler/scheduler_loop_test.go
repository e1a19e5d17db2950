package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/velora-ai/companion/internal/models"
	"github.com/velora-ai/companion/internal/publisher"
)

func newTestScheduler() (*ContentScheduler, *fakePostRepo) {
	repo := newFakePostRepo()
	coordinator := NewCoordinator(repo, publisher.NewRegistry(&fakePublisher{name: "telegram"}), discardLogger())
	settings := models.DefaultSettings()
	settings.AutoSchedule = false
	generator := NewGenerator(repo, &fakeSettingsRepo{settings: settings, found: true}, &fakeContentSource{}, discardLogger())

	s := New(coordinator, generator, discardLogger())
	s.interval = 10 * time.Millisecond
	return s, repo
}

func TestSchedulerStartStop(t *testing.T) {
	s, _ := newTestScheduler()

	assert.False(t, s.IsRunning())
	s.Start()
	assert.True(t, s.IsRunning())

	s.Stop()
	assert.False(t, s.IsRunning())
}

func TestSchedulerStartTwiceIsNoop(t *testing.T) {
	s, _ := newTestScheduler()

	s.Start()
	s.Start()
	assert.True(t, s.IsRunning())
	s.Stop()
}

func TestSchedulerStopWithoutStart(t *testing.T) {
	s, _ := newTestScheduler()
	// Must not panic or block.
	s.Stop()
	assert.False(t, s.IsRunning())
}

func TestSchedulerConcurrentStops(t *testing.T) {
	s, _ := newTestScheduler()
	s.Start()

	// All stops fire at once; only the first may close the stop channel,
	// the rest must wait for the loop to drain without panicking.
	gate := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-gate
			s.Stop()
		}()
	}
	close(gate)
	wg.Wait()

	assert.False(t, s.IsRunning())
}

func TestSchedulerCanRestart(t *testing.T) {
	s, _ := newTestScheduler()

	s.Start()
	s.Stop()
	s.Start()
	assert.True(t, s.IsRunning())
	s.Stop()
}
