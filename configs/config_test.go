package config

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstagramTokenRoundTrip(t *testing.T) {
	var ig Instagram
	assert.Empty(t, ig.AccessToken())

	ig.SetAccessToken("tok-1")
	assert.Equal(t, "tok-1", ig.AccessToken())
}

func TestInstagramTokenConcurrentAccess(t *testing.T) {
	var ig Instagram
	ig.SetAccessToken("initial")

	// Refresh job writes while publishes read; must be race-free.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				ig.SetAccessToken("refreshed")
				_ = ig.AccessToken()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, "refreshed", ig.AccessToken())
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()
	assert.Equal(t, "127.0.0.1:6379", cfg.RedisURI)
	assert.Equal(t, "companion_session", cfg.CookieName)
	assert.Equal(t, "https://api-m.sandbox.paypal.com", cfg.PayPalAPIBase)
}
