package publisher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/velora-ai/companion/configs"
)

func tempReelFiles(t *testing.T) []string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(os.TempDir(), "reel-*.mp4"))
	require.NoError(t, err)
	return files
}

func TestDownloadMediaWritesFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("video-bytes"))
	}))
	defer srv.Close()

	p := NewYouTubePublisher(&config.Config{}, nil, srv.Client())

	name, err := p.downloadMedia(context.Background(), srv.URL+"/reel.mp4")
	require.NoError(t, err)
	defer os.Remove(name)

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, []byte("video-bytes"), data)
}

func TestDownloadMediaRemovesTempFileOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewYouTubePublisher(&config.Config{}, nil, srv.Client())
	before := tempReelFiles(t)

	_, err := p.downloadMedia(context.Background(), srv.URL+"/reel.mp4")
	require.Error(t, err)

	assert.Len(t, tempReelFiles(t), len(before))
}
