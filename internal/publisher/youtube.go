package publisher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	config "github.com/velora-ai/companion/configs"
	"github.com/velora-ai/companion/internal/models"
)

// TokenSource yields a current OAuth access token for the channel account.
// The refresh job keeps the underlying token fresh.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// YouTubePublisher uploads reel content as public videos. Image posts are
// rejected since YouTube has no equivalent surface.
type YouTubePublisher struct {
	cfg    *config.Config
	tokens TokenSource
	client *http.Client
}

func NewYouTubePublisher(cfg *config.Config, tokens TokenSource, client *http.Client) *YouTubePublisher {
	if client == nil {
		client = http.DefaultClient
	}
	return &YouTubePublisher{cfg: cfg, tokens: tokens, client: client}
}

func (p *YouTubePublisher) Name() string { return "youtube" }

func (p *YouTubePublisher) Publish(ctx context.Context, post *models.ContentPost) (string, error) {
	if post.ContentType != models.ContentTypeReel {
		return "", fmt.Errorf("youtube only accepts reel content, got %q", post.ContentType)
	}

	accessToken, err := p.tokens.AccessToken(ctx)
	if err != nil {
		return "", fmt.Errorf("youtube token: %w", err)
	}

	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))
	service, err := youtube.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return "", fmt.Errorf("creating YouTube service: %w", err)
	}

	tempFile, err := p.downloadMedia(ctx, post.MediaURL())
	if err != nil {
		return "", err
	}
	defer os.Remove(tempFile)

	file, err := os.Open(tempFile)
	if err != nil {
		return "", fmt.Errorf("opening video file: %w", err)
	}
	defer file.Close()

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       post.Title,
			Description: post.Caption + "\n\n" + post.Hashtags,
			CategoryId:  "22",
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus: "public",
		},
	}

	call := service.Videos.Insert([]string{"snippet", "status"}, video)
	response, err := call.Media(file).Do()
	if err != nil {
		return "", fmt.Errorf("uploading video: %w", err)
	}

	return response.Id, nil
}

func (p *YouTubePublisher) downloadMedia(ctx context.Context, url string) (name string, err error) {
	tempFile, err := os.CreateTemp("", "reel-*.mp4")
	if err != nil {
		return "", fmt.Errorf("creating temporary file: %w", err)
	}
	// On any failure past this point the temp file is removed; on success
	// the caller owns it.
	defer func() {
		tempFile.Close()
		if err != nil {
			os.Remove(tempFile.Name())
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected response status: %d", resp.StatusCode)
	}

	if _, err = io.Copy(tempFile, resp.Body); err != nil {
		return "", fmt.Errorf("saving media: %w", err)
	}

	return tempFile.Name(), nil
}

// RefreshableToken is a TokenSource backed by an OAuth refresh token using
// the Google endpoint.
type RefreshableToken struct {
	conf         *oauth2.Config
	refreshToken string
}

func NewRefreshableToken(clientID, clientSecret, refreshToken string) *RefreshableToken {
	return &RefreshableToken{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Scopes:       []string{"https://www.googleapis.com/auth/youtube.upload"},
			Endpoint:     google.Endpoint,
		},
		refreshToken: refreshToken,
	}
}

func (r *RefreshableToken) AccessToken(ctx context.Context) (string, error) {
	ts := r.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: r.refreshToken})
	token, err := ts.Token()
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}
