package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/h2non/filetype"
	gonanoid "github.com/matoous/go-nanoid/v2"

	config "github.com/velora-ai/companion/configs"
)

// MediaService stores generated media (images, reels, speech audio) in R2 and
// returns public URLs for publishing.
type MediaService interface {
	Upload(ctx context.Context, data []byte, prefix string) (string, error)
	Remove(ctx context.Context, key string) error
	PublicURL(key string) string
}

type mediaService struct {
	client    *s3.Client
	bucket    string
	publicURL string
	logger    *slog.Logger
}

func NewMediaService(cfg config.R2, logger *slog.Logger) (MediaService, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("loading r2 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID))
	})

	return &mediaService{
		client:    client,
		bucket:    cfg.BucketName,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		logger:    logger,
	}, nil
}

// Upload validates the media bytes, stores them under a generated key and
// returns the public URL. Only images, video and audio are accepted.
func (m *mediaService) Upload(ctx context.Context, data []byte, prefix string) (string, error) {
	kind, err := filetype.Match(data)
	if err != nil {
		return "", fmt.Errorf("detecting file type: %w", err)
	}
	if kind == filetype.Unknown {
		return "", fmt.Errorf("unrecognized media format")
	}

	switch kind.MIME.Type {
	case "image", "video", "audio":
	default:
		return "", fmt.Errorf("unsupported media type: %s", kind.MIME.Value)
	}

	id, err := gonanoid.New()
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("%s/%s.%s", prefix, id, kind.Extension)

	_, err = m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(kind.MIME.Value),
	})
	if err != nil {
		return "", fmt.Errorf("uploading media: %w", err)
	}

	m.logger.Info("media uploaded", "key", key, "size", len(data))
	return m.PublicURL(key), nil
}

func (m *mediaService) Remove(ctx context.Context, key string) error {
	_, err := m.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (m *mediaService) PublicURL(key string) string {
	return m.publicURL + "/" + key
}
