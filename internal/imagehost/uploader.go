// Package imagehost uploads pictures directly to the third-party image host
// and returns their public URL.
package imagehost

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"restaurant-site/internal/apiclient"
	"restaurant-site/internal/model"
	"restaurant-site/internal/validation"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the image host's upload API root.
	DefaultBaseURL = "https://api.cloudinary.com/v1_1"

	// DefaultMaxSizeMB is the largest accepted upload.
	DefaultMaxSizeMB = 5

	uploadPath = "/image/upload"
)

// Config configures an Uploader.
type Config struct {
	BaseURL      string
	CloudName    string
	UploadPreset string
	MaxSizeMB    int
	Timeout      time.Duration
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id,omitempty"`
}

// Uploader sends image files to the image host.
type Uploader struct {
	api       *apiclient.Client
	preset    string
	maxSizeMB int
	logger    zerolog.Logger
}

// New creates an Uploader for the configured cloud.
func New(cfg Config, logger zerolog.Logger) (*Uploader, error) {
	if strings.TrimSpace(cfg.CloudName) == "" {
		return nil, fmt.Errorf("image host cloud name is required")
	}

	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	maxSize := cfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = DefaultMaxSizeMB
	}

	logger = logger.With().Str("component", "image-host").Str("cloud", cfg.CloudName).Logger()

	api, err := apiclient.New(apiclient.Options{
		BaseURL: strings.TrimRight(base, "/") + "/" + cfg.CloudName,
		Timeout: cfg.Timeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create image host client: %w", err)
	}

	return &Uploader{
		api:       api,
		preset:    cfg.UploadPreset,
		maxSizeMB: maxSize,
		logger:    logger,
	}, nil
}

// Upload validates the file and uploads it, returning its secure URL.
// Failures carry the same error kinds as backend calls.
func (u *Uploader) Upload(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error) {
	if err := validation.ImageFile(contentType, size, u.maxSizeMB).Err(); err != nil {
		return "", err
	}

	var out uploadResponse
	err := u.api.Upload(ctx, uploadPath, apiclient.FilePart{
		Field:       "file",
		Filename:    filename,
		ContentType: contentType,
		Reader:      r,
	}, map[string]string{"upload_preset": u.preset}, &out)
	if err != nil {
		u.logger.Warn().Err(err).Str("filename", filename).Msg("image upload failed")
		return "", err
	}

	if out.SecureURL == "" {
		return "", &model.Error{Kind: model.KindHTTP, Status: http.StatusOK, Message: "Image host returned no URL"}
	}

	u.logger.Info().Str("filename", filename).Str("url", out.SecureURL).Msg("image uploaded")

	return out.SecureURL, nil
}
