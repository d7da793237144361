package fallback

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"restaurant-site/internal/model"

	"github.com/rs/zerolog"
)

// Loader reads a content override document.
type Loader interface {
	Load(ctx context.Context, path string) (Content, error)
}

// document is the on-disk override format. Sections left out keep their
// built-in copy.
type document struct {
	Menu    *model.Menu      `json:"menu"`
	Gallery *model.Gallery   `json:"gallery"`
	About   *model.AboutInfo `json:"about"`
}

// decode reads a document from r, gunzipping when name ends in .gz.
func decode(r io.Reader, name string) (Content, error) {
	if strings.HasSuffix(name, ".gz") {
		gzipReader, err := gzip.NewReader(r)
		if err != nil {
			return Content{}, fmt.Errorf("failed to create gzip reader for %s: %w", name, err)
		}
		defer gzipReader.Close()
		r = gzipReader
	}

	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Content{}, fmt.Errorf("failed to decode content document %s: %w", name, err)
	}

	content := Default()
	if doc.Menu != nil && doc.Menu.ItemCount() > 0 {
		content.Menu = *doc.Menu
	}
	if doc.Gallery != nil && !doc.Gallery.Empty() {
		content.Gallery = *doc.Gallery
	}
	if doc.About != nil && !doc.About.Empty() {
		content.About = *doc.About
	}
	return content, nil
}

// fileLoader implements Loader for documents on the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based content loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "content-loader").Logger(),
	}
}

func (l *fileLoader) Load(ctx context.Context, path string) (Content, error) {
	if err := ctx.Err(); err != nil {
		return Content{}, err
	}

	l.logger.Info().Str("file", path).Msg("loading content file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open content file")
		return Content{}, fmt.Errorf("failed to open content file %s: %w", path, err)
	}
	defer file.Close()

	content, err := decode(file, path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read content file")
		return Content{}, err
	}

	l.logger.Info().
		Str("file", path).
		Int("menu_items", content.Menu.ItemCount()).
		Int("gallery_images", len(content.Gallery.Images)).
		Msg("content file loaded successfully")

	return content, nil
}

// fallbackLoader tries S3 first, then the local file system.
type fallbackLoader struct {
	s3Loader   Loader
	fileLoader Loader
	s3Prefix   string
	logger     zerolog.Logger
	s3Enabled  bool
}

// NewFallbackLoader creates a loader that tries S3 first, then falls back to
// the local file system. A nil s3Loader means local only.
func NewFallbackLoader(s3Loader, fileLoader Loader, s3Prefix string, s3Enabled bool, logger zerolog.Logger) Loader {
	return &fallbackLoader{
		s3Loader:   s3Loader,
		fileLoader: fileLoader,
		s3Prefix:   s3Prefix,
		s3Enabled:  s3Enabled,
		logger:     logger.With().Str("component", "content-fallback-loader").Logger(),
	}
}

// Load prepends the S3 prefix for the S3 attempt and uses path as-is locally.
func (l *fallbackLoader) Load(ctx context.Context, path string) (Content, error) {
	if l.s3Enabled && l.s3Loader != nil {
		s3Key := l.s3Prefix + path

		l.logger.Info().
			Str("s3_key", s3Key).
			Str("local_fallback", path).
			Msg("attempting to load content from S3")

		content, err := l.s3Loader.Load(ctx, s3Key)
		if err == nil {
			return content, nil
		}

		l.logger.Warn().
			Err(err).
			Str("s3_key", s3Key).
			Msg("failed to load content from S3, falling back to local file system")
	} else {
		l.logger.Debug().
			Bool("s3_enabled", l.s3Enabled).
			Bool("has_s3_loader", l.s3Loader != nil).
			Msg("S3 disabled or not configured, using local file system")
	}

	return l.fileLoader.Load(ctx, path)
}

// LoadOrDefault returns the document at path, or the built-in content when
// path is empty or cannot be loaded.
func LoadOrDefault(ctx context.Context, loader Loader, path string, logger zerolog.Logger) Content {
	if path == "" {
		return Default()
	}
	content, err := loader.Load(ctx, path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("using built-in fallback content")
		return Default()
	}
	return content
}
