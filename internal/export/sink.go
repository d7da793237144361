// Package export saves CSV downloads produced by the admin exports.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Export file names used by the admin dashboard.
const (
	ReservationsFile = "reservations.csv"
	NewsletterFile   = "newsletter_signups.csv"
)

// Sink stores an exported file and returns where it ended up.
type Sink interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

// fileSink implements Sink on the local file system.
type fileSink struct {
	dir    string
	logger zerolog.Logger
}

// NewFileSink creates a sink writing into dir.
func NewFileSink(dir string, logger zerolog.Logger) Sink {
	return &fileSink{
		dir:    dir,
		logger: logger.With().Str("component", "file-export-sink").Logger(),
	}
}

// Save writes data to dir/name. Only the base of name is used.
func (s *fileSink) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("failed to write export file")
		return "", fmt.Errorf("failed to write export file %s: %w", path, err)
	}

	s.logger.Info().Str("path", path).Int("bytes", len(data)).Msg("export saved")

	return path, nil
}

// fallbackSink tries S3 first, then falls back to the local file system.
type fallbackSink struct {
	s3        Sink
	file      Sink
	s3Enabled bool
	logger    zerolog.Logger
}

// NewFallbackSink creates a sink that tries s3 first when enabled, then
// falls back to file. If s3 is nil only file is used.
func NewFallbackSink(s3, file Sink, s3Enabled bool, logger zerolog.Logger) Sink {
	return &fallbackSink{
		s3:        s3,
		file:      file,
		s3Enabled: s3Enabled,
		logger:    logger.With().Str("component", "fallback-export-sink").Logger(),
	}
}

func (s *fallbackSink) Save(ctx context.Context, name string, data []byte) (string, error) {
	if s.s3Enabled && s.s3 != nil {
		location, err := s.s3.Save(ctx, name, data)
		if err == nil {
			return location, nil
		}

		s.logger.Warn().
			Err(err).
			Str("name", name).
			Msg("failed to save export to S3, falling back to local file system")
	} else {
		s.logger.Debug().
			Bool("s3_enabled", s.s3Enabled).
			Bool("has_s3_sink", s.s3 != nil).
			Msg("S3 disabled or not configured, using local file system")
	}

	return s.file.Save(ctx, name, data)
}
