package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"restaurant-site/internal/apiclient"
	"restaurant-site/internal/cli"
	"restaurant-site/internal/config"
	"restaurant-site/internal/export"
	"restaurant-site/internal/fallback"
	"restaurant-site/internal/imagehost"
	"restaurant-site/internal/service"
	"restaurant-site/internal/session"

	"github.com/rs/zerolog"
)

func main() {
	code, err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(code)
}

func run(args []string) (int, error) {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return 0, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Admin session cache
	store, closeStore, err := newSessionStore(ctx, cfg, logger)
	if err != nil {
		return 0, fmt.Errorf("failed to initialize session store: %w", err)
	}
	defer closeStore()

	sess := session.New(store, logger)

	// Backend client
	api, err := apiclient.New(apiclient.Options{
		BaseURL:     cfg.API.BaseURL,
		Timeout:     cfg.API.Timeout,
		TokenSource: sess,
	}, logger)
	if err != nil {
		return 0, fmt.Errorf("failed to initialize API client: %w", err)
	}

	content := loadFallbackContent(ctx, cfg, logger)

	// Initialize services
	services := cli.Services{
		Reservations: service.NewReservationService(api, logger),
		Menu:         service.NewMenuService(api, content, logger),
		Gallery:      service.NewGalleryService(api, content, logger),
		Newsletter:   service.NewNewsletterService(api, logger),
		About:        service.NewAboutService(api, content, logger),
		Admin:        service.NewAdminService(api, sess, logger),
		Email:        service.NewEmailService(api, logger),
	}

	// Export sink with S3 and local fallback
	fileSink := export.NewFileSink(cfg.Export.Dir, logger)
	var s3Sink export.Sink
	if cfg.S3.Enabled {
		s3Sink, err = export.NewS3Sink(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 export sink, falling back to local file system only")
		}
	}
	sink := export.NewFallbackSink(s3Sink, fileSink, cfg.S3.Enabled, logger)

	opts := cli.Options{
		Session:        sess,
		Sink:           sink,
		MaxImageSizeMB: cfg.ImageHost.MaxSizeMB,
	}

	// Direct image host uploads are optional
	if cfg.ImageHost.CloudName != "" {
		uploader, err := imagehost.New(imagehost.Config{
			BaseURL:      cfg.ImageHost.BaseURL,
			CloudName:    cfg.ImageHost.CloudName,
			UploadPreset: cfg.ImageHost.UploadPreset,
			MaxSizeMB:    cfg.ImageHost.MaxSizeMB,
			Timeout:      cfg.API.Timeout,
		}, logger)
		if err != nil {
			return 0, fmt.Errorf("failed to initialize image host: %w", err)
		}
		opts.Images = uploader
	}

	app := cli.New(services, opts, logger)

	return app.Run(ctx, args), nil
}

func newSessionStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (session.Store, func(), error) {
	switch cfg.Session.Backend {
	case "memory":
		return session.NewMemoryStore(), func() {}, nil
	case "redis":
		client, err := session.NewRedisClient(ctx, cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				logger.Warn().Err(err).Msg("failed to close redis client")
			}
		}
		return session.NewRedisStore(client, cfg.Session.KeyPrefix, cfg.Session.TTL, logger), closeFn, nil
	default:
		return session.NewFileStore(cfg.Session.File), func() {}, nil
	}
}

// loadFallbackContent reads the optional override for the static pages,
// trying S3 before the local file system.
func loadFallbackContent(ctx context.Context, cfg *config.Config, logger zerolog.Logger) fallback.Content {
	if cfg.Fallback.File == "" {
		return fallback.Default()
	}

	var s3Loader fallback.Loader
	if cfg.S3.Enabled {
		var err error
		s3Loader, err = fallback.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 content loader, falling back to local file system only")
		}
	}

	loader := fallback.NewFallbackLoader(s3Loader, fallback.NewFileLoader(logger), cfg.Fallback.S3Prefix, cfg.S3.Enabled, logger)
	return fallback.LoadOrDefault(ctx, loader, cfg.Fallback.File, logger)
}
