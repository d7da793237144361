package service

import (
	"context"
	"net/http"

	"restaurant-site/internal/fallback"
	"restaurant-site/internal/model"

	"github.com/rs/zerolog"
)

const aboutInfoPath = "/about/info"

// aboutService implements AboutService.
type aboutService struct {
	api      API
	fallback model.AboutInfo
	logger   zerolog.Logger
}

// NewAboutService creates a new about service. content supplies the page shown
// when the backend cannot.
func NewAboutService(api API, content fallback.Content, logger zerolog.Logger) AboutService {
	return &aboutService{
		api:      api,
		fallback: content.About,
		logger:   logger.With().Str("service", "about").Logger(),
	}
}

// Get retrieves the about page copy.
func (s *aboutService) Get(ctx context.Context) (*model.AboutInfo, error) {
	info, err := getJSON[model.AboutInfo](ctx, s.api, aboutInfoPath)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to get about info")
		return nil, err
	}
	return info, nil
}

// Create stores the about page copy. The backend keeps a single record.
func (s *aboutService) Create(ctx context.Context, info model.AboutInfo) (*model.MessageResponse, error) {
	return create(ctx, s.api, aboutInfoPath, info)
}

// Update replaces the about page copy.
func (s *aboutService) Update(ctx context.Context, info model.AboutInfo) (*model.MessageResponse, error) {
	return send(ctx, s.api, http.MethodPut, aboutInfoPath, info)
}

// Load returns the backend copy, falling back to the static copy.
func (s *aboutService) Load(ctx context.Context) model.Sourced[model.AboutInfo] {
	info, err := s.Get(ctx)
	if err != nil {
		s.logger.Info().Err(err).Msg("using static about info")
		return model.FromFallback(s.fallback, err.Error())
	}
	if info.Empty() {
		return model.FromFallback(s.fallback, "backend returned no about info")
	}
	return model.FromBackend(*info)
}
