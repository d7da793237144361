package service

import (
	"context"
	"strings"

	"restaurant-site/internal/model"
	"restaurant-site/internal/validation"

	"github.com/rs/zerolog"
)

const newsletterPath = "/newsletter"

// newsletterService implements NewsletterService.
type newsletterService struct {
	api    API
	logger zerolog.Logger
}

// NewNewsletterService creates a new newsletter service.
func NewNewsletterService(api API, logger zerolog.Logger) NewsletterService {
	return &newsletterService{
		api:    api,
		logger: logger.With().Str("service", "newsletter").Logger(),
	}
}

// Signup subscribes email to the newsletter.
func (s *newsletterService) Signup(ctx context.Context, email string) (*model.MessageResponse, error) {
	email = strings.TrimSpace(email)
	if err := validation.Newsletter(email).Err(); err != nil {
		return nil, err
	}

	resp, err := create(ctx, s.api, newsletterPath+"/", map[string]string{"email": email})
	if err != nil {
		s.logger.Debug().Err(err).Msg("newsletter signup failed")
		return nil, err
	}

	s.logger.Info().Msg("newsletter signup recorded")

	return resp, nil
}

// List retrieves every signup.
func (s *newsletterService) List(ctx context.Context) ([]model.NewsletterSignup, error) {
	signups, err := listJSON[model.NewsletterSignup](ctx, s.api, newsletterPath+"/all")
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to list newsletter signups")
		return nil, err
	}
	return signups, nil
}

// Export downloads every signup as CSV.
func (s *newsletterService) Export(ctx context.Context) ([]byte, error) {
	data, _, err := s.api.Fetch(ctx, csvRequest(newsletterPath+"/export"))
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to export newsletter signups")
		return nil, err
	}
	return data, nil
}
