package service

import (
	"context"

	"restaurant-site/internal/model"

	"github.com/rs/zerolog"
)

// emailService implements EmailService.
type emailService struct {
	api    API
	logger zerolog.Logger
}

// NewEmailService creates a new email service.
func NewEmailService(api API, logger zerolog.Logger) EmailService {
	return &emailService{
		api:    api,
		logger: logger.With().Str("service", "email").Logger(),
	}
}

func (s *emailService) SendReservationConfirmation(ctx context.Context, r model.Reservation) (*model.MessageResponse, error) {
	return s.post(ctx, "reservation-confirmation", r)
}

func (s *emailService) SendReservationCancellation(ctx context.Context, r model.Reservation) (*model.MessageResponse, error) {
	return s.post(ctx, "reservation-cancellation", r)
}

func (s *emailService) SendReservationUpdate(ctx context.Context, r model.Reservation) (*model.MessageResponse, error) {
	return s.post(ctx, "reservation-update", r)
}

func (s *emailService) SendNewsletterWelcome(ctx context.Context, email string) (*model.MessageResponse, error) {
	return s.post(ctx, "newsletter-welcome", map[string]string{"email": email})
}

func (s *emailService) SendAdminNotification(ctx context.Context, r model.Reservation) (*model.MessageResponse, error) {
	return s.post(ctx, "admin-notification", r)
}

// Test asks the backend to send a test email.
func (s *emailService) Test(ctx context.Context) (*model.MessageResponse, error) {
	return s.post(ctx, "test", map[string]bool{"test": true})
}

func (s *emailService) post(ctx context.Context, kind string, body any) (*model.MessageResponse, error) {
	resp, err := create(ctx, s.api, "/email/"+kind, body)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", kind).Msg("failed to send email")
		return nil, err
	}

	s.logger.Debug().Str("email", kind).Msg("email sent")

	return resp, nil
}
