package service

import (
	"context"
	"net/http"
	"strings"

	"restaurant-site/internal/apiclient"
	"restaurant-site/internal/model"

	"github.com/rs/zerolog"
)

// adminService implements AdminService.
type adminService struct {
	api     API
	session SessionState
	logger  zerolog.Logger
}

// NewAdminService creates a new admin service.
func NewAdminService(api API, session SessionState, logger zerolog.Logger) AdminService {
	return &adminService{
		api:     api,
		session: session,
		logger:  logger.With().Str("service", "admin").Logger(),
	}
}

// Login authenticates with the backend. On success the session flag is set
// and any bearer token returned is stored.
func (s *adminService) Login(ctx context.Context, username, password string) (*model.LoginResponse, error) {
	errs := make(map[string]string)
	if strings.TrimSpace(username) == "" {
		errs["username"] = "Username is required"
	}
	if password == "" {
		errs["password"] = "Password is required"
	}
	if len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	var out model.LoginResponse
	err := s.api.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/admin/login",
		Body:   model.LoginRequest{Username: username, Password: password},
	}, &out)
	if err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("admin login failed")
		return nil, err
	}

	if err := s.session.SetAuthenticated(ctx, true); err != nil {
		s.logger.Warn().Err(err).Msg("failed to persist admin session")
	}
	if err := s.session.SetToken(ctx, out.Token); err != nil {
		s.logger.Warn().Err(err).Msg("failed to persist admin token")
	}

	s.logger.Info().Int("admin_id", out.AdminID).Msg("admin logged in")

	return &out, nil
}

// Logout ends the backend session. The local session is cleared only once
// the backend has confirmed.
func (s *adminService) Logout(ctx context.Context) (*model.MessageResponse, error) {
	resp, err := send(ctx, s.api, http.MethodPost, "/admin/logout", nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("admin logout failed")
		return nil, err
	}

	if err := s.session.ClearSession(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear admin session")
	}

	s.logger.Info().Msg("admin logged out")

	return resp, nil
}

// Status checks the backend session. A negative answer or any failure
// clears the local session; only a failure is returned as an error.
func (s *adminService) Status(ctx context.Context) (bool, error) {
	var out model.AdminStatus
	err := s.api.Do(ctx, apiclient.Request{Path: "/admin/status"}, &out)
	if err != nil {
		s.logger.Debug().Err(err).Msg("admin status check failed")
		s.clear(ctx)
		return false, err
	}

	if !out.LoggedIn {
		s.clear(ctx)
		return false, nil
	}

	if err := s.session.SetAuthenticated(ctx, true); err != nil {
		s.logger.Warn().Err(err).Msg("failed to persist admin session")
	}
	return true, nil
}

// Health checks that the backend is reachable.
func (s *adminService) Health(ctx context.Context) (*model.HealthStatus, error) {
	return getJSON[model.HealthStatus](ctx, s.api, "/health")
}

func (s *adminService) clear(ctx context.Context) {
	if err := s.session.ClearSession(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear admin session")
	}
}
