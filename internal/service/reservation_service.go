package service

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"restaurant-site/internal/apiclient"
	"restaurant-site/internal/model"
	"restaurant-site/internal/validation"

	"github.com/rs/zerolog"
)

const reservationsPath = "/reservations"

// reservationService implements ReservationService.
type reservationService struct {
	api    API
	logger zerolog.Logger
	now    func() time.Time
}

// NewReservationService creates a new reservation service.
func NewReservationService(api API, logger zerolog.Logger) ReservationService {
	return &reservationService{
		api:    api,
		logger: logger.With().Str("service", "reservation").Logger(),
		now:    time.Now,
	}
}

// Create validates the form locally, then books a table. A validation
// failure never reaches the network.
func (s *reservationService) Create(ctx context.Context, req model.ReservationRequest) (*model.ReservationCreated, error) {
	if err := validation.Reservation(req, s.now()).Err(); err != nil {
		s.logger.Debug().Err(err).Msg("reservation form rejected")
		return nil, err
	}

	var out model.ReservationCreated
	err := s.api.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   reservationsPath + "/",
		Body:   req,
	}, &out)
	if err != nil {
		s.logger.Warn().Err(err).Str("time_slot", req.TimeSlot).Msg("failed to create reservation")
		return nil, err
	}

	s.logger.Info().
		Int("reservation_id", out.Reservation.ID).
		Int("table_number", out.Reservation.TableNumber).
		Msg("reservation created")

	return &out, nil
}

// List retrieves every reservation.
func (s *reservationService) List(ctx context.Context) ([]model.Reservation, error) {
	var out struct {
		Reservations []model.Reservation `json:"reservations"`
	}
	if err := s.api.Do(ctx, apiclient.Request{Path: reservationsPath + "/all"}, &out); err != nil {
		s.logger.Warn().Err(err).Msg("failed to list reservations")
		return nil, err
	}

	if out.Reservations == nil {
		out.Reservations = []model.Reservation{}
	}

	s.logger.Debug().Int("count", len(out.Reservations)).Msg("retrieved reservations")

	return out.Reservations, nil
}

// Update changes an existing reservation.
func (s *reservationService) Update(ctx context.Context, id int, upd model.ReservationUpdate) (*model.MessageResponse, error) {
	if upd.NumberOfGuests != nil && (*upd.NumberOfGuests < model.MinGuests || *upd.NumberOfGuests > model.MaxGuests) {
		return nil, model.NewValidationError(map[string]string{"number_of_guests": validation.MsgGuestsRange})
	}

	resp, err := update(ctx, s.api, reservationsPath, id, upd)
	if err != nil {
		s.logger.Warn().Err(err).Int("reservation_id", id).Msg("failed to update reservation")
		return nil, err
	}
	return resp, nil
}

// Delete removes a reservation by ID.
func (s *reservationService) Delete(ctx context.Context, id int) (*model.MessageResponse, error) {
	resp, err := remove(ctx, s.api, reservationsPath, id)
	if err != nil {
		s.logger.Warn().Err(err).Int("reservation_id", id).Msg("failed to delete reservation")
		return nil, err
	}

	s.logger.Info().Int("reservation_id", id).Msg("reservation deleted")

	return resp, nil
}

// Lookup fetches a reservation by email and ID. The backend decides whether
// the pair matches; both halves are always sent.
func (s *reservationService) Lookup(ctx context.Context, pair model.LookupPair) (*model.Reservation, error) {
	if err := validateLookup(pair); err != nil {
		return nil, err
	}

	var out model.Reservation
	err := s.api.Do(ctx, apiclient.Request{
		Path: reservationsPath + "/lookup",
		Query: url.Values{
			"email":          []string{pair.Email},
			"reservation_id": []string{strconv.Itoa(pair.ReservationID)},
		},
	}, &out)
	if err != nil {
		s.logger.Debug().Err(err).Int("reservation_id", pair.ReservationID).Msg("reservation lookup failed")
		return nil, err
	}

	return &out, nil
}

// Cancel deletes a reservation by email and ID.
func (s *reservationService) Cancel(ctx context.Context, pair model.LookupPair) (*model.MessageResponse, error) {
	if err := validateLookup(pair); err != nil {
		return nil, err
	}

	resp, err := send(ctx, s.api, http.MethodDelete, reservationsPath+"/lookup", pair)
	if err != nil {
		s.logger.Debug().Err(err).Int("reservation_id", pair.ReservationID).Msg("reservation cancel failed")
		return nil, err
	}

	s.logger.Info().Int("reservation_id", pair.ReservationID).Msg("reservation cancelled by customer")

	return resp, nil
}

// Export downloads every reservation as CSV.
func (s *reservationService) Export(ctx context.Context) ([]byte, error) {
	data, _, err := s.api.Fetch(ctx, csvRequest(reservationsPath+"/export"))
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to export reservations")
		return nil, err
	}
	return data, nil
}

func validateLookup(pair model.LookupPair) error {
	errs := make(map[string]string)
	if !validation.Email(strings.TrimSpace(pair.Email)) {
		errs["email"] = validation.MsgEmail
	}
	if pair.ReservationID <= 0 {
		errs["reservation_id"] = "Reservation ID is required"
	}
	if len(errs) > 0 {
		return model.NewValidationError(errs)
	}
	return nil
}
