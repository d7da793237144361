package model

// Guest limits for a single reservation.
const (
	MinGuests = 1
	MaxGuests = 20
)

// Reservation is a table booking as returned by the backend.
type Reservation struct {
	ID             int      `json:"id"`
	CustomerName   string   `json:"customer_name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone,omitempty"`
	TimeSlot       DateTime `json:"time_slot"`
	NumberOfGuests int      `json:"number_of_guests"`
	TableNumber    int      `json:"table_number,omitempty"`
}

// ReservationRequest is the payload for creating a reservation. TimeSlot is
// kept as the raw form value so validation can report unparsable input.
type ReservationRequest struct {
	CustomerName   string `json:"customer_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	TimeSlot       string `json:"time_slot"`
	NumberOfGuests int    `json:"number_of_guests"`
}

// ReservationUpdate carries the admin-editable fields. Nil fields are left
// untouched by the backend.
type ReservationUpdate struct {
	TimeSlot       *string `json:"time_slot,omitempty"`
	NumberOfGuests *int    `json:"number_of_guests,omitempty"`
	TableNumber    *int    `json:"table_number,omitempty"`
}

// ReservationCreated is the backend response to a successful booking.
type ReservationCreated struct {
	Message     string      `json:"message"`
	Reservation Reservation `json:"reservation"`
}

// LookupPair identifies a reservation for customer self-service.
type LookupPair struct {
	Email         string `json:"email"`
	ReservationID int    `json:"reservation_id"`
}
