package model

// LoginRequest carries admin credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned by a successful admin login.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
	AdminID int    `json:"admin_id"`
}

// AdminStatus is the backend's view of the admin session.
type AdminStatus struct {
	LoggedIn bool `json:"logged_in"`
	AdminID  int  `json:"admin_id,omitempty"`
}

// MessageResponse is the generic acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
	ID      int    `json:"id,omitempty"`
}

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Source tells where a page's data came from.
type Source string

const (
	SourceBackend  Source = "backend"
	SourceFallback Source = "fallback"
)

// Sourced tags data with its origin so degraded mode is explicit.
type Sourced[T any] struct {
	Source Source `json:"source"`
	Data   T      `json:"data"`
	Reason string `json:"reason,omitempty"`
}

// FromBackend wraps data fetched from the backend.
func FromBackend[T any](data T) Sourced[T] {
	return Sourced[T]{Source: SourceBackend, Data: data}
}

// FromFallback wraps static data, recording why the backend was not used.
func FromFallback[T any](data T, reason string) Sourced[T] {
	return Sourced[T]{Source: SourceFallback, Data: data, Reason: reason}
}

// Degraded reports whether s holds fallback data.
func (s Sourced[T]) Degraded() bool {
	return s.Source == SourceFallback
}
