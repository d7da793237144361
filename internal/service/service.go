package service

import (
	"context"
	"net/http"

	"restaurant-site/internal/apiclient"
	"restaurant-site/internal/model"
)

// API is the backend transport shared by every service.
type API interface {
	Do(ctx context.Context, req apiclient.Request, out any) error
	Fetch(ctx context.Context, req apiclient.Request) ([]byte, http.Header, error)
	Upload(ctx context.Context, path string, file apiclient.FilePart, fields map[string]string, out any) error
}

// SessionState is the admin session cache the admin service keeps in sync.
type SessionState interface {
	SetAuthenticated(ctx context.Context, authenticated bool) error
	SetToken(ctx context.Context, token string) error
	ClearSession(ctx context.Context) error
	IsLoggedIn(ctx context.Context) bool
}

// ReservationService defines operations for table bookings.
type ReservationService interface {
	// Create validates the form locally, then books a table.
	Create(ctx context.Context, req model.ReservationRequest) (*model.ReservationCreated, error)

	// List retrieves every reservation (admin).
	List(ctx context.Context) ([]model.Reservation, error)

	// Update changes time slot, party size or table (admin).
	Update(ctx context.Context, id int, upd model.ReservationUpdate) (*model.MessageResponse, error)

	// Delete removes a reservation by ID (admin).
	Delete(ctx context.Context, id int) (*model.MessageResponse, error)

	// Lookup fetches a reservation by its lookup pair (customer self-service).
	Lookup(ctx context.Context, pair model.LookupPair) (*model.Reservation, error)

	// Cancel deletes a reservation by its lookup pair (customer self-service).
	Cancel(ctx context.Context, pair model.LookupPair) (*model.MessageResponse, error)

	// Export downloads every reservation as CSV (admin).
	Export(ctx context.Context) ([]byte, error)
}

// MenuService defines operations for the menu.
type MenuService interface {
	List(ctx context.Context) (model.Menu, error)
	Get(ctx context.Context, id int) (*model.MenuItem, error)
	Create(ctx context.Context, item model.MenuItem) (*model.MessageResponse, error)
	Update(ctx context.Context, id int, item model.MenuItem) (*model.MessageResponse, error)
	Delete(ctx context.Context, id int) (*model.MessageResponse, error)

	// Load returns the backend menu, or the static menu when the backend
	// fails or has no items.
	Load(ctx context.Context) model.Sourced[model.Menu]
}

// GalleryService defines operations for gallery images, awards and reviews.
type GalleryService interface {
	Images(ctx context.Context) ([]model.GalleryImage, error)
	Image(ctx context.Context, id int) (*model.GalleryImage, error)
	CreateImage(ctx context.Context, img model.GalleryImage) (*model.MessageResponse, error)
	UpdateImage(ctx context.Context, id int, img model.GalleryImage) (*model.MessageResponse, error)
	DeleteImage(ctx context.Context, id int) (*model.MessageResponse, error)

	// UploadImage sends an image file to the backend, which stores it with
	// the image host and records it in the gallery.
	UploadImage(ctx context.Context, file apiclient.FilePart, caption string) (*model.UploadedImage, error)

	Awards(ctx context.Context) ([]model.Award, error)
	Award(ctx context.Context, id int) (*model.Award, error)
	CreateAward(ctx context.Context, award model.Award) (*model.MessageResponse, error)
	UpdateAward(ctx context.Context, id int, award model.Award) (*model.MessageResponse, error)
	DeleteAward(ctx context.Context, id int) (*model.MessageResponse, error)

	Reviews(ctx context.Context) ([]model.Review, error)
	Review(ctx context.Context, id int) (*model.Review, error)
	CreateReview(ctx context.Context, review model.Review) (*model.MessageResponse, error)
	UpdateReview(ctx context.Context, id int, review model.Review) (*model.MessageResponse, error)
	DeleteReview(ctx context.Context, id int) (*model.MessageResponse, error)

	// LoadAll fetches images, awards and reviews concurrently. The first
	// failure cancels the others and is returned.
	LoadAll(ctx context.Context) (*model.Gallery, error)

	// Load is LoadAll with the static gallery as fallback.
	Load(ctx context.Context) model.Sourced[model.Gallery]
}

// NewsletterService defines operations for newsletter signups.
type NewsletterService interface {
	Signup(ctx context.Context, email string) (*model.MessageResponse, error)
	List(ctx context.Context) ([]model.NewsletterSignup, error)
	Export(ctx context.Context) ([]byte, error)
}

// AboutService defines operations for the about page copy.
type AboutService interface {
	Get(ctx context.Context) (*model.AboutInfo, error)
	Create(ctx context.Context, info model.AboutInfo) (*model.MessageResponse, error)
	Update(ctx context.Context, info model.AboutInfo) (*model.MessageResponse, error)

	// Load returns the backend copy, or the static copy when the backend
	// fails or has none.
	Load(ctx context.Context) model.Sourced[model.AboutInfo]
}

// AdminService defines the admin session lifecycle.
type AdminService interface {
	Login(ctx context.Context, username, password string) (*model.LoginResponse, error)
	Logout(ctx context.Context) (*model.MessageResponse, error)

	// Status asks the backend whether the admin session is still valid and
	// clears the local session when it is not.
	Status(ctx context.Context) (bool, error)

	Health(ctx context.Context) (*model.HealthStatus, error)
}

// EmailService triggers transactional emails sent by the backend.
type EmailService interface {
	SendReservationConfirmation(ctx context.Context, r model.Reservation) (*model.MessageResponse, error)
	SendReservationCancellation(ctx context.Context, r model.Reservation) (*model.MessageResponse, error)
	SendReservationUpdate(ctx context.Context, r model.Reservation) (*model.MessageResponse, error)
	SendNewsletterWelcome(ctx context.Context, email string) (*model.MessageResponse, error)
	SendAdminNotification(ctx context.Context, r model.Reservation) (*model.MessageResponse, error)
	Test(ctx context.Context) (*model.MessageResponse, error)
}
