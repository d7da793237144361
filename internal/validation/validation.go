// Package validation holds the form checks run before any network call.
// Every function here is pure.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"restaurant-site/internal/model"
)

// Validation messages.
const (
	MsgTimeSlotRequired = "Time slot is required"
	MsgTimeSlotInvalid  = "Time slot is not a valid date and time"
	MsgTimeSlotPast     = "Time slot must be in the future"
	MsgGuestsRange      = "Number of guests must be between 1 and 20"
	MsgNameLength       = "Customer name must be at least 2 characters"
	MsgEmail            = "Valid email is required"
	MsgNewsletterEmail  = "Please enter a valid email address."
	MsgImageType        = "Please select a valid image file"
	MsgItemName         = "Name is required"
	MsgItemPrice        = "Price must be a non-negative number"
	MsgItemCategory     = "Category must be one of: Starters, Main Courses, Desserts, Beverages"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	phoneStrip   = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "\t", "")
)

// Result is the outcome of a form validation. Errors maps field name to
// message and lists every violated field, not just the first.
type Result struct {
	IsValid bool              `json:"isValid"`
	Errors  map[string]string `json:"errors"`
}

func newResult(errs map[string]string) Result {
	return Result{IsValid: len(errs) == 0, Errors: errs}
}

// Err returns nil for a valid result, otherwise a KindValidation error.
func (r Result) Err() error {
	if r.IsValid {
		return nil
	}
	return model.NewValidationError(r.Errors)
}

// Email reports whether email has a local@domain.tld shape.
func Email(email string) bool {
	return emailPattern.MatchString(email)
}

// Phone reports whether phone is a plausible number once spaces, dashes and
// parentheses are removed.
func Phone(phone string) bool {
	return phonePattern.MatchString(phoneStrip.Replace(phone))
}

// Reservation checks a booking form. time_slot must be strictly after now;
// naive timestamps are read in now's location.
func Reservation(req model.ReservationRequest, now time.Time) Result {
	errs := make(map[string]string)

	if strings.TrimSpace(req.TimeSlot) == "" {
		errs["time_slot"] = MsgTimeSlotRequired
	} else if slot, err := model.ParseDateTime(req.TimeSlot, now.Location()); err != nil {
		errs["time_slot"] = MsgTimeSlotInvalid
	} else if !slot.After(now) {
		errs["time_slot"] = MsgTimeSlotPast
	}

	if req.NumberOfGuests < model.MinGuests || req.NumberOfGuests > model.MaxGuests {
		errs["number_of_guests"] = MsgGuestsRange
	}

	if len([]rune(strings.TrimSpace(req.CustomerName))) < 2 {
		errs["customer_name"] = MsgNameLength
	}

	if !Email(req.Email) {
		errs["email"] = MsgEmail
	}

	return newResult(errs)
}

// Newsletter checks a signup email.
func Newsletter(email string) Result {
	errs := make(map[string]string)
	if !Email(strings.TrimSpace(email)) {
		errs["email"] = MsgNewsletterEmail
	}
	return newResult(errs)
}

// MenuItem checks an admin menu item form.
func MenuItem(item model.MenuItem) Result {
	errs := make(map[string]string)

	if strings.TrimSpace(item.Name) == "" {
		errs["name"] = MsgItemName
	}
	if item.Price < 0 || math.IsNaN(item.Price) || math.IsInf(item.Price, 0) {
		errs["price"] = MsgItemPrice
	}
	if !model.IsCategory(item.Category) {
		errs["category"] = MsgItemCategory
	}

	return newResult(errs)
}

// ImageFile checks an upload against the image host's limits.
func ImageFile(contentType string, size int64, maxSizeMB int) Result {
	errs := make(map[string]string)

	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		errs["file"] = MsgImageType
	} else if maxSizeMB > 0 && size > int64(maxSizeMB)*1024*1024 {
		errs["file"] = fmt.Sprintf("File size must be less than %dMB", maxSizeMB)
	}

	return newResult(errs)
}
