package listing

import (
	"math"
	"strconv"
	"strings"
	"time"

	"restaurant-site/internal/model"
)

// Matcher decides whether an item belongs to the visible set.
type Matcher[T any] interface {
	Match(item T) bool
}

// Filter returns the items for which keep is true, preserving order. The
// result never aliases items.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// MatchesAny reports whether any field contains term, ignoring case. An
// empty term matches everything.
func MatchesAny(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// ParsePrice reads a price bound from free-form input. Anything that is not
// a finite number becomes 0.
func ParsePrice(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseInt reads an integer filter value, returning 0 for malformed input.
// A leading integer followed by junk ("4 guests") yields that integer.
func ParseInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || end == 0 && (s[end] == '-' || s[end] == '+')) {
		end++
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return v
}

// ParseDay reads a YYYY-MM-DD (or full timestamp) filter value in loc.
func ParseDay(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return t, true
	}
	if t, err := model.ParseDateTime(s, loc); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// ReservationQuery filters the admin reservation list.
type ReservationQuery struct {
	Search string `json:"search,omitempty"`
	Date   string `json:"date,omitempty"`   // calendar day, YYYY-MM-DD
	Guests string `json:"guests,omitempty"` // exact party size
}

// Match implements Matcher.
func (q ReservationQuery) Match(r model.Reservation) bool {
	if !MatchesAny(q.Search, r.CustomerName, r.Email, r.Phone, strconv.Itoa(r.ID)) {
		return false
	}
	if q.Date != "" {
		day, ok := ParseDay(q.Date, r.TimeSlot.Location())
		if !ok || r.TimeSlot.IsZero() || !r.TimeSlot.SameDay(day) {
			return false
		}
	}
	if q.Guests != "" && r.NumberOfGuests != ParseInt(q.Guests) {
		return false
	}
	return true
}

// SignupQuery filters the admin newsletter list.
type SignupQuery struct {
	Search string `json:"search,omitempty"`
	Date   string `json:"date,omitempty"`
}

// Match implements Matcher.
func (q SignupQuery) Match(s model.NewsletterSignup) bool {
	date := ""
	if !s.SignupDate.IsZero() {
		date = s.SignupDate.Format(time.RFC3339)
	}
	if !MatchesAny(q.Search, s.Email, strconv.Itoa(s.ID), date) {
		return false
	}
	if q.Date != "" {
		day, ok := ParseDay(q.Date, s.SignupDate.Location())
		if !ok || s.SignupDate.IsZero() || !s.SignupDate.SameDay(day) {
			return false
		}
	}
	return true
}

// ImageQuery filters the gallery images tab.
type ImageQuery struct {
	Search string `json:"search,omitempty"`
}

// Match implements Matcher.
func (q ImageQuery) Match(img model.GalleryImage) bool {
	return MatchesAny(q.Search, img.Title, img.Description)
}

// AwardQuery filters the gallery awards tab.
type AwardQuery struct {
	Search string `json:"search,omitempty"`
	Year   string `json:"year,omitempty"`
}

// Match implements Matcher.
func (q AwardQuery) Match(a model.Award) bool {
	if !MatchesAny(q.Search, a.Title, a.Description, a.Year) {
		return false
	}
	return q.Year == "" || a.Year == q.Year
}

// ReviewQuery filters the gallery reviews tab.
type ReviewQuery struct {
	Search string `json:"search,omitempty"`
}

// Match implements Matcher.
func (q ReviewQuery) Match(r model.Review) bool {
	return MatchesAny(q.Search, r.Content, r.Author, r.Source)
}

// Apply filters items through m.
func Apply[T any](items []T, m Matcher[T]) []T {
	return Filter(items, m.Match)
}
