package listing

import (
	"math"
	"testing"
	"time"

	"restaurant-site/internal/fallback"
	"restaurant-site/internal/model"

	"github.com/stretchr/testify/assert"
)

func at(s string) model.DateTime {
	t, err := model.ParseDateTime(s, time.UTC)
	if err != nil {
		panic(err)
	}
	return model.DateTime{Time: t}
}

func sampleReservations() []model.Reservation {
	return []model.Reservation{
		{ID: 1, CustomerName: "Ann Lee", Email: "ann@example.com", Phone: "555-0101", TimeSlot: at("2026-06-16T19:00:00"), NumberOfGuests: 4},
		{ID: 2, CustomerName: "Bob Stone", Email: "bob@example.com", TimeSlot: at("2026-06-16T20:30:00"), NumberOfGuests: 2},
		{ID: 3, CustomerName: "Cara Diaz", Email: "cara@mail.test", Phone: "555-0299", TimeSlot: at("2026-06-17T18:00:00"), NumberOfGuests: 4},
		{ID: 14, CustomerName: "Dan Wu", Email: "dan@example.com", TimeSlot: at("2026-06-18T12:00:00"), NumberOfGuests: 6},
	}
}

func reservationIDs(rs []model.Reservation) []int {
	ids := make([]int, 0, len(rs))
	for _, r := range rs {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestReservationQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    ReservationQuery
		expected []int
	}{
		{name: "Empty query", query: ReservationQuery{}, expected: []int{1, 2, 3, 14}},
		{name: "Guests equals 4", query: ReservationQuery{Guests: "4"}, expected: []int{1, 3}},
		{name: "Guests with junk suffix", query: ReservationQuery{Guests: "6 people"}, expected: []int{14}},
		{name: "Malformed guests matches nothing", query: ReservationQuery{Guests: "many"}, expected: []int{}},
		{name: "Search by name ignoring case", query: ReservationQuery{Search: "STONE"}, expected: []int{2}},
		{name: "Search by email domain", query: ReservationQuery{Search: "mail.test"}, expected: []int{3}},
		{name: "Search by phone", query: ReservationQuery{Search: "0299"}, expected: []int{3}},
		{name: "Search by id substring", query: ReservationQuery{Search: "1"}, expected: []int{1, 14}},
		{name: "Date filter", query: ReservationQuery{Date: "2026-06-16"}, expected: []int{1, 2}},
		{name: "Malformed date matches nothing", query: ReservationQuery{Date: "june"}, expected: []int{}},
		{name: "Combined filters", query: ReservationQuery{Date: "2026-06-16", Guests: "4"}, expected: []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Apply(sampleReservations(), Matcher[model.Reservation](tt.query))
			assert.Equal(t, tt.expected, reservationIDs(result))
		})
	}
}

func TestSignupQuery(t *testing.T) {
	signups := []model.NewsletterSignup{
		{ID: 1, Email: "ann@example.com", SignupDate: at("2026-05-01T10:00:00")},
		{ID: 2, Email: "bob@example.com", SignupDate: at("2026-05-02T11:00:00")},
		{ID: 3, Email: "cara@mail.test"},
	}

	assert.Len(t, Apply(signups, Matcher[model.NewsletterSignup](SignupQuery{Search: "example"})), 2)
	assert.Len(t, Apply(signups, Matcher[model.NewsletterSignup](SignupQuery{Search: "2026-05-02"})), 1)

	byDate := Apply(signups, Matcher[model.NewsletterSignup](SignupQuery{Date: "2026-05-01"}))
	assert.Len(t, byDate, 1)
	assert.Equal(t, 1, byDate[0].ID)
}

func TestGalleryQueries(t *testing.T) {
	gallery := fallback.Gallery()

	images := Apply(gallery.Images, Matcher[model.GalleryImage](ImageQuery{Search: "cocktails"}))
	assert.Len(t, images, 1)
	assert.Equal(t, "Bar Area", images[0].Title)

	awards := Apply(gallery.Awards, Matcher[model.Award](AwardQuery{Year: "2023"}))
	assert.Len(t, awards, 1)
	assert.Equal(t, "Restaurant of the Year", awards[0].Title)

	awards = Apply(gallery.Awards, Matcher[model.Award](AwardQuery{Search: "2023"}))
	assert.Len(t, awards, 2)

	reviews := Apply(gallery.Reviews, Matcher[model.Review](ReviewQuery{Search: "daily"}))
	assert.Len(t, reviews, 1)
}

func TestMatchesAny(t *testing.T) {
	assert.True(t, MatchesAny("", "anything"))
	assert.True(t, MatchesAny("SAL", "Grilled Salmon"))
	assert.True(t, MatchesAny("x", "a", "b", "xyz"))
	assert.False(t, MatchesAny("x", "a", "b"))
	assert.False(t, MatchesAny("x"))
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"12.5", 12.5},
		{" 20 ", 20},
		{"", 0},
		{"abc", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"-3", -3},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v := ParsePrice(tt.input)
			assert.False(t, math.IsNaN(v))
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"4", 4},
		{" 12 ", 12},
		{"6 people", 6},
		{"-2", -2},
		{"", 0},
		{"four", 0},
		{"-", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseInt(tt.input))
		})
	}
}
