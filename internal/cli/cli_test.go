package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"restaurant-site/internal/apiclient"
	"restaurant-site/internal/export"
	"restaurant-site/internal/fallback"
	"restaurant-site/internal/model"
	"restaurant-site/internal/service"
	"restaurant-site/internal/validation"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession bool

func (s fakeSession) IsLoggedIn(context.Context) bool { return bool(s) }

type testApp struct {
	app    *App
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	dir    string
}

func newTestApp(t *testing.T, mux *http.ServeMux, loggedIn bool, stdin string) *testApp {
	t.Helper()

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	logger := zerolog.Nop()
	api, err := apiclient.New(apiclient.Options{BaseURL: server.URL + "/api", Timeout: time.Second}, logger)
	require.NoError(t, err)

	content := fallback.Default()
	svc := Services{
		Reservations: service.NewReservationService(api, logger),
		Menu:         service.NewMenuService(api, content, logger),
		Gallery:      service.NewGalleryService(api, content, logger),
		Newsletter:   service.NewNewsletterService(api, logger),
		About:        service.NewAboutService(api, content, logger),
		Email:        service.NewEmailService(api, logger),
	}

	ta := &testApp{
		stdout: new(bytes.Buffer),
		stderr: new(bytes.Buffer),
		dir:    t.TempDir(),
	}
	ta.app = New(svc, Options{
		Session:       fakeSession(loggedIn),
		Sink:          export.NewFileSink(ta.dir, logger),
		Stdin:         strings.NewReader(stdin),
		Stdout:        ta.stdout,
		Stderr:        ta.stderr,
		DebounceDelay: time.Hour,
	}, logger)

	return ta
}

func (ta *testApp) run(args ...string) int {
	return ta.app.Run(context.Background(), args)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

const testMenu = `{
	"Starters": [{"id": 1, "name": "Soup", "description": "Tomato soup", "price": 6}],
	"Main Courses": [
		{"id": 2, "name": "Grilled Salmon", "description": "Lemon butter", "price": 22},
		{"id": 3, "name": "Risotto", "description": "Wild mushrooms", "price": 18}
	]
}`

func menuMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/menu/items", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, testMenu)
	})
	return mux
}

func TestRun_UnknownCommand(t *testing.T) {
	ta := newTestApp(t, http.NewServeMux(), false, "")

	code := ta.run("dance")

	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, ta.stderr.String(), `unknown command "dance"`)
	assert.Empty(t, ta.stdout.String())
}

func TestRun_NoArgs(t *testing.T) {
	ta := newTestApp(t, http.NewServeMux(), false, "")

	assert.Equal(t, ExitUsage, ta.run())
	assert.Contains(t, ta.stderr.String(), "usage:")
}

func TestMenu_Search(t *testing.T) {
	ta := newTestApp(t, menuMux(), false, "")

	code := ta.run("menu", "-search", "salmon")

	require.Equal(t, ExitOK, code, ta.stderr.String())

	var out struct {
		Source string                      `json:"source"`
		Data   map[string][]model.MenuItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(ta.stdout.Bytes(), &out))
	assert.Equal(t, "backend", out.Source)
	require.Len(t, out.Data, 1)
	require.Len(t, out.Data["Main Courses"], 1)
	assert.Equal(t, "Grilled Salmon", out.Data["Main Courses"][0].Name)
}

func TestMenu_FallbackWhenBackendFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/menu/items", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, `{"error":"database down"}`)
	})
	ta := newTestApp(t, mux, false, "")

	code := ta.run("menu")

	require.Equal(t, ExitOK, code)
	var out model.Sourced[json.RawMessage]
	require.NoError(t, json.Unmarshal(ta.stdout.Bytes(), &out))
	assert.Equal(t, model.SourceFallback, out.Source)
	assert.Equal(t, "database down", out.Reason)
}

func TestMenu_BrowseRendersLastTerm(t *testing.T) {
	ta := newTestApp(t, menuMux(), false, "sal\nsalm\nrisotto\n")

	code := ta.run("menu", "-browse")

	require.Equal(t, ExitOK, code, ta.stderr.String())

	dec := json.NewDecoder(ta.stdout)
	var out struct {
		Data map[string][]model.MenuItem `json:"data"`
	}
	require.NoError(t, dec.Decode(&out))
	require.Len(t, out.Data["Main Courses"], 1)
	assert.Equal(t, "Risotto", out.Data["Main Courses"][0].Name)
	assert.False(t, dec.More(), "only one render expected")
}

func TestReserve_ValidationErrorsGoToStderr(t *testing.T) {
	ta := newTestApp(t, http.NewServeMux(), false, "")

	code := ta.run("reserve", "-name", "A", "-email", "bad", "-guests", "0")

	assert.Equal(t, ExitError, code)
	assert.Empty(t, ta.stdout.String())
	stderr := ta.stderr.String()
	assert.Contains(t, stderr, "customer_name: "+validation.MsgNameLength)
	assert.Contains(t, stderr, "email: "+validation.MsgEmail)
	assert.Contains(t, stderr, "number_of_guests: "+validation.MsgGuestsRange)
	assert.Contains(t, stderr, "time_slot: "+validation.MsgTimeSlotRequired)
}

func TestLookup(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/reservations/lookup", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("email") != "cara@example.com" || r.URL.Query().Get("reservation_id") != "5" {
			writeJSON(w, http.StatusNotFound, `{"error":"Reservation not found for this email."}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"id":5,"customer_name":"Cara","email":"cara@example.com","time_slot":"2026-05-04T18:30:00","number_of_guests":3}`)
	})

	t.Run("found", func(t *testing.T) {
		ta := newTestApp(t, mux, false, "")

		require.Equal(t, ExitOK, ta.run("lookup", "-email", "cara@example.com", "-id", "5"))
		assert.Contains(t, ta.stdout.String(), `"customer_name": "Cara"`)
	})

	t.Run("wrong email", func(t *testing.T) {
		ta := newTestApp(t, mux, false, "")

		assert.Equal(t, ExitError, ta.run("lookup", "-email", "eve@example.com", "-id", "5"))
		assert.Empty(t, ta.stdout.String())
		assert.Equal(t, "Error: Reservation not found for this email.\n", ta.stderr.String())
	})
}

func TestAdmin_RequiresLogin(t *testing.T) {
	ta := newTestApp(t, http.NewServeMux(), false, "")

	code := ta.run("admin", "reservations")

	assert.Equal(t, ExitError, code)
	assert.Contains(t, ta.stderr.String(), ErrLoginRequired.Error())
}

func TestAdmin_ReservationsPaginated(t *testing.T) {
	var rows []string
	for i := 1; i <= 12; i++ {
		rows = append(rows, fmt.Sprintf(`{"id":%d,"customer_name":"Guest %d","email":"g%d@example.com","time_slot":"2026-05-02T19:00:00","number_of_guests":2}`, i, i, i))
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/reservations/all", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"reservations":[`+strings.Join(rows, ",")+`]}`)
	})
	ta := newTestApp(t, mux, true, "")

	code := ta.run("admin", "reservations", "-page", "2")

	require.Equal(t, ExitOK, code, ta.stderr.String())

	var out struct {
		Items       []model.Reservation `json:"items"`
		CurrentPage int                 `json:"currentPage"`
		TotalPages  int                 `json:"totalPages"`
		Showing     string              `json:"showing"`
	}
	require.NoError(t, json.Unmarshal(ta.stdout.Bytes(), &out))
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 2, out.CurrentPage)
	assert.Equal(t, 2, out.TotalPages)
	assert.Equal(t, "Showing 11 to 12 of 12 items", out.Showing)
}

func TestAdmin_NewsletterExport(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/newsletter/export", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("id,email,signup_date\n1,a@example.com,2026-03-01\n"))
	})
	ta := newTestApp(t, mux, true, "")

	code := ta.run("admin", "newsletter", "export")

	require.Equal(t, ExitOK, code, ta.stderr.String())

	data, err := os.ReadFile(filepath.Join(ta.dir, export.NewsletterFile))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "id,email,signup_date"))
	assert.Contains(t, ta.stdout.String(), export.NewsletterFile)
}

func TestAdmin_MenuCreateRejectsBadPrice(t *testing.T) {
	ta := newTestApp(t, http.NewServeMux(), true, "")

	code := ta.run("admin", "menu", "create", "-name", "Tea", "-price", "abc", "-category", model.CategoryBeverages)

	assert.Equal(t, ExitError, code)
	assert.Contains(t, ta.stderr.String(), "price: "+validation.MsgItemPrice)
}

func TestAdmin_UnknownSubcommand(t *testing.T) {
	ta := newTestApp(t, http.NewServeMux(), true, "")

	code := ta.run("admin", "menu", "rename")

	assert.Equal(t, ExitError, code)
	assert.Contains(t, ta.stderr.String(), `unknown subcommand "rename"`)
}

// recordingMux answers unmatched routes with 404 and records every request.
type recordingMux struct {
	*http.ServeMux
	mu       sync.Mutex
	requests []string
}

func newRecordingMux() *recordingMux {
	return &recordingMux{ServeMux: http.NewServeMux()}
}

func (m *recordingMux) handle(pattern string, h http.HandlerFunc) {
	m.ServeMux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		m.requests = append(m.requests, r.Method+" "+r.URL.Path)
		m.mu.Unlock()
		h(w, r)
	})
}

func (m *recordingMux) calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.requests...)
}

func menuWriteMux() *recordingMux {
	mux := newRecordingMux()
	mux.handle("/", http.NotFound)
	mux.handle("POST /api/menu/items", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, `{"message":"Menu item created.","id":99}`)
	})
	mux.handle("PUT /api/menu/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"message":"Menu item updated."}`)
	})
	return mux
}

func TestAdmin_MenuWrites(t *testing.T) {
	item := []string{"-name", "Soup", "-price", "5", "-category", model.CategoryStarters}

	tests := []struct {
		name     string
		args     []string
		code     int
		stderr   string
		requests []string
	}{
		{
			name:     "create posts a new item",
			args:     append([]string{"admin", "menu", "create"}, item...),
			code:     ExitOK,
			requests: []string{"POST /api/menu/items"},
		},
		{
			name:     "update puts over the given item",
			args:     append([]string{"admin", "menu", "update", "-id", "5"}, item...),
			code:     ExitOK,
			requests: []string{"PUT /api/menu/items/5"},
		},
		{
			name:   "update without id is rejected",
			args:   append([]string{"admin", "menu", "update"}, item...),
			code:   ExitError,
			stderr: "Error: id: " + MsgMenuItemID + "\n",
		},
		{
			name:   "create with id is rejected",
			args:   append([]string{"admin", "menu", "create", "-id", "5"}, item...),
			code:   ExitError,
			stderr: "Error: id: " + MsgMenuItemIDOnAdd + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := menuWriteMux()
			ta := newTestApp(t, mux.ServeMux, true, "")

			code := ta.run(tt.args...)

			assert.Equal(t, tt.code, code, ta.stderr.String())
			assert.Equal(t, tt.requests, mux.calls())
			if tt.stderr != "" {
				assert.Equal(t, tt.stderr, ta.stderr.String())
				assert.Empty(t, ta.stdout.String())
			}
		})
	}
}

func TestAdmin_ReservationUpdateRejectedLocally(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		stderr string
	}{
		{
			name:   "missing id",
			args:   []string{"-guests", "4"},
			stderr: "Error: id: " + MsgReservationID + "\n",
		},
		{
			name:   "no fields to change",
			args:   []string{"-id", "7"},
			stderr: "Error: update: " + MsgNothingToUpdate + "\n",
		},
		{
			name:   "both",
			args:   nil,
			stderr: "Error: id: " + MsgReservationID + "\nError: update: " + MsgNothingToUpdate + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newRecordingMux()
			mux.handle("/", http.NotFound)
			ta := newTestApp(t, mux.ServeMux, true, "")

			code := ta.run(append([]string{"admin", "reservations", "update"}, tt.args...)...)

			assert.Equal(t, ExitError, code)
			assert.Equal(t, tt.stderr, ta.stderr.String())
			assert.Empty(t, mux.calls())
		})
	}
}

func TestAdmin_ReservationUpdateSendsOnlyGivenFields(t *testing.T) {
	var body map[string]any
	mux := newRecordingMux()
	mux.handle("PUT /api/reservations/{id}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusOK, `{"message":"Reservation updated."}`)
	})
	ta := newTestApp(t, mux.ServeMux, true, "")

	code := ta.run("admin", "reservations", "update", "-id", "7", "-table", "3")

	require.Equal(t, ExitOK, code, ta.stderr.String())
	assert.Equal(t, []string{"PUT /api/reservations/7"}, mux.calls())
	assert.Equal(t, map[string]any{"table_number": float64(3)}, body)
}

func TestAdmin_AboutUpdatesEveryField(t *testing.T) {
	var sent model.AboutInfo
	mux := newRecordingMux()
	mux.handle("GET /api/about/info", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"id":1,"history":"Since 2010.","mission":"Cook well.","founders":[{"name":"Old","description":"Gone"}]}`)
	})
	mux.handle("PUT /api/about/info", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&sent)
		writeJSON(w, http.StatusOK, `{"message":"About info updated."}`)
	})
	ta := newTestApp(t, mux.ServeMux, true, "")

	code := ta.run("admin", "about",
		"-commitment", "Local produce.",
		"-founder", "Antonio Rossi=Chef",
		"-founder", "Maria Lopez = Restaurateur",
	)

	require.Equal(t, ExitOK, code, ta.stderr.String())
	assert.Equal(t, []string{"GET /api/about/info", "PUT /api/about/info"}, mux.calls())
	assert.Equal(t, "Since 2010.", sent.History)
	assert.Equal(t, "Cook well.", sent.Mission)
	assert.Equal(t, "Local produce.", sent.Commitment)
	assert.Equal(t, []model.Founder{
		{Name: "Antonio Rossi", Description: "Chef"},
		{Name: "Maria Lopez", Description: "Restaurateur"},
	}, sent.Founders)
}

func TestAdmin_AboutRejectsMalformedFounder(t *testing.T) {
	mux := newRecordingMux()
	mux.handle("/", http.NotFound)
	ta := newTestApp(t, mux.ServeMux, true, "")

	code := ta.run("admin", "about", "-founder", "no separator")

	assert.Equal(t, ExitError, code)
	assert.Contains(t, ta.stderr.String(), MsgFounderFormat)
	assert.Empty(t, mux.calls())
}
