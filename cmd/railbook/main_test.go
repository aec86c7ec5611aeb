package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zakhar-Rapitskyi/railbook/internal/api"
	"github.com/Zakhar-Rapitskyi/railbook/internal/clock"
	"github.com/Zakhar-Rapitskyi/railbook/internal/session"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("RAILBOOK_API_URL", "")
	t.Setenv("RAILBOOK_SESSION_FILE", "")
	t.Setenv("RAILBOOK_RATE_LIMIT", "")
	t.Setenv("RAILBOOK_VERBOSE", "")

	cfg := LoadConfig()
	assert.Empty(t, cfg.BaseURL)
	assert.Contains(t, cfg.SessionFile, "railbook")
	assert.Zero(t, cfg.RatePerSecond)
	assert.Equal(t, 5, cfg.RateBurst)
	assert.False(t, cfg.Verbose)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("RAILBOOK_API_URL", "http://backend:9090/api")
	t.Setenv("RAILBOOK_SESSION_FILE", "/tmp/session.json")
	t.Setenv("RAILBOOK_RATE_LIMIT", "2.5")
	t.Setenv("RAILBOOK_VERBOSE", "true")

	cfg := LoadConfig()
	assert.Equal(t, "http://backend:9090/api", cfg.BaseURL)
	assert.Equal(t, "/tmp/session.json", cfg.SessionFile)
	assert.Equal(t, 2.5, cfg.RatePerSecond)
	assert.True(t, cfg.Verbose)
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-30", d.String())

	_, err = parseDate("30.08.2026")
	assert.Error(t, err)
}

// newTestApp wires an App against a stub backend and a fixed clock.
func newTestApp(t *testing.T, handler http.Handler, now time.Time) (*App, *bytes.Buffer) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	out := &bytes.Buffer{}
	app := &App{
		Client: api.New(server.URL, session.NewStore()),
		Clock:  clock.NewMockClock(now),
		Out:    out,
	}
	return app, out
}

func TestRun_TicketsPartitionsByDeparture(t *testing.T) {
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	mux := http.NewServeMux()
	mux.HandleFunc("/tickets/me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 1, "ticketNumber": "TK-001",
			 "departureStation": {"id": 1, "name": "Lviv"},
			 "arrivalStation": {"id": 2, "name": "Kyiv"},
			 "departureDatetime": "2026-08-30T18:00:00",
			 "arrivalDatetime": "2026-08-30T23:00:00",
			 "carNumber": 3, "seatNumber": 14},
			{"id": 2, "ticketNumber": "TK-002",
			 "departureStation": {"id": 2, "name": "Kyiv"},
			 "arrivalStation": {"id": 3, "name": "Kharkiv"},
			 "departureDatetime": "2026-08-29T08:00:00",
			 "arrivalDatetime": "2026-08-29T13:00:00",
			 "carNumber": 1, "seatNumber": 2}
		]`))
	})

	app, out := newTestApp(t, mux, now)
	require.NoError(t, app.Run("tickets", nil))

	output := out.String()
	assert.Contains(t, output, "Upcoming (1):")
	assert.Contains(t, output, "TK-001")
	assert.Contains(t, output, "Past (1):")
	assert.Contains(t, output, "TK-002")
}

func TestRun_VerifyReportsExpired(t *testing.T) {
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	mux := http.NewServeMux()
	mux.HandleFunc("/conductor/tickets/verify/TK-001", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 1, "ticketNumber": "TK-001",
			"departureStation": {"id": 1, "name": "Lviv"},
			"arrivalStation": {"id": 2, "name": "Kyiv"},
			"departureDatetime": "2026-08-29T18:00:00",
			"carNumber": 3, "seatNumber": 14}`))
	})

	app, out := newTestApp(t, mux, now)
	require.NoError(t, app.Run("verify", []string{"-number", "TK-001"}))
	assert.Contains(t, out.String(), "ticket TK-001: expired")
}

func TestRun_VerifyUnknownTicketIsNotAnError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/conductor/tickets/verify/TK-404", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Ticket not found"}`))
	})

	app, out := newTestApp(t, mux, time.Now())
	require.NoError(t, app.Run("verify", []string{"-number", "TK-404"}))
	assert.Contains(t, out.String(), "ticket TK-404: not found")
}

func TestRun_CancelMissingTicketIsIdempotent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tickets/7", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Ticket not found"}`))
	})

	app, out := newTestApp(t, mux, time.Now())
	require.NoError(t, app.Run("cancel", []string{"-id", "7"}))
	assert.Contains(t, out.String(), "already cancelled")
}

func TestRun_BookUsesRouteEndpointsByDefault(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/schedules/5", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 5,
			"train": {"id": 1, "name": "Intercity 712", "totalCars": 8},
			"route": {"id": 2, "name": "Lviv - Kharkiv", "stations": [
				{"id": 21, "station": {"id": 3, "name": "Kharkiv"}, "stationOrder": 3, "distanceFromStart": 1000},
				{"id": 19, "station": {"id": 1, "name": "Lviv"}, "stationOrder": 1, "distanceFromStart": 0},
				{"id": 20, "station": {"id": 2, "name": "Kyiv"}, "stationOrder": 2, "distanceFromStart": 540}
			]},
			"departureDate": "2026-09-01"}`))
	})
	mux.HandleFunc("/tickets/seats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"occupiedSeats": [4, 9]}`))
	})
	var booked struct {
		DepartureStationID int64 `json:"departureStationId"`
		ArrivalStationID   int64 `json:"arrivalStationId"`
	}
	mux.HandleFunc("/tickets", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&booked))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 8, "ticketNumber": "TK-008",
			"departureStation": {"id": 1, "name": "Lviv"},
			"arrivalStation": {"id": 3, "name": "Kharkiv"},
			"departureDatetime": "2026-09-01T06:30:00",
			"carNumber": 2, "seatNumber": 11}`))
	})

	app, out := newTestApp(t, mux, time.Now())
	require.NoError(t, app.Run("book", []string{"-schedule", "5", "-car", "2", "-seat", "11"}))

	// Endpoints of the journey default to the first and last stop.
	assert.Equal(t, int64(1), booked.DepartureStationID)
	assert.Equal(t, int64(3), booked.ArrivalStationID)
	assert.Contains(t, out.String(), "booked ticket TK-008: Lviv -> Kharkiv")
}

func TestRun_BookRejectsOccupiedSeatLocally(t *testing.T) {
	var bookCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/schedules/5", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 5,
			"train": {"id": 1, "name": "Intercity 712", "totalCars": 8},
			"route": {"id": 2, "name": "Lviv - Kharkiv", "stations": [
				{"id": 19, "station": {"id": 1, "name": "Lviv"}, "stationOrder": 1, "distanceFromStart": 0},
				{"id": 20, "station": {"id": 2, "name": "Kyiv"}, "stationOrder": 2, "distanceFromStart": 540}
			]},
			"departureDate": "2026-09-01"}`))
	})
	mux.HandleFunc("/tickets/seats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"occupiedSeats": [11]}`))
	})
	mux.HandleFunc("/tickets", func(w http.ResponseWriter, r *http.Request) {
		bookCalls++
	})

	app, _ := newTestApp(t, mux, time.Now())
	err := app.Run("book", []string{"-schedule", "5", "-car", "2", "-seat", "11"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seat")
	assert.Zero(t, bookCalls, "occupied seat must be rejected before any booking call")
}

func TestRun_UnknownCommand(t *testing.T) {
	app, _ := newTestApp(t, http.NewServeMux(), time.Now())
	err := app.Run("teleport", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
