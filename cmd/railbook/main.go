// Command railbook is a terminal client for the railway booking
// backend: searching schedules, booking seats, managing tickets,
// verifying tickets as conductor, and exporting admin reports.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/Zakhar-Rapitskyi/railbook/internal/api"
	"github.com/Zakhar-Rapitskyi/railbook/internal/clock"
	"github.com/Zakhar-Rapitskyi/railbook/internal/metrics"
	"github.com/Zakhar-Rapitskyi/railbook/internal/session"
)

// Config collects the process-level settings read from the
// environment. A .env file in the working directory is honored when
// present.
type Config struct {
	BaseURL       string
	SessionFile   string
	RatePerSecond float64
	RateBurst     int
	Verbose       bool
}

// LoadConfig reads configuration from the environment. Missing values
// fall back to defaults that match the backend's development setup.
func LoadConfig() Config {
	// Best effort only; running without a .env file is the normal case.
	_ = godotenv.Load()

	cfg := Config{
		BaseURL:     os.Getenv("RAILBOOK_API_URL"),
		SessionFile: os.Getenv("RAILBOOK_SESSION_FILE"),
		RateBurst:   5,
	}
	if cfg.SessionFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.SessionFile = filepath.Join(home, ".config", "railbook", "session.json")
		}
	}
	if v := os.Getenv("RAILBOOK_RATE_LIMIT"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RatePerSecond = parsed
		}
	}
	if v := os.Getenv("RAILBOOK_VERBOSE"); v == "1" || v == "true" {
		cfg.Verbose = true
	}
	return cfg
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: railbook <command> [flags]

Commands:
  register     create an account and log in
  login        log in and store the session token
  logout       drop the stored session
  whoami       show the logged-in user
  search       find schedules between two stations on a date
  seats        show seat occupancy for a schedule car
  book         validate a selection and book a seat
  tickets      list your tickets (upcoming and past)
  cancel       cancel a ticket by id
  verify       look up a ticket by number (conductor)
  stats        export ticket statistics as CSV (admin)
  stations     list/create/delete stations (admin for writes)
  trains       list/create/delete trains (admin for writes)
  routes       list routes and manage their stations (admin for writes)
  schedules    list/create/delete schedules (admin for writes)

Run 'railbook <command> -h' for command flags.
`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := LoadConfig()
	logger := newLogger(cfg.Verbose)
	slog.SetDefault(logger)

	sess := session.NewFileStore(cfg.SessionFile)
	client := api.New(cfg.BaseURL, sess,
		api.WithLogger(logger),
		api.WithMetrics(metrics.New()),
		api.WithRateLimit(cfg.RatePerSecond, cfg.RateBurst),
	)

	app := &App{
		Client: client,
		Clock:  clock.RealClock{},
		Out:    os.Stdout,
	}

	if err := app.Run(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "railbook:", err)
		os.Exit(1)
	}
}
