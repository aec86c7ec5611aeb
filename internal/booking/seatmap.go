package booking

import (
	"context"
	"sync"

	"github.com/Zakhar-Rapitskyi/railbook/internal/metrics"
	"github.com/Zakhar-Rapitskyi/railbook/internal/models"
)

// FetchFunc retrieves the occupancy snapshot for one (schedule, car)
// pair. api.Client.GetAvailableSeats satisfies this signature.
type FetchFunc func(ctx context.Context, scheduleID int64, carNumber int) (*models.SeatAvailability, error)

// SeatMap tracks the visible seat-occupancy snapshot for one schedule.
// Car changes trigger whole-snapshot refreshes; there is no merging and
// no subscription to live updates. Concurrent refreshes follow a
// last-write-wins discipline keyed by issuance order: each Refresh
// takes a monotonically increasing token, and a response whose token is
// no longer the latest is discarded regardless of arrival order. That
// discard substitutes for true in-flight cancellation.
type SeatMap struct {
	scheduleID int64
	fetch      FetchFunc
	metrics    *metrics.Metrics

	mu       sync.Mutex
	latest   uint64
	snapshot *models.SeatAvailability
}

// NewSeatMap creates a SeatMap for the schedule with no snapshot yet.
func NewSeatMap(scheduleID int64, fetch FetchFunc) *SeatMap {
	return &SeatMap{scheduleID: scheduleID, fetch: fetch}
}

// WithMetrics enables counting of applied and discarded snapshots.
func (s *SeatMap) WithMetrics(m *metrics.Metrics) *SeatMap {
	s.metrics = m
	return s
}

// Refresh fetches the snapshot for carNumber and applies it if this is
// still the most recently issued refresh. It returns the snapshot now
// visible, which is the prior one when this refresh lost the race or
// failed. A fetch failure never clobbers the existing snapshot; the
// error is returned for display and the caller may retry manually.
func (s *SeatMap) Refresh(ctx context.Context, carNumber int) (*models.SeatAvailability, error) {
	s.mu.Lock()
	s.latest++
	token := s.latest
	s.mu.Unlock()

	fetched, err := s.fetch(ctx, s.scheduleID, carNumber)

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.latest {
		// A newer refresh was issued while this one was in flight.
		if s.metrics != nil {
			s.metrics.SeatSnapshotsDiscarded.Inc()
		}
		return s.snapshot, nil
	}
	if err != nil {
		return s.snapshot, err
	}

	s.snapshot = fetched
	if s.metrics != nil {
		s.metrics.SeatSnapshotsApplied.Inc()
	}
	return s.snapshot, nil
}

// Snapshot returns the currently visible snapshot, nil before the first
// successful refresh.
func (s *SeatMap) Snapshot() *models.SeatAvailability {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// IsOccupied reports whether the seat is taken in the visible snapshot
// for the given car. With no snapshot, or a snapshot for another car,
// it reports false: occupancy is advisory and absence of data must not
// block a booking attempt.
func (s *SeatMap) IsOccupied(carNumber, seatNumber int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil || s.snapshot.CarNumber != carNumber {
		return false
	}
	for _, seat := range s.snapshot.OccupiedSeats {
		if seat == seatNumber {
			return true
		}
	}
	return false
}
