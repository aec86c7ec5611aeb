// Package booking implements the client side of the booking workflow:
// resolving a route's stop order, tracking seat-occupancy snapshots,
// assembling a validated booking request, and classifying tickets by
// departure time. Everything here is pure or local; the one network
// mutation (submitting the booking) lives in the api package.
package booking

import (
	"sort"

	"github.com/Zakhar-Rapitskyi/railbook/internal/models"
)

// Stop is one station's position along a route.
type Stop struct {
	StationID int64
	Name      string
	Order     int
}

// StopSequence resolves which (departure, arrival) pairs are valid for
// a route: both stations must be on the route and the departure must
// precede the arrival. It is immutable once built.
type StopSequence struct {
	stops  []Stop
	orders map[int64]int
}

// NewStopSequence builds a StopSequence from a route's stations. The
// input order does not matter; stops are sorted by their stationOrder.
func NewStopSequence(stations []models.RouteStation) StopSequence {
	stops := make([]Stop, 0, len(stations))
	orders := make(map[int64]int, len(stations))
	for _, rs := range stations {
		stops = append(stops, Stop{
			StationID: rs.Station.ID,
			Name:      rs.Station.Name,
			Order:     rs.StationOrder,
		})
		orders[rs.Station.ID] = rs.StationOrder
	}
	sort.Slice(stops, func(i, j int) bool { return stops[i].Order < stops[j].Order })
	return StopSequence{stops: stops, orders: orders}
}

// Stops returns the stops sorted ascending by order.
func (s StopSequence) Stops() []Stop {
	out := make([]Stop, len(s.stops))
	copy(out, s.stops)
	return out
}

// Len returns the number of stops on the route.
func (s StopSequence) Len() int {
	return len(s.stops)
}

// OrderOf returns the route order of the given station, and whether the
// station is on the route at all.
func (s StopSequence) OrderOf(stationID int64) (int, bool) {
	order, ok := s.orders[stationID]
	return order, ok
}

// IsValidPair reports whether departing at departureID and arriving at
// arrivalID is a valid traversal: both stations are on the route and
// the departure strictly precedes the arrival.
func (s StopSequence) IsValidPair(departureID, arrivalID int64) bool {
	dep, ok := s.orders[departureID]
	if !ok {
		return false
	}
	arr, ok := s.orders[arrivalID]
	if !ok {
		return false
	}
	return dep < arr
}

// HasValidPairs reports whether any booking is possible on this route.
// A route with fewer than two stations admits no valid pair, and
// callers must not offer booking in that case.
func (s StopSequence) HasValidPairs() bool {
	return len(s.stops) >= 2
}

// First returns the first stop of the route, used as the default
// departure selection. ok is false for an empty route.
func (s StopSequence) First() (Stop, bool) {
	if len(s.stops) == 0 {
		return Stop{}, false
	}
	return s.stops[0], true
}

// Last returns the final stop of the route, used as the default
// arrival selection. ok is false for an empty route.
func (s StopSequence) Last() (Stop, bool) {
	if len(s.stops) == 0 {
		return Stop{}, false
	}
	return s.stops[len(s.stops)-1], true
}
