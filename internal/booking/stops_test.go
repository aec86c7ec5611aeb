package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zakhar-Rapitskyi/railbook/internal/models"
)

func routeStations() []models.RouteStation {
	// Deliberately out of order to exercise sorting.
	return []models.RouteStation{
		{ID: 22, Station: models.Station{ID: 2, Name: "Kyiv"}, StationOrder: 2, DistanceFromStart: 540},
		{ID: 21, Station: models.Station{ID: 1, Name: "Lviv"}, StationOrder: 1, DistanceFromStart: 0},
		{ID: 23, Station: models.Station{ID: 3, Name: "Kharkiv"}, StationOrder: 3, DistanceFromStart: 1020},
	}
}

func TestStopSequence_SortedAscending(t *testing.T) {
	seq := NewStopSequence(routeStations())

	stops := seq.Stops()
	require.Len(t, stops, 3)
	assert.Equal(t, []string{"Lviv", "Kyiv", "Kharkiv"}, []string{stops[0].Name, stops[1].Name, stops[2].Name})
	assert.Equal(t, []int{1, 2, 3}, []int{stops[0].Order, stops[1].Order, stops[2].Order})
}

func TestStopSequence_IsValidPair(t *testing.T) {
	seq := NewStopSequence(routeStations())

	tests := []struct {
		name      string
		departure int64
		arrival   int64
		valid     bool
	}{
		{"forward adjacent", 1, 2, true},
		{"forward whole route", 1, 3, true},
		{"forward middle to end", 2, 3, true},
		{"reversed", 3, 1, false},
		{"same station", 2, 2, false},
		{"departure off route", 99, 2, false},
		{"arrival off route", 1, 99, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, seq.IsValidPair(tt.departure, tt.arrival))
		})
	}
}

func TestStopSequence_OrderMatchesPairValidity(t *testing.T) {
	// For every pair of stations on the route, validity must coincide
	// with strict order comparison.
	seq := NewStopSequence(routeStations())
	for _, a := range seq.Stops() {
		for _, b := range seq.Stops() {
			expected := a.Order < b.Order
			assert.Equal(t, expected, seq.IsValidPair(a.StationID, b.StationID),
				"pair (%s,%s)", a.Name, b.Name)
		}
	}
}

func TestStopSequence_ShortRoutes(t *testing.T) {
	empty := NewStopSequence(nil)
	assert.False(t, empty.HasValidPairs())
	assert.Equal(t, 0, empty.Len())
	_, ok := empty.First()
	assert.False(t, ok)
	_, ok = empty.Last()
	assert.False(t, ok)

	single := NewStopSequence(routeStations()[:1])
	assert.False(t, single.HasValidPairs(), "a one-station route admits no pairs")
	assert.False(t, single.IsValidPair(2, 2))

	full := NewStopSequence(routeStations())
	assert.True(t, full.HasValidPairs())
}

func TestStopSequence_FirstAndLastDefaults(t *testing.T) {
	seq := NewStopSequence(routeStations())

	first, ok := seq.First()
	require.True(t, ok)
	assert.Equal(t, "Lviv", first.Name)

	last, ok := seq.Last()
	require.True(t, ok)
	assert.Equal(t, "Kharkiv", last.Name)
}

func TestStopSequence_OrderOf(t *testing.T) {
	seq := NewStopSequence(routeStations())

	order, ok := seq.OrderOf(2)
	require.True(t, ok)
	assert.Equal(t, 2, order)

	_, ok = seq.OrderOf(42)
	assert.False(t, ok)
}
