package booking

import (
	"errors"
	"fmt"

	"github.com/Zakhar-Rapitskyi/railbook/internal/models"
)

// Check identifies which precondition a validation failure came from.
type Check int

const (
	// CheckSeatSelected fails when no seat has been chosen.
	CheckSeatSelected Check = iota
	// CheckStationsSelected fails when either station is missing or the
	// pair is degenerate.
	CheckStationsSelected
	// CheckStationOrder fails when the stations do not form a valid
	// ordered pair on the route.
	CheckStationOrder
	// CheckSeatOccupied fails when the chosen seat is taken in the
	// current occupancy snapshot. Advisory only; the server is the
	// final arbiter.
	CheckSeatOccupied
)

func (c Check) String() string {
	switch c {
	case CheckSeatSelected:
		return "seat_selected"
	case CheckStationsSelected:
		return "stations_selected"
	case CheckStationOrder:
		return "station_order"
	case CheckSeatOccupied:
		return "seat_occupied"
	default:
		return "unknown"
	}
}

// ValidationError is a client-detected precondition failure. It never
// reaches the network and is resolved locally by fixing the selection.
type ValidationError struct {
	Check   Check
	Message string
}

// NewValidationError builds a tagged validation failure.
func NewValidationError(check Check, message string) *ValidationError {
	return &ValidationError{Check: check, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a client-side validation failure,
// and returns it when so.
func IsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// Selection is the user's current choice on the booking screen. Zero
// values mean "not selected yet".
type Selection struct {
	ScheduleID         int64
	DepartureStationID int64
	ArrivalStationID   int64
	CarNumber          int
	SeatNumber         int
}

// Builder assembles booking requests for one schedule. Build is pure:
// it can run on every selection change without any I/O, leaving the
// network mutation to api.BookTicket.
type Builder struct {
	scheduleID int64
	stops      StopSequence
}

// NewBuilder creates a Builder for the schedule's route.
func NewBuilder(scheduleID int64, stops StopSequence) *Builder {
	return &Builder{scheduleID: scheduleID, stops: stops}
}

// Build validates the selection against the given occupancy snapshot
// and returns the immutable request to submit. Preconditions are
// checked in a fixed order: seat chosen, stations chosen, stations form
// a valid ordered pair, seat free in the snapshot. The snapshot check
// is best-effort: a nil snapshot or one for a different car is skipped
// rather than failed, so a fetch race never blocks submission.
func (b *Builder) Build(sel Selection, snapshot *models.SeatAvailability) (models.BookingRequest, error) {
	if sel.SeatNumber <= 0 {
		return models.BookingRequest{}, NewValidationError(CheckSeatSelected,
			"no seat selected")
	}
	if sel.DepartureStationID == 0 || sel.ArrivalStationID == 0 {
		return models.BookingRequest{}, NewValidationError(CheckStationsSelected,
			"departure and arrival stations must be selected")
	}
	if !b.stops.IsValidPair(sel.DepartureStationID, sel.ArrivalStationID) {
		return models.BookingRequest{}, NewValidationError(CheckStationOrder,
			"departure station must come before arrival station on the route")
	}
	if snapshot != nil && snapshot.CarNumber == sel.CarNumber {
		for _, seat := range snapshot.OccupiedSeats {
			if seat == sel.SeatNumber {
				return models.BookingRequest{}, NewValidationError(CheckSeatOccupied,
					fmt.Sprintf("seat %d in car %d is already occupied", sel.SeatNumber, sel.CarNumber))
			}
		}
	}

	return models.BookingRequest{
		ScheduleID:         b.scheduleID,
		DepartureStationID: sel.DepartureStationID,
		ArrivalStationID:   sel.ArrivalStationID,
		CarNumber:          sel.CarNumber,
		SeatNumber:         sel.SeatNumber,
	}, nil
}
