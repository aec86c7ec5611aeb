package booking

import (
	"github.com/Zakhar-Rapitskyi/railbook/internal/clock"
	"github.com/Zakhar-Rapitskyi/railbook/internal/models"
)

// Validity is the advisory classification a conductor sees after a
// ticket lookup. It has no server-side effect and does not mark the
// ticket as used.
type Validity int

const (
	// Valid means the ticket's departure has not happened yet.
	Valid Validity = iota
	// Expired means the departure time is already in the past.
	Expired
)

func (v Validity) String() string {
	if v == Expired {
		return "expired"
	}
	return "valid"
}

// IsUpcoming reports whether the ticket's departure is at or after the
// current time. Not a stored flag: the classification is recomputed on
// every read.
func IsUpcoming(ticket models.Ticket, c clock.Clock) bool {
	return !ticket.DepartureDatetime.Before(c.Now())
}

// Partition splits tickets into upcoming and past by departure time,
// preserving input order within each group.
func Partition(tickets []models.Ticket, c clock.Clock) (upcoming, past []models.Ticket) {
	for _, ticket := range tickets {
		if IsUpcoming(ticket, c) {
			upcoming = append(upcoming, ticket)
		} else {
			past = append(past, ticket)
		}
	}
	return upcoming, past
}

// Classify returns the verification validity of a ticket: expired once
// its departure time has passed, valid otherwise.
func Classify(ticket models.Ticket, c clock.Clock) Validity {
	if ticket.DepartureDatetime.Before(c.Now()) {
		return Expired
	}
	return Valid
}
