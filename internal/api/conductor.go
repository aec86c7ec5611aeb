package api

import (
	"context"
	"net/url"

	"github.com/Zakhar-Rapitskyi/railbook/internal/models"
)

// VerifyTicket looks up a ticket by number on behalf of a conductor.
// The lookup has no server-side side effect; validity classification
// against the departure time is done locally (booking.ClassifyTicket).
func (c *Client) VerifyTicket(ctx context.Context, ticketNumber string) (*models.Ticket, error) {
	var ticket models.Ticket
	path := "/conductor/tickets/verify/" + url.PathEscape(ticketNumber)
	if err := c.get(ctx, "verify_ticket", path, nil, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}
