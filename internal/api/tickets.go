package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Zakhar-Rapitskyi/railbook/internal/models"
)

// ListAllTickets returns every ticket in the system. Admin only.
func (c *Client) ListAllTickets(ctx context.Context) ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := c.get(ctx, "list_all_tickets", "/tickets", nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// GetTicket returns one ticket by id.
func (c *Client) GetTicket(ctx context.Context, id int64) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := c.get(ctx, "get_ticket", fmt.Sprintf("/tickets/%d", id), nil, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// GetTicketByNumber looks a ticket up by its printed number.
func (c *Client) GetTicketByNumber(ctx context.Context, ticketNumber string) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := c.get(ctx, "get_ticket_by_number", "/tickets/number/"+url.PathEscape(ticketNumber), nil, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// ListTicketsByUser returns the tickets belonging to a user. Admin only.
func (c *Client) ListTicketsByUser(ctx context.Context, userID int64) ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := c.get(ctx, "list_tickets_by_user", fmt.Sprintf("/tickets/user/%d", userID), nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// ListMyTickets returns the current user's tickets.
func (c *Client) ListMyTickets(ctx context.Context) ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := c.get(ctx, "list_my_tickets", "/tickets/me", nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// BookTicket submits a validated booking request. This is the single
// network-mutating step of the booking workflow: validation happens
// beforehand in the booking package, and a seat-taken rejection comes
// back as a conflict error carrying the server's reason verbatim. The
// client never retries and never inserts the ticket optimistically.
func (c *Client) BookTicket(ctx context.Context, req models.BookingRequest) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := c.do(ctx, "book_ticket", http.MethodPost, "/tickets", nil, req, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// CancelTicket cancels a ticket by id. Cancelling an already-cancelled
// ticket yields a not-found error; callers treat that as
// success-equivalent since the ticket is absent from listings either way.
func (c *Client) CancelTicket(ctx context.Context, id int64) error {
	return c.do(ctx, "cancel_ticket", http.MethodDelete, fmt.Sprintf("/tickets/%d", id), nil, nil, nil)
}

// GetAvailableSeats fetches the occupancy snapshot for one
// (schedule, car) pair. The result is point-in-time only; a booking
// race remains possible and surfaces as a conflict on BookTicket.
func (c *Client) GetAvailableSeats(ctx context.Context, scheduleID int64, carNumber int) (*models.SeatAvailability, error) {
	query := url.Values{
		"scheduleId": {strconv.FormatInt(scheduleID, 10)},
		"carNumber":  {strconv.Itoa(carNumber)},
	}
	var availability models.SeatAvailability
	if err := c.get(ctx, "get_available_seats", "/tickets/seats", query, &availability); err != nil {
		return nil, err
	}
	availability.ScheduleID = scheduleID
	availability.CarNumber = carNumber
	return &availability, nil
}

// GetTicketStatistics queries the original reporting endpoint. The
// newer admin variant lives in statistics.go; both are kept because the
// reporting API is externally owned and shipped both shapes.
func (c *Client) GetTicketStatistics(ctx context.Context, req models.StatisticsRequest) (*models.TicketStatistics, error) {
	var stats models.TicketStatistics
	if err := c.do(ctx, "get_ticket_statistics", http.MethodPost, "/tickets/statistics", nil, req, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
