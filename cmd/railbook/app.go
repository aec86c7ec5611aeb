package main

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/Zakhar-Rapitskyi/railbook/internal/api"
	"github.com/Zakhar-Rapitskyi/railbook/internal/booking"
	"github.com/Zakhar-Rapitskyi/railbook/internal/clock"
	"github.com/Zakhar-Rapitskyi/railbook/internal/models"
	"github.com/Zakhar-Rapitskyi/railbook/internal/session"
	"github.com/Zakhar-Rapitskyi/railbook/internal/stats"
)

// commandTimeout bounds every backend call issued by a CLI command.
const commandTimeout = 15 * time.Second

// App wires the API client, clock and output stream for the CLI
// commands. Tests substitute a mock clock and a buffer.
type App struct {
	Client *api.Client
	Clock  clock.Clock
	Out    io.Writer
}

// Run dispatches a subcommand.
func (a *App) Run(command string, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	switch command {
	case "register":
		return a.runRegister(ctx, args)
	case "login":
		return a.runLogin(ctx, args)
	case "logout":
		return a.Client.Logout()
	case "whoami":
		return a.runWhoami()
	case "search":
		return a.runSearch(ctx, args)
	case "seats":
		return a.runSeats(ctx, args)
	case "book":
		return a.runBook(ctx, args)
	case "tickets":
		return a.runTickets(ctx, args)
	case "cancel":
		return a.runCancel(ctx, args)
	case "verify":
		return a.runVerify(ctx, args)
	case "stats":
		return a.runStats(ctx, args)
	case "stations":
		return a.runStations(ctx, args)
	case "trains":
		return a.runTrains(ctx, args)
	case "routes":
		return a.runRoutes(ctx, args)
	case "schedules":
		return a.runSchedules(ctx, args)
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func parseDate(s string) (models.Date, error) {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return models.Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return models.Date{Time: t}, nil
}

func (a *App) session() *session.Store {
	return a.Client.Session()
}

func (a *App) runRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := a.Client.Register(ctx, models.RegisterRequest{
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		Password:  *password,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "registered and logged in as %s\n", resp.User.Email)
	return nil
}

func (a *App) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := a.Client.Login(ctx, models.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "logged in as %s (%s)\n", resp.User.Email, resp.User.Role)
	return nil
}

func (a *App) runWhoami() error {
	if !a.session().IsAuthenticated(a.Clock) {
		fmt.Fprintln(a.Out, "not logged in")
		return nil
	}
	user := a.session().CurrentUser()
	if user == nil {
		fmt.Fprintln(a.Out, "logged in (no user details stored)")
		return nil
	}
	fmt.Fprintf(a.Out, "%s %s <%s> role=%s\n", user.FirstName, user.LastName, user.Email, user.Role)
	return nil
}

func (a *App) runSearch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	from := fs.Int64("from", 0, "departure station id")
	to := fs.Int64("to", 0, "arrival station id")
	date := fs.String("date", "", "departure date (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	departureDate, err := parseDate(*date)
	if err != nil {
		return err
	}
	schedules, err := a.Client.SearchSchedules(ctx, models.ScheduleSearchRequest{
		DepartureStationID: *from,
		ArrivalStationID:   *to,
		DepartureDate:      departureDate,
	})
	if err != nil {
		return err
	}
	if len(schedules) == 0 {
		fmt.Fprintln(a.Out, "no schedules found")
		return nil
	}
	for _, s := range schedules {
		fmt.Fprintf(a.Out, "schedule %d: %s on %s, %s (%d cars)\n",
			s.ID, s.Route.Name, s.DepartureDate, s.Train.Name, s.Train.TotalCars)
	}
	return nil
}

func (a *App) runSeats(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("seats", flag.ContinueOnError)
	scheduleID := fs.Int64("schedule", 0, "schedule id")
	car := fs.Int("car", 1, "car number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	seatMap := booking.NewSeatMap(*scheduleID, a.Client.GetAvailableSeats)
	snapshot, err := seatMap.Refresh(ctx, *car)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "schedule %d car %d occupied seats: %v\n",
		*scheduleID, *car, snapshot.OccupiedSeats)
	return nil
}

func (a *App) runBook(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("book", flag.ContinueOnError)
	scheduleID := fs.Int64("schedule", 0, "schedule id")
	from := fs.Int64("from", 0, "departure station id (default: first stop)")
	to := fs.Int64("to", 0, "arrival station id (default: last stop)")
	car := fs.Int("car", 1, "car number")
	seat := fs.Int("seat", 0, "seat number")
	dump := fs.Bool("dump", false, "dump the raw ticket structure")
	if err := fs.Parse(args); err != nil {
		return err
	}

	schedule, err := a.Client.GetSchedule(ctx, *scheduleID)
	if err != nil {
		return err
	}
	stops := booking.NewStopSequence(schedule.Route.Stations)
	if !stops.HasValidPairs() {
		return fmt.Errorf("route %q has fewer than two stations, booking is not possible", schedule.Route.Name)
	}

	departure, arrival := *from, *to
	if departure == 0 {
		first, _ := stops.First()
		departure = first.StationID
	}
	if arrival == 0 {
		last, _ := stops.Last()
		arrival = last.StationID
	}

	seatMap := booking.NewSeatMap(*scheduleID, a.Client.GetAvailableSeats)
	snapshot, err := seatMap.Refresh(ctx, *car)
	if err != nil {
		// The snapshot is advisory; booking proceeds and the server
		// remains the final arbiter.
		fmt.Fprintf(a.Out, "warning: could not load seat availability: %v\n", err)
	}

	builder := booking.NewBuilder(*scheduleID, stops)
	request, err := builder.Build(booking.Selection{
		ScheduleID:         *scheduleID,
		DepartureStationID: departure,
		ArrivalStationID:   arrival,
		CarNumber:          *car,
		SeatNumber:         *seat,
	}, snapshot)
	if err != nil {
		return err
	}

	ticket, err := a.Client.BookTicket(ctx, request)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "booked ticket %s: %s -> %s, car %d seat %d\n",
		ticket.TicketNumber, ticket.DepartureStation.Name, ticket.ArrivalStation.Name,
		ticket.CarNumber, ticket.SeatNumber)
	if *dump {
		spew.Fdump(a.Out, ticket)
	}
	return nil
}

func (a *App) runTickets(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tickets", flag.ContinueOnError)
	qrTicketID := fs.Int64("qr", 0, "save the QR code of this ticket id")
	qrPath := fs.String("o", "ticket-qr.png", "file to save the QR code to")
	number := fs.String("number", "", "look one ticket up by its printed number")
	userID := fs.Int64("user", 0, "list another user's tickets (admin)")
	all := fs.Bool("all", false, "list every ticket in the system (admin)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *qrTicketID != 0 {
		return a.saveTicketQR(ctx, *qrTicketID, *qrPath)
	}
	if *number != "" {
		ticket, err := a.Client.GetTicketByNumber(ctx, *number)
		if err != nil {
			return err
		}
		a.printTicket(*ticket)
		return nil
	}

	var tickets []models.Ticket
	var err error
	switch {
	case *all:
		tickets, err = a.Client.ListAllTickets(ctx)
	case *userID != 0:
		tickets, err = a.Client.ListTicketsByUser(ctx, *userID)
	default:
		tickets, err = a.Client.ListMyTickets(ctx)
	}
	if err != nil {
		return err
	}
	upcoming, past := booking.Partition(tickets, a.Clock)

	fmt.Fprintf(a.Out, "Upcoming (%d):\n", len(upcoming))
	for _, t := range upcoming {
		a.printTicket(t)
	}
	fmt.Fprintf(a.Out, "Past (%d):\n", len(past))
	for _, t := range past {
		a.printTicket(t)
	}
	return nil
}

func (a *App) printTicket(t models.Ticket) {
	fmt.Fprintf(a.Out, "  [%d] %s  %s -> %s  %s  car %d seat %d\n",
		t.ID, t.TicketNumber, t.DepartureStation.Name, t.ArrivalStation.Name,
		t.DepartureDatetime, t.CarNumber, t.SeatNumber)
}

// saveTicketQR decodes the ticket's base64 PNG payload to a file. The
// payload is opaque to the client; it is produced and consumed
// server-side.
func (a *App) saveTicketQR(ctx context.Context, ticketID int64, path string) error {
	ticket, err := a.Client.GetTicket(ctx, ticketID)
	if err != nil {
		return err
	}
	if ticket.QRCode == "" {
		return fmt.Errorf("ticket %s has no QR code", ticket.TicketNumber)
	}
	decoded, err := base64.StdEncoding.DecodeString(ticket.QRCode)
	if err != nil {
		return fmt.Errorf("ticket %s carries an invalid QR payload: %w", ticket.TicketNumber, err)
	}
	if err := os.WriteFile(path, decoded, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "saved QR code of ticket %s to %s\n", ticket.TicketNumber, path)
	return nil
}

func (a *App) runCancel(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cancel", flag.ContinueOnError)
	id := fs.Int64("id", 0, "ticket id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	err := a.Client.CancelTicket(ctx, *id)
	if api.IsNotFound(err) {
		// Already cancelled; the ticket is gone from listings either way.
		fmt.Fprintf(a.Out, "ticket %d already cancelled\n", *id)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "ticket %d cancelled\n", *id)
	return nil
}

func (a *App) runVerify(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	number := fs.String("number", "", "ticket number")
	dump := fs.Bool("dump", false, "dump the raw ticket structure")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ticket, err := a.Client.VerifyTicket(ctx, *number)
	if api.IsNotFound(err) {
		fmt.Fprintf(a.Out, "ticket %s: not found\n", *number)
		return nil
	}
	if err != nil {
		return err
	}

	validity := booking.Classify(*ticket, a.Clock)
	fmt.Fprintf(a.Out, "ticket %s: %s (%s -> %s, departs %s)\n",
		ticket.TicketNumber, validity,
		ticket.DepartureStation.Name, ticket.ArrivalStation.Name, ticket.DepartureDatetime)
	if *dump {
		spew.Fdump(a.Out, ticket)
	}
	return nil
}

func (a *App) runStats(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	start := fs.String("start", "", "start date (YYYY-MM-DD)")
	end := fs.String("end", "", "end date (YYYY-MM-DD)")
	routeID := fs.Int64("route", 0, "optional route id filter")
	admin := fs.Bool("admin-endpoint", false, "use the newer admin reporting endpoint")
	output := fs.String("o", "", "write CSV to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	startDate, err := parseDate(*start)
	if err != nil {
		return err
	}
	endDate, err := parseDate(*end)
	if err != nil {
		return err
	}

	req := models.StatisticsRequest{StartDate: startDate, EndDate: endDate}
	if *routeID != 0 {
		req.RouteID = routeID
	}

	var statistics *models.TicketStatistics
	if *admin {
		statistics, err = a.Client.AdminTicketStatistics(ctx, req)
	} else {
		statistics, err = a.Client.GetTicketStatistics(ctx, req)
	}
	if err != nil {
		return err
	}

	out := a.Out
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return stats.WriteCSV(out, *statistics)
}
