// Package models defines the wire types exchanged with the railway
// booking backend. All shapes mirror the backend's JSON exactly; the
// client never invents fields.
package models

// Station is immutable reference data managed by administrators.
type Station struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Train describes the rolling stock assigned to a schedule.
type Train struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	TotalCars int    `json:"totalCars"`
}

// RouteStation is a station's position within a route's ordered stop
// sequence. StationOrder is unique within a route and strictly
// increasing along it.
type RouteStation struct {
	ID                int64   `json:"id"`
	Station           Station `json:"station"`
	StationOrder      int     `json:"stationOrder"`
	DistanceFromStart float64 `json:"distanceFromStart"`
}

// Route is an ordered sequence of stations.
type Route struct {
	ID       int64          `json:"id"`
	Name     string         `json:"name"`
	Stations []RouteStation `json:"stations"`
}

// ScheduleStation carries the arrival time assigned to one route
// station of a concrete schedule.
type ScheduleStation struct {
	ID             int64  `json:"id"`
	RouteStationID int64  `json:"routeStationId"`
	ArrivalTime    string `json:"arrivalTime"`
}

// Schedule is a specific train+route+date combination available for
// booking. It is created server-side and read-only to the booking flow.
type Schedule struct {
	ID            int64             `json:"id"`
	Train         Train             `json:"train"`
	Route         Route             `json:"route"`
	DepartureDate Date              `json:"departureDate"`
	Stations      []ScheduleStation `json:"stations,omitempty"`
}

// SeatAvailability is a point-in-time snapshot of taken seats for one
// (schedule, car) pair. There is no freshness guarantee beyond "as of
// last fetch".
type SeatAvailability struct {
	ScheduleID    int64 `json:"scheduleId"`
	CarNumber     int   `json:"carNumber"`
	OccupiedSeats []int `json:"occupiedSeats"`
}

// BookingRequest is the fully-validated payload submitted to reserve
// one seat. Constructed client-side; the server remains the final
// arbiter of seat conflicts.
type BookingRequest struct {
	ScheduleID         int64 `json:"scheduleId"`
	DepartureStationID int64 `json:"departureStationId"`
	ArrivalStationID   int64 `json:"arrivalStationId"`
	CarNumber          int   `json:"carNumber"`
	SeatNumber         int   `json:"seatNumber"`
}

// User is the account attached to the current session and to tickets.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// Roles issued by the backend.
const (
	RoleAdmin     = "admin"
	RoleConductor = "conductor"
)

// Ticket is a booked seat reservation. QRCode is an opaque
// base64-encoded PNG payload produced by the server.
type Ticket struct {
	ID                int64    `json:"id"`
	TicketNumber      string   `json:"ticketNumber"`
	DepartureStation  Station  `json:"departureStation"`
	ArrivalStation    Station  `json:"arrivalStation"`
	DepartureDatetime DateTime `json:"departureDatetime"`
	ArrivalDatetime   DateTime `json:"arrivalDatetime"`
	CarNumber         int      `json:"carNumber"`
	SeatNumber        int      `json:"seatNumber"`
	QRCode            string   `json:"qrCode,omitempty"`
	User              *User    `json:"user,omitempty"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ScheduleSearchRequest finds schedules serving an ordered station pair
// on a given date.
type ScheduleSearchRequest struct {
	DepartureStationID int64 `json:"departureStationId"`
	ArrivalStationID   int64 `json:"arrivalStationId"`
	DepartureDate      Date  `json:"departureDate"`
}

// StatisticsRequest selects the reporting window. Route and station
// filters are optional. The reporting API is externally owned and has
// shipped in two variants; this request shape is accepted by both.
type StatisticsRequest struct {
	StartDate          Date   `json:"startDate"`
	EndDate            Date   `json:"endDate"`
	RouteID            *int64 `json:"routeId,omitempty"`
	DepartureStationID *int64 `json:"departureStationId,omitempty"`
	ArrivalStationID   *int64 `json:"arrivalStationId,omitempty"`
}

// RouteStatistics aggregates ticket sales for one route.
type RouteStatistics struct {
	RouteID       int64   `json:"routeId"`
	RouteName     string  `json:"routeName"`
	TicketCount   int     `json:"ticketCount"`
	OccupancyRate float64 `json:"occupancyRate"`
}

// TicketStatistics is the reporting response.
type TicketStatistics struct {
	TotalTickets    int               `json:"totalTickets"`
	RouteStatistics []RouteStatistics `json:"routeStatistics"`
}
