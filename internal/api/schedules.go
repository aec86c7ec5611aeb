package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Zakhar-Rapitskyi/railbook/internal/booking"
	"github.com/Zakhar-Rapitskyi/railbook/internal/models"
)

// ListSchedules returns all schedules.
func (c *Client) ListSchedules(ctx context.Context) ([]models.Schedule, error) {
	var schedules []models.Schedule
	if err := c.get(ctx, "list_schedules", "/schedules", nil, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// GetSchedule returns one schedule by id, including its train and the
// route's ordered stations.
func (c *Client) GetSchedule(ctx context.Context, id int64) (*models.Schedule, error) {
	var schedule models.Schedule
	if err := c.get(ctx, "get_schedule", fmt.Sprintf("/schedules/%d", id), nil, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// CreateSchedule creates a schedule for the given train, route and
// date. Admin only. The backend takes these as query parameters.
func (c *Client) CreateSchedule(ctx context.Context, trainID, routeID int64, departureDate models.Date) (*models.Schedule, error) {
	query := url.Values{
		"trainId":       {strconv.FormatInt(trainID, 10)},
		"routeId":       {strconv.FormatInt(routeID, 10)},
		"departureDate": {departureDate.String()},
	}
	var schedule models.Schedule
	if err := c.do(ctx, "create_schedule", http.MethodPost, "/schedules", query, nil, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// SetScheduleStationTime assigns the arrival time for one route station
// of a schedule. Admin only. arrivalTime is HH:MM:SS.
func (c *Client) SetScheduleStationTime(ctx context.Context, scheduleID, routeStationID int64, arrivalTime string) (*models.ScheduleStation, error) {
	var ss models.ScheduleStation
	path := fmt.Sprintf("/schedules/%d/stations/%d", scheduleID, routeStationID)
	body := map[string]string{"arrivalTime": arrivalTime}
	if err := c.do(ctx, "set_schedule_station_time", http.MethodPost, path, nil, body, &ss); err != nil {
		return nil, err
	}
	return &ss, nil
}

// UpdateScheduleTrain reassigns the train serving a schedule. Admin only.
func (c *Client) UpdateScheduleTrain(ctx context.Context, scheduleID, trainID int64) (*models.Schedule, error) {
	var schedule models.Schedule
	body := map[string]int64{"trainId": trainID}
	if err := c.do(ctx, "update_schedule_train", http.MethodPut, fmt.Sprintf("/schedules/%d/train", scheduleID), nil, body, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// DeleteSchedule removes a schedule. Admin only.
func (c *Client) DeleteSchedule(ctx context.Context, id int64) error {
	return c.do(ctx, "delete_schedule", http.MethodDelete, fmt.Sprintf("/schedules/%d", id), nil, nil, nil)
}

// SearchSchedules finds schedules serving the station pair on the given
// date. Identical departure and arrival stations are rejected locally
// before any network call.
func (c *Client) SearchSchedules(ctx context.Context, req models.ScheduleSearchRequest) ([]models.Schedule, error) {
	if req.DepartureStationID == req.ArrivalStationID {
		return nil, booking.NewValidationError(booking.CheckStationsSelected,
			"departure and arrival stations cannot be the same")
	}
	var schedules []models.Schedule
	if err := c.do(ctx, "search_schedules", http.MethodPost, "/schedules/search", nil, req, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}
