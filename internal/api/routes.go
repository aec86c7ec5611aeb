package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Zakhar-Rapitskyi/railbook/internal/models"
)

// RouteStationRequest positions a station within a route.
type RouteStationRequest struct {
	StationOrder      int     `json:"stationOrder"`
	DistanceFromStart float64 `json:"distanceFromStart"`
}

// ListRoutes returns all routes.
func (c *Client) ListRoutes(ctx context.Context) ([]models.Route, error) {
	var routes []models.Route
	if err := c.get(ctx, "list_routes", "/routes", nil, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

// GetRoute returns one route by id, including its ordered stations.
func (c *Client) GetRoute(ctx context.Context, id int64) (*models.Route, error) {
	var route models.Route
	if err := c.get(ctx, "get_route", fmt.Sprintf("/routes/%d", id), nil, &route); err != nil {
		return nil, err
	}
	return &route, nil
}

// CreateRoute creates a route. Admin only.
func (c *Client) CreateRoute(ctx context.Context, name string) (*models.Route, error) {
	var route models.Route
	body := map[string]string{"name": name}
	if err := c.do(ctx, "create_route", http.MethodPost, "/routes", nil, body, &route); err != nil {
		return nil, err
	}
	return &route, nil
}

// UpdateRoute renames a route. Admin only.
func (c *Client) UpdateRoute(ctx context.Context, id int64, name string) (*models.Route, error) {
	var route models.Route
	body := map[string]string{"name": name}
	if err := c.do(ctx, "update_route", http.MethodPut, fmt.Sprintf("/routes/%d", id), nil, body, &route); err != nil {
		return nil, err
	}
	return &route, nil
}

// DeleteRoute removes a route. Admin only.
func (c *Client) DeleteRoute(ctx context.Context, id int64) error {
	return c.do(ctx, "delete_route", http.MethodDelete, fmt.Sprintf("/routes/%d", id), nil, nil, nil)
}

// GetRouteStations returns the route's stop sequence.
func (c *Client) GetRouteStations(ctx context.Context, routeID int64) ([]models.RouteStation, error) {
	var stations []models.RouteStation
	if err := c.get(ctx, "get_route_stations", fmt.Sprintf("/routes/%d/stations", routeID), nil, &stations); err != nil {
		return nil, err
	}
	return stations, nil
}

// AddStationToRoute appends a station to a route at the given order and
// distance. Admin only.
func (c *Client) AddStationToRoute(ctx context.Context, routeID, stationID int64, req RouteStationRequest) (*models.RouteStation, error) {
	var rs models.RouteStation
	path := fmt.Sprintf("/routes/%d/stations/%d", routeID, stationID)
	if err := c.do(ctx, "add_station_to_route", http.MethodPost, path, nil, req, &rs); err != nil {
		return nil, err
	}
	return &rs, nil
}

// RemoveStationFromRoute removes a station from a route. Admin only.
func (c *Client) RemoveStationFromRoute(ctx context.Context, routeID, stationID int64) error {
	path := fmt.Sprintf("/routes/%d/stations/%d", routeID, stationID)
	return c.do(ctx, "remove_station_from_route", http.MethodDelete, path, nil, nil, nil)
}
