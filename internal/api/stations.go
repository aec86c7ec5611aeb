package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Zakhar-Rapitskyi/railbook/internal/models"
)

// ListStations returns all stations.
func (c *Client) ListStations(ctx context.Context) ([]models.Station, error) {
	var stations []models.Station
	if err := c.get(ctx, "list_stations", "/stations", nil, &stations); err != nil {
		return nil, err
	}
	return stations, nil
}

// GetStation returns one station by id.
func (c *Client) GetStation(ctx context.Context, id int64) (*models.Station, error) {
	var station models.Station
	if err := c.get(ctx, "get_station", fmt.Sprintf("/stations/%d", id), nil, &station); err != nil {
		return nil, err
	}
	return &station, nil
}

// SearchStations finds stations whose name matches the query.
func (c *Client) SearchStations(ctx context.Context, name string) ([]models.Station, error) {
	query := url.Values{"name": {name}}
	var stations []models.Station
	if err := c.get(ctx, "search_stations", "/stations/search", query, &stations); err != nil {
		return nil, err
	}
	return stations, nil
}

// CreateStation creates a station. Admin only.
func (c *Client) CreateStation(ctx context.Context, name string) (*models.Station, error) {
	var station models.Station
	body := map[string]string{"name": name}
	if err := c.do(ctx, "create_station", http.MethodPost, "/stations", nil, body, &station); err != nil {
		return nil, err
	}
	return &station, nil
}

// UpdateStation renames a station. Admin only.
func (c *Client) UpdateStation(ctx context.Context, id int64, name string) (*models.Station, error) {
	var station models.Station
	body := map[string]string{"name": name}
	if err := c.do(ctx, "update_station", http.MethodPut, fmt.Sprintf("/stations/%d", id), nil, body, &station); err != nil {
		return nil, err
	}
	return &station, nil
}

// DeleteStation removes a station. Admin only.
func (c *Client) DeleteStation(ctx context.Context, id int64) error {
	return c.do(ctx, "delete_station", http.MethodDelete, fmt.Sprintf("/stations/%d", id), nil, nil, nil)
}
