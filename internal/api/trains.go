package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Zakhar-Rapitskyi/railbook/internal/models"
)

// TrainRequest is the create/update payload for trains.
type TrainRequest struct {
	Name      string `json:"name"`
	TotalCars int    `json:"totalCars"`
}

// ListTrains returns all trains.
func (c *Client) ListTrains(ctx context.Context) ([]models.Train, error) {
	var trains []models.Train
	if err := c.get(ctx, "list_trains", "/trains", nil, &trains); err != nil {
		return nil, err
	}
	return trains, nil
}

// GetTrain returns one train by id.
func (c *Client) GetTrain(ctx context.Context, id int64) (*models.Train, error) {
	var train models.Train
	if err := c.get(ctx, "get_train", fmt.Sprintf("/trains/%d", id), nil, &train); err != nil {
		return nil, err
	}
	return &train, nil
}

// CreateTrain creates a train. Admin only.
func (c *Client) CreateTrain(ctx context.Context, req TrainRequest) (*models.Train, error) {
	var train models.Train
	if err := c.do(ctx, "create_train", http.MethodPost, "/trains", nil, req, &train); err != nil {
		return nil, err
	}
	return &train, nil
}

// UpdateTrain updates a train. Admin only.
func (c *Client) UpdateTrain(ctx context.Context, id int64, req TrainRequest) (*models.Train, error) {
	var train models.Train
	if err := c.do(ctx, "update_train", http.MethodPut, fmt.Sprintf("/trains/%d", id), nil, req, &train); err != nil {
		return nil, err
	}
	return &train, nil
}

// DeleteTrain removes a train. Admin only.
func (c *Client) DeleteTrain(ctx context.Context, id int64) error {
	return c.do(ctx, "delete_train", http.MethodDelete, fmt.Sprintf("/trains/%d", id), nil, nil, nil)
}
