package api

import (
	"context"
	"net/http"

	"github.com/Zakhar-Rapitskyi/railbook/internal/models"
)

// AdminTicketStatistics queries the newer admin reporting endpoint.
// The reporting API is externally owned and has two live variants; the
// older one is GetTicketStatistics. Their request and response shapes
// are compatible and no attempt is made to reconcile their semantics.
func (c *Client) AdminTicketStatistics(ctx context.Context, req models.StatisticsRequest) (*models.TicketStatistics, error) {
	var stats models.TicketStatistics
	if err := c.do(ctx, "admin_ticket_statistics", http.MethodPost, "/admin/statistics/tickets", nil, req, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
