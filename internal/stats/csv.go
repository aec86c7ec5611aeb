// Package stats formats reporting responses for export.
package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Zakhar-Rapitskyi/railbook/internal/models"
)

// WriteCSV renders ticket statistics as CSV: a header, one row per
// route, then a blank line and a totals row. Occupancy is rendered with
// two decimals; the totals row has no meaningful occupancy.
func WriteCSV(w io.Writer, statistics models.TicketStatistics) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Route", "Tickets Sold", "Occupancy Rate (%)"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, route := range statistics.RouteStatistics {
		row := []string{
			route.RouteName,
			strconv.Itoa(route.TicketCount),
			fmt.Sprintf("%.2f", route.OccupancyRate),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for route %q: %w", route.RouteName, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	cw = csv.NewWriter(w)
	if err := cw.Write([]string{"Total", strconv.Itoa(statistics.TotalTickets), "-"}); err != nil {
		return fmt.Errorf("failed to write CSV totals: %w", err)
	}
	cw.Flush()
	return cw.Error()
}
