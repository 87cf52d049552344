package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"bookify/models"
	"bookify/utils"
)

// TimeSlotsQuery describes a time-slot availability request for a service
// over a date range.
type TimeSlotsQuery struct {
	ServiceID   int
	EmployeeIDs []int
	LocationIDs []int
	Period      models.DatePeriod
	// ExcludeItems lists in-progress cart items whose tentative periods must
	// not be offered again.
	ExcludeItems []*models.CartItem
	SinceToday   bool
}

// GetAvailabilitySnapshot fetches the nested service→employee→location
// availability graph.
func (c *Client) GetAvailabilitySnapshot(ctx context.Context) (models.AvailabilitySnapshot, error) {
	var snapshot models.AvailabilitySnapshot
	if err := c.Fetch(ctx, "/availability", nil, &snapshot); err != nil {
		return nil, fmt.Errorf("fetch availability snapshot: %w", err)
	}
	return snapshot, nil
}

// GetTimeSlots fetches bookable slots per date for the query.
func (c *Client) GetTimeSlots(ctx context.Context, query TimeSlotsQuery) (models.TimeSlots, error) {
	params := url.Values{
		"serviceId": {strconv.Itoa(query.ServiceID)},
		"from":      {utils.FormatDate(query.Period.StartDate, utils.FormatInternal)},
		"to":        {utils.FormatDate(query.Period.EndDate, utils.FormatInternal)},
	}
	if len(query.EmployeeIDs) > 0 {
		params.Set("employees", joinIDs(query.EmployeeIDs))
	}
	if len(query.LocationIDs) > 0 {
		params.Set("locations", joinIDs(query.LocationIDs))
	}
	if query.SinceToday {
		params.Set("sinceToday", "1")
	}
	for _, item := range query.ExcludeItems {
		if !item.IsSet(models.HashScopeAll) {
			continue
		}
		exclusion := fmt.Sprintf("%d:%s:%s",
			item.Service.ID,
			utils.FormatDate(item.Date, utils.FormatInternal),
			item.Time.String())
		params.Add("exclude", exclusion)
	}

	var slots models.TimeSlots
	if err := c.Fetch(ctx, "/availability/slots", params, &slots); err != nil {
		return nil, fmt.Errorf("fetch time slots: %w", err)
	}
	return slots, nil
}

func joinIDs(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ",")
}
