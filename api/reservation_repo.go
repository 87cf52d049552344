package api

import (
	"context"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"bookify/models"
	"bookify/utils"
)

// ReservationRepository fetches confirmed reservations, used to exclude
// already-booked periods from availability.
type ReservationRepository interface {
	ListByService(ctx context.Context, serviceID int, period models.DatePeriod) []models.Reservation
}

type APIReservationRepo struct {
	Client *Client
}

func NewReservationRepo(client *Client) *APIReservationRepo {
	return &APIReservationRepo{Client: client}
}

func (r *APIReservationRepo) ListByService(ctx context.Context, serviceID int, period models.DatePeriod) []models.Reservation {
	params := url.Values{
		"serviceId": {strconv.Itoa(serviceID)},
		"from":      {utils.FormatDate(period.StartDate, utils.FormatInternal)},
		"to":        {utils.FormatDate(period.EndDate, utils.FormatInternal)},
	}
	var reservations []models.Reservation
	if err := r.Client.Fetch(ctx, "/reservations", params, &reservations); err != nil {
		utils.GetLogger().Error("failed to fetch reservations",
			zap.Int("serviceId", serviceID), zap.Error(err))
		return nil
	}
	return reservations
}
