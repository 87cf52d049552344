package api

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"bookify/models"
	"bookify/utils"
)

// LocationRepository fetches location records from the booking data backend.
type LocationRepository interface {
	List(ctx context.Context) []models.Location
	FindByID(ctx context.Context, id int) *models.Location
}

type APILocationRepo struct {
	Client *Client
}

func NewLocationRepo(client *Client) *APILocationRepo {
	return &APILocationRepo{Client: client}
}

func (r *APILocationRepo) List(ctx context.Context) []models.Location {
	var locations []models.Location
	if err := r.Client.Fetch(ctx, "/locations", nil, &locations); err != nil {
		utils.GetLogger().Error("failed to fetch locations", zap.Error(err))
		return nil
	}
	return locations
}

func (r *APILocationRepo) FindByID(ctx context.Context, id int) *models.Location {
	var location models.Location
	params := url.Values{"id": {strconv.Itoa(id)}}
	if err := r.Client.Fetch(ctx, "/locations/find", params, &location); err != nil {
		if !errors.Is(err, ErrNotFound) {
			utils.GetLogger().Error("failed to fetch location",
				zap.Int("id", id), zap.Error(err))
		}
		return nil
	}
	return &location
}
