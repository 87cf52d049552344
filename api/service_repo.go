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

// ServiceRepository fetches service records from the booking data backend.
type ServiceRepository interface {
	List(ctx context.Context) []models.Service
	FindByID(ctx context.Context, id int) *models.Service
}

// APIServiceRepo implements ServiceRepository over the REST client. Fetch
// failures degrade to an empty list or nil so callers always receive a
// well-formed result.
type APIServiceRepo struct {
	Client *Client
}

func NewServiceRepo(client *Client) *APIServiceRepo {
	return &APIServiceRepo{Client: client}
}

func (r *APIServiceRepo) List(ctx context.Context) []models.Service {
	var services []models.Service
	if err := r.Client.Fetch(ctx, "/services", nil, &services); err != nil {
		utils.GetLogger().Error("failed to fetch services", zap.Error(err))
		return nil
	}
	return services
}

func (r *APIServiceRepo) FindByID(ctx context.Context, id int) *models.Service {
	var service models.Service
	params := url.Values{"id": {strconv.Itoa(id)}}
	if err := r.Client.Fetch(ctx, "/services/find", params, &service); err != nil {
		if !errors.Is(err, ErrNotFound) {
			utils.GetLogger().Error("failed to fetch service",
				zap.Int("id", id), zap.Error(err))
		}
		return nil
	}
	return &service
}
