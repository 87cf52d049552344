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

// EmployeeRepository fetches employee records from the booking data backend.
type EmployeeRepository interface {
	List(ctx context.Context) []models.Employee
	FindByID(ctx context.Context, id int) *models.Employee
}

type APIEmployeeRepo struct {
	Client *Client
}

func NewEmployeeRepo(client *Client) *APIEmployeeRepo {
	return &APIEmployeeRepo{Client: client}
}

func (r *APIEmployeeRepo) List(ctx context.Context) []models.Employee {
	var employees []models.Employee
	if err := r.Client.Fetch(ctx, "/employees", nil, &employees); err != nil {
		utils.GetLogger().Error("failed to fetch employees", zap.Error(err))
		return nil
	}
	return employees
}

func (r *APIEmployeeRepo) FindByID(ctx context.Context, id int) *models.Employee {
	var employee models.Employee
	params := url.Values{"id": {strconv.Itoa(id)}}
	if err := r.Client.Fetch(ctx, "/employees/find", params, &employee); err != nil {
		if !errors.Is(err, ErrNotFound) {
			utils.GetLogger().Error("failed to fetch employee",
				zap.Int("id", id), zap.Error(err))
		}
		return nil
	}
	return &employee
}
