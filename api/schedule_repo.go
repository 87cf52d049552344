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

// ScheduleRepository fetches employee timetables from the booking data
// backend.
type ScheduleRepository interface {
	List(ctx context.Context) []models.Schedule
	FindByEmployee(ctx context.Context, employeeID int) *models.Schedule
}

type APIScheduleRepo struct {
	Client *Client
}

func NewScheduleRepo(client *Client) *APIScheduleRepo {
	return &APIScheduleRepo{Client: client}
}

func (r *APIScheduleRepo) List(ctx context.Context) []models.Schedule {
	var schedules []models.Schedule
	if err := r.Client.Fetch(ctx, "/schedules", nil, &schedules); err != nil {
		utils.GetLogger().Error("failed to fetch schedules", zap.Error(err))
		return nil
	}
	return schedules
}

func (r *APIScheduleRepo) FindByEmployee(ctx context.Context, employeeID int) *models.Schedule {
	var schedule models.Schedule
	params := url.Values{"employeeId": {strconv.Itoa(employeeID)}}
	if err := r.Client.Fetch(ctx, "/schedules/find", params, &schedule); err != nil {
		if !errors.Is(err, ErrNotFound) {
			utils.GetLogger().Error("failed to fetch schedule",
				zap.Int("employeeId", employeeID), zap.Error(err))
		}
		return nil
	}
	return &schedule
}
