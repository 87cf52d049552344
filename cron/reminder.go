package cron

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"bookify/config"
	"bookify/models"
	"bookify/utils"
)

const TypeReminderSend = "reminder:send"

// reminderLeadTime is how long before the appointment the reminder fires.
const reminderLeadTime = 24 * time.Hour

// ReminderPayload is the task body for one appointment reminder.
type ReminderPayload struct {
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	ServiceName   string `json:"serviceName"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}

// NewReminderTask builds the asynq task scheduled at fireAt.
func NewReminderTask(payload ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReminderSend, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// ReminderScheduler enqueues a reminder per booked item.
type ReminderScheduler struct {
	client *asynq.Client
}

func NewReminderScheduler() *ReminderScheduler {
	return &ReminderScheduler{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisTaskDB,
		}),
	}
}

// ScheduleReminder queues the reminder ahead of the item's start time.
// Appointments closer than the lead time get no reminder.
func (s *ReminderScheduler) ScheduleReminder(order models.Order, item models.CartItem) error {
	if !item.IsSet(models.HashScopeAll) {
		return fmt.Errorf("cannot schedule reminder for incomplete item %s", item.ItemID)
	}

	fireAt := item.Time.StartTime.Add(-reminderLeadTime)
	if fireAt.Before(time.Now()) {
		return nil
	}

	payload := ReminderPayload{
		CustomerName:  order.Customer.Name,
		CustomerEmail: order.Customer.Email,
		ServiceName:   item.Service.Name,
		Date:          utils.FormatDate(item.Date, utils.FormatInternal),
		Time:          item.Time.String(),
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("build reminder task: %w", err)
	}
	if _, err := s.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("enqueue reminder task: %w", err)
	}
	return nil
}
