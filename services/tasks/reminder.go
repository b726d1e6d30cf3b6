package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"salonbook/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// Fire reminders this long before the appointment starts.
const reminderLead = 2 * time.Hour

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler enqueues delayed booking reminders on Redis.
type AsynqReminderScheduler struct {
	Client *asynq.Client
}

// ScheduleReminder enqueues a reminder to fire ahead of the booking start.
// Bookings starting inside the lead window get no reminder.
func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, booking *models.Booking) error {
	fireAt := booking.Start.Add(-reminderLead)
	if !fireAt.After(time.Now()) {
		return nil
	}

	payload := models.ReminderPayload{
		UserID:    booking.UserID,
		BookingID: booking.ID,
		Title:     "Upcoming appointment",
		Body:      fmt.Sprintf("Your appointment starts at %s.", booking.Start.Format("2 January, 3:04 PM")),
		FireDate:  fireAt.Format(time.RFC3339),
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder task: %w", err)
	}
	return nil
}
