package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"salonbook/config"
	bookingRepo "salonbook/database/repository/booking"
	"salonbook/models"
	"salonbook/services/notification"
	"salonbook/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(repo bookingRepo.BookingRepository, notifSvc notification.Service) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(repo, notifSvc))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(repo bookingRepo.BookingRepository, notifSvc notification.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] Invalid payload: %v", err)
			return err
		}

		// A booking cancelled or rescheduled after the reminder was enqueued
		// must not fire; re-check the current state.
		booking, err := repo.GetBookingByID(ctx, p.BookingID)
		if err != nil {
			log.Printf("[ReminderHandler] Failed to fetch booking %s: %v", p.BookingID, err)
			return err
		}
		if booking == nil || models.IsTerminalStatus(booking.Status) {
			log.Printf("[ReminderHandler] Skipping reminder for booking %s", p.BookingID)
			return nil
		}
		if fireDate, parseErr := time.Parse(time.RFC3339, p.FireDate); parseErr == nil {
			expected := booking.Start.Add(-2 * time.Hour)
			if expected.Sub(fireDate) > time.Minute || fireDate.Sub(expected) > time.Minute {
				// Stale reminder from before a reschedule; the new interval got
				// its own reminder when the reschedule was applied.
				return nil
			}
		}

		if err := notifSvc.SendBookingNotification(ctx, p.UserID, p.BookingID, p.Title, p.Body); err != nil {
			log.Printf("[ReminderHandler] Failed to send notification: %v", err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ReminderWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
