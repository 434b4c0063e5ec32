package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"bookify/config"
	"bookify/services/email"
	"bookify/services/notification"
	"bookify/services/profile"
	"bookify/services/tasks"
	"bookify/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitSideEffectWorker runs the async side-effect worker in background.
func InitSideEffectWorker(
	notifSvc notification.NotificationService,
	emailer email.EmailNotifier,
	profiles profile.ProfileService,
) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
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
	mux.HandleFunc(tasks.TypeBookingSideEffect, handleSideEffectTask(notifSvc, emailer, profiles))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[SideEffectWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SideEffectWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SideEffectWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handleSideEffectTask fans one committed booking transition out to email and
// in-app notifications. Partial failures are logged and returned so asynq can
// retry the task; nothing here ever touches the committed booking state.
func handleSideEffectTask(
	notifSvc notification.NotificationService,
	emailer email.EmailNotifier,
	profiles profile.ProfileService,
) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.SideEffectPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[SideEffectHandler] Invalid payload: %v", err)
			return err
		}

		customerName := profiles.GetDisplayName(ctx, p.CustomerID)
		providerName := profiles.GetDisplayName(ctx, p.ProviderID)
		timeRange := utils.FormatClockHuman(p.Start) + " - " + utils.FormatClockHuman(p.End)

		var firstErr error
		remember := func(err error) {
			if err != nil && firstErr == nil {
				firstErr = err
			}
		}

		data := map[string]any{
			"appointmentId": p.AppointmentID,
			"date":          p.Date,
			"time":          timeRange,
		}

		switch p.Action {
		case tasks.ActionBooked:
			remember(sendEmail(ctx, emailer, profiles, p, customerName, providerName, timeRange, email.ActionConfirmed))
			remember(notifSvc.Create(ctx, p.ProviderID,
				"New Booking Received",
				customerName+" booked your "+p.Date+" slot at "+timeRange+".",
				"new_booking", data))

		case tasks.ActionRescheduled:
			remember(sendEmail(ctx, emailer, profiles, p, customerName, providerName, timeRange, email.ActionRescheduled))
			remember(notifSvc.Create(ctx, p.ProviderID,
				"Booking Rescheduled",
				customerName+" moved their appointment to "+p.Date+" at "+timeRange+".",
				"booking_rescheduled", data))

		case tasks.ActionCancelled:
			remember(sendEmail(ctx, emailer, profiles, p, customerName, providerName, timeRange, email.ActionCancelled))
			remember(notifSvc.Create(ctx, p.ProviderID,
				"Booking Cancelled",
				customerName+" cancelled their appointment on "+p.Date+" at "+timeRange+".",
				"booking_cancelled", data))

		case tasks.ActionCompleted:
			remember(notifSvc.Create(ctx, p.CustomerID,
				"How was your appointment?",
				"Your appointment with "+providerName+" is complete. Leave a review to help others.",
				"appointment_completed", data))

		case tasks.ActionAcknowledged:
			remember(notifSvc.Create(ctx, p.ProviderID,
				"Appointment Confirmed by Customer",
				customerName+" confirmed their appointment on "+p.Date+" at "+timeRange+".",
				"booking_acknowledged", data))

		default:
			log.Printf("[SideEffectHandler] Unknown action: %s", p.Action)
			return nil
		}

		if firstErr != nil {
			log.Printf("[SideEffectHandler] Failed to deliver side effects for appointment %s: %v", p.AppointmentID, firstErr)
		}
		return firstErr
	}
}

func sendEmail(
	ctx context.Context,
	emailer email.EmailNotifier,
	profiles profile.ProfileService,
	p tasks.SideEffectPayload,
	customerName, providerName, timeRange string,
	action email.EmailAction,
) error {
	prof, err := profiles.GetProfile(ctx, p.CustomerID)
	if err != nil || prof.Email == "" {
		// No address to send to; nothing to retry.
		log.Printf("[SideEffectHandler] No email address for customer %s, skipping email", p.CustomerID)
		return nil
	}
	return emailer.SendAppointmentEmail(ctx, email.AppointmentEmail{
		To:           prof.Email,
		CustomerName: customerName,
		ProviderName: providerName,
		Date:         p.Date,
		TimeRange:    timeRange,
		Action:       action,
	})
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[SideEffectWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
