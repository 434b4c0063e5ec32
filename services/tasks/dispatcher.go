package tasks

import (
	"context"
	"fmt"

	"bookify/config"

	"github.com/hibiken/asynq"
)

// Dispatcher hands committed booking transitions to the side-effect worker.
// Dispatch failures are logged by the caller; the committed booking stands.
type Dispatcher interface {
	DispatchBookingEvent(ctx context.Context, payload SideEffectPayload) error
}

// AsynqDispatcher enqueues side-effect tasks on the Redis-backed queue.
type AsynqDispatcher struct {
	client *asynq.Client
}

func NewAsynqDispatcher() *AsynqDispatcher {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})
	return &AsynqDispatcher{client: client}
}

func (d *AsynqDispatcher) DispatchBookingEvent(ctx context.Context, payload SideEffectPayload) error {
	task, err := NewSideEffectTask(payload)
	if err != nil {
		return fmt.Errorf("failed to build side-effect task: %w", err)
	}
	if _, err := d.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue side-effect task: %w", err)
	}
	return nil
}

// Close releases the underlying queue connection.
func (d *AsynqDispatcher) Close() error {
	return d.client.Close()
}
