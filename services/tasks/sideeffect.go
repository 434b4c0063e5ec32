package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeBookingSideEffect = "booking:side_effect"

// BookingAction names the committed transition a side-effect task fans out.
type BookingAction string

const (
	ActionBooked       BookingAction = "booked"
	ActionRescheduled  BookingAction = "rescheduled"
	ActionCancelled    BookingAction = "cancelled"
	ActionCompleted    BookingAction = "completed"
	ActionAcknowledged BookingAction = "acknowledged"
)

// SideEffectPayload is the task body for post-commit email/notification
// fan-out. It carries the denormalized interval so the worker never has to
// read the booking back.
type SideEffectPayload struct {
	Action        BookingAction `json:"action"`
	AppointmentID string        `json:"appointmentId"`
	CustomerID    string        `json:"customerId"`
	ProviderID    string        `json:"providerId"`
	Date          string        `json:"date"`
	Start         int           `json:"start"`
	End           int           `json:"end"`
}

// NewSideEffectTask builds the asynq task for a booking transition.
func NewSideEffectTask(payload SideEffectPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBookingSideEffect, b), nil
}
