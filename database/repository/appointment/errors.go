package apptRepo

import "errors"

var (
	// ErrAppointmentNotFound means no appointment matched the id (and owner, when scoped).
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrSlotUnavailable means the targeted slot is missing or already booked.
	ErrSlotUnavailable = errors.New("slot unavailable")
	// ErrInvalidStatus means a guarded status move was refused because the
	// persisted status no longer allows it.
	ErrInvalidStatus = errors.New("invalid appointment status for operation")
)
