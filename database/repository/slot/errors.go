package slotRepo

import "errors"

var (
	// ErrSlotNotFound means no slot matched the id (and owner, when scoped).
	ErrSlotNotFound = errors.New("slot not found")
	// ErrSlotBooked means a guarded write was refused because the slot is booked.
	ErrSlotBooked = errors.New("slot is booked")
)
