package models

import "time"

// AppointmentStatus is the closed set of appointment lifecycle states.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusBooked    AppointmentStatus = "booked"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// LiveStatuses are the statuses that keep a slot claimed. A slot is booked
// iff exactly one appointment referencing it carries one of these.
var LiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusBooked,
	StatusConfirmed,
}

// Valid reports whether s is one of the known lifecycle states.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusBooked, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment binds a customer to one of a provider's slots. The date/start/end
// fields are a denormalized copy of the slot's interval, rewritten on reschedule.
type Appointment struct {
	ID         string            `bson:"id" json:"id"`
	CustomerID string            `bson:"customerId" json:"customerId"`
	ProviderID string            `bson:"providerId" json:"providerId"`
	SlotID     string            `bson:"slotId" json:"slotId"`
	Date       string            `bson:"date" json:"date"`
	Start      int               `bson:"start" json:"start"` // minutes from midnight
	End        int               `bson:"end" json:"end"`     // minutes from midnight
	Status     AppointmentStatus `bson:"status" json:"status"`

	// Customer-side acknowledgment; independent of Status.
	Confirmed   bool       `bson:"confirmed" json:"confirmed"`
	ConfirmedAt *time.Time `bson:"confirmedAt,omitempty" json:"confirmedAt,omitempty"`

	CancelledAt *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// IsLive returns true while the appointment keeps its slot claimed.
func (a *Appointment) IsLive() bool {
	return a.Status == StatusPending || a.Status == StatusBooked || a.Status == StatusConfirmed
}

// CanBeCancelled returns true if the appointment can still be cancelled.
func (a *Appointment) CanBeCancelled() bool {
	return a.IsLive()
}

// CanBeRescheduled returns true if the appointment can be moved to another slot.
func (a *Appointment) CanBeRescheduled() bool {
	return a.IsLive()
}

// CanBeCompleted returns true if the provider may mark the appointment done.
func (a *Appointment) CanBeCompleted() bool {
	return a.Status == StatusConfirmed
}

// AppointmentFilter narrows appointment listings.
type AppointmentFilter struct {
	CustomerID string
	ProviderID string
	Status     *AppointmentStatus
}
