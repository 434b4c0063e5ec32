package booking

import (
	"context"

	apptRepo "bookify/database/repository/appointment"
	slotRepo "bookify/database/repository/slot"
	"bookify/models"
	"bookify/services/tasks"
)

// BookingService owns the appointment state machine and the invariant that a
// slot is booked iff exactly one live appointment references it. Every
// mutation commits atomically at the repository; side-effects are dispatched
// after commit and never roll anything back.
type BookingService interface {
	Book(ctx context.Context, customerID, slotID string) (*models.Appointment, error)
	Reschedule(ctx context.Context, appointmentID, customerID, newSlotID string) (*models.Appointment, error)
	Cancel(ctx context.Context, appointmentID, customerID string) (*models.Appointment, error)
	Complete(ctx context.Context, appointmentID, providerID string) (*models.Appointment, error)
	ConfirmAppointment(ctx context.Context, appointmentID, customerID string) (*models.Appointment, error)

	GetAppointment(ctx context.Context, appointmentID, requesterID string) (*models.Appointment, error)
	ListCustomerAppointments(ctx context.Context, customerID string, status *models.AppointmentStatus) ([]models.Appointment, error)
	ListProviderAppointments(ctx context.Context, providerID string) ([]models.Appointment, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Appointments apptRepo.AppointmentRepository
	Slots        slotRepo.SlotRepository
	Dispatcher   tasks.Dispatcher
}
