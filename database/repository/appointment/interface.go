// File: database/repository/appointment/interface.go
package apptRepo

import (
	"context"

	"bookify/database"
	"bookify/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AppointmentRepository persists appointments and owns every write that has
// to move an appointment and a slot together. Multi-document writes run in a
// Mongo session transaction; single-document status moves are conditional
// writes whose filter re-reads the persisted state.
type AppointmentRepository interface {
	GetByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error)

	// Book claims the slot (isBooked false -> true) and inserts the
	// appointment with the slot's interval denormalized onto it, atomically.
	// Exactly one of any set of concurrent callers succeeds.
	Book(ctx context.Context, appt *models.Appointment) error

	// Reschedule releases the appointment's current slot, claims newSlotID
	// and rewrites the denormalized interval, atomically. Status is unchanged.
	Reschedule(ctx context.Context, appointmentID, customerID, newSlotID string) (*models.Appointment, error)

	// Cancel moves a live appointment to cancelled and releases its slot,
	// atomically.
	Cancel(ctx context.Context, appointmentID, customerID string) (*models.Appointment, error)

	// Complete moves confirmed -> completed. The slot stays booked so the
	// interval is never re-offered.
	Complete(ctx context.Context, appointmentID, providerID string) (*models.Appointment, error)

	// Acknowledge sets the customer-side confirmed flag on a live
	// appointment. Status is unchanged.
	Acknowledge(ctx context.Context, appointmentID, customerID string) (*models.Appointment, error)

	EnsureIndexes() error
}

type mongoAppointmentRepo struct {
	apptColl *mongo.Collection
	slotColl *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new MongoDB AppointmentRepository.
func NewMongoAppointmentRepo() AppointmentRepository {
	db := database.DB()
	return &mongoAppointmentRepo{
		apptColl: db.Collection("appointments"),
		slotColl: db.Collection("slots"),
	}
}
