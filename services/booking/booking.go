package booking

import (
	"context"
	"errors"

	apptRepo "bookify/database/repository/appointment"
	slotRepo "bookify/database/repository/slot"
	"bookify/fault"
	"bookify/models"
	"bookify/services/tasks"
	"bookify/utils"

	"go.uber.org/zap"
)

func (s *DefaultBookingService) Book(ctx context.Context, customerID, slotID string) (*models.Appointment, error) {
	slot, err := s.Slots.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, fault.NotFound("slot not found")
		}
		return nil, err
	}
	if slot.IsBooked {
		return nil, fault.Conflict("slot already booked")
	}

	appt := &models.Appointment{
		CustomerID: customerID,
		SlotID:     slotID,
		Status:     models.StatusConfirmed,
	}
	if err := s.Appointments.Book(ctx, appt); err != nil {
		if errors.Is(err, apptRepo.ErrSlotUnavailable) {
			// Lost the race against a concurrent booker.
			return nil, fault.Conflict("slot already booked")
		}
		return nil, err
	}

	s.dispatch(ctx, tasks.ActionBooked, appt)
	return appt, nil
}

func (s *DefaultBookingService) Reschedule(ctx context.Context, appointmentID, customerID, newSlotID string) (*models.Appointment, error) {
	appt, err := s.ownedAppointment(ctx, appointmentID, customerID, "customer")
	if err != nil {
		return nil, err
	}
	if !appt.CanBeRescheduled() {
		return nil, fault.State("cannot reschedule a %s appointment", appt.Status)
	}

	newSlot, err := s.Slots.GetByID(ctx, newSlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, fault.NotFound("slot not found")
		}
		return nil, err
	}
	if newSlot.ProviderID != appt.ProviderID {
		return nil, fault.Conflict("slot belongs to a different provider")
	}
	if newSlot.IsBooked {
		return nil, fault.Conflict("slot already booked")
	}

	updated, err := s.Appointments.Reschedule(ctx, appointmentID, customerID, newSlotID)
	if err != nil {
		return nil, s.mapApptError(err)
	}

	s.dispatch(ctx, tasks.ActionRescheduled, updated)
	return updated, nil
}

func (s *DefaultBookingService) Cancel(ctx context.Context, appointmentID, customerID string) (*models.Appointment, error) {
	updated, err := s.Appointments.Cancel(ctx, appointmentID, customerID)
	if err != nil {
		return nil, s.mapApptError(err)
	}

	s.dispatch(ctx, tasks.ActionCancelled, updated)
	return updated, nil
}

func (s *DefaultBookingService) Complete(ctx context.Context, appointmentID, providerID string) (*models.Appointment, error) {
	updated, err := s.Appointments.Complete(ctx, appointmentID, providerID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrInvalidStatus) {
			return nil, fault.State("only a confirmed appointment can be completed")
		}
		return nil, s.mapApptError(err)
	}

	s.dispatch(ctx, tasks.ActionCompleted, updated)
	return updated, nil
}

func (s *DefaultBookingService) ConfirmAppointment(ctx context.Context, appointmentID, customerID string) (*models.Appointment, error) {
	updated, err := s.Appointments.Acknowledge(ctx, appointmentID, customerID)
	if err != nil {
		return nil, s.mapApptError(err)
	}

	s.dispatch(ctx, tasks.ActionAcknowledged, updated)
	return updated, nil
}

func (s *DefaultBookingService) GetAppointment(ctx context.Context, appointmentID, requesterID string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, s.mapApptError(err)
	}
	// Either side of the appointment may read it; everyone else sees not found.
	if appt.CustomerID != requesterID && appt.ProviderID != requesterID {
		return nil, fault.NotFound("appointment not found")
	}
	return appt, nil
}

func (s *DefaultBookingService) ListCustomerAppointments(ctx context.Context, customerID string, status *models.AppointmentStatus) ([]models.Appointment, error) {
	return s.Appointments.List(ctx, models.AppointmentFilter{
		CustomerID: customerID,
		Status:     status,
	})
}

func (s *DefaultBookingService) ListProviderAppointments(ctx context.Context, providerID string) ([]models.Appointment, error) {
	return s.Appointments.List(ctx, models.AppointmentFilter{
		ProviderID: providerID,
	})
}

// ownedAppointment loads an appointment and hides it from principals that do
// not own the given side of it.
func (s *DefaultBookingService) ownedAppointment(ctx context.Context, appointmentID, ownerID, side string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, s.mapApptError(err)
	}
	owner := appt.CustomerID
	if side == "provider" {
		owner = appt.ProviderID
	}
	if owner != ownerID {
		return nil, fault.NotFound("appointment not found")
	}
	return appt, nil
}

func (s *DefaultBookingService) mapApptError(err error) error {
	switch {
	case errors.Is(err, apptRepo.ErrAppointmentNotFound):
		return fault.NotFound("appointment not found")
	case errors.Is(err, apptRepo.ErrSlotUnavailable):
		return fault.Conflict("slot already booked")
	case errors.Is(err, apptRepo.ErrInvalidStatus):
		return fault.State("operation not allowed for the appointment's current status")
	default:
		return err
	}
}

// dispatch hands the committed transition to the side-effect worker. A
// dispatch failure is logged and swallowed: the booking stands.
func (s *DefaultBookingService) dispatch(ctx context.Context, action tasks.BookingAction, appt *models.Appointment) {
	if s.Dispatcher == nil {
		return
	}
	payload := tasks.SideEffectPayload{
		Action:        action,
		AppointmentID: appt.ID,
		CustomerID:    appt.CustomerID,
		ProviderID:    appt.ProviderID,
		Date:          appt.Date,
		Start:         appt.Start,
		End:           appt.End,
	}
	if err := s.Dispatcher.DispatchBookingEvent(ctx, payload); err != nil {
		utils.GetLogger().Error("side-effect dispatch failed",
			zap.String("appointmentID", appt.ID),
			zap.String("action", string(action)),
			zap.Error(err))
	}
}
