// File: database/repository/appointment/transaction.go
package apptRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookify/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// runTxn executes fn inside a Mongo session transaction.
func (r *mongoAppointmentRepo) runTxn(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := r.apptColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// claimSlot flips isBooked false -> true and returns the claimed slot. The
// isBooked guard in the filter is what makes concurrent bookers lose.
func (r *mongoAppointmentRepo) claimSlot(sc mongo.SessionContext, filter bson.M) (*models.Slot, error) {
	filter["isBooked"] = false
	update := bson.M{"$set": bson.M{"isBooked": true, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var slot models.Slot
	err := r.slotColl.FindOneAndUpdate(sc, filter, update, opts).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("failed to claim slot: %w", err)
	}
	return &slot, nil
}

// releaseSlot flips isBooked back to false.
func (r *mongoAppointmentRepo) releaseSlot(sc mongo.SessionContext, slotID string) error {
	update := bson.M{"$set": bson.M{"isBooked": false, "updatedAt": time.Now()}}
	if _, err := r.slotColl.UpdateOne(sc, bson.M{"id": slotID}, update); err != nil {
		return fmt.Errorf("failed to release slot %s: %w", slotID, err)
	}
	return nil
}

func (r *mongoAppointmentRepo) Book(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}

	return r.runTxn(ctx, func(sc mongo.SessionContext) error {
		slot, err := r.claimSlot(sc, bson.M{"id": appt.SlotID})
		if err != nil {
			return err
		}

		now := time.Now()
		appt.ProviderID = slot.ProviderID
		appt.Date = slot.Date
		appt.Start = slot.Start
		appt.End = slot.End
		appt.CreatedAt = now
		appt.UpdatedAt = now

		if _, err := r.apptColl.InsertOne(sc, appt); err != nil {
			return fmt.Errorf("failed to insert appointment: %w", err)
		}
		return nil
	})
}

func (r *mongoAppointmentRepo) Reschedule(ctx context.Context, appointmentID, customerID, newSlotID string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var updated models.Appointment
	err := r.runTxn(ctx, func(sc mongo.SessionContext) error {
		appt, err := r.findScoped(sc, appointmentID, "customerId", customerID)
		if err != nil {
			return err
		}
		if !appt.CanBeRescheduled() {
			return ErrInvalidStatus
		}

		// Claim the replacement first; the provider guard keeps the
		// appointment pinned to its original provider.
		newSlot, err := r.claimSlot(sc, bson.M{"id": newSlotID, "providerId": appt.ProviderID})
		if err != nil {
			return err
		}
		if err := r.releaseSlot(sc, appt.SlotID); err != nil {
			return err
		}

		update := bson.M{"$set": bson.M{
			"slotId":    newSlot.ID,
			"date":      newSlot.Date,
			"start":     newSlot.Start,
			"end":       newSlot.End,
			"updatedAt": time.Now(),
		}}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		if err := r.apptColl.FindOneAndUpdate(sc, bson.M{"id": appointmentID}, update, opts).Decode(&updated); err != nil {
			return fmt.Errorf("failed to update appointment %s: %w", appointmentID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *mongoAppointmentRepo) Cancel(ctx context.Context, appointmentID, customerID string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var updated models.Appointment
	err := r.runTxn(ctx, func(sc mongo.SessionContext) error {
		now := time.Now()
		filter := bson.M{
			"id":         appointmentID,
			"customerId": customerID,
			"status":     bson.M{"$in": models.LiveStatuses},
		}
		update := bson.M{"$set": bson.M{
			"status":      models.StatusCancelled,
			"cancelledAt": now,
			"updatedAt":   now,
		}}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err := r.apptColl.FindOneAndUpdate(sc, filter, update, opts).Decode(&updated)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return r.classifyStatusMiss(sc, appointmentID, "customerId", customerID)
			}
			return fmt.Errorf("failed to cancel appointment %s: %w", appointmentID, err)
		}
		return r.releaseSlot(sc, updated.SlotID)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// classifyStatusMiss distinguishes "missing or not owned" from "owned but in
// the wrong status" after a status-guarded write matched nothing.
func (r *mongoAppointmentRepo) classifyStatusMiss(ctx context.Context, appointmentID, ownerField, ownerID string) error {
	count, err := r.apptColl.CountDocuments(ctx, bson.M{"id": appointmentID, ownerField: ownerID})
	if err != nil {
		return fmt.Errorf("failed to re-check appointment %s: %w", appointmentID, err)
	}
	if count == 0 {
		return ErrAppointmentNotFound
	}
	return ErrInvalidStatus
}
