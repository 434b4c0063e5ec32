// File: database/repository/appointment/status.go
package apptRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Complete is a single conditional write; the status guard in the filter is
// the atomic re-read, so a concurrently cancelled appointment can never be
// completed. The slot is left booked on purpose.
func (r *mongoAppointmentRepo) Complete(ctx context.Context, appointmentID, providerID string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{
		"id":         appointmentID,
		"providerId": providerID,
		"status":     models.StatusConfirmed,
	}
	update := bson.M{"$set": bson.M{
		"status":      models.StatusCompleted,
		"completedAt": now,
		"updatedAt":   now,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Appointment
	err := r.apptColl.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.classifyStatusMiss(ctx, appointmentID, "providerId", providerID)
		}
		return nil, fmt.Errorf("failed to complete appointment %s: %w", appointmentID, err)
	}
	return &updated, nil
}

// Acknowledge records the customer-side confirmation flag without touching
// the status state machine.
func (r *mongoAppointmentRepo) Acknowledge(ctx context.Context, appointmentID, customerID string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{
		"id":         appointmentID,
		"customerId": customerID,
		"status":     bson.M{"$in": models.LiveStatuses},
	}
	update := bson.M{"$set": bson.M{
		"confirmed":   true,
		"confirmedAt": now,
		"updatedAt":   now,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Appointment
	err := r.apptColl.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.classifyStatusMiss(ctx, appointmentID, "customerId", customerID)
		}
		return nil, fmt.Errorf("failed to acknowledge appointment %s: %w", appointmentID, err)
	}
	return &updated, nil
}
