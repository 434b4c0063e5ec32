// File: database/repository/slot/crud.go
package slotRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookify/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *mongoSlotRepo) Create(ctx context.Context, slot *models.Slot) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	now := time.Now()
	slot.CreatedAt = now
	slot.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, slot); err != nil {
		return fmt.Errorf("failed to insert slot: %w", err)
	}
	return nil
}

func (r *mongoSlotRepo) GetByID(ctx context.Context, slotID string) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.Slot
	err := r.coll.FindOne(ctx, bson.M{"id": slotID}).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to fetch slot %s: %w", slotID, err)
	}
	return &slot, nil
}

func (r *mongoSlotRepo) UpdateTimes(ctx context.Context, slotID, providerID string, start, end int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// The isBooked guard in the filter makes the edit lose against a
	// concurrent booking on the same slot.
	filter := bson.M{"id": slotID, "providerId": providerID, "isBooked": false}
	update := bson.M{"$set": bson.M{
		"start":     start,
		"end":       end,
		"updatedAt": time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update slot %s: %w", slotID, err)
	}
	if res.MatchedCount == 0 {
		return r.classifyGuardMiss(ctx, slotID, providerID)
	}
	return nil
}

func (r *mongoSlotRepo) Delete(ctx context.Context, slotID, providerID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": slotID, "providerId": providerID, "isBooked": false}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", slotID, err)
	}
	if res.DeletedCount == 0 {
		return r.classifyGuardMiss(ctx, slotID, providerID)
	}
	return nil
}

// classifyGuardMiss distinguishes "missing or not owned" from "owned but
// booked" after a guarded write matched nothing.
func (r *mongoSlotRepo) classifyGuardMiss(ctx context.Context, slotID, providerID string) error {
	count, err := r.coll.CountDocuments(ctx, bson.M{"id": slotID, "providerId": providerID})
	if err != nil {
		return fmt.Errorf("failed to re-check slot %s: %w", slotID, err)
	}
	if count == 0 {
		return ErrSlotNotFound
	}
	return ErrSlotBooked
}
