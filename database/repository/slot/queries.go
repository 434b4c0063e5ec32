// File: database/repository/slot/queries.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"bookify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoSlotRepo) GetByProviderAndDate(ctx context.Context, providerID, date string) ([]models.Slot, error) {
	return r.findSlots(ctx, bson.M{"providerId": providerID, "date": date})
}

func (r *mongoSlotRepo) GetUnbookedByProviderAndDate(ctx context.Context, providerID, date string) ([]models.Slot, error) {
	return r.findSlots(ctx, bson.M{"providerId": providerID, "date": date, "isBooked": false})
}

func (r *mongoSlotRepo) CountByProviderAndDate(ctx context.Context, providerID, date string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"providerId": providerID, "date": date})
	if err != nil {
		return 0, fmt.Errorf("failed to count slots: %w", err)
	}
	return count, nil
}

func (r *mongoSlotRepo) GetUnbookedInRange(ctx context.Context, providerID, fromDate, toDate string) ([]models.Slot, error) {
	filter := bson.M{
		"providerId": providerID,
		"isBooked":   false,
		"date":       bson.M{"$gte": fromDate, "$lte": toDate},
	}
	return r.findSlots(ctx, filter)
}

func (r *mongoSlotRepo) findSlots(ctx context.Context, filter bson.M) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query slots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []models.Slot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode slots: %w", err)
	}
	return slots, nil
}
