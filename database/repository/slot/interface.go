// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"

	"bookify/database"
	"bookify/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type SlotRepository interface {
	Create(ctx context.Context, slot *models.Slot) error
	GetByID(ctx context.Context, slotID string) (*models.Slot, error)
	GetByProviderAndDate(ctx context.Context, providerID, date string) ([]models.Slot, error)
	GetUnbookedByProviderAndDate(ctx context.Context, providerID, date string) ([]models.Slot, error)
	CountByProviderAndDate(ctx context.Context, providerID, date string) (int64, error)
	GetUnbookedInRange(ctx context.Context, providerID, fromDate, toDate string) ([]models.Slot, error)
	// UpdateTimes rewrites a slot's interval. The write is conditional on the
	// slot still being unbooked and owned by providerID.
	UpdateTimes(ctx context.Context, slotID, providerID string, start, end int) error
	// Delete removes a slot, conditional on the same guards as UpdateTimes.
	Delete(ctx context.Context, slotID, providerID string) error
	EnsureIndexes() error
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository.
func NewMongoSlotRepo() SlotRepository {
	return &mongoSlotRepo{
		coll: database.DB().Collection("slots"),
	}
}
