package slot

import (
	"context"

	slotRepo "bookify/database/repository/slot"
	"bookify/models"
)

// SlotService manages a provider's published slots: creation under the daily
// cap, overlap-freedom among unbooked slots, and edits/deletes that are only
// legal while a slot is unbooked.
type SlotService interface {
	CreateSlot(ctx context.Context, providerID string, req models.SlotRequest) (*models.Slot, error)
	UpdateSlot(ctx context.Context, providerID, slotID string, req models.SlotUpdateRequest) (*models.Slot, error)
	DeleteSlot(ctx context.Context, providerID, slotID string) error
	ListProviderSlots(ctx context.Context, providerID, date string) ([]models.Slot, error)
	ListAvailableSlots(ctx context.Context, providerID, fromDate, toDate string) ([]models.Slot, error)
}

// DefaultSlotService is the production implementation.
type DefaultSlotService struct {
	Repo     slotRepo.SlotRepository
	DailyCap int // maximum slots per provider per day
}
