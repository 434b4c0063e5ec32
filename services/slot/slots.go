package slot

import (
	"context"
	"errors"
	"fmt"

	slotRepo "bookify/database/repository/slot"
	"bookify/fault"
	"bookify/models"
	"bookify/utils"
)

// DefaultDailyCap bounds how many slots a provider may publish per calendar
// day when no cap is configured.
const DefaultDailyCap = 15

func (s *DefaultSlotService) dailyCap() int {
	if s.DailyCap > 0 {
		return s.DailyCap
	}
	return DefaultDailyCap
}

func (s *DefaultSlotService) CreateSlot(ctx context.Context, providerID string, req models.SlotRequest) (*models.Slot, error) {
	if _, err := utils.ParseDate(req.Date); err != nil {
		return nil, fault.Validation("%v", err)
	}
	start, end, err := parseInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	count, err := s.Repo.CountByProviderAndDate(ctx, providerID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to count existing slots: %w", err)
	}
	if count >= int64(s.dailyCap()) {
		return nil, fault.Conflict("daily cap exceeded: at most %d slots per day", s.dailyCap())
	}

	if err := s.checkOverlap(ctx, providerID, req.Date, start, end, ""); err != nil {
		return nil, err
	}

	created := &models.Slot{
		ProviderID: providerID,
		Date:       req.Date,
		Start:      start,
		End:        end,
		IsBooked:   false,
	}
	if err := s.Repo.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("failed to create slot: %w", err)
	}
	return created, nil
}

func (s *DefaultSlotService) UpdateSlot(ctx context.Context, providerID, slotID string, req models.SlotUpdateRequest) (*models.Slot, error) {
	start, end, err := parseInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, fault.NotFound("slot not found")
		}
		return nil, err
	}
	// Ownership misses read as not found so the lookup never leaks another
	// provider's slots.
	if existing.ProviderID != providerID {
		return nil, fault.NotFound("slot not found")
	}
	if existing.IsBooked {
		return nil, fault.Conflict("cannot edit booked slot")
	}

	if err := s.checkOverlap(ctx, providerID, existing.Date, start, end, slotID); err != nil {
		return nil, err
	}

	if err := s.Repo.UpdateTimes(ctx, slotID, providerID, start, end); err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			return nil, fault.NotFound("slot not found")
		case errors.Is(err, slotRepo.ErrSlotBooked):
			// The slot was booked between the read above and the write.
			return nil, fault.Conflict("cannot edit booked slot")
		default:
			return nil, err
		}
	}

	existing.Start = start
	existing.End = end
	return existing, nil
}

func (s *DefaultSlotService) DeleteSlot(ctx context.Context, providerID, slotID string) error {
	if err := s.Repo.Delete(ctx, slotID, providerID); err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			return fault.NotFound("slot not found")
		case errors.Is(err, slotRepo.ErrSlotBooked):
			return fault.Conflict("cannot delete booked slot")
		default:
			return err
		}
	}
	return nil
}

func (s *DefaultSlotService) ListProviderSlots(ctx context.Context, providerID, date string) ([]models.Slot, error) {
	if _, err := utils.ParseDate(date); err != nil {
		return nil, fault.Validation("%v", err)
	}
	return s.Repo.GetByProviderAndDate(ctx, providerID, date)
}

func (s *DefaultSlotService) ListAvailableSlots(ctx context.Context, providerID, fromDate, toDate string) ([]models.Slot, error) {
	from, err := utils.ParseDate(fromDate)
	if err != nil {
		return nil, fault.Validation("%v", err)
	}
	to, err := utils.ParseDate(toDate)
	if err != nil {
		return nil, fault.Validation("%v", err)
	}
	if to.Before(from) {
		return nil, fault.Validation("date range end %s precedes start %s", toDate, fromDate)
	}
	return s.Repo.GetUnbookedInRange(ctx, providerID, fromDate, toDate)
}

// checkOverlap rejects an interval that overlaps any unbooked slot the
// provider already has on the date. excludeID skips the slot being edited.
func (s *DefaultSlotService) checkOverlap(ctx context.Context, providerID, date string, start, end int, excludeID string) error {
	existing, err := s.Repo.GetUnbookedByProviderAndDate(ctx, providerID, date)
	if err != nil {
		return fmt.Errorf("failed to load slots for overlap check: %w", err)
	}
	for i := range existing {
		if existing[i].ID == excludeID {
			continue
		}
		if existing[i].Overlaps(start, end) {
			return fault.Conflict("overlap: slot %s-%s collides with an existing slot",
				utils.FormatClock(start), utils.FormatClock(end))
		}
	}
	return nil
}

func parseInterval(startTime, endTime string) (int, int, error) {
	start, err := utils.ParseClock(startTime)
	if err != nil {
		return 0, 0, fault.Validation("%v", err)
	}
	end, err := utils.ParseClock(endTime)
	if err != nil {
		return 0, 0, fault.Validation("%v", err)
	}
	if start >= end {
		return 0, 0, fault.Validation("start time %s must be before end time %s", startTime, endTime)
	}
	return start, end, nil
}
