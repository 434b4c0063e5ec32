package models

import "time"

// Slot represents one bookable interval for one provider on a calendar day.
type Slot struct {
	ID         string    `bson:"id" json:"id"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	Date       string    `bson:"date" json:"date"`         // e.g. "2025-06-01"
	Start      int       `bson:"start" json:"start"`       // minutes from midnight (e.g., 540 for 9:00 AM)
	End        int       `bson:"end" json:"end"`           // minutes from midnight (e.g., 570 for 9:30 AM)
	IsBooked   bool      `bson:"isBooked" json:"isBooked"` // flipped only by the booking engine
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Overlaps reports whether the slot's half-open interval shares any instant
// with [start, end).
func (s *Slot) Overlaps(start, end int) bool {
	return s.Start < end && start < s.End
}

// SlotRequest defines the payload for creating a slot.
type SlotRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"` // "HH:MM"
	EndTime   string `json:"endTime" binding:"required"`   // "HH:MM"
}

// SlotUpdateRequest defines the payload for editing a slot's interval. The
// calendar day of a slot is fixed at creation.
type SlotUpdateRequest struct {
	StartTime string `json:"startTime" binding:"required"` // "HH:MM"
	EndTime   string `json:"endTime" binding:"required"`   // "HH:MM"
}
