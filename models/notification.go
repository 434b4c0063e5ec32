package models

import "time"

// Notification is an in-app message persisted for a customer or provider.
type Notification struct {
	ID          string         `bson:"id" json:"id"`
	RecipientID string         `bson:"recipientId" json:"recipientId"`
	Type        string         `bson:"type" json:"type"` // e.g. "new_booking", "booking_cancelled"
	Title       string         `bson:"title" json:"title"`
	Message     string         `bson:"message" json:"message"`
	Data        map[string]any `bson:"data,omitempty" json:"data,omitempty"`
	Read        bool           `bson:"read" json:"read"`
	CreatedAt   time.Time      `bson:"createdAt" json:"createdAt"`
}
