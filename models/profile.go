package models

import "time"

// Profile is the read-only identity projection the booking core consumes.
// Account management lives in a separate service; only the fields needed to
// address people in emails and notifications are mapped here.
type Profile struct {
	ID          string    `bson:"id" json:"id"`
	DisplayName string    `bson:"displayName" json:"displayName"`
	Email       string    `bson:"email" json:"email"`
	Role        string    `bson:"role" json:"role"` // "user" or "provider"
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
