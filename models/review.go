package models

import "time"

// Review is a customer's rating of a completed appointment. At most one
// review exists per appointment.
type Review struct {
	ID            string    `bson:"id" json:"id"`
	AppointmentID string    `bson:"appointmentId" json:"appointmentId"`
	CustomerID    string    `bson:"customerId" json:"customerId"`
	ProviderID    string    `bson:"providerId" json:"providerId"`
	Rating        int       `bson:"rating" json:"rating"` // clamped to [1,5]
	Comment       string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// ReviewRequest defines the payload for submitting a review.
type ReviewRequest struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
	Rating        int    `json:"rating" binding:"required"`
	Comment       string `json:"comment"`
}
