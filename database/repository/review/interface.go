// File: database/repository/review/interface.go
package reviewRepo

import (
	"context"

	"bookify/database"
	"bookify/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ReviewRepository interface {
	// Create inserts a review. The unique index on appointmentId makes a
	// concurrent duplicate lose with ErrDuplicateReview.
	Create(ctx context.Context, review *models.Review) error
	ExistsForAppointment(ctx context.Context, appointmentID string) (bool, error)
	GetByProvider(ctx context.Context, providerID string) ([]models.Review, error)
	EnsureIndexes() error
}

type mongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo constructs a new MongoDB ReviewRepository.
func NewMongoReviewRepo() ReviewRepository {
	return &mongoReviewRepo{
		coll: database.DB().Collection("reviews"),
	}
}
