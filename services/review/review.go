package review

import (
	"context"
	"errors"

	apptRepo "bookify/database/repository/appointment"
	reviewRepo "bookify/database/repository/review"
	"bookify/fault"
	"bookify/models"
)

// ReviewService gates reviews: one per appointment, customers only, and only
// once the appointment is completed.
type ReviewService interface {
	SubmitReview(ctx context.Context, customerID string, req models.ReviewRequest) (*models.Review, error)
	ListProviderReviews(ctx context.Context, providerID string) ([]models.Review, error)
}

// DefaultReviewService is the production implementation.
type DefaultReviewService struct {
	Reviews      reviewRepo.ReviewRepository
	Appointments apptRepo.AppointmentRepository
}

func (s *DefaultReviewService) SubmitReview(ctx context.Context, customerID string, req models.ReviewRequest) (*models.Review, error) {
	appt, err := s.Appointments.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return nil, fault.NotFound("appointment not found")
		}
		return nil, err
	}
	if appt.CustomerID != customerID {
		return nil, fault.NotFound("appointment not found")
	}
	if appt.Status != models.StatusCompleted {
		return nil, fault.State("only a completed appointment can be reviewed")
	}

	exists, err := s.Reviews.ExistsForAppointment(ctx, req.AppointmentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fault.Conflict("already reviewed")
	}

	created := &models.Review{
		AppointmentID: appt.ID,
		CustomerID:    appt.CustomerID,
		ProviderID:    appt.ProviderID,
		Rating:        clampRating(req.Rating),
		Comment:       req.Comment,
	}
	if err := s.Reviews.Create(ctx, created); err != nil {
		if errors.Is(err, reviewRepo.ErrDuplicateReview) {
			// Lost the race against a concurrent duplicate submission.
			return nil, fault.Conflict("already reviewed")
		}
		return nil, err
	}
	return created, nil
}

func (s *DefaultReviewService) ListProviderReviews(ctx context.Context, providerID string) ([]models.Review, error) {
	return s.Reviews.GetByProvider(ctx, providerID)
}

// clampRating pins a rating into [1,5].
func clampRating(rating int) int {
	if rating < 1 {
		return 1
	}
	if rating > 5 {
		return 5
	}
	return rating
}
