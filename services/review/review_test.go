package review

import (
	"context"
	"sync"
	"testing"

	apptRepo "bookify/database/repository/appointment"
	reviewRepo "bookify/database/repository/review"
	"bookify/fault"
	"bookify/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*models.Review // keyed by appointmentID
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{reviews: make(map[string]*models.Review)}
}

func (r *memReviewRepo) Create(_ context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.reviews[review.AppointmentID]; exists {
		return reviewRepo.ErrDuplicateReview
	}
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	cp := *review
	r.reviews[review.AppointmentID] = &cp
	return nil
}

func (r *memReviewRepo) ExistsForAppointment(_ context.Context, appointmentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.reviews[appointmentID]
	return ok, nil
}

func (r *memReviewRepo) GetByProvider(_ context.Context, providerID string) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Review
	for _, rv := range r.reviews {
		if rv.ProviderID == providerID {
			out = append(out, *rv)
		}
	}
	return out, nil
}

func (r *memReviewRepo) EnsureIndexes() error { return nil }

// stubApptRepo serves a fixed set of appointments; only reads are exercised
// by the review gate.
type stubApptRepo struct {
	appts map[string]*models.Appointment
}

func (r *stubApptRepo) GetByID(_ context.Context, appointmentID string) (*models.Appointment, error) {
	a, ok := r.appts[appointmentID]
	if !ok {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *stubApptRepo) List(_ context.Context, _ models.AppointmentFilter) ([]models.Appointment, error) {
	return nil, nil
}

func (r *stubApptRepo) Book(_ context.Context, _ *models.Appointment) error { return nil }

func (r *stubApptRepo) Reschedule(_ context.Context, _, _, _ string) (*models.Appointment, error) {
	return nil, nil
}

func (r *stubApptRepo) Cancel(_ context.Context, _, _ string) (*models.Appointment, error) {
	return nil, nil
}

func (r *stubApptRepo) Complete(_ context.Context, _, _ string) (*models.Appointment, error) {
	return nil, nil
}

func (r *stubApptRepo) Acknowledge(_ context.Context, _, _ string) (*models.Appointment, error) {
	return nil, nil
}

func (r *stubApptRepo) EnsureIndexes() error { return nil }

const (
	custA = "cust-a"
	prov1 = "prov-1"
)

func newTestService(appts ...*models.Appointment) (*DefaultReviewService, *memReviewRepo) {
	stub := &stubApptRepo{appts: make(map[string]*models.Appointment)}
	for _, a := range appts {
		stub.appts[a.ID] = a
	}
	reviews := newMemReviewRepo()
	return &DefaultReviewService{Reviews: reviews, Appointments: stub}, reviews
}

func completedAppt() *models.Appointment {
	return &models.Appointment{
		ID:         uuid.New().String(),
		CustomerID: custA,
		ProviderID: prov1,
		Status:     models.StatusCompleted,
	}
}

func TestSubmitReview(t *testing.T) {
	appt := completedAppt()
	svc, _ := newTestService(appt)

	review, err := svc.SubmitReview(context.Background(), custA, models.ReviewRequest{
		AppointmentID: appt.ID,
		Rating:        4,
		Comment:       "great",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, review.ID)
	assert.Equal(t, appt.ID, review.AppointmentID)
	assert.Equal(t, custA, review.CustomerID)
	assert.Equal(t, prov1, review.ProviderID)
	assert.Equal(t, 4, review.Rating)
}

func TestSubmitReviewClampsRating(t *testing.T) {
	low := completedAppt()
	high := completedAppt()
	svc, _ := newTestService(low, high)
	ctx := context.Background()

	review, err := svc.SubmitReview(ctx, custA, models.ReviewRequest{AppointmentID: low.ID, Rating: -3})
	require.NoError(t, err)
	assert.Equal(t, 1, review.Rating)

	review, err = svc.SubmitReview(ctx, custA, models.ReviewRequest{AppointmentID: high.ID, Rating: 11})
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
}

func TestSubmitReviewRequiresCompletion(t *testing.T) {
	for _, status := range []models.AppointmentStatus{
		models.StatusPending, models.StatusBooked, models.StatusConfirmed, models.StatusCancelled,
	} {
		appt := completedAppt()
		appt.Status = status
		svc, _ := newTestService(appt)

		_, err := svc.SubmitReview(context.Background(), custA, models.ReviewRequest{
			AppointmentID: appt.ID, Rating: 5,
		})
		assert.True(t, fault.IsState(err), "status %s: got %v", status, err)
	}
}

func TestSubmitReviewOwnership(t *testing.T) {
	appt := completedAppt()
	svc, _ := newTestService(appt)
	ctx := context.Background()

	// Unknown appointment.
	_, err := svc.SubmitReview(ctx, custA, models.ReviewRequest{AppointmentID: "nope", Rating: 5})
	assert.True(t, fault.IsNotFound(err), "got %v", err)

	// Someone else's appointment reads as not found.
	_, err = svc.SubmitReview(ctx, "cust-b", models.ReviewRequest{AppointmentID: appt.ID, Rating: 5})
	assert.True(t, fault.IsNotFound(err), "got %v", err)
}

func TestSubmitReviewDuplicate(t *testing.T) {
	appt := completedAppt()
	svc, _ := newTestService(appt)
	ctx := context.Background()

	_, err := svc.SubmitReview(ctx, custA, models.ReviewRequest{AppointmentID: appt.ID, Rating: 5})
	require.NoError(t, err)

	_, err = svc.SubmitReview(ctx, custA, models.ReviewRequest{AppointmentID: appt.ID, Rating: 2})
	assert.True(t, fault.IsConflict(err), "got %v", err)
}

func TestListProviderReviews(t *testing.T) {
	a1 := completedAppt()
	a2 := completedAppt()
	a2.ProviderID = "prov-2"
	svc, _ := newTestService(a1, a2)
	ctx := context.Background()

	_, err := svc.SubmitReview(ctx, custA, models.ReviewRequest{AppointmentID: a1.ID, Rating: 5})
	require.NoError(t, err)
	_, err = svc.SubmitReview(ctx, custA, models.ReviewRequest{AppointmentID: a2.ID, Rating: 3})
	require.NoError(t, err)

	got, err := svc.ListProviderReviews(ctx, prov1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a1.ID, got[0].AppointmentID)
}
