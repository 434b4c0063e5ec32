package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	apptRepo "bookify/database/repository/appointment"
	slotRepo "bookify/database/repository/slot"
	"bookify/fault"
	"bookify/models"
	"bookify/services/tasks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore backs the in-memory repositories. Slot claims and appointment
// writes share one lock so the fakes keep the same atomicity the Mongo
// transactions provide.
type memStore struct {
	mu    sync.Mutex
	slots map[string]*models.Slot
	appts map[string]*models.Appointment
}

func newMemStore() *memStore {
	return &memStore{
		slots: make(map[string]*models.Slot),
		appts: make(map[string]*models.Appointment),
	}
}

func (st *memStore) addSlot(providerID, date string, start, end int) *models.Slot {
	st.mu.Lock()
	defer st.mu.Unlock()
	s := &models.Slot{
		ID:         uuid.New().String(),
		ProviderID: providerID,
		Date:       date,
		Start:      start,
		End:        end,
	}
	st.slots[s.ID] = s
	return s
}

func (st *memStore) slotBooked(slotID string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.slots[slotID].IsBooked
}

type memSlotRepo struct{ st *memStore }

func (r *memSlotRepo) Create(_ context.Context, slot *models.Slot) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	cp := *slot
	r.st.slots[slot.ID] = &cp
	return nil
}

func (r *memSlotRepo) GetByID(_ context.Context, slotID string) (*models.Slot, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	s, ok := r.st.slots[slotID]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memSlotRepo) GetByProviderAndDate(_ context.Context, providerID, date string) ([]models.Slot, error) {
	return nil, nil
}

func (r *memSlotRepo) GetUnbookedByProviderAndDate(_ context.Context, providerID, date string) ([]models.Slot, error) {
	return nil, nil
}

func (r *memSlotRepo) CountByProviderAndDate(_ context.Context, providerID, date string) (int64, error) {
	return 0, nil
}

func (r *memSlotRepo) GetUnbookedInRange(_ context.Context, providerID, fromDate, toDate string) ([]models.Slot, error) {
	return nil, nil
}

func (r *memSlotRepo) UpdateTimes(_ context.Context, slotID, providerID string, start, end int) error {
	return nil
}

func (r *memSlotRepo) Delete(_ context.Context, slotID, providerID string) error { return nil }

func (r *memSlotRepo) EnsureIndexes() error { return nil }

type memApptRepo struct{ st *memStore }

func (r *memApptRepo) GetByID(_ context.Context, appointmentID string) (*models.Appointment, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	a, ok := r.st.appts[appointmentID]
	if !ok {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memApptRepo) List(_ context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.st.appts {
		if filter.CustomerID != "" && a.CustomerID != filter.CustomerID {
			continue
		}
		if filter.ProviderID != "" && a.ProviderID != filter.ProviderID {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (r *memApptRepo) Book(_ context.Context, appt *models.Appointment) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	slot, ok := r.st.slots[appt.SlotID]
	if !ok || slot.IsBooked {
		return apptRepo.ErrSlotUnavailable
	}
	slot.IsBooked = true

	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	appt.ProviderID = slot.ProviderID
	appt.Date = slot.Date
	appt.Start = slot.Start
	appt.End = slot.End
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt

	cp := *appt
	r.st.appts[appt.ID] = &cp
	return nil
}

func (r *memApptRepo) Reschedule(_ context.Context, appointmentID, customerID, newSlotID string) (*models.Appointment, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	a, ok := r.st.appts[appointmentID]
	if !ok || a.CustomerID != customerID {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	if !a.CanBeRescheduled() {
		return nil, apptRepo.ErrInvalidStatus
	}
	newSlot, ok := r.st.slots[newSlotID]
	if !ok || newSlot.IsBooked || newSlot.ProviderID != a.ProviderID {
		return nil, apptRepo.ErrSlotUnavailable
	}
	if old, ok := r.st.slots[a.SlotID]; ok {
		old.IsBooked = false
	}
	newSlot.IsBooked = true
	a.SlotID = newSlot.ID
	a.Date = newSlot.Date
	a.Start = newSlot.Start
	a.End = newSlot.End
	a.UpdatedAt = time.Now()
	cp := *a
	return &cp, nil
}

func (r *memApptRepo) Cancel(_ context.Context, appointmentID, customerID string) (*models.Appointment, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	a, ok := r.st.appts[appointmentID]
	if !ok || a.CustomerID != customerID {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	if !a.CanBeCancelled() {
		return nil, apptRepo.ErrInvalidStatus
	}
	now := time.Now()
	a.Status = models.StatusCancelled
	a.CancelledAt = &now
	a.UpdatedAt = now
	if slot, ok := r.st.slots[a.SlotID]; ok {
		slot.IsBooked = false
	}
	cp := *a
	return &cp, nil
}

func (r *memApptRepo) Complete(_ context.Context, appointmentID, providerID string) (*models.Appointment, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	a, ok := r.st.appts[appointmentID]
	if !ok || a.ProviderID != providerID {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	if !a.CanBeCompleted() {
		return nil, apptRepo.ErrInvalidStatus
	}
	now := time.Now()
	a.Status = models.StatusCompleted
	a.CompletedAt = &now
	a.UpdatedAt = now
	cp := *a
	return &cp, nil
}

func (r *memApptRepo) Acknowledge(_ context.Context, appointmentID, customerID string) (*models.Appointment, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	a, ok := r.st.appts[appointmentID]
	if !ok || a.CustomerID != customerID {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	if !a.IsLive() {
		return nil, apptRepo.ErrInvalidStatus
	}
	now := time.Now()
	a.Confirmed = true
	a.ConfirmedAt = &now
	a.UpdatedAt = now
	cp := *a
	return &cp, nil
}

func (r *memApptRepo) EnsureIndexes() error { return nil }

// recordingDispatcher captures dispatched actions; fail makes every dispatch
// error so tests can check dispatch failures never surface.
type recordingDispatcher struct {
	mu      sync.Mutex
	actions []tasks.BookingAction
	fail    bool
}

func (d *recordingDispatcher) DispatchBookingEvent(_ context.Context, payload tasks.SideEffectPayload) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fail {
		return errors.New("queue down")
	}
	d.actions = append(d.actions, payload.Action)
	return nil
}

func (d *recordingDispatcher) recorded() []tasks.BookingAction {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]tasks.BookingAction(nil), d.actions...)
}

func newTestService(st *memStore) (*DefaultBookingService, *recordingDispatcher) {
	d := &recordingDispatcher{}
	return &DefaultBookingService{
		Appointments: &memApptRepo{st: st},
		Slots:        &memSlotRepo{st: st},
		Dispatcher:   d,
	}, d
}

const (
	custA = "cust-a"
	custB = "cust-b"
	prov1 = "prov-1"
)

func TestBook(t *testing.T) {
	st := newMemStore()
	svc, disp := newTestService(st)
	slot := st.addSlot(prov1, "2025-06-01", 540, 570)

	appt, err := svc.Book(context.Background(), custA, slot.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, appt.ID)
	assert.Equal(t, models.StatusConfirmed, appt.Status)
	assert.Equal(t, prov1, appt.ProviderID)
	assert.Equal(t, slot.Date, appt.Date)
	assert.Equal(t, slot.Start, appt.Start)
	assert.Equal(t, slot.End, appt.End)
	assert.True(t, st.slotBooked(slot.ID))
	assert.Equal(t, []tasks.BookingAction{tasks.ActionBooked}, disp.recorded())
}

func TestBookUnknownSlot(t *testing.T) {
	svc, _ := newTestService(newMemStore())
	_, err := svc.Book(context.Background(), custA, "nope")
	assert.True(t, fault.IsNotFound(err), "got %v", err)
}

func TestBookTakenSlot(t *testing.T) {
	st := newMemStore()
	svc, disp := newTestService(st)
	slot := st.addSlot(prov1, "2025-06-01", 540, 570)

	_, err := svc.Book(context.Background(), custA, slot.ID)
	require.NoError(t, err)

	_, err = svc.Book(context.Background(), custB, slot.ID)
	assert.True(t, fault.IsConflict(err), "got %v", err)
	assert.Len(t, disp.recorded(), 1)
}

func TestBookConcurrentSingleWinner(t *testing.T) {
	st := newMemStore()
	svc, _ := newTestService(st)
	slot := st.addSlot(prov1, "2025-06-01", 540, 570)

	const attempts = 16
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Book(context.Background(), uuid.New().String(), slot.ID)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var wins, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			wins++
		case fault.IsConflict(err):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, conflicts)
}

func TestCancelFreesSlot(t *testing.T) {
	st := newMemStore()
	svc, disp := newTestService(st)
	slot := st.addSlot(prov1, "2025-06-01", 540, 570)

	appt, err := svc.Book(context.Background(), custA, slot.ID)
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), appt.ID, custA)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)
	assert.False(t, st.slotBooked(slot.ID))

	// The freed slot is bookable again.
	_, err = svc.Book(context.Background(), custB, slot.ID)
	require.NoError(t, err)

	assert.Equal(t, []tasks.BookingAction{
		tasks.ActionBooked, tasks.ActionCancelled, tasks.ActionBooked,
	}, disp.recorded())
}

func TestCancelGuards(t *testing.T) {
	st := newMemStore()
	svc, _ := newTestService(st)
	slot := st.addSlot(prov1, "2025-06-01", 540, 570)
	ctx := context.Background()

	appt, err := svc.Book(ctx, custA, slot.ID)
	require.NoError(t, err)

	// Someone else's appointment reads as not found.
	_, err = svc.Cancel(ctx, appt.ID, custB)
	assert.True(t, fault.IsNotFound(err), "got %v", err)

	_, err = svc.Cancel(ctx, appt.ID, custA)
	require.NoError(t, err)

	// Cancelling twice is a status violation.
	_, err = svc.Cancel(ctx, appt.ID, custA)
	assert.True(t, fault.IsState(err), "got %v", err)
}

func TestComplete(t *testing.T) {
	st := newMemStore()
	svc, disp := newTestService(st)
	slot := st.addSlot(prov1, "2025-06-01", 540, 570)
	ctx := context.Background()

	appt, err := svc.Book(ctx, custA, slot.ID)
	require.NoError(t, err)

	done, err := svc.Complete(ctx, appt.ID, prov1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, done.Status)
	assert.NotNil(t, done.CompletedAt)
	// The interval is spent, not re-offered.
	assert.True(t, st.slotBooked(slot.ID))
	assert.Contains(t, disp.recorded(), tasks.ActionCompleted)
}

func TestCompleteGuards(t *testing.T) {
	st := newMemStore()
	svc, _ := newTestService(st)
	ctx := context.Background()

	slot := st.addSlot(prov1, "2025-06-01", 540, 570)
	appt, err := svc.Book(ctx, custA, slot.ID)
	require.NoError(t, err)

	// Another provider's calendar.
	_, err = svc.Complete(ctx, appt.ID, "prov-2")
	assert.True(t, fault.IsNotFound(err), "got %v", err)

	// A cancelled appointment cannot be completed.
	_, err = svc.Cancel(ctx, appt.ID, custA)
	require.NoError(t, err)
	_, err = svc.Complete(ctx, appt.ID, prov1)
	assert.True(t, fault.IsState(err), "got %v", err)

	// Nor completed twice.
	slot2 := st.addSlot(prov1, "2025-06-01", 600, 630)
	appt2, err := svc.Book(ctx, custA, slot2.ID)
	require.NoError(t, err)
	_, err = svc.Complete(ctx, appt2.ID, prov1)
	require.NoError(t, err)
	_, err = svc.Complete(ctx, appt2.ID, prov1)
	assert.True(t, fault.IsState(err), "got %v", err)
}

func TestReschedule(t *testing.T) {
	st := newMemStore()
	svc, disp := newTestService(st)
	ctx := context.Background()

	oldSlot := st.addSlot(prov1, "2025-06-01", 540, 570)
	newSlot := st.addSlot(prov1, "2025-06-02", 600, 630)

	appt, err := svc.Book(ctx, custA, oldSlot.ID)
	require.NoError(t, err)

	moved, err := svc.Reschedule(ctx, appt.ID, custA, newSlot.ID)
	require.NoError(t, err)
	assert.Equal(t, newSlot.ID, moved.SlotID)
	assert.Equal(t, newSlot.Date, moved.Date)
	assert.Equal(t, newSlot.Start, moved.Start)
	assert.Equal(t, appt.Status, moved.Status)

	assert.False(t, st.slotBooked(oldSlot.ID))
	assert.True(t, st.slotBooked(newSlot.ID))
	assert.Contains(t, disp.recorded(), tasks.ActionRescheduled)

	// The old slot is free for someone else.
	_, err = svc.Book(ctx, custB, oldSlot.ID)
	assert.NoError(t, err)
}

func TestRescheduleGuards(t *testing.T) {
	st := newMemStore()
	svc, _ := newTestService(st)
	ctx := context.Background()

	slot := st.addSlot(prov1, "2025-06-01", 540, 570)
	otherProvSlot := st.addSlot("prov-2", "2025-06-01", 540, 570)
	takenSlot := st.addSlot(prov1, "2025-06-01", 600, 630)

	appt, err := svc.Book(ctx, custA, slot.ID)
	require.NoError(t, err)
	_, err = svc.Book(ctx, custB, takenSlot.ID)
	require.NoError(t, err)

	// Target slot must belong to the same provider.
	_, err = svc.Reschedule(ctx, appt.ID, custA, otherProvSlot.ID)
	assert.True(t, fault.IsConflict(err), "got %v", err)

	// Target slot must be open.
	_, err = svc.Reschedule(ctx, appt.ID, custA, takenSlot.ID)
	assert.True(t, fault.IsConflict(err), "got %v", err)

	// Unknown target slot.
	_, err = svc.Reschedule(ctx, appt.ID, custA, "nope")
	assert.True(t, fault.IsNotFound(err), "got %v", err)

	// Other customers cannot move it.
	free := st.addSlot(prov1, "2025-06-01", 700, 730)
	_, err = svc.Reschedule(ctx, appt.ID, custB, free.ID)
	assert.True(t, fault.IsNotFound(err), "got %v", err)

	// A cancelled appointment stays where it was.
	_, err = svc.Cancel(ctx, appt.ID, custA)
	require.NoError(t, err)
	_, err = svc.Reschedule(ctx, appt.ID, custA, free.ID)
	assert.True(t, fault.IsState(err), "got %v", err)
	assert.False(t, st.slotBooked(free.ID))
}

func TestConfirmAppointment(t *testing.T) {
	st := newMemStore()
	svc, disp := newTestService(st)
	ctx := context.Background()

	slot := st.addSlot(prov1, "2025-06-01", 540, 570)
	appt, err := svc.Book(ctx, custA, slot.ID)
	require.NoError(t, err)

	confirmed, err := svc.ConfirmAppointment(ctx, appt.ID, custA)
	require.NoError(t, err)
	assert.True(t, confirmed.Confirmed)
	assert.NotNil(t, confirmed.ConfirmedAt)
	assert.Equal(t, appt.Status, confirmed.Status)
	assert.Contains(t, disp.recorded(), tasks.ActionAcknowledged)
}

func TestGetAppointmentVisibility(t *testing.T) {
	st := newMemStore()
	svc, _ := newTestService(st)
	ctx := context.Background()

	slot := st.addSlot(prov1, "2025-06-01", 540, 570)
	appt, err := svc.Book(ctx, custA, slot.ID)
	require.NoError(t, err)

	// Both sides of the appointment may read it.
	_, err = svc.GetAppointment(ctx, appt.ID, custA)
	assert.NoError(t, err)
	_, err = svc.GetAppointment(ctx, appt.ID, prov1)
	assert.NoError(t, err)

	// Strangers see not found, never forbidden.
	_, err = svc.GetAppointment(ctx, appt.ID, custB)
	assert.True(t, fault.IsNotFound(err), "got %v", err)
}

func TestListCustomerAppointmentsStatusFilter(t *testing.T) {
	st := newMemStore()
	svc, _ := newTestService(st)
	ctx := context.Background()

	s1 := st.addSlot(prov1, "2025-06-01", 540, 570)
	s2 := st.addSlot(prov1, "2025-06-01", 600, 630)
	a1, err := svc.Book(ctx, custA, s1.ID)
	require.NoError(t, err)
	_, err = svc.Book(ctx, custA, s2.ID)
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, a1.ID, custA)
	require.NoError(t, err)

	all, err := svc.ListCustomerAppointments(ctx, custA, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	cancelled := models.StatusCancelled
	got, err := svc.ListCustomerAppointments(ctx, custA, &cancelled)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a1.ID, got[0].ID)
}

func TestDispatchFailureDoesNotAbort(t *testing.T) {
	st := newMemStore()
	svc, disp := newTestService(st)
	disp.fail = true
	slot := st.addSlot(prov1, "2025-06-01", 540, 570)

	appt, err := svc.Book(context.Background(), custA, slot.ID)
	require.NoError(t, err)
	assert.True(t, st.slotBooked(slot.ID))

	_, err = svc.Cancel(context.Background(), appt.ID, custA)
	require.NoError(t, err)
	assert.Empty(t, disp.recorded())
}
