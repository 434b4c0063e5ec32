package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookify/fault"
	"bookify/middleware"
	"bookify/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSlotService returns canned results so handler tests only exercise the
// HTTP mapping.
type stubSlotService struct {
	slot *models.Slot
	err  error
}

func (s *stubSlotService) CreateSlot(_ context.Context, _ string, _ models.SlotRequest) (*models.Slot, error) {
	return s.slot, s.err
}

func (s *stubSlotService) UpdateSlot(_ context.Context, _, _ string, _ models.SlotUpdateRequest) (*models.Slot, error) {
	return s.slot, s.err
}

func (s *stubSlotService) DeleteSlot(_ context.Context, _, _ string) error { return s.err }

func (s *stubSlotService) ListProviderSlots(_ context.Context, _, _ string) ([]models.Slot, error) {
	return nil, s.err
}

func (s *stubSlotService) ListAvailableSlots(_ context.Context, _, _, _ string) ([]models.Slot, error) {
	return nil, s.err
}

func newSlotRouter(svc *stubSlotService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := &SlotHandler{Service: svc}
	// Stand-in for the JWT middleware.
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextProviderIDKey, "prov-1")
	})
	r.POST("/slots", h.CreateSlotHandler)
	r.DELETE("/slots/:slotID", h.DeleteSlotHandler)
	return r
}

func postSlot(t *testing.T, r *gin.Engine) *httptest.ResponseRecorder {
	t.Helper()
	body := `{"date":"2025-06-01","startTime":"09:00","endTime":"09:30"}`
	req := httptest.NewRequest(http.MethodPost, "/slots", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateSlotHandler(t *testing.T) {
	svc := &stubSlotService{slot: &models.Slot{ID: "slot-1", ProviderID: "prov-1"}}
	w := postSlot(t, newSlotRouter(svc))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "slot-1")
}

func TestCreateSlotHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fault.Validation("bad time"), http.StatusBadRequest},
		{fault.Conflict("overlap"), http.StatusConflict},
		{fault.NotFound("missing"), http.StatusNotFound},
		{fault.State("wrong status"), http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		w := postSlot(t, newSlotRouter(&stubSlotService{err: tc.err}))
		assert.Equal(t, tc.want, w.Code, tc.err)
	}
}

func TestCreateSlotHandlerRejectsMissingFields(t *testing.T) {
	r := newSlotRouter(&stubSlotService{})
	req := httptest.NewRequest(http.MethodPost, "/slots", strings.NewReader(`{"date":"2025-06-01"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteSlotHandler(t *testing.T) {
	r := newSlotRouter(&stubSlotService{})
	req := httptest.NewRequest(http.MethodDelete, "/slots/slot-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandlersRequireAuthContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := &SlotHandler{Service: &stubSlotService{}}
	// No middleware sets the provider ID.
	r.POST("/slots", h.CreateSlotHandler)

	w := postSlot(t, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
