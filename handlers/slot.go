package handlers

import (
	"net/http"

	"bookify/models"
	slotSvc "bookify/services/slot"
	"bookify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SlotHandler exposes the provider-facing slot endpoints.
type SlotHandler struct {
	Service slotSvc.SlotService
}

// CreateSlotHandler publishes a new slot for the authenticated provider.
func (h *SlotHandler) CreateSlotHandler(c *gin.Context) {
	logger := utils.GetLogger()

	provID, ok := providerID(c)
	if !ok {
		return
	}

	var req models.SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid slot creation request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	slot, err := h.Service.CreateSlot(c.Request.Context(), provID, req)
	if err != nil {
		respondError(c, "Failed to create slot", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"slot": slot})
}

// UpdateSlotHandler edits the time interval of an unbooked slot.
func (h *SlotHandler) UpdateSlotHandler(c *gin.Context) {
	logger := utils.GetLogger()

	provID, ok := providerID(c)
	if !ok {
		return
	}
	slotID := c.Param("slotID")

	var req models.SlotUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid slot update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	slot, err := h.Service.UpdateSlot(c.Request.Context(), provID, slotID, req)
	if err != nil {
		respondError(c, "Failed to update slot", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"slot": slot})
}

// DeleteSlotHandler removes an unbooked slot.
func (h *SlotHandler) DeleteSlotHandler(c *gin.Context) {
	provID, ok := providerID(c)
	if !ok {
		return
	}
	slotID := c.Param("slotID")

	if err := h.Service.DeleteSlot(c.Request.Context(), provID, slotID); err != nil {
		respondError(c, "Failed to delete slot", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Slot deleted"})
}

// ListProviderSlotsHandler returns the authenticated provider's slots for a
// date, booked ones included.
func (h *SlotHandler) ListProviderSlotsHandler(c *gin.Context) {
	provID, ok := providerID(c)
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing date query parameter"})
		return
	}

	slots, err := h.Service.ListProviderSlots(c.Request.Context(), provID, date)
	if err != nil {
		respondError(c, "Failed to list slots", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// ListAvailableSlotsHandler returns a provider's open slots in a date range.
// Customers call this to browse availability before booking.
func (h *SlotHandler) ListAvailableSlotsHandler(c *gin.Context) {
	provID := c.Param("providerID")
	from := c.Query("from")
	to := c.Query("to")
	if provID == "" || from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing providerID, from, or to"})
		return
	}

	slots, err := h.Service.ListAvailableSlots(c.Request.Context(), provID, from, to)
	if err != nil {
		respondError(c, "Failed to list available slots", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
