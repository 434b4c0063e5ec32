package handlers

import (
	"net/http"

	"bookify/models"
	bookingSvc "bookify/services/booking"
	"bookify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the appointment lifecycle endpoints.
type BookingHandler struct {
	Service bookingSvc.BookingService
}

// BookAppointmentHandler books an open slot for the authenticated customer.
func (h *BookingHandler) BookAppointmentHandler(c *gin.Context) {
	logger := utils.GetLogger()

	custID, ok := userID(c)
	if !ok {
		return
	}

	var req struct {
		SlotID string `json:"slotId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid booking request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	appt, err := h.Service.Book(c.Request.Context(), custID, req.SlotID)
	if err != nil {
		respondError(c, "Failed to book appointment", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"appointment": appt})
}

// RescheduleAppointmentHandler moves an appointment onto a different open slot.
func (h *BookingHandler) RescheduleAppointmentHandler(c *gin.Context) {
	logger := utils.GetLogger()

	custID, ok := userID(c)
	if !ok {
		return
	}
	apptID := c.Param("appointmentID")

	var req struct {
		NewSlotID string `json:"newSlotId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid reschedule request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	appt, err := h.Service.Reschedule(c.Request.Context(), apptID, custID, req.NewSlotID)
	if err != nil {
		respondError(c, "Failed to reschedule appointment", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

// CancelAppointmentHandler cancels a live appointment and frees its slot.
func (h *BookingHandler) CancelAppointmentHandler(c *gin.Context) {
	custID, ok := userID(c)
	if !ok {
		return
	}
	apptID := c.Param("appointmentID")

	appt, err := h.Service.Cancel(c.Request.Context(), apptID, custID)
	if err != nil {
		respondError(c, "Failed to cancel appointment", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

// ConfirmAppointmentHandler acknowledges a live appointment.
func (h *BookingHandler) ConfirmAppointmentHandler(c *gin.Context) {
	custID, ok := userID(c)
	if !ok {
		return
	}
	apptID := c.Param("appointmentID")

	appt, err := h.Service.ConfirmAppointment(c.Request.Context(), apptID, custID)
	if err != nil {
		respondError(c, "Failed to confirm appointment", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

// CompleteAppointmentHandler marks a confirmed appointment completed. Provider
// side only.
func (h *BookingHandler) CompleteAppointmentHandler(c *gin.Context) {
	provID, ok := providerID(c)
	if !ok {
		return
	}
	apptID := c.Param("appointmentID")

	appt, err := h.Service.Complete(c.Request.Context(), apptID, provID)
	if err != nil {
		respondError(c, "Failed to complete appointment", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

// GetAppointmentHandler returns a single appointment visible to the caller.
func (h *BookingHandler) GetAppointmentHandler(c *gin.Context) {
	custID, ok := userID(c)
	if !ok {
		return
	}
	apptID := c.Param("appointmentID")

	appt, err := h.Service.GetAppointment(c.Request.Context(), apptID, custID)
	if err != nil {
		respondError(c, "Failed to fetch appointment", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

// ListMyAppointmentsHandler lists the authenticated customer's appointments,
// optionally filtered by status.
func (h *BookingHandler) ListMyAppointmentsHandler(c *gin.Context) {
	custID, ok := userID(c)
	if !ok {
		return
	}

	var status *models.AppointmentStatus
	if raw := c.Query("status"); raw != "" {
		s := models.AppointmentStatus(raw)
		if !s.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter", "message": raw})
			return
		}
		status = &s
	}

	appts, err := h.Service.ListCustomerAppointments(c.Request.Context(), custID, status)
	if err != nil {
		respondError(c, "Failed to list appointments", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// ListProviderAppointmentsHandler lists appointments on the authenticated
// provider's calendar.
func (h *BookingHandler) ListProviderAppointmentsHandler(c *gin.Context) {
	provID, ok := providerID(c)
	if !ok {
		return
	}

	appts, err := h.Service.ListProviderAppointments(c.Request.Context(), provID)
	if err != nil {
		respondError(c, "Failed to list appointments", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}
