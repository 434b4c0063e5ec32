package handlers

import (
	"net/http"
	"strconv"

	notificationSvc "bookify/services/notification"

	"github.com/gin-gonic/gin"
)

// NotificationHandler exposes the in-app notification inbox. The same
// endpoints serve customers and providers; the recipient ID comes from the
// auth context.
type NotificationHandler struct {
	Service notificationSvc.NotificationService
}

func (h *NotificationHandler) listFor(c *gin.Context, recipientID string) {
	unreadOnly, _ := strconv.ParseBool(c.Query("unread"))

	notifications, err := h.Service.ListForRecipient(c.Request.Context(), recipientID, unreadOnly)
	if err != nil {
		respondError(c, "Failed to list notifications", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (h *NotificationHandler) markReadFor(c *gin.Context, recipientID string) {
	notificationID := c.Param("notificationID")

	if err := h.Service.MarkRead(c.Request.Context(), notificationID, recipientID); err != nil {
		respondError(c, "Failed to mark notification read", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked read"})
}

// ListUserNotificationsHandler lists the authenticated customer's notifications.
func (h *NotificationHandler) ListUserNotificationsHandler(c *gin.Context) {
	custID, ok := userID(c)
	if !ok {
		return
	}
	h.listFor(c, custID)
}

// MarkUserNotificationReadHandler marks one of the customer's notifications read.
func (h *NotificationHandler) MarkUserNotificationReadHandler(c *gin.Context) {
	custID, ok := userID(c)
	if !ok {
		return
	}
	h.markReadFor(c, custID)
}

// ListProviderNotificationsHandler lists the authenticated provider's notifications.
func (h *NotificationHandler) ListProviderNotificationsHandler(c *gin.Context) {
	provID, ok := providerID(c)
	if !ok {
		return
	}
	h.listFor(c, provID)
}

// MarkProviderNotificationReadHandler marks one of the provider's notifications read.
func (h *NotificationHandler) MarkProviderNotificationReadHandler(c *gin.Context) {
	provID, ok := providerID(c)
	if !ok {
		return
	}
	h.markReadFor(c, provID)
}
