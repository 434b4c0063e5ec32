package handlers

import (
	"net/http"

	"bookify/models"
	reviewSvc "bookify/services/review"
	"bookify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReviewHandler exposes review submission and provider review listings.
type ReviewHandler struct {
	Service reviewSvc.ReviewService
}

// SubmitReviewHandler records a customer's review of a completed appointment.
func (h *ReviewHandler) SubmitReviewHandler(c *gin.Context) {
	logger := utils.GetLogger()

	custID, ok := userID(c)
	if !ok {
		return
	}

	var req models.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid review request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	review, err := h.Service.SubmitReview(c.Request.Context(), custID, req)
	if err != nil {
		respondError(c, "Failed to submit review", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// ListProviderReviewsHandler lists the reviews left for a provider.
func (h *ReviewHandler) ListProviderReviewsHandler(c *gin.Context) {
	provID := c.Param("providerID")
	if provID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing providerID"})
		return
	}

	reviews, err := h.Service.ListProviderReviews(c.Request.Context(), provID)
	if err != nil {
		respondError(c, "Failed to list reviews", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
