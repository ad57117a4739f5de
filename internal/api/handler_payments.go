package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"airrental-backend/internal/mw"
)

// ListPayments handles GET /api/payments: payment history plus trailing
// 7/30-day and lifetime aggregates.
func (h *Handler) ListPayments(c *gin.Context) {
	payments, analytics, err := h.store.ListCustomerPayments(c.Request.Context(), mw.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"payments":  payments,
		"analytics": analytics,
	})
}
