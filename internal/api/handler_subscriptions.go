package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"airrental-backend/internal/mw"
)

// ListSubscriptions handles GET /api/subscriptions.
func (h *Handler) ListSubscriptions(c *gin.Context) {
	subs, err := h.store.ListSubscriptions(c.Request.Context(), mw.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscriptions": subs})
}

// CancelSubscription handles POST /api/subscriptions/:id/cancel. Only an
// ACTIVE subscription can be cancelled.
func (h *Handler) CancelSubscription(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	sub, err := h.store.CancelSubscription(c.Request.Context(), mw.UserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}
