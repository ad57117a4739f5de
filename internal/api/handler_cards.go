package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"airrental-backend/internal/mw"
	"airrental-backend/internal/store"
)

type createCardRequest struct {
	Last4       string `json:"last4" binding:"required"`
	HolderName  string `json:"holder_name"`
	ExpiryMonth int    `json:"expiry_month"`
	ExpiryYear  int    `json:"expiry_year"`
	Brand       string `json:"brand"`
	IsDefault   bool   `json:"is_default"`
}

// CreateCard handles POST /api/payment-cards.
func (h *Handler) CreateCard(c *gin.Context) {
	var req createCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card, err := h.store.CreateCard(c.Request.Context(), mw.UserID(c), store.CardInput{
		Last4:       req.Last4,
		HolderName:  req.HolderName,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
		Brand:       req.Brand,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, card)
}

// ListCards handles GET /api/payment-cards.
func (h *Handler) ListCards(c *gin.Context) {
	cards, err := h.store.ListCards(c.Request.Context(), mw.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

// GetCard handles GET /api/payment-cards/:id.
func (h *Handler) GetCard(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	card, err := h.store.GetCard(c.Request.Context(), mw.UserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

type updateCardRequest struct {
	HolderName  *string `json:"holder_name"`
	ExpiryMonth *int    `json:"expiry_month"`
	ExpiryYear  *int    `json:"expiry_year"`
	IsDefault   *bool   `json:"is_default"`
}

// UpdateCard handles PATCH /api/payment-cards/:id.
func (h *Handler) UpdateCard(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card, err := h.store.UpdateCard(c.Request.Context(), mw.UserID(c), id, store.CardUpdate{
		HolderName:  req.HolderName,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// DeleteCard handles DELETE /api/payment-cards/:id.
func (h *Handler) DeleteCard(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.store.DeleteCard(c.Request.Context(), mw.UserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
