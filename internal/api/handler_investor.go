package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"airrental-backend/internal/mw"
)

// InvestorDashboard handles GET /api/investor/dashboard.
func (h *Handler) InvestorDashboard(c *gin.Context) {
	summary, err := h.store.InvestorDashboard(c.Request.Context(), mw.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ListAvailableDevices handles GET /api/investor/devices. An optional ?budget
// query keeps only devices whose minimum investment fits the budget.
func (h *Handler) ListAvailableDevices(c *gin.Context) {
	var budget *decimal.Decimal
	if raw := c.Query("budget"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil || d.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid budget"})
			return
		}
		budget = &d
	}
	devices, err := h.store.ListAvailableDevices(c.Request.Context(), budget)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"devices": devices})
}

// ListInvestments handles GET /api/investor/investments.
func (h *Handler) ListInvestments(c *gin.Context) {
	investments, err := h.store.ListInvestments(c.Request.Context(), mw.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"investments": investments})
}

type createInvestmentRequest struct {
	DeviceID  int64  `json:"device_id" binding:"required"`
	AmountUSD string `json:"amount_usd" binding:"required"`
}

// CreateInvestment handles POST /api/investor/investments. The created
// investment stays PENDING until confirmed.
func (h *Handler) CreateInvestment(c *gin.Context) {
	var req createInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := decimal.NewFromString(req.AmountUSD)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount_usd"})
		return
	}
	inv, err := h.store.CreateInvestment(c.Request.Context(), mw.UserID(c), req.DeviceID, amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

// ConfirmInvestment handles POST /api/investor/investments/:id/confirm,
// moving a PENDING investment to PAID and recording the payment.
func (h *Handler) ConfirmInvestment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	inv, err := h.store.ConfirmInvestment(c.Request.Context(), mw.UserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}
