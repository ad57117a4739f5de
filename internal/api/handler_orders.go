package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"airrental-backend/internal/model"
	"airrental-backend/internal/mw"
	"airrental-backend/internal/store"
)

type orderRoomData struct {
	RoomID         *int64   `json:"room_id"`
	Name           string   `json:"name"`
	RoomType       string   `json:"room_type"`
	AreaM2         float64  `json:"area_m2"`
	CeilingHeightM *float64 `json:"ceiling_height_m"`
	Address        string   `json:"address"`
	City           string   `json:"city"`
	Notes          string   `json:"notes"`
	Services       []string `json:"services"`
	DeviceTypeIDs  []int64  `json:"device_type_ids"`
}

type createOrderRequest struct {
	// Legacy single-room payload.
	RoomID *int64 `json:"room_id"`

	Comment   string          `json:"comment"`
	RoomsData []orderRoomData `json:"rooms_data"`
}

// CreateOrder handles POST /api/orders. Both the legacy room_id payload and
// the rooms_data payload are accepted.
func (h *Handler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := store.OrderInput{RoomID: req.RoomID, Comment: req.Comment}
	for _, rd := range req.RoomsData {
		in.Rooms = append(in.Rooms, store.OrderRoomInput{
			RoomID:         rd.RoomID,
			Name:           rd.Name,
			RoomType:       model.RoomType(rd.RoomType),
			AreaM2:         rd.AreaM2,
			CeilingHeightM: rd.CeilingHeightM,
			Address:        rd.Address,
			City:           rd.City,
			Notes:          rd.Notes,
			Services:       rd.Services,
			DeviceTypeIDs:  rd.DeviceTypeIDs,
		})
	}

	order, err := h.store.CreateOrder(c.Request.Context(), mw.UserID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// ListOrders handles GET /api/orders?status=.
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.store.ListOrders(c.Request.Context(), mw.UserID(c), model.OrderStatus(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrderCost handles GET /api/orders/:id/cost: the cached total after
// payment, a fresh quote before.
func (h *Handler) GetOrderCost(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	cost, err := h.store.OrderCost(c.Request.Context(), mw.UserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": id, "total_cost_usd": cost})
}

type payOrderRequest struct {
	PaymentCardID int64 `json:"payment_card_id" binding:"required"`
}

// PayOrder handles POST /api/orders/:id/pay.
func (h *Handler) PayOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req payOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.store.PayOrder(c.Request.Context(), mw.UserID(c), id, req.PaymentCardID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order":           result.Order,
		"payment":         result.Payment,
		"subscription":    result.Subscription,
		"devices":         result.Devices,
		"devices_created": len(result.Devices),
	})
}

type setOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminSetOrderStatus handles PATCH /api/admin/orders/:id/status. Setting an
// order ACTIVE activates its suspended subscription in the same transaction.
func (h *Handler) AdminSetOrderStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req setOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, subscription, err := h.store.SetOrderStatus(c.Request.Context(), id, model.OrderStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order, "subscription": subscription})
}
