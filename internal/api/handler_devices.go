package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"airrental-backend/internal/mw"
)

// ListDevices handles GET /api/devices?room_id=.
func (h *Handler) ListDevices(c *gin.Context) {
	var roomID *int64
	if raw := c.Query("room_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room_id"})
			return
		}
		roomID = &id
	}

	devices, err := h.store.ListCustomerDevices(c.Request.Context(), mw.UserID(c), roomID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, devices)
}

type toggleDeviceRequest struct {
	IsPowerOn *bool `json:"is_power_on" binding:"required"`
}

// ToggleDevice handles PATCH /api/devices/:id/toggle.
func (h *Handler) ToggleDevice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req toggleDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	device, err := h.store.ToggleDevice(c.Request.Context(), mw.UserID(c), id, *req.IsPowerOn)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, device)
}

// metricsRangeDays maps the range query parameter onto a day count; anything
// unrecognized falls back to the 7-day default.
func metricsRangeDays(raw string) int {
	switch raw {
	case "1d":
		return 1
	case "30d":
		return 30
	default:
		return 7
	}
}

// GetDeviceMetrics handles GET /api/devices/:id/metrics?range=1d|7d|30d.
// Reading is what triggers simulation: stale devices get one fresh reading
// and thin windows are backfilled before the response is built.
func (h *Handler) GetDeviceMetrics(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	device, err := h.store.GetCustomerDevice(c.Request.Context(), mw.UserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	rangeParam := c.DefaultQuery("range", "7d")
	metrics, err := h.sim.MetricsWindow(c.Request.Context(), device, metricsRangeDays(rangeParam))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"device_id": device.ID,
		"range":     rangeParam,
		"points":    metrics,
	})
}
