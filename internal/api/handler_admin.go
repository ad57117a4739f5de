package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"airrental-backend/internal/model"
	"airrental-backend/internal/store"
)

type adminCreateDeviceRequest struct {
	DeviceTypeID int64  `json:"device_type_id" binding:"required"`
	RoomID       *int64 `json:"room_id"`
	CustomerID   *int64 `json:"customer_id"`
	Status       string `json:"status"`
	SerialNumber string `json:"serial_number"`
	IsPowerOn    bool   `json:"is_power_on"`
}

// AdminCreateDevice handles POST /api/admin/devices.
func (h *Handler) AdminCreateDevice(c *gin.Context) {
	var req adminCreateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status := model.DeviceStatus(req.Status)
	if req.Status == "" {
		status = model.DeviceOrdered
	}
	if !model.ValidDeviceStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	device, err := h.store.CreateDevice(c.Request.Context(), store.DeviceInput{
		DeviceTypeID: req.DeviceTypeID,
		RoomID:       req.RoomID,
		CustomerID:   req.CustomerID,
		Status:       status,
		SerialNumber: req.SerialNumber,
		IsPowerOn:    req.IsPowerOn,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, device)
}

type adminUpdateDeviceRequest struct {
	RoomID       *int64  `json:"room_id"`
	CustomerID   *int64  `json:"customer_id"`
	SerialNumber *string `json:"serial_number"`
	IsPowerOn    *bool   `json:"is_power_on"`
}

// AdminUpdateDevice handles PATCH /api/admin/devices/:id.
func (h *Handler) AdminUpdateDevice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req adminUpdateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	device, err := h.store.UpdateDevice(c.Request.Context(), id, store.DeviceUpdate{
		RoomID:       req.RoomID,
		CustomerID:   req.CustomerID,
		SerialNumber: req.SerialNumber,
		IsPowerOn:    req.IsPowerOn,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, device)
}

type setDeviceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminSetDeviceStatus handles PATCH /api/admin/devices/:id/status. Devices
// are never deleted; DISABLED is the terminal state.
func (h *Handler) AdminSetDeviceStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req setDeviceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	device, err := h.store.SetDeviceStatus(c.Request.Context(), id, model.DeviceStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, device)
}

type ingestMetricRequest struct {
	DeviceID  int64      `json:"device_id" binding:"required"`
	Timestamp *time.Time `json:"timestamp"`

	PM25               *float64 `json:"pm25"`
	Humidity           *float64 `json:"humidity"`
	CleanedAirVolumeM3 *float64 `json:"cleaned_air_volume_m3"`
	FilterWearPercent  *float64 `json:"filter_wear_percent"`
	LiquidLevelPercent *float64 `json:"liquid_level_percent"`
}

// IngestMetric handles POST /internal/metrics, the service-to-service
// ingestion endpoint for real device readings.
func (h *Handler) IngestMetric(c *gin.Context) {
	var req ingestMetricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	metric := &model.DeviceMetric{
		DeviceID:           req.DeviceID,
		PM25:               req.PM25,
		Humidity:           req.Humidity,
		CleanedAirVolumeM3: req.CleanedAirVolumeM3,
		FilterWearPercent:  req.FilterWearPercent,
		LiquidLevelPercent: req.LiquidLevelPercent,
	}
	if req.Timestamp != nil {
		metric.Timestamp = *req.Timestamp
	}
	if err := h.store.InsertMetric(c.Request.Context(), metric); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, metric)
}
