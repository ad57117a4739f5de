package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"airrental-backend/internal/model"
	"airrental-backend/internal/mw"
	"airrental-backend/internal/store"
)

// idParam parses the :id path parameter.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

type createRoomRequest struct {
	Name           string   `json:"name" binding:"required"`
	RoomType       string   `json:"room_type" binding:"required"`
	AreaM2         float64  `json:"area_m2" binding:"required"`
	CeilingHeightM *float64 `json:"ceiling_height_m"`
	Address        string   `json:"address"`
	City           string   `json:"city"`
	Notes          string   `json:"notes"`
}

// CreateRoom handles POST /api/rooms.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.store.CreateRoom(c.Request.Context(), mw.UserID(c), store.RoomInput{
		Name:           req.Name,
		RoomType:       model.RoomType(req.RoomType),
		AreaM2:         req.AreaM2,
		CeilingHeightM: req.CeilingHeightM,
		Address:        req.Address,
		City:           req.City,
		Notes:          req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// ListRooms handles GET /api/rooms.
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.store.ListRooms(c.Request.Context(), mw.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoom handles GET /api/rooms/:id.
func (h *Handler) GetRoom(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	room, err := h.store.GetRoom(c.Request.Context(), mw.UserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

type updateRoomRequest struct {
	Name     *string `json:"name"`
	RoomType *string `json:"room_type"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	Notes    *string `json:"notes"`
}

// UpdateRoom handles PATCH /api/rooms/:id. Size and volume are immutable.
func (h *Handler) UpdateRoom(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := store.RoomUpdate{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Notes:   req.Notes,
	}
	if req.RoomType != nil {
		rt := model.RoomType(*req.RoomType)
		update.RoomType = &rt
	}

	room, err := h.store.UpdateRoom(c.Request.Context(), mw.UserID(c), id, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// DeleteRoom handles DELETE /api/rooms/:id.
func (h *Handler) DeleteRoom(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.store.DeleteRoom(c.Request.Context(), mw.UserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
