package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetDeviceTypes handles GET /api/device-types?category=.
func (h *Handler) GetDeviceTypes(c *gin.Context) {
	types, err := h.store.ListDeviceTypes(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}
