package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"airrental-backend/internal/simulator"
	"airrental-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store store.Store
	sim   *simulator.Simulator
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, sim *simulator.Simulator) *Handler {
	return &Handler{store: s, sim: sim}
}

// respondError maps the store's error taxonomy onto HTTP statuses. Ownership
// failures stay 403, never folded into 404.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrPermission):
		status = http.StatusForbidden
	case errors.Is(err, store.ErrValidation):
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
