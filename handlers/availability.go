package handlers

import (
	"net/http"

	"slotbook/models"
	"slotbook/services/availability"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler serves the provider's daily availability endpoints.
type AvailabilityHandler struct {
	Service availability.AvailabilityService
}

func NewAvailabilityHandler(s availability.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: s}
}

// SetAvailabilityHandler stores a day's declaration and regenerates its slots.
func (h *AvailabilityHandler) SetAvailabilityHandler(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	var req models.AvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}

	schedule, err := h.Service.SetAvailability(c.Request.Context(), caller.UserID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	getLogger(c).Info("Availability updated",
		zap.String("userID", caller.UserID),
		zap.String("date", req.Date),
		zap.Int("slots", len(schedule.Slots)))
	respond(c, http.StatusOK, "Availability updated successfully", schedule)
}

// GetDayHandler returns a day's declaration with its slots.
func (h *AvailabilityHandler) GetDayHandler(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	schedule, err := h.Service.GetDay(c.Request.Context(), caller.UserID, c.Param("date"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Availability fetched successfully", schedule)
}
