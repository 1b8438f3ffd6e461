package handlers

import (
	"net/http"

	"slotbook/models"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
)

// ListMineHandler returns the caller's appointments.
func (h *BookingHandler) ListMineHandler(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	appts, err := h.Service.ListMine(c.Request.Context(), caller.UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Appointments fetched successfully", appts)
}

// ProviderDayHandler returns the calling provider's appointments for a day.
func (h *BookingHandler) ProviderDayHandler(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	appts, err := h.Service.ListProviderDay(c.Request.Context(), caller.UserID, c.Param("date"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Appointments fetched successfully", appts)
}

func (h *BookingHandler) CancelHandler(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	// The body is optional.
	var req models.CancelRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	appt, err := h.Service.Cancel(c.Request.Context(), caller, c.Param("id"), req.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Appointment cancelled successfully", appt)
}

func (h *BookingHandler) AttendHandler(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	appt, err := h.Service.MarkAttended(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Appointment marked as attended", appt)
}

func (h *BookingHandler) NoShowHandler(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	appt, err := h.Service.MarkNoShow(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Appointment marked as no-show", appt)
}
