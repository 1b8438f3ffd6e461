package handlers

import (
	"net/http"
	"time"

	"slotbook/models"
	"slotbook/services/booking"
	"slotbook/services/payment"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves slot discovery, holds and confirmations.
type BookingHandler struct {
	Service  booking.BookingService
	Verifier payment.Verifier
}

func NewBookingHandler(s booking.BookingService, v payment.Verifier) *BookingHandler {
	if v == nil {
		v = payment.NoopVerifier{}
	}
	return &BookingHandler{Service: s, Verifier: v}
}

// fromLayouts are accepted for the "from" query. Values are read as
// wall-clock time in the slot timezone.
var fromLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

func parseFrom(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	for _, layout := range fromLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return utils.Naive(t), true
		}
	}
	return time.Time{}, false
}

// AvailableProvidersHandler lists approved providers that have open slots.
func (h *BookingHandler) AvailableProvidersHandler(c *gin.Context) {
	providers, err := h.Service.AvailableProviders(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Available providers fetched successfully", providers)
}

// AvailableSlotsHandler lists a provider's open slots from the "from" query
// onwards, never earlier than now.
func (h *BookingHandler) AvailableSlotsHandler(c *gin.Context) {
	from, ok := parseFrom(c.Query("from"))
	if !ok {
		utils.JSONError(c, utils.KindValidation, "from must be a date or date-time")
		return
	}

	slots, err := h.Service.AvailableSlots(c.Request.Context(), c.Param("providerID"), from)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Available slots fetched successfully", slots)
}

// HoldHandler reserves a slot for the caller.
func (h *BookingHandler) HoldHandler(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	var req models.HoldRequest
	if !bindJSON(c, &req) {
		return
	}

	hold, err := h.Service.Hold(c.Request.Context(), caller.UserID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Slot locked successfully", hold)
}

// ReleaseHandler drops the caller's hold on a slot.
func (h *BookingHandler) ReleaseHandler(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	slot, err := h.Service.Release(c.Request.Context(), caller.UserID, c.Param("slotID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Slot released successfully", slot)
}

// ConfirmHandler verifies the payment and books the held slot.
func (h *BookingHandler) ConfirmHandler(c *gin.Context) {
	logger := getLogger(c)
	caller, ok := identity(c)
	if !ok {
		return
	}

	var req models.ConfirmRequest
	if !bindJSON(c, &req) {
		return
	}

	// Step 1: Check the payment with the gateway.
	if err := h.Verifier.Verify(c.Request.Context(), req); err != nil {
		utils.RespondError(c, err)
		return
	}

	// Step 2: Book the slot.
	result, err := h.Service.Confirm(c.Request.Context(), caller.UserID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	logger.Info("Appointment booked",
		zap.String("appointmentID", result.Appointment.ID),
		zap.String("slotID", req.SlotID))
	respond(c, http.StatusCreated, "Appointment booked successfully", result)
}
