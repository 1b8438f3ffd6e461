package handlers

import (
	"net/http"

	"slotbook/models"
	"slotbook/services/admin"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	Service admin.AdminService
}

func NewAdminHandler(s admin.AdminService) *AdminHandler {
	return &AdminHandler{Service: s}
}

// SetApprovalHandler approves or revokes a provider.
func (h *AdminHandler) SetApprovalHandler(c *gin.Context) {
	var req models.ApprovalRequest
	if !bindJSON(c, &req) {
		return
	}

	prov, err := h.Service.SetProviderApproval(c.Request.Context(), c.Param("providerID"), req.Approved)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Provider approval updated", prov)
}
