package handler

import (
	"github.com/gin-gonic/gin"

	appfundraising "github.com/madadgar/backend/internal/application/fundraising"
	"github.com/madadgar/backend/internal/interfaces/http/middleware"
)

// PayoutHandler handles payout configuration API endpoints
type PayoutHandler struct {
	BaseHandler
	service *appfundraising.PayoutService
}

// NewPayoutHandler creates a new PayoutHandler
func NewPayoutHandler(service *appfundraising.PayoutService) *PayoutHandler {
	return &PayoutHandler{service: service}
}

// Get godoc
// @ID           getPayoutConfig
// @Summary      Get the payout configuration for a fundraiser
// @Tags         payout
// @Produce      json
// @Success      200 {object} APIResponse[appfundraising.PayoutConfigResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /fundraisers/{id}/payout-config [get]
func (h *PayoutHandler) Get(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid fundraiser ID")
		return
	}

	resp, err := h.service.GetPayoutConfig(c.Request.Context(), ownerID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Save godoc
// @ID           savePayoutConfig
// @Summary      Replace the payout configuration for a fundraiser
// @Description  The submitted method set replaces the stored one atomically
// @Tags         payout
// @Accept       json
// @Produce      json
// @Success      200 {object} APIResponse[appfundraising.PayoutConfigResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /fundraisers/{id}/payout-config [put]
func (h *PayoutHandler) Save(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid fundraiser ID")
		return
	}

	var req appfundraising.SavePayoutConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.SavePayoutConfig(c.Request.Context(), ownerID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
