package handler

import (
	"github.com/gin-gonic/gin"

	appgiving "github.com/madadgar/backend/internal/application/giving"
	"github.com/madadgar/backend/internal/interfaces/http/middleware"
)

// IdempotencyKeyHeader carries the client-chosen key that makes donation
// submission retry-safe
const IdempotencyKeyHeader = "X-Idempotency-Key"

// DonationHandler handles donation intake and donor history endpoints
type DonationHandler struct {
	BaseHandler
	service *appgiving.DonationService
}

// NewDonationHandler creates a new DonationHandler
func NewDonationHandler(service *appgiving.DonationService) *DonationHandler {
	return &DonationHandler{service: service}
}

// Submit godoc
// @ID           submitDonation
// @Summary      Submit a donation to a published fundraiser
// @Description  Anonymous callers are accepted; authenticated callers have the
// @Description  donation attributed to them. Retries with the same
// @Description  X-Idempotency-Key return the original donation.
// @Tags         donations
// @Accept       json
// @Produce      json
// @Param        X-Idempotency-Key header string false "Client retry key"
// @Success      201 {object} APIResponse[appgiving.DonationResponse]
// @Failure      409 {object} ErrorResponse
// @Router       /public/fundraisers/{id}/donations [post]
func (h *DonationHandler) Submit(c *gin.Context) {
	fundraiserID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid fundraiser ID")
		return
	}

	var req appgiving.SubmitDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	donorID := getOptionalUserID(c)
	idempotencyKey := c.GetHeader(IdempotencyKeyHeader)

	resp, err := h.service.Submit(c.Request.Context(), fundraiserID, donorID, idempotencyKey, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListMine godoc
// @ID           listMyDonations
// @Summary      List the caller's donations grouped by fundraiser
// @Tags         donations
// @Produce      json
// @Param        search   query string false "Match on fundraiser title"
// @Param        order_by query string false "recent, amount or title"
// @Success      200 {object} APIResponse[[]appgiving.DonationGroupResponse]
// @Router       /donations/mine [get]
func (h *DonationHandler) ListMine(c *gin.Context) {
	donorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter appgiving.MyDonationsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	groups, err := h.service.ListMyDonations(c.Request.Context(), donorID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, groups)
}

// Balance godoc
// @ID           getOwnerBalance
// @Summary      Show money received across the caller's fundraisers
// @Tags         donations
// @Produce      json
// @Success      200 {object} APIResponse[appgiving.BalanceResponse]
// @Router       /balance [get]
func (h *DonationHandler) Balance(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.service.Balance(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
