package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appfundraising "github.com/madadgar/backend/internal/application/fundraising"
	"github.com/madadgar/backend/internal/interfaces/http/middleware"
)

// FundraiserHandler handles fundraiser lifecycle API endpoints
type FundraiserHandler struct {
	BaseHandler
	service *appfundraising.FundraiserService
}

// NewFundraiserHandler creates a new FundraiserHandler
func NewFundraiserHandler(service *appfundraising.FundraiserService) *FundraiserHandler {
	return &FundraiserHandler{service: service}
}

// parseIDParam parses a UUID path parameter
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// CreateDraft godoc
// @ID           createFundraiserDraft
// @Summary      Create a draft fundraiser
// @Tags         fundraisers
// @Accept       json
// @Produce      json
// @Success      201 {object} APIResponse[appfundraising.FundraiserResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /fundraisers [post]
func (h *FundraiserHandler) CreateDraft(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appfundraising.CreateFundraiserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.CreateDraft(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List godoc
// @ID           listOwnerFundraisers
// @Summary      List the caller's fundraisers
// @Tags         fundraisers
// @Produce      json
// @Success      200 {object} APIResponse[[]appfundraising.FundraiserListItemResponse]
// @Router       /fundraisers [get]
func (h *FundraiserHandler) List(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter appfundraising.FundraiserListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	items, total, err := h.service.ListOwner(c.Request.Context(), ownerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Get godoc
// @ID           getFundraiserDetail
// @Summary      Get a fundraiser owned by the caller
// @Tags         fundraisers
// @Produce      json
// @Success      200 {object} APIResponse[appfundraising.FundraiserResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /fundraisers/{id} [get]
func (h *FundraiserHandler) Get(c *gin.Context) {
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

	resp, err := h.service.GetOwnerDetail(c.Request.Context(), ownerID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateBasics godoc
// @ID           updateFundraiserBasics
// @Summary      Edit title, location, category, target and deadline
// @Tags         fundraisers
// @Accept       json
// @Produce      json
// @Success      200 {object} APIResponse[appfundraising.FundraiserResponse]
// @Failure      409 {object} ErrorResponse
// @Router       /fundraisers/{id} [put]
func (h *FundraiserHandler) UpdateBasics(c *gin.Context) {
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

	var req appfundraising.UpdateBasicsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.UpdateBasics(c.Request.Context(), ownerID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// SetStartDetails godoc
// @ID           setFundraiserStartDetails
// @Summary      Record the purpose classification step
// @Tags         fundraisers
// @Accept       json
// @Produce      json
// @Success      200 {object} APIResponse[appfundraising.FundraiserResponse]
// @Router       /fundraisers/{id}/start-details [put]
func (h *FundraiserHandler) SetStartDetails(c *gin.Context) {
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

	var req appfundraising.StartDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.SetStartDetails(c.Request.Context(), ownerID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// SetCoverImage godoc
// @ID           setFundraiserCoverImage
// @Summary      Record the uploaded cover image URL
// @Tags         fundraisers
// @Accept       json
// @Produce      json
// @Success      200 {object} APIResponse[appfundraising.FundraiserResponse]
// @Router       /fundraisers/{id}/cover [put]
func (h *FundraiserHandler) SetCoverImage(c *gin.Context) {
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

	var req appfundraising.SetCoverImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.SetCoverImage(c.Request.Context(), ownerID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// AddDocument godoc
// @ID           addFundraiserDocument
// @Summary      Attach a supporting document
// @Tags         fundraisers
// @Accept       json
// @Produce      json
// @Success      201 {object} APIResponse[appfundraising.DocumentResponse]
// @Router       /fundraisers/{id}/documents [post]
func (h *FundraiserHandler) AddDocument(c *gin.Context) {
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

	var req appfundraising.AddDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.AddDocument(c.Request.Context(), ownerID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// RemoveDocument godoc
// @ID           removeFundraiserDocument
// @Summary      Detach a supporting document
// @Tags         fundraisers
// @Produce      json
// @Success      204
// @Router       /fundraisers/{id}/documents/{documentId} [delete]
func (h *FundraiserHandler) RemoveDocument(c *gin.Context) {
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

	documentID, ok := parseIDParam(c, "documentId")
	if !ok {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	if err := h.service.RemoveDocument(c.Request.Context(), ownerID, id, documentID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Publish godoc
// @ID           publishFundraiser
// @Summary      Publish a draft fundraiser
// @Description  Runs the publish gate; all checklist items must pass
// @Tags         fundraisers
// @Produce      json
// @Success      200 {object} APIResponse[appfundraising.FundraiserResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /fundraisers/{id}/publish [post]
func (h *FundraiserHandler) Publish(c *gin.Context) {
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

	resp, err := h.service.Publish(c.Request.Context(), ownerID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Close godoc
// @ID           closeFundraiser
// @Summary      Close a published fundraiser
// @Tags         fundraisers
// @Produce      json
// @Success      200 {object} APIResponse[appfundraising.FundraiserResponse]
// @Failure      409 {object} ErrorResponse
// @Router       /fundraisers/{id}/close [post]
func (h *FundraiserHandler) Close(c *gin.Context) {
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

	resp, err := h.service.Close(c.Request.Context(), ownerID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// SetLinkedFundraiser godoc
// @ID           setLinkedFundraiser
// @Summary      Point a closed fundraiser at its continuation
// @Tags         fundraisers
// @Accept       json
// @Produce      json
// @Success      200 {object} APIResponse[appfundraising.FundraiserResponse]
// @Router       /fundraisers/{id}/linked-fundraiser [put]
func (h *FundraiserHandler) SetLinkedFundraiser(c *gin.Context) {
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

	var req appfundraising.SetLinkedFundraiserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.SetLinkedFundraiser(c.Request.Context(), ownerID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Dashboard godoc
// @ID           getOwnerDashboard
// @Summary      Aggregate view of the caller's fundraisers and totals
// @Tags         fundraisers
// @Produce      json
// @Success      200 {object} APIResponse[appfundraising.DashboardResponse]
// @Router       /dashboard [get]
func (h *FundraiserHandler) Dashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.service.Dashboard(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
