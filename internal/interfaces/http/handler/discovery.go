package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appfundraising "github.com/madadgar/backend/internal/application/fundraising"
	"github.com/madadgar/backend/internal/interfaces/http/middleware"
)

// defaultFeaturedLimit caps the featured strip when the client passes nothing
const defaultFeaturedLimit = 10

// DiscoveryHandler handles the public, unauthenticated browse endpoints
type DiscoveryHandler struct {
	BaseHandler
	service *appfundraising.DiscoveryService
}

// NewDiscoveryHandler creates a new DiscoveryHandler
func NewDiscoveryHandler(service *appfundraising.DiscoveryService) *DiscoveryHandler {
	return &DiscoveryHandler{service: service}
}

// GetPublicDetail godoc
// @ID           getPublicFundraiserDetail
// @Summary      Get the public view of a published or closed fundraiser
// @Tags         discovery
// @Produce      json
// @Success      200 {object} APIResponse[appfundraising.PublicFundraiserResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /public/fundraisers/{id} [get]
func (h *DiscoveryHandler) GetPublicDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid fundraiser ID")
		return
	}

	resp, err := h.service.GetPublicDetail(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListFeatured godoc
// @ID           listFeaturedFundraisers
// @Summary      List featured fundraisers for the landing page
// @Tags         discovery
// @Produce      json
// @Success      200 {object} APIResponse[[]appfundraising.FundraiserListItemResponse]
// @Router       /public/fundraisers/featured [get]
func (h *DiscoveryHandler) ListFeatured(c *gin.Context) {
	limit := defaultFeaturedLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 50 {
			h.BadRequest(c, "limit must be between 1 and 50")
			return
		}
		limit = parsed
	}

	items, err := h.service.ListFeatured(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// Discover godoc
// @ID           discoverFundraisers
// @Summary      Browse published fundraisers with search and filters
// @Tags         discovery
// @Produce      json
// @Success      200 {object} APIResponse[[]appfundraising.FundraiserListItemResponse]
// @Router       /public/fundraisers [get]
func (h *DiscoveryHandler) Discover(c *gin.Context) {
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

	items, total, err := h.service.Discover(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Categories godoc
// @ID           listFundraiserCategories
// @Summary      List the supported fundraiser categories
// @Tags         discovery
// @Produce      json
// @Success      200 {object} APIResponse[[]appfundraising.CategoryResponse]
// @Router       /public/categories [get]
func (h *DiscoveryHandler) Categories(c *gin.Context) {
	h.Success(c, h.service.Categories())
}
