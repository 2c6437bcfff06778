package handler

import (
	"github.com/gin-gonic/gin"

	appfundraising "github.com/madadgar/backend/internal/application/fundraising"
	"github.com/madadgar/backend/internal/interfaces/http/middleware"
)

// MediaHandler issues presigned upload URLs for covers and documents.
// File bytes never pass through the backend.
type MediaHandler struct {
	BaseHandler
	service *appfundraising.MediaService
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(service *appfundraising.MediaService) *MediaHandler {
	return &MediaHandler{service: service}
}

// RequestCoverUploadURL godoc
// @ID           requestCoverUploadURL
// @Summary      Issue a presigned upload URL for a cover image
// @Tags         media
// @Accept       json
// @Produce      json
// @Success      200 {object} APIResponse[appfundraising.UploadURLResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /fundraisers/{id}/cover-upload-url [post]
func (h *MediaHandler) RequestCoverUploadURL(c *gin.Context) {
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

	var req appfundraising.RequestUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.RequestCoverUploadURL(c.Request.Context(), ownerID, id, req.ContentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RequestDocumentUploadURL godoc
// @ID           requestDocumentUploadURL
// @Summary      Issue a presigned upload URL for a supporting document
// @Tags         media
// @Accept       json
// @Produce      json
// @Success      200 {object} APIResponse[appfundraising.UploadURLResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /fundraisers/{id}/document-upload-url [post]
func (h *MediaHandler) RequestDocumentUploadURL(c *gin.Context) {
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

	var req appfundraising.RequestUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.RequestDocumentUploadURL(c.Request.Context(), ownerID, id, req.FileName, req.ContentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
