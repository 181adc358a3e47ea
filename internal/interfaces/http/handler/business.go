package handler

import (
	"net/http"

	appidentity "github.com/bizhub/backend/internal/application/identity"
	"github.com/bizhub/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// BusinessHandler handles business onboarding and profile requests
type BusinessHandler struct {
	BaseHandler
	businessService *appidentity.BusinessService
}

// NewBusinessHandler creates a new business handler
func NewBusinessHandler(businessService *appidentity.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

// RegisterOnboardingRoutes registers the create-business route, which
// only needs authentication, not a resolved business scope
func (h *BusinessHandler) RegisterOnboardingRoutes(rg *gin.RouterGroup) {
	rg.POST("/onboarding/business", h.Create)
}

// RegisterRoutes registers business profile routes on the scoped group
func (h *BusinessHandler) RegisterRoutes(rg *gin.RouterGroup) {
	business := rg.Group("/business")
	business.GET("", h.Get)
	business.PATCH("", h.Update)
	business.POST("/logo/upload-url", h.LogoUploadURL)
	business.POST("/logo/confirm", h.ConfirmLogo)
}

// Create godoc
// @Summary      Create business
// @Description  Creates the business owned by the calling user; a user owns at most one
// @Tags         business
// @Accept       json
// @Produce      json
// @Param        request body identity.CreateBusinessRequest true "Business profile"
// @Success      201 {object} dto.Response{data=identity.BusinessResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /onboarding/business [post]
func (h *BusinessHandler) Create(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
		return
	}

	var req appidentity.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	business, err := h.businessService.Create(c.Request.Context(), principal.UserID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, business)
}

// Get godoc
// @Summary      Get business
// @Tags         business
// @Produce      json
// @Success      200 {object} dto.Response{data=identity.BusinessResponse}
// @Router       /business [get]
func (h *BusinessHandler) Get(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}

	business, err := h.businessService.Get(c.Request.Context(), bctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, business)
}

// Update godoc
// @Summary      Update business profile
// @Description  Merge-patches the business profile; admin only
// @Tags         business
// @Accept       json
// @Produce      json
// @Param        request body identity.UpdateBusinessRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=identity.BusinessResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /business [patch]
func (h *BusinessHandler) Update(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}

	var req appidentity.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	business, err := h.businessService.Update(c.Request.Context(), bctx, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, business)
}

// LogoUploadRequest asks for a presigned logo upload URL
type LogoUploadRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

// ConfirmLogoRequest confirms a finished direct upload
type ConfirmLogoRequest struct {
	StorageKey string `json:"storage_key" binding:"required"`
}

// LogoUploadURL godoc
// @Summary      Request logo upload URL
// @Description  Returns a presigned URL for a direct logo upload; admin only
// @Tags         business
// @Accept       json
// @Produce      json
// @Param        request body LogoUploadRequest true "Upload content type"
// @Success      200 {object} dto.Response{data=identity.LogoUploadResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /business/logo/upload-url [post]
func (h *BusinessHandler) LogoUploadURL(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}

	var req LogoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	upload, err := h.businessService.LogoUploadURL(c.Request.Context(), bctx, req.ContentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, upload)
}

// ConfirmLogo godoc
// @Summary      Confirm logo upload
// @Tags         business
// @Accept       json
// @Produce      json
// @Param        request body ConfirmLogoRequest true "Uploaded storage key"
// @Success      200 {object} dto.Response{data=identity.BusinessResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /business/logo/confirm [post]
func (h *BusinessHandler) ConfirmLogo(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}

	var req ConfirmLogoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	business, err := h.businessService.ConfirmLogo(c.Request.Context(), bctx, req.StorageKey)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, business)
}
