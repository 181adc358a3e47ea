package handler

import (
	"net/http"

	appidentity "github.com/bizhub/backend/internal/application/identity"
	"github.com/bizhub/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// InviteHandler handles invite management and public acceptance
type InviteHandler struct {
	BaseHandler
	inviteService *appidentity.InviteService
}

// NewInviteHandler creates a new invite handler
func NewInviteHandler(inviteService *appidentity.InviteService) *InviteHandler {
	return &InviteHandler{inviteService: inviteService}
}

// RegisterRoutes registers invite management routes on the scoped group
func (h *InviteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invites := rg.Group("/invites")
	invites.POST("", h.Create)
	invites.GET("", h.List)
	invites.GET("/quota", h.Quota)
	invites.DELETE("/:id", h.Revoke)
}

// RegisterAcceptRoute registers acceptance, which needs authentication
// but deliberately not a business scope: the acceptor has none yet
func (h *InviteHandler) RegisterAcceptRoute(rg *gin.RouterGroup) {
	rg.POST("/invites/accept/:token", h.Accept)
}

// Create godoc
// @Summary      Create invite
// @Description  Offers membership to an email address; each manager gets 10 invites per calendar month
// @Tags         invites
// @Accept       json
// @Produce      json
// @Param        request body identity.CreateInviteRequest true "Invite"
// @Success      201 {object} dto.Response{data=identity.InviteResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /invites [post]
func (h *InviteHandler) Create(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}

	var req appidentity.CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	invite, err := h.inviteService.Create(c.Request.Context(), bctx, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invite)
}

// List godoc
// @Summary      List invites
// @Tags         invites
// @Produce      json
// @Success      200 {object} dto.Response{data=[]identity.InviteResponse}
// @Router       /invites [get]
func (h *InviteHandler) List(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}

	invites, err := h.inviteService.List(c.Request.Context(), bctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invites)
}

// Quota godoc
// @Summary      Invite quota
// @Description  Reports the caller's remaining invites for the current month
// @Tags         invites
// @Produce      json
// @Success      200 {object} dto.Response{data=identity.InviteQuotaResponse}
// @Router       /invites/quota [get]
func (h *InviteHandler) Quota(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}

	quota, err := h.inviteService.Quota(c.Request.Context(), bctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quota)
}

// Revoke godoc
// @Summary      Revoke invite
// @Tags         invites
// @Param        id path string true "Invite ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /invites/{id} [delete]
func (h *InviteHandler) Revoke(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.inviteService.Revoke(c.Request.Context(), bctx, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Accept godoc
// @Summary      Accept invite
// @Description  Joins the inviting business; the authenticated email must match the invite
// @Tags         invites
// @Produce      json
// @Param        token path string true "Invite token"
// @Success      200 {object} dto.Response{data=identity.StaffResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      410 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /invites/accept/{token} [post]
func (h *InviteHandler) Accept(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
		return
	}

	token := c.Param("token")
	if token == "" {
		h.BadRequest(c, "Missing invite token")
		return
	}

	staff, err := h.inviteService.Accept(c.Request.Context(), token, appidentity.SessionInput{
		PrincipalID: principal.UserID,
		Email:       principal.Email,
		FullName:    principal.FullName,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, staff)
}
