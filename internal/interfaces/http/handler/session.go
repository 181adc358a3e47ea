package handler

import (
	"errors"
	"net/http"

	appidentity "github.com/bizhub/backend/internal/application/identity"
	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/bizhub/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionHandler handles session sync and the current-user endpoint
type SessionHandler struct {
	BaseHandler
	sessionService *appidentity.SessionService
	resolver       *appidentity.Resolver
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *appidentity.SessionService, resolver *appidentity.Resolver) *SessionHandler {
	return &SessionHandler{sessionService: sessionService, resolver: resolver}
}

// RegisterRoutes registers session routes on the authenticated group
func (h *SessionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/session", h.Sync)
	auth.GET("/me", h.Me)
}

// MeResponse combines the user profile with the resolved business scope.
// Scope is null for accounts not attached to a business yet.
type MeResponse struct {
	User  *appidentity.UserResponse `json:"user"`
	Scope *ScopeResponse            `json:"scope"`
}

// ScopeResponse is the resolved tenant scope of the current session
type ScopeResponse struct {
	BusinessID uuid.UUID  `json:"business_id"`
	Role       string     `json:"role"`
	StaffID    *uuid.UUID `json:"staff_id,omitempty"`
}

// Sync godoc
// @Summary      Sync session
// @Description  Upserts the local user record from the verified identity provider claims
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response{data=identity.UserResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/session [post]
func (h *SessionHandler) Sync(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
		return
	}

	user, err := h.sessionService.Sync(c.Request.Context(), appidentity.SessionInput{
		PrincipalID: principal.UserID,
		Email:       principal.Email,
		FullName:    principal.FullName,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// Me godoc
// @Summary      Current user
// @Description  Returns the current user's profile and resolved business scope
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response{data=MeResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/me [get]
func (h *SessionHandler) Me(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
		return
	}

	user, err := h.sessionService.Me(c.Request.Context(), appidentity.SessionInput{
		PrincipalID: principal.UserID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := MeResponse{User: user}

	bctx, err := h.resolver.Resolve(c.Request.Context(), principal.UserID)
	switch {
	case err == nil:
		resp.Scope = &ScopeResponse{
			BusinessID: bctx.BusinessID,
			Role:       string(bctx.Role),
			StaffID:    bctx.StaffID,
		}
	case errors.Is(err, shared.ErrNoBusiness):
		// No scope yet: onboarding or pending invite.
	default:
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
