package handler

import (
	appidentity "github.com/bizhub/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// StaffHandler handles staff roster requests
type StaffHandler struct {
	BaseHandler
	staffService *appidentity.StaffService
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(staffService *appidentity.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// RegisterRoutes registers staff routes on the scoped group
func (h *StaffHandler) RegisterRoutes(rg *gin.RouterGroup) {
	staff := rg.Group("/staff")
	staff.GET("", h.List)
	staff.GET("/:id", h.Get)
	staff.PATCH("/:id", h.Update)
	staff.DELETE("/:id", h.Remove)
}

// List godoc
// @Summary      List staff
// @Description  Salary is only included for admin and sub-admin callers
// @Tags         staff
// @Produce      json
// @Success      200 {object} dto.Response{data=[]identity.StaffResponse}
// @Router       /staff [get]
func (h *StaffHandler) List(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}

	staff, err := h.staffService.List(c.Request.Context(), bctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, staff)
}

// Get godoc
// @Summary      Get staff member
// @Tags         staff
// @Produce      json
// @Param        id path string true "Staff ID"
// @Success      200 {object} dto.Response{data=identity.StaffResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /staff/{id} [get]
func (h *StaffHandler) Get(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	staff, err := h.staffService.Get(c.Request.Context(), bctx, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, staff)
}

// Update godoc
// @Summary      Update staff member
// @Description  Patches department, position or salary; admin and sub-admin only
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        id path string true "Staff ID"
// @Param        request body identity.UpdateStaffRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=identity.StaffResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /staff/{id} [patch]
func (h *StaffHandler) Update(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req appidentity.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	staff, err := h.staffService.Update(c.Request.Context(), bctx, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, staff)
}

// Remove godoc
// @Summary      Remove staff member
// @Description  Soft-deletes the membership; payroll history is preserved
// @Tags         staff
// @Param        id path string true "Staff ID"
// @Success      204
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /staff/{id} [delete]
func (h *StaffHandler) Remove(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.staffService.Remove(c.Request.Context(), bctx, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
