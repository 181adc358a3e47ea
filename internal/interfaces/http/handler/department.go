package handler

import (
	appidentity "github.com/bizhub/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// DepartmentHandler handles department requests
type DepartmentHandler struct {
	BaseHandler
	departmentService *appidentity.DepartmentService
}

// NewDepartmentHandler creates a new department handler
func NewDepartmentHandler(departmentService *appidentity.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departmentService: departmentService}
}

// RegisterRoutes registers department routes on the scoped group
func (h *DepartmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	departments := rg.Group("/departments")
	departments.POST("", h.Create)
	departments.GET("", h.List)
	departments.PUT("/:id", h.Update)
	departments.DELETE("/:id", h.Delete)
}

// Create godoc
// @Summary      Create department
// @Description  Department names are unique per business, case-insensitively
// @Tags         departments
// @Accept       json
// @Produce      json
// @Param        request body identity.CreateDepartmentRequest true "Department"
// @Success      201 {object} dto.Response{data=identity.DepartmentResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /departments [post]
func (h *DepartmentHandler) Create(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}

	var req appidentity.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	department, err := h.departmentService.Create(c.Request.Context(), bctx, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, department)
}

// List godoc
// @Summary      List departments
// @Tags         departments
// @Produce      json
// @Success      200 {object} dto.Response{data=[]identity.DepartmentResponse}
// @Router       /departments [get]
func (h *DepartmentHandler) List(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}

	departments, err := h.departmentService.List(c.Request.Context(), bctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, departments)
}

// Update godoc
// @Summary      Update department
// @Tags         departments
// @Accept       json
// @Produce      json
// @Param        id path string true "Department ID"
// @Param        request body identity.CreateDepartmentRequest true "Department"
// @Success      200 {object} dto.Response{data=identity.DepartmentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /departments/{id} [put]
func (h *DepartmentHandler) Update(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req appidentity.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	department, err := h.departmentService.Update(c.Request.Context(), bctx, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, department)
}

// Delete godoc
// @Summary      Delete department
// @Tags         departments
// @Param        id path string true "Department ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /departments/{id} [delete]
func (h *DepartmentHandler) Delete(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.departmentService.Delete(c.Request.Context(), bctx, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
