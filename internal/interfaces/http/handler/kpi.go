package handler

import (
	"time"

	appkpi "github.com/bizhub/backend/internal/application/kpi"
	"github.com/gin-gonic/gin"
)

// KPIHandler handles KPI definition and progress tracking
type KPIHandler struct {
	BaseHandler
	kpiService *appkpi.Service
}

// NewKPIHandler creates a new KPI handler
func NewKPIHandler(kpiService *appkpi.Service) *KPIHandler {
	return &KPIHandler{kpiService: kpiService}
}

// RegisterRoutes registers KPI routes on the scoped group
func (h *KPIHandler) RegisterRoutes(rg *gin.RouterGroup) {
	kpis := rg.Group("/kpis")
	kpis.POST("", h.Create)
	kpis.GET("", h.List)
	kpis.GET("/:id", h.Get)
	kpis.DELETE("/:id", h.Delete)
	kpis.POST("/:id/progress", h.RecordProgress)
}

// Create godoc
// @Summary      Create KPI
// @Description  Admin and sub-admin only; the period is normalized to the first of the month
// @Tags         kpis
// @Accept       json
// @Produce      json
// @Param        request body kpi.CreateKPIRequest true "KPI"
// @Success      201 {object} dto.Response{data=kpi.KPIResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /kpis [post]
func (h *KPIHandler) Create(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}

	var req appkpi.CreateKPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.kpiService.Create(c.Request.Context(), bctx, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, created)
}

// List godoc
// @Summary      List KPIs
// @Description  Visible to every member; optionally filtered to one period
// @Tags         kpis
// @Produce      json
// @Param        period query string false "Period as YYYY-MM-DD"
// @Success      200 {object} dto.Response{data=[]kpi.KPIResponse}
// @Router       /kpis [get]
func (h *KPIHandler) List(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}

	var period *time.Time
	if raw := c.Query("period"); raw != "" {
		parsed, err := time.Parse(appkpi.PeriodLayout, raw)
		if err != nil {
			h.BadRequest(c, "Period must be formatted as YYYY-MM-DD")
			return
		}
		period = &parsed
	}

	kpis, err := h.kpiService.List(c.Request.Context(), bctx, period)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, kpis)
}

// Get godoc
// @Summary      Get KPI
// @Tags         kpis
// @Produce      json
// @Param        id path string true "KPI ID"
// @Success      200 {object} dto.Response{data=kpi.KPIResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /kpis/{id} [get]
func (h *KPIHandler) Get(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	target, err := h.kpiService.Get(c.Request.Context(), bctx, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, target)
}

// Delete godoc
// @Summary      Delete KPI
// @Tags         kpis
// @Param        id path string true "KPI ID"
// @Success      204
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /kpis/{id} [delete]
func (h *KPIHandler) Delete(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.kpiService.Delete(c.Request.Context(), bctx, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RecordProgress godoc
// @Summary      Record KPI progress
// @Description  Managers may update any KPI; staff only the KPIs assigned to them
// @Tags         kpis
// @Accept       json
// @Produce      json
// @Param        id path string true "KPI ID"
// @Param        request body kpi.RecordProgressRequest true "Progress delta"
// @Success      200 {object} dto.Response{data=kpi.KPIResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /kpis/{id}/progress [post]
func (h *KPIHandler) RecordProgress(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req appkpi.RecordProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.kpiService.RecordProgress(c.Request.Context(), bctx, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, updated)
}
