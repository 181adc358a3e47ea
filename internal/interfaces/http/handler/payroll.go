package handler

import (
	"time"

	apppayroll "github.com/bizhub/backend/internal/application/payroll"
	"github.com/gin-gonic/gin"
)

// PayrollHandler handles payroll batch, item and summary requests
type PayrollHandler struct {
	BaseHandler
	batchService   *apppayroll.BatchService
	payslipService *apppayroll.PayslipService
}

// NewPayrollHandler creates a new payroll handler
func NewPayrollHandler(batchService *apppayroll.BatchService, payslipService *apppayroll.PayslipService) *PayrollHandler {
	return &PayrollHandler{batchService: batchService, payslipService: payslipService}
}

// RegisterRoutes registers payroll routes on the scoped group
func (h *PayrollHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payroll := rg.Group("/payroll")
	payroll.GET("/summary", h.Summary)

	batches := payroll.Group("/batches")
	batches.POST("", h.CreateBatch)
	batches.GET("", h.ListBatches)
	batches.GET("/:id", h.GetBatch)
	batches.POST("/:id/lock", h.LockBatch)
	batches.POST("/:id/unlock", h.UnlockBatch)
	batches.GET("/:id/items/:itemId", h.GetItem)
	batches.PATCH("/:id/items/:itemId", h.UpdateItem)
	batches.POST("/:id/items/:itemId/payslip", h.Payslip)
}

// CreateBatch godoc
// @Summary      Create payroll batch
// @Description  Creates the batch for a month and snapshots the current roster as zero-amount items; admin only
// @Tags         payroll
// @Accept       json
// @Produce      json
// @Param        request body payroll.CreateBatchRequest true "Batch period"
// @Success      201 {object} dto.Response{data=payroll.BatchResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /payroll/batches [post]
func (h *PayrollHandler) CreateBatch(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}

	var req apppayroll.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	period, err := time.Parse(apppayroll.PeriodLayout, req.Period)
	if err != nil {
		h.BadRequest(c, "Period must be formatted as YYYY-MM-DD")
		return
	}

	batch, err := h.batchService.CreateBatch(c.Request.Context(), bctx, period)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, batch)
}

// ListBatches godoc
// @Summary      List payroll batches
// @Description  Admins see totals; members see id, period and lock state only
// @Tags         payroll
// @Produce      json
// @Success      200 {object} dto.Response{data=[]payroll.BatchResponse}
// @Router       /payroll/batches [get]
func (h *PayrollHandler) ListBatches(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}

	batches, err := h.batchService.ListBatches(c.Request.Context(), bctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, batches)
}

// GetBatch godoc
// @Summary      Get payroll batch
// @Description  Members only see their own item inside the batch
// @Tags         payroll
// @Produce      json
// @Param        id path string true "Batch ID"
// @Success      200 {object} dto.Response{data=payroll.BatchResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /payroll/batches/{id} [get]
func (h *PayrollHandler) GetBatch(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	batch, err := h.batchService.GetBatch(c.Request.Context(), bctx, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, batch)
}

// LockBatch godoc
// @Summary      Lock payroll batch
// @Description  Locking is idempotent; a locked batch rejects item changes
// @Tags         payroll
// @Produce      json
// @Param        id path string true "Batch ID"
// @Success      200 {object} dto.Response{data=payroll.BatchResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /payroll/batches/{id}/lock [post]
func (h *PayrollHandler) LockBatch(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	batch, err := h.batchService.LockBatch(c.Request.Context(), bctx, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, batch)
}

// UnlockBatch godoc
// @Summary      Unlock payroll batch
// @Tags         payroll
// @Produce      json
// @Param        id path string true "Batch ID"
// @Success      200 {object} dto.Response{data=payroll.BatchResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /payroll/batches/{id}/unlock [post]
func (h *PayrollHandler) UnlockBatch(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	batch, err := h.batchService.UnlockBatch(c.Request.Context(), bctx, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, batch)
}

// GetItem godoc
// @Summary      Get payroll item
// @Description  Returns a single payroll line; staff may only read their own
// @Tags         payroll
// @Produce      json
// @Param        id path string true "Batch ID"
// @Param        itemId path string true "Item ID"
// @Success      200 {object} dto.Response{data=payroll.ItemResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /payroll/batches/{id}/items/{itemId} [get]
func (h *PayrollHandler) GetItem(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}
	batchID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.pathUUID(c, "itemId")
	if !ok {
		return
	}

	item, err := h.batchService.GetItem(c.Request.Context(), bctx, batchID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// UpdateItem godoc
// @Summary      Update payroll item
// @Description  Merge-patches amount and paid flag; staff may only touch their own item while the batch is open
// @Tags         payroll
// @Accept       json
// @Produce      json
// @Param        id path string true "Batch ID"
// @Param        itemId path string true "Item ID"
// @Param        request body payroll.UpdateItemRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=payroll.ItemResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /payroll/batches/{id}/items/{itemId} [patch]
func (h *PayrollHandler) UpdateItem(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}
	batchID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.pathUUID(c, "itemId")
	if !ok {
		return
	}

	var req apppayroll.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.batchService.UpdateItem(c.Request.Context(), bctx, batchID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// Summary godoc
// @Summary      Payroll summary
// @Description  Latest batch overview; members get their own line instead of business totals
// @Tags         payroll
// @Produce      json
// @Success      200 {object} dto.Response{data=payroll.SummaryResponse}
// @Router       /payroll/summary [get]
func (h *PayrollHandler) Summary(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}

	summary, err := h.batchService.Summary(c.Request.Context(), bctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// Payslip godoc
// @Summary      Generate payslip
// @Description  Renders the item's payslip to PDF and returns a short-lived download URL; admin only
// @Tags         payroll
// @Produce      json
// @Param        id path string true "Batch ID"
// @Param        itemId path string true "Item ID"
// @Success      200 {object} dto.Response{data=payroll.PayslipResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /payroll/batches/{id}/items/{itemId}/payslip [post]
func (h *PayrollHandler) Payslip(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}
	batchID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.pathUUID(c, "itemId")
	if !ok {
		return
	}

	payslip, err := h.payslipService.Generate(c.Request.Context(), bctx, batchID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payslip)
}
