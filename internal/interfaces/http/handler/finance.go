package handler

import (
	"strconv"
	"time"

	appfinance "github.com/bizhub/backend/internal/application/finance"
	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/bizhub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

const monthLayout = "2006-01"

// FinanceHandler handles sales, expenditures and monthly reports
type FinanceHandler struct {
	BaseHandler
	saleService        *appfinance.SaleService
	expenditureService *appfinance.ExpenditureService
	reportService      *appfinance.ReportService
}

// NewFinanceHandler creates a new finance handler
func NewFinanceHandler(
	saleService *appfinance.SaleService,
	expenditureService *appfinance.ExpenditureService,
	reportService *appfinance.ReportService,
) *FinanceHandler {
	return &FinanceHandler{
		saleService:        saleService,
		expenditureService: expenditureService,
		reportService:      reportService,
	}
}

// RegisterRoutes registers finance routes on the scoped group
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	sales.POST("", h.RecordSale)
	sales.GET("", h.ListSales)
	sales.PUT("/:id", h.UpdateSale)
	sales.DELETE("/:id", h.DeleteSale)

	expenditures := rg.Group("/expenditures")
	expenditures.POST("", h.RecordExpenditure)
	expenditures.GET("", h.ListExpenditures)
	expenditures.PUT("/:id", h.UpdateExpenditure)
	expenditures.DELETE("/:id", h.DeleteExpenditure)

	reports := rg.Group("/reports")
	reports.GET("/monthly", h.MonthlyReport)
	reports.GET("/history", h.ReportHistory)
}

// listFilter converts query parameters into a repository filter
func (h *FinanceHandler) listFilter(c *gin.Context) (shared.Filter, bool) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid list parameters")
		return shared.Filter{}, false
	}

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.Category != "" {
		filter.Filters["category"] = req.Category
	}
	return filter, true
}

// RecordSale godoc
// @Summary      Record sale
// @Description  Any member may record a sale; the record is attributed to the caller
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        request body finance.RecordSaleRequest true "Sale"
// @Success      201 {object} dto.Response{data=finance.SaleResponse}
// @Router       /sales [post]
func (h *FinanceHandler) RecordSale(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}

	var req appfinance.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	sale, err := h.saleService.Record(c.Request.Context(), bctx, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, sale)
}

// ListSales godoc
// @Summary      List sales
// @Description  Staff only see their own records; managers see everything
// @Tags         finance
// @Produce      json
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]finance.SaleResponse}
// @Router       /sales [get]
func (h *FinanceHandler) ListSales(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	page, err := h.saleService.List(c.Request.Context(), bctx, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize, page.TotalPages)
}

// UpdateSale godoc
// @Summary      Correct sale
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        id path string true "Sale ID"
// @Param        request body finance.UpdateSaleRequest true "Corrected sale"
// @Success      200 {object} dto.Response{data=finance.SaleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales/{id} [put]
func (h *FinanceHandler) UpdateSale(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req appfinance.UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	sale, err := h.saleService.Update(c.Request.Context(), bctx, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// DeleteSale godoc
// @Summary      Delete sale
// @Tags         finance
// @Param        id path string true "Sale ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales/{id} [delete]
func (h *FinanceHandler) DeleteSale(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.saleService.Delete(c.Request.Context(), bctx, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RecordExpenditure godoc
// @Summary      Record expenditure
// @Description  Admin and sub-admin only
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        request body finance.RecordExpenditureRequest true "Expenditure"
// @Success      201 {object} dto.Response{data=finance.ExpenditureResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /expenditures [post]
func (h *FinanceHandler) RecordExpenditure(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}

	var req appfinance.RecordExpenditureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	expenditure, err := h.expenditureService.Record(c.Request.Context(), bctx, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, expenditure)
}

// ListExpenditures godoc
// @Summary      List expenditures
// @Tags         finance
// @Produce      json
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Param        category query string false "Category filter"
// @Success      200 {object} dto.Response{data=[]finance.ExpenditureResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /expenditures [get]
func (h *FinanceHandler) ListExpenditures(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	page, err := h.expenditureService.List(c.Request.Context(), bctx, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize, page.TotalPages)
}

// UpdateExpenditure godoc
// @Summary      Correct expenditure
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        id path string true "Expenditure ID"
// @Param        request body finance.UpdateExpenditureRequest true "Corrected expenditure"
// @Success      200 {object} dto.Response{data=finance.ExpenditureResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /expenditures/{id} [put]
func (h *FinanceHandler) UpdateExpenditure(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req appfinance.UpdateExpenditureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	expenditure, err := h.expenditureService.Update(c.Request.Context(), bctx, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, expenditure)
}

// DeleteExpenditure godoc
// @Summary      Delete expenditure
// @Tags         finance
// @Param        id path string true "Expenditure ID"
// @Success      204
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /expenditures/{id} [delete]
func (h *FinanceHandler) DeleteExpenditure(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.expenditureService.Delete(c.Request.Context(), bctx, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// MonthlyReport godoc
// @Summary      Monthly totals
// @Description  Revenue, spend and net for one month; defaults to the current month
// @Tags         reports
// @Produce      json
// @Param        month query string false "Month as YYYY-MM"
// @Success      200 {object} dto.Response{data=finance.MonthlyTotalsResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /reports/monthly [get]
func (h *FinanceHandler) MonthlyReport(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}

	month := time.Now().UTC()
	if raw := c.Query("month"); raw != "" {
		parsed, err := time.Parse(monthLayout, raw)
		if err != nil {
			h.BadRequest(c, "Month must be formatted as YYYY-MM")
			return
		}
		month = parsed
	}

	totals, err := h.reportService.MonthlyTotals(c.Request.Context(), bctx, month)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, totals)
}

// ReportHistory godoc
// @Summary      Monthly history
// @Description  Totals for the last N months, newest first
// @Tags         reports
// @Produce      json
// @Param        months query int false "Number of months (1-24)"
// @Success      200 {object} dto.Response{data=[]finance.MonthlyTotalsResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /reports/history [get]
func (h *FinanceHandler) ReportHistory(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}

	months := 6
	if raw := c.Query("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "Months must be a number")
			return
		}
		months = parsed
	}

	history, err := h.reportService.History(c.Request.Context(), bctx, months)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, history)
}
