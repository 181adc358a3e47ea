package handler

import (
	"time"

	appinsight "github.com/bizhub/backend/internal/application/insight"
	"github.com/gin-gonic/gin"
)

// InsightHandler exposes the generated monthly business digest
type InsightHandler struct {
	BaseHandler
	insightService *appinsight.Service
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(insightService *appinsight.Service) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

// RegisterRoutes registers insight routes on the scoped group
func (h *InsightHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/insights", h.Generate)
}

// Generate godoc
// @Summary      Generate monthly insight
// @Description  Builds a digest of the month's figures and asks the text backend to summarize it
// @Tags         insights
// @Produce      json
// @Param        month query string false "Month as YYYY-MM, defaults to the current month"
// @Success      200 {object} dto.Response{data=insight.InsightResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /insights [post]
func (h *InsightHandler) Generate(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}

	ref := time.Now().UTC()
	if raw := c.Query("month"); raw != "" {
		parsed, err := time.Parse(monthLayout, raw)
		if err != nil {
			h.BadRequest(c, "Month must be formatted as YYYY-MM")
			return
		}
		ref = parsed
	}

	result, err := h.insightService.Generate(c.Request.Context(), bctx, ref)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
