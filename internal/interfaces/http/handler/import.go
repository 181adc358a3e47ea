package handler

import (
	appfinance "github.com/bizhub/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// ImportHandler handles CSV bulk imports of finance records
type ImportHandler struct {
	BaseHandler
	importService *appfinance.ImportService
}

// NewImportHandler creates a new import handler
func NewImportHandler(importService *appfinance.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// RegisterRoutes registers import routes on the scoped group
func (h *ImportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	imports := rg.Group("/imports")
	imports.POST("/:entity", h.Upload)
	imports.GET("", h.List)
	imports.GET("/:id", h.Get)
}

// Upload godoc
// @Summary      Import records from CSV
// @Description  Uploads a CSV of sales or expenditures. The whole file is validated first; a file with any invalid row imports nothing. Pass validate_only=true for a dry run.
// @Tags         imports
// @Accept       multipart/form-data
// @Produce      json
// @Param        entity path string true "Entity type" Enums(sales, expenditures)
// @Param        file formData file true "CSV file"
// @Param        validate_only query bool false "Validate without inserting"
// @Security     BearerAuth
// @Success      201 {object} dto.Response{data=csvimport.ImportSession}
// @Router       /imports/{entity} [post]
func (h *ImportHandler) Upload(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing 'file' upload")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Unreadable upload")
		return
	}
	defer file.Close()

	session, err := h.importService.Import(c.Request.Context(), bctx, appfinance.ImportRequest{
		Entity:       c.Param("entity"),
		FileName:     fileHeader.Filename,
		FileSize:     fileHeader.Size,
		Reader:       file,
		ValidateOnly: c.Query("validate_only") == "true",
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, session)
}

// List godoc
// @Summary      List recent imports
// @Tags         imports
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=[]csvimport.ImportSession}
// @Router       /imports [get]
func (h *ImportHandler) List(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}

	sessions, err := h.importService.List(c.Request.Context(), bctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sessions)
}

// Get godoc
// @Summary      Get import session
// @Tags         imports
// @Produce      json
// @Param        id path string true "Import session ID"
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=csvimport.ImportSession}
// @Router       /imports/{id} [get]
func (h *ImportHandler) Get(c *gin.Context) {
	bctx, ok := h.businessContext(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	session, err := h.importService.Get(c.Request.Context(), bctx, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}
