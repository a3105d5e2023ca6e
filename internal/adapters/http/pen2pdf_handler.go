package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studybuddy/core/internal/application/services"
	"github.com/studybuddy/core/internal/infrastructure/logger"
	"github.com/studybuddy/core/internal/ports"
)

// Pen2PDFHandler handles document extraction and export
type Pen2PDFHandler struct {
	pen2pdfService *services.Pen2PDFService
	logger         *logger.Logger
}

// NewPen2PDFHandler creates a new pen2pdf handler
func NewPen2PDFHandler(pen2pdfService *services.Pen2PDFService, logger *logger.Logger) *Pen2PDFHandler {
	return &Pen2PDFHandler{
		pen2pdfService: pen2pdfService,
		logger:         logger,
	}
}

// Extract godoc
// @Summary Extract markdown from documents
// @Description Convert handwritten scans, PDFs and slides into one markdown document
// @Tags pen2pdf
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Documents"
// @Param model formData string false "Model name"
// @Success 200 {object} ports.ExtractResult
// @Failure 502 {object} ErrorResponse
// @Router /pen2pdf/extract [post]
func (h *Pen2PDFHandler) Extract(c echo.Context) error {
	files, err := readUploads(c, "files")
	if err != nil {
		return err
	}

	result, err := h.pen2pdfService.Extract(c.Request().Context(), files, c.FormValue("model"))
	if err != nil {
		h.logger.Errorw("Extraction failed", "error", err, "files", len(files))
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// Export godoc
// @Summary Export markdown as a document
// @Tags pen2pdf
// @Accept json
// @Produce octet-stream
// @Param request body ports.ExportDocumentRequest true "Markdown and format"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /pen2pdf/export [post]
func (h *Pen2PDFHandler) Export(c echo.Context) error {
	var req ports.ExportDocumentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	doc, err := h.pen2pdfService.Export(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Document export failed", "error", err, "format", req.Format)
		return toHTTPError(err)
	}
	return attachment(c, doc)
}
