package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/studybuddy/core/internal/domain/entities"
	"github.com/studybuddy/core/internal/infrastructure/logger"
	"github.com/studybuddy/core/internal/ports"
)

// Pen2PDFService turns handwritten scans and documents into markdown and
// exports markdown as documents, both through the AI backend
type Pen2PDFService struct {
	ai           ports.AIBackend
	defaultModel string
	logger       *logger.Logger
}

// NewPen2PDFService creates a new pen2pdf service
func NewPen2PDFService(ai ports.AIBackend, defaultModel string, logger *logger.Logger) *Pen2PDFService {
	return &Pen2PDFService{
		ai:           ai,
		defaultModel: defaultModel,
		logger:       logger,
	}
}

// Extract converts the uploaded files into one markdown document
func (s *Pen2PDFService) Extract(ctx context.Context, files []ports.Upload, model string) (*ports.ExtractResult, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files uploaded: %w", entities.ErrEmptyContent)
	}

	model = strings.TrimSpace(model)
	if model == "" {
		model = s.defaultModel
	}

	result, err := s.ai.Extract(ctx, files, model)
	if err != nil {
		return nil, fmt.Errorf("failed to extract documents: %w", err)
	}

	s.logger.Infow("Documents extracted", "files", result.FilesProcessed, "model", model)

	return result, nil
}

// Export renders markdown as a PDF, DOCX or markdown download
func (s *Pen2PDFService) Export(ctx context.Context, req ports.ExportDocumentRequest) (*ports.ExportedDocument, error) {
	if strings.TrimSpace(req.Markdown) == "" {
		return nil, fmt.Errorf("markdown is required: %w", entities.ErrEmptyContent)
	}

	format, err := ports.ParseExportFormat(req.Format)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "document"
	}

	doc, err := s.ai.Export(ctx, ports.ExportInput{
		Content:      req.Markdown,
		Title:        title,
		Format:       format,
		AddWatermark: req.AddWatermark,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export document: %w", err)
	}

	if doc.Filename == "" {
		ext := string(format)
		if format == ports.ExportMarkdown {
			ext = "md"
		}
		doc.Filename = title + "." + ext
	}
	return doc, nil
}
