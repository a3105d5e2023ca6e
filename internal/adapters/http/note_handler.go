package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studybuddy/core/internal/application/services"
	"github.com/studybuddy/core/internal/infrastructure/logger"
	"github.com/studybuddy/core/internal/ports"
)

// NoteHandler handles note requests
type NoteHandler struct {
	noteService *services.NoteService
	logger      *logger.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(noteService *services.NoteService, logger *logger.Logger) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		logger:      logger,
	}
}

// ListNotes godoc
// @Summary List notes
// @Description List notes, most recently updated first
// @Tags notes
// @Produce json
// @Param folder_id query int false "Only notes in this folder"
// @Success 200 {array} entities.Note
// @Router /notes [get]
func (h *NoteHandler) ListNotes(c echo.Context) error {
	folderID, err := optionalInt(c, "folder_id")
	if err != nil {
		return err
	}

	notes, err := h.noteService.ListNotes(c.Request().Context(), folderID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, notes)
}

func (h *NoteHandler) CreateNote(c echo.Context) error {
	var req ports.CreateNoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	note, err := h.noteService.CreateNote(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Create note failed", "error", err)
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, note)
}

func (h *NoteHandler) GetNote(c echo.Context) error {
	id, err := parseID(c, "id", "note")
	if err != nil {
		return err
	}

	note, err := h.noteService.GetNote(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, note)
}

func (h *NoteHandler) UpdateNote(c echo.Context) error {
	id, err := parseID(c, "id", "note")
	if err != nil {
		return err
	}

	var req ports.UpdateNoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	note, err := h.noteService.UpdateNote(c.Request().Context(), id, req)
	if err != nil {
		h.logger.Errorw("Update note failed", "error", err, "note_id", id)
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, note)
}

func (h *NoteHandler) DeleteNote(c echo.Context) error {
	id, err := parseID(c, "id", "note")
	if err != nil {
		return err
	}

	if err := h.noteService.DeleteNote(c.Request().Context(), id); err != nil {
		h.logger.Errorw("Delete note failed", "error", err, "note_id", id)
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Note deleted"})
}

// SearchNotes godoc
// @Summary Search notes
// @Description Case-insensitive substring search over titles and content
// @Tags notes
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {array} entities.Note
// @Router /notes/search [get]
func (h *NoteHandler) SearchNotes(c echo.Context) error {
	notes, err := h.noteService.SearchNotes(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, notes)
}

// RenderNote returns the note as an HTML fragment
func (h *NoteHandler) RenderNote(c echo.Context) error {
	id, err := parseID(c, "id", "note")
	if err != nil {
		return err
	}

	html, err := h.noteService.RenderNote(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.HTMLBlob(http.StatusOK, html)
}

// ImportNotes godoc
// @Summary Import markdown files
// @Description Create one note per uploaded .md file. YAML front matter may set title, folder_id and tags.
// @Tags notes
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Markdown files"
// @Param folder_id formData int false "Target folder"
// @Success 201 {object} ports.ImportNotesResponse
// @Failure 400 {object} ErrorResponse
// @Router /notes/import [post]
func (h *NoteHandler) ImportNotes(c echo.Context) error {
	files, err := readUploads(c, "files")
	if err != nil {
		return err
	}
	folderID, err := optionalInt(c, "folder_id")
	if err != nil {
		return err
	}

	notes, err := h.noteService.ImportNotes(c.Request().Context(), files, folderID)
	if err != nil {
		h.logger.Errorw("Import notes failed", "error", err, "files", len(files))
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, ports.ImportNotesResponse{Notes: notes})
}

// ExportNote godoc
// @Summary Export a note
// @Tags notes
// @Produce octet-stream
// @Param id path int true "Note ID"
// @Param format query string false "markdown, pdf or docx" default(markdown)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /notes/{id}/export [get]
func (h *NoteHandler) ExportNote(c echo.Context) error {
	id, err := parseID(c, "id", "note")
	if err != nil {
		return err
	}

	raw := c.QueryParam("format")
	if raw == "" {
		raw = string(ports.ExportMarkdown)
	}
	format, err := ports.ParseExportFormat(raw)
	if err != nil {
		return toHTTPError(err)
	}

	doc, err := h.noteService.ExportNote(c.Request().Context(), id, format)
	if err != nil {
		h.logger.Errorw("Export note failed", "error", err, "note_id", id, "format", format)
		return toHTTPError(err)
	}
	return attachment(c, doc)
}

// GenerateNote godoc
// @Summary Generate notes from documents
// @Description Upload lecture material; the AI backend writes notes which are saved as a new note
// @Tags notes
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Source documents"
// @Param model formData string false "Model name"
// @Param folder_id formData int false "Target folder"
// @Param title formData string false "Note title"
// @Success 201 {object} ports.GenerateNoteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /notes/generate [post]
func (h *NoteHandler) GenerateNote(c echo.Context) error {
	files, err := readUploads(c, "files")
	if err != nil {
		return err
	}
	folderID, err := optionalInt(c, "folder_id")
	if err != nil {
		return err
	}

	resp, err := h.noteService.GenerateNote(c.Request().Context(), ports.GenerateNoteRequest{
		Model:    c.FormValue("model"),
		FolderID: folderID,
		Title:    c.FormValue("title"),
		Files:    files,
	})
	if err != nil {
		h.logger.Errorw("Generate note failed", "error", err, "files", len(files))
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, resp)
}
