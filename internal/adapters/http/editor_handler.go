package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studybuddy/core/internal/domain/editor"
	"github.com/studybuddy/core/internal/ports"
)

// EditorHandler applies markdown toolbar actions to a note buffer
type EditorHandler struct{}

// NewEditorHandler creates a new editor handler
func NewEditorHandler() *EditorHandler {
	return &EditorHandler{}
}

// ApplyMarkdown godoc
// @Summary Insert markdown syntax
// @Description Wrap or prefix the selection with the markdown for tag. Offsets count Unicode code points. Unknown tags leave the content unchanged.
// @Tags editor
// @Accept json
// @Produce json
// @Param request body ports.ApplyMarkdownRequest true "Buffer, selection and tag"
// @Success 200 {object} ports.ApplyMarkdownResponse
// @Failure 400 {object} ErrorResponse
// @Router /editor/apply [post]
func (h *EditorHandler) ApplyMarkdown(c echo.Context) error {
	var req ports.ApplyMarkdownRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	state := editor.TextEditState{
		Content:        req.Content,
		SelectionStart: req.SelectionStart,
		SelectionEnd:   req.SelectionEnd,
	}
	if !editor.Valid(state) {
		return echo.NewHTTPError(http.StatusBadRequest, "Selection is outside the content")
	}

	tag, _ := editor.ParseTag(req.Tag)
	edit := editor.Apply(state, tag)

	return c.JSON(http.StatusOK, ports.ApplyMarkdownResponse{Content: edit.Content, Caret: edit.Caret})
}

// ListTags returns the supported tags in toolbar order
func (h *EditorHandler) ListTags(c echo.Context) error {
	return c.JSON(http.StatusOK, editor.Tags())
}
