package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studybuddy/core/internal/application/services"
	"github.com/studybuddy/core/internal/infrastructure/logger"
	"github.com/studybuddy/core/internal/ports"
)

// FolderHandler handles folder requests
type FolderHandler struct {
	folderService *services.FolderService
	logger        *logger.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService *services.FolderService, logger *logger.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		logger:        logger,
	}
}

// ListFolders godoc
// @Summary List folders
// @Description List every folder with its note count
// @Tags folders
// @Produce json
// @Success 200 {array} entities.Folder
// @Router /folders [get]
func (h *FolderHandler) ListFolders(c echo.Context) error {
	folders, err := h.folderService.ListFolders(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, folders)
}

// CreateFolder godoc
// @Summary Create a folder
// @Tags folders
// @Accept json
// @Produce json
// @Param request body ports.CreateFolderRequest true "Folder data"
// @Success 201 {object} entities.Folder
// @Failure 400 {object} ErrorResponse
// @Router /folders [post]
func (h *FolderHandler) CreateFolder(c echo.Context) error {
	var req ports.CreateFolderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	folder, err := h.folderService.CreateFolder(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Create folder failed", "error", err)
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, folder)
}

func (h *FolderHandler) GetFolder(c echo.Context) error {
	id, err := parseID(c, "id", "folder")
	if err != nil {
		return err
	}

	folder, err := h.folderService.GetFolder(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, folder)
}

func (h *FolderHandler) UpdateFolder(c echo.Context) error {
	id, err := parseID(c, "id", "folder")
	if err != nil {
		return err
	}

	var req ports.UpdateFolderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	folder, err := h.folderService.UpdateFolder(c.Request().Context(), id, req)
	if err != nil {
		h.logger.Errorw("Update folder failed", "error", err, "folder_id", id)
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, folder)
}

// DeleteFolder godoc
// @Summary Delete a folder
// @Description Delete a folder together with all of its notes
// @Tags folders
// @Param id path int true "Folder ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /folders/{id} [delete]
func (h *FolderHandler) DeleteFolder(c echo.Context) error {
	id, err := parseID(c, "id", "folder")
	if err != nil {
		return err
	}

	if err := h.folderService.DeleteFolder(c.Request().Context(), id); err != nil {
		h.logger.Errorw("Delete folder failed", "error", err, "folder_id", id)
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Folder deleted"})
}
