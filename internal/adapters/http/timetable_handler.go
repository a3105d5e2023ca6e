package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/studybuddy/core/internal/adapters/timetableio"
	"github.com/studybuddy/core/internal/application/services"
	"github.com/studybuddy/core/internal/infrastructure/logger"
	"github.com/studybuddy/core/internal/ports"
)

const (
	defaultUpcomingDays = 7
	maxUpcomingDays     = 60
)

// TimetableHandler handles the weekly class timetable
type TimetableHandler struct {
	timetableService *services.TimetableService
	logger           *logger.Logger
}

// NewTimetableHandler creates a new timetable handler
func NewTimetableHandler(timetableService *services.TimetableService, logger *logger.Logger) *TimetableHandler {
	return &TimetableHandler{
		timetableService: timetableService,
		logger:           logger,
	}
}

// ListEntries godoc
// @Summary List timetable entries
// @Description Entries ordered by weekday, then start time
// @Tags timetable
// @Produce json
// @Success 200 {array} entities.TimetableEntry
// @Router /timetable [get]
func (h *TimetableHandler) ListEntries(c echo.Context) error {
	entries, err := h.timetableService.ListEntries(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, entries)
}

// CreateEntry godoc
// @Summary Add a class
// @Tags timetable
// @Accept json
// @Produce json
// @Param request body ports.CreateTimetableEntryRequest true "Class"
// @Success 201 {object} entities.TimetableEntry
// @Failure 400 {object} ErrorResponse
// @Router /timetable [post]
func (h *TimetableHandler) CreateEntry(c echo.Context) error {
	var req ports.CreateTimetableEntryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	entry, err := h.timetableService.CreateEntry(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, entry)
}

func (h *TimetableHandler) GetEntry(c echo.Context) error {
	id, err := parseID(c, "id", "timetable entry")
	if err != nil {
		return err
	}

	entry, err := h.timetableService.GetEntry(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, entry)
}

func (h *TimetableHandler) UpdateEntry(c echo.Context) error {
	id, err := parseID(c, "id", "timetable entry")
	if err != nil {
		return err
	}

	var req ports.UpdateTimetableEntryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	entry, err := h.timetableService.UpdateEntry(c.Request().Context(), id, req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, entry)
}

func (h *TimetableHandler) DeleteEntry(c echo.Context) error {
	id, err := parseID(c, "id", "timetable entry")
	if err != nil {
		return err
	}

	if err := h.timetableService.DeleteEntry(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Timetable entry deleted"})
}

func (h *TimetableHandler) DeleteAll(c echo.Context) error {
	n, err := h.timetableService.DeleteAll(c.Request().Context())
	if err != nil {
		h.logger.Errorw("Clear timetable failed", "error", err)
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, DeleteAllResponse{Message: "Timetable cleared", Deleted: n})
}

// Grid godoc
// @Summary Week grid
// @Description Every weekday × hour slot with the classes active in it. Multi-hour classes appear in each slot they cover.
// @Tags timetable
// @Produce json
// @Success 200 {object} timegrid.Grid
// @Router /timetable/grid [get]
func (h *TimetableHandler) Grid(c echo.Context) error {
	grid, err := h.timetableService.Grid(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, grid)
}

// Import godoc
// @Summary Import a timetable file
// @Description CSV with header day,start_time,end_time,subject,type,location or a YAML list. Any invalid row rejects the whole file.
// @Tags timetable
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or YAML file"
// @Success 201 {object} ports.ImportTimetableResponse
// @Failure 400 {object} ErrorResponse
// @Router /timetable/import [post]
func (h *TimetableHandler) Import(c echo.Context) error {
	files, err := readUploads(c, "file")
	if err != nil {
		return err
	}
	file := files[0]

	n, err := h.timetableService.Import(c.Request().Context(), file.Filename, file.Data)
	if err != nil {
		h.logger.Warnw("Timetable import rejected", "error", err, "file", file.Filename)
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, ports.ImportTimetableResponse{
		Message:        fmt.Sprintf("Imported %d entries", n),
		EntriesCreated: n,
	})
}

// Export writes the timetable as CSV or YAML
func (h *TimetableHandler) Export(c echo.Context) error {
	format := timetableio.Format(c.QueryParam("format"))
	if format == "" {
		format = timetableio.FormatCSV
	}

	contentType := "text/csv; charset=utf-8"
	switch format {
	case timetableio.FormatCSV:
	case timetableio.FormatYAML:
		contentType = "application/yaml"
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Unsupported format")
	}

	var buf bytes.Buffer
	if err := h.timetableService.Export(c.Request().Context(), format, &buf); err != nil {
		return toHTTPError(err)
	}

	return attachment(c, &ports.ExportedDocument{
		Filename:    "timetable." + string(format),
		ContentType: contentType,
		Data:        buf.Bytes(),
	})
}

// ExportICS godoc
// @Summary Export as iCalendar
// @Description One weekly recurring event per class, anchored at the semester start
// @Tags timetable
// @Produce text/calendar
// @Success 200 {file} file
// @Router /timetable/export.ics [get]
func (h *TimetableHandler) ExportICS(c echo.Context) error {
	data, err := h.timetableService.ExportICS(c.Request().Context())
	if err != nil {
		h.logger.Errorw("Calendar export failed", "error", err)
		return toHTTPError(err)
	}

	return attachment(c, &ports.ExportedDocument{
		Filename:    "timetable.ics",
		ContentType: "text/calendar; charset=utf-8",
		Data:        data,
	})
}

// Upcoming godoc
// @Summary Upcoming classes
// @Description Dated class meetings over the next days, sorted by start
// @Tags timetable
// @Produce json
// @Param days query int false "Window length in days" default(7)
// @Success 200 {array} ports.Occurrence
// @Router /timetable/upcoming [get]
func (h *TimetableHandler) Upcoming(c echo.Context) error {
	days := defaultUpcomingDays
	if raw := c.QueryParam("days"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > maxUpcomingDays {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("days must be between 1 and %d", maxUpcomingDays))
		}
		days = v
	}

	occurrences, err := h.timetableService.Upcoming(c.Request().Context(), days)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, occurrences)
}
