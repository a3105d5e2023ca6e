package http

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/studybuddy/core/internal/adapters/aibackend"
	"github.com/studybuddy/core/internal/adapters/timetableio"
	"github.com/studybuddy/core/internal/domain/entities"
	"github.com/studybuddy/core/internal/ports"
)

// Request/Response types
type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type DeleteAllResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

var notFoundErrors = []error{
	entities.ErrFolderNotFound,
	entities.ErrNoteNotFound,
	entities.ErrTodoNotFound,
	entities.ErrSubtaskNotFound,
	entities.ErrTimetableNotFound,
	entities.ErrConversationNotFound,
}

var badRequestErrors = []error{
	entities.ErrInvalidWeekday,
	entities.ErrInvalidTimeFormat,
	entities.ErrInvalidTimeRange,
	entities.ErrUnsupportedFormat,
	entities.ErrEmptyContent,
	entities.ErrNoVisionModel,
	timetableio.ErrEmptyFile,
}

// toHTTPError maps service errors onto HTTP status codes. Anything
// unrecognised becomes a 500 with the cause kept as the internal error.
func toHTTPError(err error) error {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return echo.NewHTTPError(http.StatusNotFound, capitalize(target.Error()))
		}
	}

	var rowErr *timetableio.RowError
	if errors.As(err, &rowErr) {
		return echo.NewHTTPError(http.StatusBadRequest, rowErr.Error())
	}

	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	var upstream *aibackend.Error
	if errors.As(err, &upstream) {
		return echo.NewHTTPError(http.StatusBadGateway, upstream.Detail).SetInternal(err)
	}

	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func parseID(c echo.Context, param, label string) (int, error) {
	id, err := strconv.Atoi(c.Param(param))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+label+" ID")
	}
	return id, nil
}

// optionalInt reads a positive integer from the query string or form
func optionalInt(c echo.Context, name string) (*int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		raw = c.FormValue(name)
	}
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return &v, nil
}

func optionalBool(c echo.Context, name string) (*bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return &v, nil
}

// readUploads loads every file sent under field
func readUploads(c echo.Context, field string) ([]ports.Upload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Expected multipart form data")
	}

	headers := form.File[field]
	if len(headers) == 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "No files uploaded")
	}

	uploads := make([]ports.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "Failed to read "+fh.Filename)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "Failed to read "+fh.Filename)
		}
		uploads = append(uploads, ports.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Data:        data,
		})
	}
	return uploads, nil
}

// attachment streams a document as a download
func attachment(c echo.Context, doc *ports.ExportedDocument) error {
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": doc.Filename})
	if disposition == "" {
		disposition = "attachment"
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, disposition)

	contentType := doc.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return c.Blob(http.StatusOK, contentType, doc.Data)
}
