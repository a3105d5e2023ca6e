package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studybuddy/core/internal/adapters/aibackend"
	"github.com/studybuddy/core/internal/adapters/timetableio"
	"github.com/studybuddy/core/internal/domain/entities"
	"github.com/studybuddy/core/internal/ports"
)

func TestToHTTPError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"note not found", fmt.Errorf("failed to get note: %w", entities.ErrNoteNotFound), http.StatusNotFound, "Note not found"},
		{"timetable not found", entities.ErrTimetableNotFound, http.StatusNotFound, "Timetable entry not found"},
		{"row error", fmt.Errorf("failed to import: %w", &timetableio.RowError{Row: 3, Err: entities.ErrInvalidWeekday}), http.StatusBadRequest, "row 3: invalid weekday"},
		{"time range", entities.ErrInvalidTimeRange, http.StatusBadRequest, "start time must be before end time"},
		{"empty file", timetableio.ErrEmptyFile, http.StatusBadRequest, "timetable file has no entries"},
		{"upstream", fmt.Errorf("failed to chat: %w", &aibackend.Error{StatusCode: 500, Detail: "model overloaded"}), http.StatusBadGateway, "model overloaded"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var he *echo.HTTPError
			require.True(t, errors.As(toHTTPError(tt.err), &he))
			assert.Equal(t, tt.wantCode, he.Code)
			assert.Equal(t, tt.wantMsg, he.Message)
		})
	}
}

func TestToHTTPError_KeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	var he *echo.HTTPError
	require.True(t, errors.As(toHTTPError(cause), &he))
	assert.Equal(t, cause, he.Internal)
}

func TestParseID(t *testing.T) {
	e := echo.New()

	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"42", 42, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(tt.raw)

		id, err := parseID(c, "id", "note")
		if tt.wantErr {
			var he *echo.HTTPError
			require.True(t, errors.As(err, &he), tt.raw)
			assert.Equal(t, "Invalid note ID", he.Message)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, id)
	}
}

func TestOptionalQueryParams(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/?completed=true&folder_id=7&pinned=", nil), httptest.NewRecorder())

	completed, err := optionalBool(c, "completed")
	require.NoError(t, err)
	require.NotNil(t, completed)
	assert.True(t, *completed)

	pinned, err := optionalBool(c, "pinned")
	require.NoError(t, err)
	assert.Nil(t, pinned)

	folderID, err := optionalInt(c, "folder_id")
	require.NoError(t, err)
	require.NotNil(t, folderID)
	assert.Equal(t, 7, *folderID)

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/?folder_id=x", nil), httptest.NewRecorder())
	_, err = optionalInt(c, "folder_id")
	assert.Error(t, err)
}

func TestAttachment(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, attachment(c, &ports.ExportedDocument{Filename: "Lab report.docx", Data: []byte("PK")}))
	assert.Equal(t, `attachment; filename="Lab report.docx"`, rec.Header().Get(echo.HeaderContentDisposition))
	assert.Equal(t, echo.MIMEOctetStream, rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "PK", rec.Body.String())
}
