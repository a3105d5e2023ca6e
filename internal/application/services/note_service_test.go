package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studybuddy/core/internal/adapters/markdown"
	"github.com/studybuddy/core/internal/domain/entities"
	"github.com/studybuddy/core/internal/infrastructure/logger"
	"github.com/studybuddy/core/internal/ports"
)

func newNoteService(t *testing.T, ai *fakeAI, pdf ports.PDFRenderer) (*NoteService, *store) {
	t.Helper()
	st := newStore(t)
	return NewNoteService(st.notes, st.folders, ai, markdown.NewRenderer(), pdf, "gemini-2.5-flash", logger.NewNop()), st
}

func TestNoteService_CRUD(t *testing.T) {
	ctx := context.Background()
	svc, st := newNoteService(t, &fakeAI{}, nil)

	folder := &entities.Folder{Name: "Physics", Color: DefaultFolderColor}
	require.NoError(t, st.folders.Create(ctx, folder))

	_, err := svc.CreateNote(ctx, ports.CreateNoteRequest{Title: "Orphan", FolderID: intPtr(404)})
	assert.ErrorIs(t, err, entities.ErrFolderNotFound)

	note, err := svc.CreateNote(ctx, ports.CreateNoteRequest{Title: "Waves", Content: "λ = v/f", FolderID: intPtr(folder.ID)})
	require.NoError(t, err)

	updated, err := svc.UpdateNote(ctx, note.ID, ports.UpdateNoteRequest{Content: strPtr("**λ** = v/f")})
	require.NoError(t, err)
	assert.Equal(t, "Waves", updated.Title)
	assert.Equal(t, "**λ** = v/f", updated.Content)

	html, err := svc.RenderNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<strong>λ</strong>")

	inFolder, err := svc.ListNotes(ctx, intPtr(folder.ID))
	require.NoError(t, err)
	assert.Len(t, inFolder, 1)

	found, err := svc.SearchNotes(ctx, "WAVES")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = svc.SearchNotes(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, found)

	require.NoError(t, svc.DeleteNote(ctx, note.ID))
	_, err = svc.GetNote(ctx, note.ID)
	assert.ErrorIs(t, err, entities.ErrNoteNotFound)
}

func TestNoteService_ImportNotes(t *testing.T) {
	ctx := context.Background()
	svc, st := newNoteService(t, &fakeAI{}, nil)

	chem := &entities.Folder{Name: "Chemistry", Color: DefaultFolderColor}
	require.NoError(t, st.folders.Create(ctx, chem))
	misc := &entities.Folder{Name: "Misc", Color: DefaultFolderColor}
	require.NoError(t, st.folders.Create(ctx, misc))

	files := []ports.Upload{
		{Filename: "acids.md", Data: []byte("---\ntitle: Acids and Bases\ntags: [chemistry, ph scale]\n---\npH < 7\n")},
		{Filename: "Redox.markdown", Data: []byte("---\nfolder_id: " + itoa(chem.ID) + "\n---\nOIL RIG\n")},
	}

	notes, err := svc.ImportNotes(ctx, files, intPtr(misc.ID))
	require.NoError(t, err)
	require.Len(t, notes, 2)

	assert.Equal(t, "Acids and Bases", notes[0].Title)
	assert.Equal(t, misc.ID, *notes[0].FolderID, "request folder applies when front matter has none")
	assert.Equal(t, "pH < 7\n\n#chemistry #ph-scale\n", notes[0].Content)

	assert.Equal(t, "Redox", notes[1].Title)
	assert.Equal(t, chem.ID, *notes[1].FolderID)
}

func TestNoteService_ImportNotesRejectsWholeBatch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newNoteService(t, &fakeAI{}, nil)

	_, err := svc.ImportNotes(ctx, []ports.Upload{
		{Filename: "ok.md", Data: []byte("fine")},
		{Filename: "slides.pdf", Data: []byte("%PDF")},
	}, nil)
	assert.ErrorIs(t, err, entities.ErrUnsupportedFormat)

	all, err := svc.ListNotes(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = svc.ImportNotes(ctx, nil, nil)
	assert.ErrorIs(t, err, entities.ErrEmptyContent)
}

func TestNoteService_ExportNote(t *testing.T) {
	ctx := context.Background()
	ai := &fakeAI{exportOut: &ports.ExportedDocument{ContentType: "application/pdf", Data: []byte("backend")}}
	svc, _ := newNoteService(t, ai, nil)

	note, err := svc.CreateNote(ctx, ports.CreateNoteRequest{Title: "Optics", Content: "Snell's law"})
	require.NoError(t, err)

	doc, err := svc.ExportNote(ctx, note.ID, ports.ExportMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "Optics.md", doc.Filename)
	assert.Equal(t, "# Optics\n\nSnell's law", string(doc.Data))

	doc, err = svc.ExportNote(ctx, note.ID, ports.ExportPDF)
	require.NoError(t, err)
	assert.Equal(t, "Optics.pdf", doc.Filename)
	assert.Equal(t, []byte("backend"), doc.Data)
	assert.Equal(t, ports.ExportPDF, ai.exportIn.Format)
	assert.Equal(t, "Snell's law", ai.exportIn.Content)

	_, err = svc.ExportNote(ctx, note.ID, ports.ExportFormat("rtf"))
	assert.ErrorIs(t, err, entities.ErrUnsupportedFormat)
}

func TestNoteService_ExportNoteWithLocalPDF(t *testing.T) {
	ctx := context.Background()
	pdf := &fakePDF{}
	ai := &fakeAI{err: errors.New("backend must not be called")}
	svc, _ := newNoteService(t, ai, pdf)

	note, err := svc.CreateNote(ctx, ports.CreateNoteRequest{Title: "Optics", Content: "Snell's law"})
	require.NoError(t, err)

	doc, err := svc.ExportNote(ctx, note.ID, ports.ExportPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, []byte("%PDF-1.7"), doc.Data)
	assert.Contains(t, string(pdf.html), "<title>Optics</title>")
	assert.Contains(t, string(pdf.html), `<h1 id="optics">Optics</h1>`)
}

func TestNoteService_GenerateNote(t *testing.T) {
	ctx := context.Background()
	ai := &fakeAI{generateOut: &ports.GeneratedNotes{Notes: "# Cells\n\nMitochondria", ModelUsed: "gemini-2.5-pro"}}
	svc, _ := newNoteService(t, ai, nil)

	resp, err := svc.GenerateNote(ctx, ports.GenerateNoteRequest{
		Files: []ports.Upload{{Filename: "lecture 3.pdf", Data: []byte("%PDF")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", ai.generateIn.Model, "default model is used")
	assert.Equal(t, "lecture 3", resp.Note.Title)
	assert.Equal(t, "# Cells\n\nMitochondria", resp.Note.Content)
	require.NotNil(t, resp.Note.ModelUsed)
	assert.Equal(t, "gemini-2.5-pro", *resp.Note.ModelUsed)
	assert.GreaterOrEqual(t, resp.ProcessingTime, 0.0)

	stored, err := svc.GetNote(ctx, resp.Note.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.Note.Content, stored.Content)
}

func TestNoteService_GenerateNoteErrors(t *testing.T) {
	ctx := context.Background()

	svc, _ := newNoteService(t, &fakeAI{}, nil)
	_, err := svc.GenerateNote(ctx, ports.GenerateNoteRequest{})
	assert.ErrorIs(t, err, entities.ErrEmptyContent)

	upstream := errors.New("backend down")
	svc, _ = newNoteService(t, &fakeAI{err: upstream}, nil)
	_, err = svc.GenerateNote(ctx, ports.GenerateNoteRequest{Files: []ports.Upload{{Filename: "a.pdf"}}})
	assert.ErrorIs(t, err, upstream)

	svc, _ = newNoteService(t, &fakeAI{generateOut: &ports.GeneratedNotes{Notes: "  "}}, nil)
	_, err = svc.GenerateNote(ctx, ports.GenerateNoteRequest{Files: []ports.Upload{{Filename: "a.pdf"}}})
	assert.ErrorIs(t, err, entities.ErrEmptyContent)
}
