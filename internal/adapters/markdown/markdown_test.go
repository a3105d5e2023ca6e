package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render([]byte("# Thermodynamics\n\n**Entropy** rises.\n\n- [x] read\n- [ ] revise\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"))
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, `<h1 id="thermodynamics">Thermodynamics</h1>`)
	assert.Contains(t, html, "<strong>Entropy</strong>")
	assert.Contains(t, html, `type="checkbox"`)
	assert.Contains(t, html, "<table>")
}

func TestRenderer_EscapesRawHTML(t *testing.T) {
	out, err := NewRenderer().Render([]byte("<script>alert(1)</script>\n"))
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>")
}

func TestRenderer_Document(t *testing.T) {
	out, err := NewRenderer().Document("Acids & Bases", []byte("pH"))
	require.NoError(t, err)

	doc := string(out)
	assert.Contains(t, doc, "<title>Acids &amp; Bases</title>")
	assert.Contains(t, doc, "<p>pH</p>")
	assert.Contains(t, doc, "<!DOCTYPE html>")
}

func TestParseNote_FrontMatter(t *testing.T) {
	src := []byte("---\ntitle: Kinematics\nfolder_id: 3\ntags: [physics, motion]\n---\n\nv = u + at\n")

	note, err := ParseNote("notes/ignored.md", src)
	require.NoError(t, err)
	assert.Equal(t, "Kinematics", note.Title)
	require.NotNil(t, note.FolderID)
	assert.Equal(t, 3, *note.FolderID)
	assert.Equal(t, []string{"physics", "motion"}, note.Tags)
	assert.Equal(t, "v = u + at\n", note.Body)
}

func TestParseNote_TitleFromFilename(t *testing.T) {
	note, err := ParseNote("uploads/Organic Chemistry.md", []byte("Alkanes are saturated.\n"))
	require.NoError(t, err)
	assert.Equal(t, "Organic Chemistry", note.Title)
	assert.Nil(t, note.FolderID)
	assert.Equal(t, "Alkanes are saturated.\n", note.Body)
}

func TestParseNote_MalformedFrontMatter(t *testing.T) {
	_, err := ParseNote("bad.md", []byte("---\ntitle: [unclosed\n---\nbody\n"))
	assert.Error(t, err)
}

func TestNewChromePDFRenderer_DefaultTimeout(t *testing.T) {
	assert.Equal(t, defaultRenderTimeout, NewChromePDFRenderer(0).timeout)
}
