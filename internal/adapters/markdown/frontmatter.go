package markdown

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
)

// ImportedNote is a markdown file split into its metadata and body
type ImportedNote struct {
	Title    string
	FolderID *int
	Tags     []string
	Body     string
}

type noteFrontMatter struct {
	Title    string   `yaml:"title" toml:"title" json:"title"`
	FolderID *int     `yaml:"folder_id" toml:"folder_id" json:"folder_id"`
	Tags     []string `yaml:"tags" toml:"tags" json:"tags"`
}

// ParseNote reads a markdown file. The title falls back to the file name
// without its extension when the front matter has none.
func ParseNote(filename string, source []byte) (*ImportedNote, error) {
	var meta noteFrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		base := filepath.Base(filename)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return &ImportedNote{
		Title:    title,
		FolderID: meta.FolderID,
		Tags:     meta.Tags,
		Body:     strings.TrimLeft(string(body), "\r\n"),
	}, nil
}
