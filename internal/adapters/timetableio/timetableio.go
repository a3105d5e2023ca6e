// Package timetableio reads and writes timetables as CSV and YAML files.
package timetableio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/studybuddy/core/internal/domain/entities"
)

// Format is a timetable file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// Columns is the CSV header, in write order
var Columns = []string{"day", "start_time", "end_time", "subject", "type", "location"}

var requiredColumns = []string{"day", "start_time", "end_time", "subject"}

var ErrEmptyFile = errors.New("timetable file has no entries")

// RowError reports the 1-based data row that failed to parse or validate
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// DetectFormat picks the format from the file extension
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q (expected .csv, .yaml or .yml)", entities.ErrUnsupportedFormat, filepath.Ext(filename))
}

// Parse reads every entry of a timetable file and validates each one.
// The first invalid row fails the whole file.
func Parse(format Format, data []byte) ([]*entities.TimetableEntry, error) {
	var (
		entries []*entities.TimetableEntry
		err     error
	)

	switch format {
	case FormatCSV:
		entries, err = parseCSV(data)
	case FormatYAML:
		entries, err = parseYAML(data)
	default:
		return nil, entities.ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, ErrEmptyFile
	}
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, &RowError{Row: i + 1, Err: err}
		}
	}
	return entries, nil
}

func parseCSV(data []byte) ([]*entities.TimetableEntry, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		index[name] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("csv must contain columns: %s", strings.Join(Columns, ", "))
		}
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var entries []*entities.TimetableEntry
	for row := 1; ; row++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &RowError{Row: row, Err: err}
		}
		if isBlank(record) {
			row--
			continue
		}

		entries = append(entries, &entities.TimetableEntry{
			Day:       entities.Weekday(field(record, "day")),
			StartTime: field(record, "start_time"),
			EndTime:   field(record, "end_time"),
			Subject:   field(record, "subject"),
			Type:      field(record, "type"),
			Location:  field(record, "location"),
		})
	}
	return entries, nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

type yamlEntry struct {
	Day       string `yaml:"day"`
	StartTime string `yaml:"start_time"`
	EndTime   string `yaml:"end_time"`
	Subject   string `yaml:"subject"`
	Type      string `yaml:"type,omitempty"`
	Location  string `yaml:"location,omitempty"`
}

type yamlDocument struct {
	Entries []yamlEntry `yaml:"entries"`
}

// parseYAML accepts either a bare list of entries or a mapping with an
// entries key.
func parseYAML(data []byte) ([]*entities.TimetableEntry, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, ErrEmptyFile
	}

	var items []yamlEntry
	switch root.Content[0].Kind {
	case yaml.SequenceNode:
		if err := root.Content[0].Decode(&items); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case yaml.MappingNode:
		var doc yamlDocument
		if err := root.Content[0].Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		items = doc.Entries
	default:
		return nil, fmt.Errorf("parse yaml: expected a list of entries")
	}

	entries := make([]*entities.TimetableEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, &entities.TimetableEntry{
			Day:       entities.Weekday(strings.TrimSpace(it.Day)),
			StartTime: strings.TrimSpace(it.StartTime),
			EndTime:   strings.TrimSpace(it.EndTime),
			Subject:   strings.TrimSpace(it.Subject),
			Type:      strings.TrimSpace(it.Type),
			Location:  strings.TrimSpace(it.Location),
		})
	}
	return entries, nil
}

// Write serialises entries in the given format
func Write(w io.Writer, format Format, entries []*entities.TimetableEntry) error {
	switch format {
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(Columns); err != nil {
			return err
		}
		for _, e := range entries {
			if err := cw.Write([]string{string(e.Day), e.StartTime, e.EndTime, e.Subject, e.Type, e.Location}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()

	case FormatYAML:
		doc := yamlDocument{Entries: make([]yamlEntry, 0, len(entries))}
		for _, e := range entries {
			doc.Entries = append(doc.Entries, yamlEntry{
				Day:       string(e.Day),
				StartTime: e.StartTime,
				EndTime:   e.EndTime,
				Subject:   e.Subject,
				Type:      e.Type,
				Location:  e.Location,
			})
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return entities.ErrUnsupportedFormat
}
