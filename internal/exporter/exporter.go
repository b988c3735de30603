// Package exporter renders a schedule in the supported output formats.
package exporter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Tiliavir/campus-timetable/internal/csvio"
	"github.com/Tiliavir/campus-timetable/internal/model"
)

// Format is an export format name.
type Format string

const (
	CSV      Format = "csv"
	JSON     Format = "json"
	Markdown Format = "md"
	ICS      Format = "ics"
)

// Formats lists the supported formats.
var Formats = []Format{CSV, JSON, Markdown, ICS}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q (use csv, json, md or ics)", s)
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Write renders entries in format f. week selects the dates of ICS events
// and is ignored by the other formats.
func Write(w io.Writer, f Format, entries []model.Entry, week time.Time) error {
	switch f {
	case CSV:
		return csvio.Write(w, entries)
	case JSON:
		return WriteJSON(w, entries)
	case Markdown:
		return WriteMarkdown(w, entries)
	case ICS:
		return GenerateICS(w, entries, week)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

// WriteJSON writes entries as an indented JSON array.
func WriteJSON(w io.Writer, entries []model.Entry) error {
	if entries == nil {
		entries = []model.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// WriteMarkdown writes entries as a Markdown table with the CSV column names.
func WriteMarkdown(w io.Writer, entries []model.Entry) error {
	var b strings.Builder
	b.WriteString("| " + strings.Join(csvio.Columns, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(csvio.Columns)) + "\n")
	for _, e := range entries {
		cells := []string{
			e.Name, e.Weekday.String(), e.Start.String(), e.End.String(), e.Room, e.Instructor,
		}
		for i, c := range cells {
			cells[i] = mdEscape(c)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// mdEscape keeps a value inside its table cell.
func mdEscape(s string) string {
	s = strings.ReplaceAll(s, `|`, `\|`)
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
