// Package csvio reads, validates and writes course tables in the fixed
// six-column CSV schema.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Table is raw tabular input: a header and the data rows below it.
type Table struct {
	Header []string
	Rows   [][]string
}

// Read parses UTF-8 CSV with or without a leading byte order mark. Short
// rows are padded with empty cells so validation can report them; rows with
// more cells than the header, invalid UTF-8 and broken quoting fail with
// *IngestionError.
func Read(r io.Reader) (Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Table{}, &IngestionError{Err: err}
	}
	if !utf8.Valid(raw) {
		return Table{}, &IngestionError{Err: errors.New("input is not valid UTF-8")}
	}
	text, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), raw)
	if err != nil {
		return Table{}, &IngestionError{Err: err}
	}

	cr := csv.NewReader(strings.NewReader(string(text)))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Table{}, &IngestionError{Err: errors.New("no columns to parse")}
	}
	if err != nil {
		return Table{}, &IngestionError{Err: err}
	}
	if len(header) == 1 && strings.ContainsAny(header[0], ";\t|") {
		return Table{}, &IngestionError{Err: fmt.Errorf("header %q is not comma-separated", header[0])}
	}

	t := Table{Header: header, Rows: [][]string{}}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, &IngestionError{Err: err}
		}
		if len(rec) > len(header) {
			return Table{}, &IngestionError{
				Err: fmt.Errorf("record %d: expected %d fields, saw %d", line, len(header), len(rec)),
			}
		}
		for len(rec) < len(header) {
			rec = append(rec, "")
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}
