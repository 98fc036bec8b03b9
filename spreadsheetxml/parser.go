// Package spreadsheetxml parses the spreadsheet-flavored XML export written
// by the CPET device into a structured test record. The format is tabular
// SpreadsheetML: rows of cells where a cell may reset the column cursor with
// an explicit 1-based ss:Index and skip columns with ss:MergeAcross, and
// trailing empty cells are simply omitted.
package spreadsheetxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedInput marks input that is empty or fails to parse as
// spreadsheet XML at all.
var ErrMalformedInput = errors.New("fichier XML illisible")

type xmlWorkbook struct {
	XMLName    xml.Name       `xml:"Workbook"`
	Worksheets []xmlWorksheet `xml:"Worksheet"`
}

type xmlWorksheet struct {
	Table xmlTable `xml:"Table"`
}

type xmlTable struct {
	Rows []xmlRow `xml:"Row"`
}

type xmlRow struct {
	Cells []xmlCell `xml:"Cell"`
}

// Index and MergeAcross are declared as strings so a stray non-numeric
// attribute degrades to "attribute absent" instead of failing the decode.
// The tags match the local attribute name, which covers both the ss:
// namespaced form and unprefixed exports.
type xmlCell struct {
	Index       string `xml:"Index,attr"`
	MergeAcross string `xml:"MergeAcross,attr"`
	Data        string `xml:"Data"`
}

// Parse extracts the structured test record from one raw export document.
// Empty or unparsable input fails with ErrMalformedInput; errors while
// walking the rows are wrapped with context.
func Parse(data []byte) (*ParsedTest, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("%w: document vide", ErrMalformedInput)
	}

	var wb xmlWorkbook
	if err := xml.Unmarshal(data, &wb); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	rows := make([][]string, 0, 256)
	for _, ws := range wb.Worksheets {
		for _, r := range ws.Table.Rows {
			rows = append(rows, expandRow(r))
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: aucune ligne de données", ErrMalformedInput)
	}

	parsed, err := extract(rows)
	if err != nil {
		return nil, fmt.Errorf("lecture des lignes: %w", err)
	}
	return parsed, nil
}

// expandRow folds one row's cells into a sparse positional slice, honoring
// explicit column resets and advancing past merged spans.
func expandRow(r xmlRow) []string {
	var cells []string
	cursor := 0
	for _, c := range r.Cells {
		if idx, ok := parsePositiveInt(c.Index); ok {
			cursor = idx - 1
		}
		setCell(&cells, cursor, strings.TrimSpace(c.Data))
		cursor++
		if span, ok := parsePositiveInt(c.MergeAcross); ok {
			cursor += span
		}
	}
	return cells
}

func setCell(cells *[]string, idx int, v string) {
	if idx < 0 {
		return
	}
	for len(*cells) <= idx {
		*cells = append(*cells, "")
	}
	(*cells)[idx] = v
}

func parsePositiveInt(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}
