package spreadsheetxml

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
)

func wrapWorkbook(rows string) string {
	return `<?xml version="1.0"?>` +
		`<Workbook xmlns="urn:schemas-microsoft-com:office:spreadsheet" xmlns:ss="urn:schemas-microsoft-com:office:spreadsheet">` +
		`<Worksheet ss:Name="Feuil1"><Table>` + rows + `</Table></Worksheet></Workbook>`
}

func labelRow(cells ...string) string {
	var b strings.Builder
	b.WriteString("<Row>")
	for _, c := range cells {
		fmt.Fprintf(&b, "<Cell><Data>%s</Data></Cell>", c)
	}
	b.WriteString("</Row>")
	return b.String()
}

func summaryRow(label, vt1, vt2, peak string) string {
	return fmt.Sprintf(
		`<Row><Cell><Data>%s</Data></Cell>`+
			`<Cell ss:Index="5"><Data>%s</Data></Cell>`+
			`<Cell ss:Index="8"><Data>%s</Data></Cell>`+
			`<Cell ss:Index="11"><Data>%s</Data></Cell></Row>`,
		label, vt1, vt2, peak)
}

func TestParseRejectsEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   \n\t"} {
		_, err := Parse([]byte(input))
		if !errors.Is(err, ErrMalformedInput) {
			t.Fatalf("expected ErrMalformedInput for %q, got %v", input, err)
		}
	}
}

func TestParseRejectsInvalidXML(t *testing.T) {
	_, err := Parse([]byte("<Workbook><Row>not closed"))
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}

func TestParseRejectsDocumentWithoutSections(t *testing.T) {
	doc := wrapWorkbook(labelRow("rien", "à voir"))
	_, err := Parse([]byte(doc))
	if err == nil {
		t.Fatal("expected error for document without recognizable sections")
	}
	if errors.Is(err, ErrMalformedInput) {
		t.Fatalf("section-less document is an extraction failure, not malformed input: %v", err)
	}
}

func TestExpandRowHonorsIndexAndMerge(t *testing.T) {
	row := xmlRow{Cells: []xmlCell{
		{Data: "a"},
		{Index: "5", Data: "b"},
		{Data: "c"},
		{MergeAcross: "2", Data: "d"},
		{Data: "e"},
	}}
	got := expandRow(row)
	want := []string{"a", "", "", "", "b", "c", "d", "", "", "e"}
	if len(got) != len(want) {
		t.Fatalf("expanded row length = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cell %d = %q, want %q (%v)", i, got[i], want[i], got)
		}
	}
}

func TestExpandRowIgnoresMalformedAttributes(t *testing.T) {
	row := xmlRow{Cells: []xmlCell{
		{Index: "abc", Data: "a"},
		{MergeAcross: "-3", Data: "b"},
		{Data: "c"},
	}}
	got := expandRow(row)
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cell %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseLocaleFloatAcceptsBothSeparators(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"8.5", 8.5},
		{"8,5", 8.5},
		{" 120 ", 120},
		{"0,25", 0.25},
	}
	for _, tc := range cases {
		got, err := ParseLocaleFloat(tc.in)
		if err != nil {
			t.Fatalf("ParseLocaleFloat(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseLocaleFloat(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	for _, bad := range []string{"", "  ", "abc", "1,2,3"} {
		if _, err := ParseLocaleFloat(bad); err == nil {
			t.Fatalf("ParseLocaleFloat(%q) expected error", bad)
		}
	}
}

func TestParseElapsedSecondsToleratesMalformedSubfields(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"0:01:30,500", 90.5},
		{"1:00:00,00", 3600},
		{"02:15", 135},
		{"x:10:05,0", 605},
		{"0:xx:05,250", 5.25},
		{"", 0},
	}
	for _, tc := range cases {
		if got := parseElapsedSeconds(tc.in); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("parseElapsedSeconds(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
