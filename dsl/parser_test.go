package dsl

import (
	"strings"
	"testing"
)

const sampleSheet = `
// report stylesheet
sheet report v2 {
	page {
		width: 2480
		height: 3508
		dpi: 300
		margin: 120
	}
	padding: 3pt
	fonts {
		font serif { src: "builtin:lmroman10-regular" }
	}
	/* per-type profiles */
	style paragraph { font: serif size: 10pt leading: 14pt }
	style title { font: serif size: 18pt leading: 22pt lane: full }
}
`

func parseSample(t *testing.T) *Sheet {
	t.Helper()
	sheet, err := ParseString(sampleSheet)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return sheet
}

func TestParseSheetHeader(t *testing.T) {
	sheet := parseSample(t)
	if sheet.Name != "report" || sheet.Version != "v2" {
		t.Fatalf("header %q %q, want report v2", sheet.Name, sheet.Version)
	}
}

func TestParseSectionKinds(t *testing.T) {
	sheet := parseSample(t)
	var kinds []string
	for _, sec := range sheet.Sections {
		kinds = append(kinds, sec.Kind())
	}
	want := "page,setting,fonts,style,style"
	if got := strings.Join(kinds, ","); got != want {
		t.Fatalf("section kinds %q, want %q", got, want)
	}
}

func TestParsePageValues(t *testing.T) {
	sheet := parseSample(t)
	page := sheet.Sections[0].Page
	if page == nil {
		t.Fatalf("first section is not a page section")
	}
	width, err := page.Block.Get("width").Int()
	if err != nil || width != 2480 {
		t.Fatalf("width = %d, %v; want 2480", width, err)
	}
	if v := page.Block.Get("missing"); v != nil {
		t.Fatalf("lookup of an absent key returned %v", v)
	}
}

func TestParsePointValues(t *testing.T) {
	sheet := parseSample(t)
	padding := sheet.Sections[1].Setting
	if padding == nil || padding.Key != "padding" {
		t.Fatalf("second section is not the padding setting")
	}
	pt, err := padding.Value.Points()
	if err != nil || pt != 3 {
		t.Fatalf("padding = %v, %v; want 3pt", pt, err)
	}
	if _, err := padding.Value.Int(); err == nil {
		t.Fatalf("a pt value must not read as a pixel count")
	}
}

func TestParseFontAndStyle(t *testing.T) {
	sheet := parseSample(t)

	fonts := sheet.Sections[2].Fonts
	if len(fonts.Fonts) != 1 || fonts.Fonts[0].Name != "serif" {
		t.Fatalf("fonts section %+v", fonts)
	}
	if src := fonts.Fonts[0].Block.Get("src").Text(); src != "builtin:lmroman10-regular" {
		t.Fatalf("font src %q (string should be unquoted)", src)
	}

	title := sheet.Sections[4].Style
	if title.Type != "title" {
		t.Fatalf("style type %q", title.Type)
	}
	if lane := title.Block.Get("lane").Text(); lane != "full" {
		t.Fatalf("lane %q, want full", lane)
	}
	size, err := title.Block.Get("size").Points()
	if err != nil || size != 18 {
		t.Fatalf("size = %v, %v; want 18", size, err)
	}
}

func TestParseCommentsElided(t *testing.T) {
	text := `sheet s v1 { # trailing comment
	page { width: 10 } // another
	}`
	sheet, err := ParseString(text)
	if err != nil {
		t.Fatalf("parse with comments failed: %v", err)
	}
	if len(sheet.Sections) != 1 || sheet.Sections[0].Kind() != "page" {
		t.Fatalf("sections %+v", sheet.Sections)
	}
}

func TestParseSemicolonSeparators(t *testing.T) {
	sheet, err := ParseString(`sheet s v1 { page { width: 10; height: 20; dpi: 72 } }`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	h, err := sheet.Sections[0].Page.Block.Get("height").Int()
	if err != nil || h != 20 {
		t.Fatalf("height = %d, %v; want 20", h, err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, text := range []string{
		"",
		"sheet {",
		"sheet s v1 { page { width } }",
		"sheet s v1 { style { font: f } }",
	} {
		if _, err := ParseString(text); err == nil {
			t.Fatalf("expected parse error for %q", text)
		}
	}
}

func TestParseReader(t *testing.T) {
	sheet, err := Parse(strings.NewReader(sampleSheet))
	if err != nil {
		t.Fatalf("Parse from reader failed: %v", err)
	}
	if sheet.Name != "report" {
		t.Fatalf("name %q", sheet.Name)
	}
}
