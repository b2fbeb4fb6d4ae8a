package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `(?:\d+\.\d+|\d+)(?:pt|px)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[;:,]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	sheetParser = participle.MustBuild[Sheet](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Sheet is the root AST node of a stylesheet file.
type Sheet struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     string         `parser:"Newline* 'sheet' @Ident"`
	Version  string         `parser:"@Ident"`
	Sections []*Section     `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Section is one top-level entry of a sheet: the page geometry, the font
// table, a per-type style, or a bare sheet-wide assignment such as padding.
type Section struct {
	Page    *PageSection  `parser:"  @@"`
	Fonts   *FontsSection `parser:"| @@"`
	Style   *StyleSection `parser:"| @@"`
	Setting *Assignment   `parser:"| @@"`
}

// Kind returns the human-readable section type.
func (s *Section) Kind() string {
	switch {
	case s == nil:
		return "unknown"
	case s.Page != nil:
		return "page"
	case s.Fonts != nil:
		return "fonts"
	case s.Style != nil:
		return "style"
	case s.Setting != nil:
		return "setting"
	default:
		return "unknown"
	}
}

// PageSection carries the page geometry assignments.
type PageSection struct {
	Block *Block `parser:"'page' @@"`
}

// FontsSection groups the font declarations.
type FontsSection struct {
	Fonts []*FontDecl `parser:"'fonts' '{' Newline* ( @@ Newline* )* '}'"`
}

// FontDecl names one font and its source (a file path or builtin: reference).
type FontDecl struct {
	Name  string `parser:"'font' @Ident"`
	Block *Block `parser:"@@"`
}

// StyleSection defines the typographic profile of one block type.
type StyleSection struct {
	Type  string `parser:"'style' @Ident"`
	Block *Block `parser:"@@"`
}

// Block is a delimited list of key: value assignments.
type Block struct {
	Assignments []*Assignment `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Get returns the value for key, or nil when the block has no such key.
func (b *Block) Get(key string) *Value {
	if b == nil {
		return nil
	}
	for _, a := range b.Assignments {
		if a.Key == key {
			return a.Value
		}
	}
	return nil
}

// Assignment uses colon syntax (key: value).
type Assignment struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident"`
	Value *Value         `parser:"':' Newline* @@"`
}

// Value is a scalar property value.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Ident  *string        `parser:"| @Ident"`
}

// Text returns the value as a plain string, whichever form it was written in.
func (v *Value) Text() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Ident != nil:
		return *v.Ident
	default:
		return ""
	}
}

// Float returns a numeric value and its unit suffix ("", "pt" or "px").
func (v *Value) Float() (float64, string, error) {
	if v == nil || v.Number == nil {
		return 0, "", fmt.Errorf("value %q is not a number", v.Text())
	}
	raw := *v.Number
	unit := ""
	for _, u := range []string{"pt", "px"} {
		if strings.HasSuffix(raw, u) {
			unit = u
			raw = strings.TrimSuffix(raw, u)
			break
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, "", fmt.Errorf("bad number %q: %w", *v.Number, err)
	}
	return f, unit, nil
}

// Int returns an integer value, rejecting unit suffixes and fractions.
func (v *Value) Int() (int, error) {
	f, unit, err := v.Float()
	if err != nil {
		return 0, err
	}
	if unit != "" && unit != "px" {
		return 0, fmt.Errorf("value %q: expected a pixel count", v.Text())
	}
	n := int(f)
	if float64(n) != f {
		return 0, fmt.Errorf("value %q: expected an integer", v.Text())
	}
	return n, nil
}

// Points returns a value in points; a bare number is taken as points.
func (v *Value) Points() (float64, error) {
	f, unit, err := v.Float()
	if err != nil {
		return 0, err
	}
	if unit != "" && unit != "pt" {
		return 0, fmt.Errorf("value %q: expected points", v.Text())
	}
	return f, nil
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses a stylesheet from an io.Reader.
func Parse(r io.Reader) (*Sheet, error) {
	return sheetParser.Parse("", r)
}

// ParseString parses a stylesheet from a string.
func ParseString(input string) (*Sheet, error) {
	return sheetParser.ParseString("", input)
}
