package layout

import (
	"fmt"

	"github.com/treyder38/folio/dsl"
)

// StylesheetFromDSL lowers a parsed sheet AST into the engine's stylesheet
// and validates it. Page width, height and dpi are required; margin, gutter,
// v-gap and padding default to zero when the sheet omits them.
func StylesheetFromDSL(sheet *dsl.Sheet) (*Stylesheet, error) {
	if sheet == nil {
		return nil, fmt.Errorf("%w: empty sheet", ErrConfig)
	}

	s := &Stylesheet{
		Fonts:  make(map[string]FontResource),
		Styles: make(map[string]TypeStyle),
	}

	var pageSeen bool
	for _, sec := range sheet.Sections {
		switch {
		case sec.Page != nil:
			if pageSeen {
				return nil, fmt.Errorf("%w: duplicate page section", ErrConfig)
			}
			pageSeen = true
			if err := lowerPage(sec.Page.Block, s); err != nil {
				return nil, err
			}

		case sec.Fonts != nil:
			for _, fd := range sec.Fonts.Fonts {
				if _, dup := s.Fonts[fd.Name]; dup {
					return nil, fmt.Errorf("%w: duplicate font %q", ErrConfig, fd.Name)
				}
				src := fd.Block.Get("src").Text()
				if src == "" {
					return nil, fmt.Errorf("%w: font %q has no src", ErrConfig, fd.Name)
				}
				s.Fonts[fd.Name] = FontResource{Name: fd.Name, Src: src}
			}

		case sec.Style != nil:
			if _, dup := s.Styles[sec.Style.Type]; dup {
				return nil, fmt.Errorf("%w: duplicate style %q", ErrConfig, sec.Style.Type)
			}
			st, err := lowerStyle(sec.Style)
			if err != nil {
				return nil, err
			}
			s.Styles[sec.Style.Type] = st

		case sec.Setting != nil:
			switch sec.Setting.Key {
			case "padding":
				pt, err := sec.Setting.Value.Points()
				if err != nil {
					return nil, fmt.Errorf("%w: padding: %v", ErrConfig, err)
				}
				s.PaddingPt = pt
			default:
				return nil, fmt.Errorf("%w: unknown sheet setting %q", ErrConfig, sec.Setting.Key)
			}
		}
	}
	if !pageSeen {
		return nil, fmt.Errorf("%w: sheet has no page section", ErrConfig)
	}

	for name, st := range s.Styles {
		if _, ok := s.Fonts[st.Font]; !ok {
			return nil, fmt.Errorf("%w: style %q uses undeclared font %q", ErrConfig, name, st.Font)
		}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func lowerPage(b *dsl.Block, s *Stylesheet) error {
	required := func(key string, dst *int) error {
		v := b.Get(key)
		if v == nil {
			return fmt.Errorf("%w: page section is missing %q", ErrConfig, key)
		}
		n, err := v.Int()
		if err != nil {
			return fmt.Errorf("%w: page %s: %v", ErrConfig, key, err)
		}
		*dst = n
		return nil
	}
	optional := func(key string, dst *int) error {
		v := b.Get(key)
		if v == nil {
			return nil
		}
		n, err := v.Int()
		if err != nil {
			return fmt.Errorf("%w: page %s: %v", ErrConfig, key, err)
		}
		*dst = n
		return nil
	}

	if err := required("width", &s.PageWidth); err != nil {
		return err
	}
	if err := required("height", &s.PageHeight); err != nil {
		return err
	}
	if err := required("dpi", &s.DPI); err != nil {
		return err
	}
	if err := optional("margin", &s.MarginPx); err != nil {
		return err
	}
	if err := optional("gutter", &s.GutterPx); err != nil {
		return err
	}
	return optional("v-gap", &s.VGapPx)
}

func lowerStyle(sec *dsl.StyleSection) (TypeStyle, error) {
	b := sec.Block
	st := TypeStyle{Font: b.Get("font").Text()}
	if st.Font == "" {
		return st, fmt.Errorf("%w: style %q has no font", ErrConfig, sec.Type)
	}

	v := b.Get("size")
	if v == nil {
		return st, fmt.Errorf("%w: style %q has no size", ErrConfig, sec.Type)
	}
	size, err := v.Points()
	if err != nil {
		return st, fmt.Errorf("%w: style %q size: %v", ErrConfig, sec.Type, err)
	}
	st.SizePt = size

	if v := b.Get("leading"); v != nil {
		leading, err := v.Points()
		if err != nil {
			return st, fmt.Errorf("%w: style %q leading: %v", ErrConfig, sec.Type, err)
		}
		st.LeadingPt = leading
	}

	if lane := b.Get("lane").Text(); lane != "" {
		st.Lane = lane
	}
	return st, nil
}
