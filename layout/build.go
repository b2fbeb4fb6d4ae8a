package layout

import "fmt"

// Build runs the whole pipeline over one ordered block list: estimate every
// block against its lane width, pack the sized blocks onto the page, then
// typeset each text block's words inside its committed bbox. It is a pure
// function of (stylesheet, blocks, options): the input blocks are never
// mutated and the returned document is freshly allocated, so independent
// documents may be built concurrently.
func Build(blocks []*Block, sheet *Stylesheet, opts BuildOptions) (*Document, error) {
	if opts.Measurer == nil {
		return nil, fmt.Errorf("%w: no measurer provided", ErrConfig)
	}
	if sheet == nil {
		return nil, fmt.Errorf("%w: no stylesheet provided", ErrConfig)
	}
	if err := sheet.Validate(); err != nil {
		return nil, err
	}

	p, err := newPacker(sheet, opts.ScaleToFit)
	if err != nil {
		return nil, err
	}

	out := make([]*Block, 0, len(blocks))
	seen := make(map[string]bool, len(blocks))
	for _, in := range blocks {
		if in == nil || in.ID == "" || in.Type == "" {
			return nil, fmt.Errorf("%w: block records need id and type", ErrMalformed)
		}
		if seen[in.ID] {
			return nil, fmt.Errorf("%w: duplicate block id %q", ErrMalformed, in.ID)
		}
		seen[in.ID] = true

		b := &Block{ID: in.ID, Type: in.Type, Content: in.Content, Size: in.Size}

		st, err := sheet.StyleFor(b.Type)
		if err != nil {
			return nil, err
		}
		laneW := p.columnWidth()
		if st.Lane == LaneFull {
			laneW = p.fullW
		}

		if b.IsFigure() {
			size, err := estimateFigure(b, laneW)
			if err != nil {
				return nil, err
			}
			b.Size = size
		} else {
			size, lines, words, err := EstimateText(opts.Measurer, st, sheet.PaddingPt, sheet.DPI, b.Content, laneW)
			if err != nil {
				return nil, err
			}
			b.Size, b.Lines, b.Words = size, lines, words
		}
		out = append(out, b)
	}

	tol := opts.wrapTolerance()
	rule := opts.boundary()
	for _, b := range out {
		scale, err := p.place(b)
		if err != nil {
			return nil, err
		}
		b.Scale = scale
		if b.IsFigure() {
			continue
		}
		st, err := sheet.StyleFor(b.Type)
		if err != nil {
			return nil, err
		}
		if err := typesetWords(opts.Measurer, b, st, sheet.PaddingPt, sheet.DPI, scale, tol, rule); err != nil {
			return nil, err
		}
	}

	page := PageInfo{Width: sheet.PageWidth, Height: sheet.PageHeight, DPI: sheet.DPI}
	if opts.TightenPage && p.maxBottom > 0 && p.maxBottom+sheet.MarginPx < page.Height {
		page.Height = p.maxBottom + sheet.MarginPx
	}
	return &Document{Page: page, Blocks: out}, nil
}

// StyleFor resolves the typographic profile for a block type, falling back
// to the paragraph profile. Missing both is a configuration error.
func (s *Stylesheet) StyleFor(blockType string) (TypeStyle, error) {
	if st, ok := s.Styles[blockType]; ok {
		return st, nil
	}
	if st, ok := s.Styles[TypeParagraph]; ok {
		return st, nil
	}
	return TypeStyle{}, fmt.Errorf("%w: no style for type %q and no %q fallback",
		ErrConfig, blockType, TypeParagraph)
}

// Validate checks the document-wide geometry and the style table. Derived
// geometry (column width, content height) is checked again by the packer.
func (s *Stylesheet) Validate() error {
	if s.PageWidth <= 0 || s.PageHeight <= 0 {
		return fmt.Errorf("%w: page size %dx%d", ErrConfig, s.PageWidth, s.PageHeight)
	}
	if s.DPI <= 0 {
		return fmt.Errorf("%w: resolution %d dpi", ErrConfig, s.DPI)
	}
	if s.MarginPx < 0 || s.GutterPx < 0 || s.VGapPx < 0 || s.PaddingPt < 0 {
		return fmt.Errorf("%w: negative margin/gutter/gap/padding", ErrConfig)
	}
	if _, ok := s.Styles[TypeParagraph]; !ok {
		return fmt.Errorf("%w: stylesheet has no %q profile", ErrConfig, TypeParagraph)
	}
	for name, st := range s.Styles {
		if st.Font == "" {
			return fmt.Errorf("%w: style %q has no font", ErrConfig, name)
		}
		if st.SizePt <= 0 {
			return fmt.Errorf("%w: style %q has size %gpt", ErrConfig, name, st.SizePt)
		}
		if st.LeadingPt < 0 {
			return fmt.Errorf("%w: style %q has negative leading", ErrConfig, name)
		}
		if st.Lane != "" && st.Lane != LaneColumn && st.Lane != LaneFull {
			return fmt.Errorf("%w: style %q has unknown lane %q", ErrConfig, name, st.Lane)
		}
	}
	return nil
}
