package layout

import (
	"fmt"
	"math"
	"strings"
)

// EstimateText computes a text block's pixel bounding-box size, its wrapped
// lines and its sized word tokens for the given maximum width. The wrapper
// sees maxWidthPx minus the horizontal padding, so the returned size matches
// what the word typesetter will later place inside the block's bbox.
//
// Height uses the loose metric flavor for the first line so descenders and
// accents are never truncated; subsequent lines advance by the style leading.
// Empty content yields a minimal 1x1 box with a single empty line.
func EstimateText(m Measurer, st TypeStyle, paddingPt float64, dpi int, content string, maxWidthPx int) (Size, []string, []*Word, error) {
	if content == "" {
		return Size{1, 1}, []string{""}, nil, nil
	}
	if maxWidthPx <= 0 {
		maxWidthPx = 1
	}

	paddingPx := PtToPx(paddingPt, dpi)
	padInt := int(math.Round(paddingPx))

	lines, err := Wrap(m, st.Font, st.SizePt, dpi, content, maxWidthPx-2*padInt)
	if err != nil {
		return Size{}, nil, nil, err
	}

	maxLineW := 0.0
	for _, ln := range lines {
		w, err := m.TextWidth(st.Font, st.SizePt, dpi, ln)
		if err != nil {
			return Size{}, nil, nil, err
		}
		if w > maxLineW {
			maxLineW = w
		}
	}

	vm, err := m.VMetrics(st.Font, st.SizePt, dpi, LooseMetrics)
	if err != nil {
		return Size{}, nil, nil, err
	}
	leadingPx := PtToPx(st.LeadingPt, dpi)

	w := int(math.Round(math.Min(float64(maxWidthPx), maxLineW+2*float64(padInt))))
	h := ceilPx(vm.LineHeight + float64(len(lines)-1)*leadingPx + 2*paddingPx)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	words, err := tokenizeLines(m, st, dpi, lines)
	if err != nil {
		return Size{}, nil, nil, err
	}
	return Size{w, h}, lines, words, nil
}

// tokenizeLines turns wrapped lines into the ordered word-token sequence:
// each line's whitespace-separated words, with a zero-sized NewlineMarker
// token at every boundary between consecutive lines. Token sizes use the
// tight metric flavor so one tall outlier glyph does not inflate every box.
func tokenizeLines(m Measurer, st TypeStyle, dpi int, lines []string) ([]*Word, error) {
	vm, err := m.VMetrics(st.Font, st.SizePt, dpi, TightMetrics)
	if err != nil {
		return nil, err
	}
	tokenH := ceilPx(vm.Ascent + vm.Descent)
	if tokenH < 1 {
		tokenH = 1
	}

	var words []*Word
	for i, line := range lines {
		for _, tok := range strings.Fields(line) {
			w, err := m.TextWidth(st.Font, st.SizePt, dpi, tok)
			if err != nil {
				return nil, err
			}
			tokenW := ceilPx(w)
			if tokenW < 1 {
				tokenW = 1
			}
			words = append(words, &Word{Content: tok, Size: Size{tokenW, tokenH}})
		}
		if i < len(lines)-1 {
			words = append(words, &Word{Content: NewlineMarker})
		}
	}
	return words, nil
}

// estimateFigure scales a figure block's caller-supplied native pixel size so
// its width exactly fills the lane.
func estimateFigure(b *Block, laneWidthPx int) (Size, error) {
	if b.Size.W() <= 0 || b.Size.H() <= 0 {
		return Size{}, fmt.Errorf("%w: figure block %q has no native size", ErrMalformed, b.ID)
	}
	scale := float64(laneWidthPx) / float64(b.Size.W())
	h := int(math.Round(float64(b.Size.H()) * scale))
	if h < 1 {
		h = 1
	}
	return Size{laneWidthPx, h}, nil
}
