package layout

import "math"

// typesetWords flows b's word tokens through its committed bbox: greedy
// left-to-right placement with line wrapping, then the overlap-resolver pass.
// scale carries the packer's shrink factor so word boxes, the inter-word
// space and the leading stay proportional to the scaled block.
func typesetWords(m Measurer, b *Block, st TypeStyle, paddingPt float64, dpi int, scale, tol float64, rule BoundaryRule) error {
	if len(b.Words) == 0 {
		return nil
	}

	spaceW, err := m.TextWidth(st.Font, st.SizePt, dpi, " ")
	if err != nil {
		return err
	}
	spacePx := spaceW * scale

	leadingPx := PtToPx(st.LeadingPt, dpi) * scale

	vm, err := m.VMetrics(st.Font, st.SizePt, dpi, TightMetrics)
	if err != nil {
		return err
	}
	fontH := math.Max(1e-6, vm.Ascent+vm.Descent) * scale

	padPx := PtToPx(paddingPt, dpi) * scale
	left := float64(b.BBox[0]) + padPx
	maxX := float64(b.BBox[2])

	x := left
	y := float64(b.BBox[1]) + padPx
	lineH := 0.0

	for i, wd := range b.Words {
		if wd.IsNewline() {
			xi := int(math.Round(x))
			yi := int(math.Round(y))
			wd.Size = Size{0, 0}
			wd.BBox = BBox{xi, yi, xi, yi}

			step := leadingPx
			if step <= 0 {
				step = math.Max(1, math.Max(fontH, lineH))
			}
			y += step
			x = left
			lineH = 0
			continue
		}

		if wd.Size.W() <= 0 || wd.Size.H() <= 0 {
			// The estimator always sizes its tokens; skip anything else.
			continue
		}
		ww := math.Max(1, float64(wd.Size.W())*scale)
		wh := math.Max(1, float64(wd.Size.H())*scale)

		if x != left && x+ww > maxX+tol {
			step := leadingPx
			if step <= 0 {
				step = math.Max(1, lineH)
			}
			y += step
			x = left
			lineH = 0
		}

		x0 := int(math.Floor(x))
		y0 := int(math.Floor(y))
		x1 := int(math.Ceil(x + ww))
		y1 := int(math.Ceil(y + wh))
		wd.BBox = BBox{x0, y0, x1, y1}
		wd.Size = Size{maxInt(1, x1-x0), maxInt(1, y1-y0)}

		// One inter-word space after every word except before an explicit
		// newline and at the end of the block.
		if i < len(b.Words)-1 && !b.Words[i+1].IsNewline() {
			x = x + ww + spacePx
		} else {
			x = x + ww
		}
		if wh > lineH {
			lineH = wh
		}
	}

	resolveOverlap(b.Words, rule)
	return nil
}

// resolveOverlap pushes vertically overlapping adjacent logical lines apart
// along a shared boundary. Word content and horizontal positions are already
// committed; only top/bottom edges move, and an edge never crosses the
// opposite edge of its own box.
func resolveOverlap(words []*Word, rule BoundaryRule) {
	lines := logicalLines(words)
	for i := 0; i+1 < len(lines); i++ {
		upper, lower := lines[i], lines[i+1]

		upperBottom := math.Inf(-1)
		for _, w := range upper {
			if v := float64(w.BBox[3]); v > upperBottom {
				upperBottom = v
			}
		}
		lowerTop := math.Inf(1)
		for _, w := range lower {
			if v := float64(w.BBox[1]); v < lowerTop {
				lowerTop = v
			}
		}
		if upperBottom <= lowerTop {
			continue
		}

		boundary := rule.Boundary(upperBottom, lowerTop)
		upBound := int(math.Floor(boundary))
		loBound := int(math.Ceil(boundary))

		for _, w := range upper {
			if w.BBox[3] > upBound {
				w.BBox[3] = maxInt(upBound, w.BBox[1])
				w.Size = Size{w.Size.W(), w.BBox[3] - w.BBox[1]}
			}
		}
		for _, w := range lower {
			if w.BBox[1] < loBound {
				w.BBox[1] = minInt(loBound, w.BBox[3])
				w.Size = Size{w.Size.W(), w.BBox[3] - w.BBox[1]}
			}
		}
	}
}

// logicalLines splits the token sequence into runs delimited by newline
// markers; markers themselves and empty runs are dropped.
func logicalLines(words []*Word) [][]*Word {
	var lines [][]*Word
	var cur []*Word
	for _, w := range words {
		if w.IsNewline() {
			if len(cur) > 0 {
				lines = append(lines, cur)
				cur = nil
			}
			continue
		}
		if w.BBox == (BBox{}) {
			continue // skipped token, never placed
		}
		cur = append(cur, w)
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
