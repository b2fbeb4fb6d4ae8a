package layout

import (
	"fmt"
	"math"
)

// packer is the page layout state machine: two independent column cursors
// plus a full-width lane. Blocks are placed strictly in input order; the
// first block that fits nowhere aborts the document with ErrOverflow.
type packer struct {
	colW  int    // width of one column
	fullW int    // margin-bounded page width
	colX  [2]int // left edge of each column

	topY    int
	bottomY int

	yCol [2]int // next free y per column, filled asynchronously
	col  int    // column the previous columnar block landed in

	vGap       int
	scaleToFit bool

	maxBottom int // lowest placed edge, for TightenPage
}

func newPacker(sheet *Stylesheet, scaleToFit bool) (*packer, error) {
	fullW := sheet.PageWidth - 2*sheet.MarginPx
	if fullW <= 0 {
		return nil, fmt.Errorf("%w: margins %dpx leave no horizontal space on a %dpx page",
			ErrConfig, sheet.MarginPx, sheet.PageWidth)
	}
	usableW := fullW - sheet.GutterPx
	if usableW <= 0 {
		return nil, fmt.Errorf("%w: margin %dpx and gutter %dpx leave no column width",
			ErrConfig, sheet.MarginPx, sheet.GutterPx)
	}
	colW := usableW / 2

	topY := sheet.MarginPx
	bottomY := sheet.PageHeight - sheet.MarginPx
	if bottomY <= topY {
		return nil, fmt.Errorf("%w: margins %dpx leave no vertical space on a %dpx page",
			ErrConfig, sheet.MarginPx, sheet.PageHeight)
	}

	return &packer{
		colW:       colW,
		fullW:      fullW,
		colX:       [2]int{sheet.MarginPx, sheet.MarginPx + colW + sheet.GutterPx},
		topY:       topY,
		bottomY:    bottomY,
		yCol:       [2]int{topY, topY},
		vGap:       sheet.VGapPx,
		scaleToFit: scaleToFit,
	}, nil
}

// columnWidth exposes the derived column width for lane selection.
func (p *packer) columnWidth() int { return p.colW }

// place assigns b an absolute bbox and returns the scale factor applied to
// its size (1 when unscaled). Blocks wider than a column take the full-width
// path; everything else stacks into the columns.
func (p *packer) place(b *Block) (float64, error) {
	w0, h0 := b.Size.W(), b.Size.H()
	if w0 <= 0 || h0 <= 0 {
		return 0, fmt.Errorf("%w: block %q has non-positive size %dx%d", ErrMalformed, b.ID, w0, h0)
	}

	if w0 > p.colW {
		return p.placeFull(b, w0, h0)
	}
	return p.placeColumnar(b, w0, h0)
}

func (p *packer) placeFull(b *Block, w0, h0 int) (float64, error) {
	w, h := p.scaleToWidth(w0, h0, p.fullW)
	if w > p.fullW {
		return 0, fmt.Errorf("%w: block %q is %dpx wide, margin-bounded page is %dpx",
			ErrOverflow, b.ID, w, p.fullW)
	}
	if h > p.bottomY-p.topY {
		return 0, fmt.Errorf("%w: block %q is %dpx tall, page area is %dpx",
			ErrOverflow, b.ID, h, p.bottomY-p.topY)
	}

	// Start below both columns so nothing is straddled.
	y0 := p.yCol[0]
	if p.yCol[1] > y0 {
		y0 = p.yCol[1]
	}
	if y0+h > p.bottomY {
		return 0, fmt.Errorf("%w: no room for full-width block %q (%dpx needed below y=%d)",
			ErrOverflow, b.ID, h, y0)
	}

	p.commit(b, p.colX[0], y0, w, h)
	next := y0 + h + p.vGap
	p.yCol[0] = next
	p.yCol[1] = next
	return scaleOf(w, w0), nil
}

func (p *packer) placeColumnar(b *Block, w0, h0 int) (float64, error) {
	w, h := p.scaleToWidth(w0, h0, p.colW)
	if h > p.bottomY-p.topY {
		return 0, fmt.Errorf("%w: block %q is %dpx tall, column area is %dpx",
			ErrOverflow, b.ID, h, p.bottomY-p.topY)
	}

	// Try the active column first, then the other column at its own cursor:
	// the columns fill asynchronously, so their free space differs.
	use := p.col
	if p.yCol[use]+h > p.bottomY {
		other := 1 - use
		if p.yCol[other]+h > p.bottomY {
			return 0, fmt.Errorf("%w: block %q fits neither column (%dpx needed, free: %dpx / %dpx)",
				ErrOverflow, b.ID, h, p.bottomY-p.yCol[use], p.bottomY-p.yCol[other])
		}
		use = other
	}

	p.commit(b, p.colX[use], p.yCol[use], w, h)
	p.yCol[use] = p.yCol[use] + h + p.vGap
	p.col = use // subsequent blocks keep filling the column just used
	return scaleOf(w, w0), nil
}

func (p *packer) commit(b *Block, x0, y0, w, h int) {
	b.Size = Size{w, h}
	b.BBox = BBox{x0, y0, x0 + w, y0 + h}
	if y0+h > p.maxBottom {
		p.maxBottom = y0 + h
	}
}

// scaleToWidth shrinks (w,h) proportionally to the width limit when the
// scale-to-fit policy is on; otherwise sizes pass through untouched.
func (p *packer) scaleToWidth(w, h, limit int) (int, int) {
	if w <= limit || !p.scaleToFit {
		return w, h
	}
	s := float64(limit) / float64(w)
	nh := int(math.Round(float64(h) * s))
	if nh < 1 {
		nh = 1
	}
	return limit, nh
}

func scaleOf(w, w0 int) float64 {
	if w == w0 {
		return 1
	}
	return float64(w) / float64(w0)
}
