package layout

// This file defines the document model shared by the estimator, packer, word
// typesetter, debug JSON and the renderers. All geometry is integer device
// pixels with the origin at the page's top-left corner, x growing right and
// y growing down.

// Well-known block types. Any type other than TypeFigure is treated as text;
// unknown text types fall back to the paragraph style profile.
const (
	TypeTitle     = "title"
	TypeHeader    = "header"
	TypeParagraph = "paragraph"
	TypeFigure    = "figure"
)

// NewlineMarker is the content of the explicit line-break word token. It
// carries a zero size and a bbox collapsed to a point; the word typesetter
// turns it into a line advance.
const NewlineMarker = "\n"

// Lane names selectable per block type in the stylesheet.
const (
	LaneColumn = "column"
	LaneFull   = "full"
)

// Size is a width/height pair in pixels, serialized as [w,h].
type Size [2]int

// W returns the width component.
func (s Size) W() int { return s[0] }

// H returns the height component.
func (s Size) H() int { return s[1] }

// BBox is an axis-aligned bounding box [x0,y0,x1,y1] in pixels.
type BBox [4]int

// W returns x1-x0.
func (b BBox) W() int { return b[2] - b[0] }

// H returns y1-y0.
func (b BBox) H() int { return b[3] - b[1] }

// Intersects reports whether two boxes share interior area. Boxes that only
// touch along an edge do not intersect.
func (b BBox) Intersects(o BBox) bool {
	return b[0] < o[2] && o[0] < b[2] && b[1] < o[3] && o[1] < b[3]
}

// Document is the fully annotated layout result: the page geometry plus every
// block enriched with its absolute bbox, wrapped lines and word boxes. It is
// what a renderer consumes and what the debug JSON serializes.
type Document struct {
	Page   PageInfo `json:"page"`
	Blocks []*Block `json:"blocks"`
}

// PageInfo records the raster page the layout was computed for.
type PageInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	DPI    int `json:"dpi"`
}

// Block is one layout unit. On input only ID, Type and Content are required
// (figure blocks carry their pre-measured native pixel size in Size instead
// of Content text). Build fills Size, BBox, Lines and Words in that order.
type Block struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`

	Size Size `json:"bbox_size"`
	BBox BBox `json:"bbox"`

	// Scale is the shrink factor the packer applied to the estimated size
	// (1 when the block was placed unscaled). Renderers multiply their font
	// size by it so glyphs land inside the scaled word boxes.
	Scale float64 `json:"scale,omitempty"`

	// Text-only annotations.
	Lines []string `json:"lines,omitempty"`
	Words []*Word  `json:"words,omitempty"`
}

// IsFigure reports whether the block carries an external asset instead of
// text content.
func (b *Block) IsFigure() bool { return b.Type == TypeFigure }

// Word is a single placed token: either a literal piece of text or the
// explicit NewlineMarker (zero-sized, bbox collapsed to a point).
type Word struct {
	Content string `json:"content"`
	Size    Size   `json:"bbox_size"`
	BBox    BBox   `json:"bbox"`
}

// IsNewline reports whether the token is the explicit line-break marker.
func (w *Word) IsNewline() bool { return w.Content == NewlineMarker }

// FontResource names a font and where its bytes come from. Src is either a
// file path (resolved by the metrics registry) or a "builtin:<name>" entry
// served from the embedded font set.
type FontResource struct {
	Name string `json:"name"`
	Src  string `json:"src"`
}

// TypeStyle is the typographic profile of one block type.
type TypeStyle struct {
	Font      string  `json:"font"`
	SizePt    float64 `json:"size_pt"`
	LeadingPt float64 `json:"leading_pt"`
	// Lane selects the maximum width blocks of this type are estimated
	// against: LaneColumn (default) or LaneFull.
	Lane string `json:"lane,omitempty"`
}

// Stylesheet carries the document-wide geometry and the per-type typographic
// profiles. Lengths named *Px are pixels at DPI; PaddingPt is points.
type Stylesheet struct {
	PageWidth  int `json:"page_width"`
	PageHeight int `json:"page_height"`
	DPI        int `json:"dpi"`

	MarginPx int `json:"margin"`
	GutterPx int `json:"gutter"`
	VGapPx   int `json:"v_gap"`

	PaddingPt float64 `json:"padding_pt"`

	Fonts  map[string]FontResource `json:"fonts"`
	Styles map[string]TypeStyle    `json:"styles"`
}
