package layout

// MetricFlavor selects between the two vertical-metric query modes of a
// Measurer. Both modes are served by one provider so font loading happens
// once.
type MetricFlavor int

const (
	// TightMetrics uses the face's nominal ascent/descent. Used for
	// single-word boxes so rare extreme glyphs do not inflate every word.
	TightMetrics MetricFlavor = iota
	// LooseMetrics may widen ascent/descent to the font's design bounding
	// box. Used for whole-block height estimation so no glyph is truncated.
	LooseMetrics
)

// VMetrics are vertical font metrics converted to pixels at the resolution
// they were queried for.
type VMetrics struct {
	Ascent     float64
	Descent    float64
	LineHeight float64
}

// Measurer provides deterministic, pixel-accurate font measurement. The font
// name must be registered with the provider; unknown identities yield an
// error wrapping the provider's unknown-font sentinel.
type Measurer interface {
	// TextWidth returns the advance width of text in pixels.
	TextWidth(font string, sizePt float64, dpi int, text string) (float64, error)
	// VMetrics returns ascent, descent and line height in pixels.
	VMetrics(font string, sizePt float64, dpi int, flavor MetricFlavor) (VMetrics, error)
}

// BoundaryRule computes the shared y boundary two vertically overlapping
// logical lines are clamped to. upperBottom is the upper line's lowest word
// bottom, lowerTop the lower line's highest word top (upperBottom > lowerTop
// when the rule is consulted).
type BoundaryRule interface {
	Boundary(upperBottom, lowerTop float64) float64
}

// HarmonicRule biases the boundary toward the smaller of the two values,
// trusting a tight line's edge over a line stretched by one tall glyph.
type HarmonicRule struct{}

// Boundary returns the harmonic mean of the two edges.
func (HarmonicRule) Boundary(upperBottom, lowerTop float64) float64 {
	if upperBottom+lowerTop <= 0 {
		return lowerTop
	}
	return 2 * upperBottom * lowerTop / (upperBottom + lowerTop)
}

// MidpointRule splits the overlap evenly.
type MidpointRule struct{}

// Boundary returns the arithmetic mean of the two edges.
func (MidpointRule) Boundary(upperBottom, lowerTop float64) float64 {
	return (upperBottom + lowerTop) / 2
}

// DefaultWrapTolerance is the pixel slack the word typesetter allows before
// wrapping, absorbing rounding drift between estimation and placement.
const DefaultWrapTolerance = 1.0

// BuildOptions configures a Build run.
type BuildOptions struct {
	// Measurer is the injected font metrics provider. Required.
	Measurer Measurer

	// ScaleToFit shrinks over-wide blocks proportionally to the lane width
	// instead of failing. Word boxes and leading scale with the block.
	ScaleToFit bool

	// TightenPage shrinks the reported page height to the lowest placed
	// block bottom plus the bottom margin.
	TightenPage bool

	// Boundary resolves vertical overlap between adjacent logical lines.
	// Nil selects HarmonicRule.
	Boundary BoundaryRule

	// WrapTolerance is the pixel slack before the word typesetter wraps.
	// Zero selects DefaultWrapTolerance.
	WrapTolerance float64
}

func (o BuildOptions) boundary() BoundaryRule {
	if o.Boundary == nil {
		return HarmonicRule{}
	}
	return o.Boundary
}

func (o BuildOptions) wrapTolerance() float64 {
	if o.WrapTolerance <= 0 {
		return DefaultWrapTolerance
	}
	return o.WrapTolerance
}
