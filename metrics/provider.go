package metrics

import (
	"github.com/treyder38/folio/layout"
)

// Provider answers the layout engine's measurement queries from a Registry.
// Results are pure functions of (font, size, dpi, input): canvas face metrics
// come back in millimetres and are converted to pixels at the requested
// resolution, so equal queries always yield equal answers.
type Provider struct {
	reg *Registry
}

var _ layout.Measurer = (*Provider)(nil)

// NewProvider wraps a registry as a layout.Measurer.
func NewProvider(reg *Registry) *Provider {
	return &Provider{reg: reg}
}

// TextWidth returns the advance width of text in pixels.
func (p *Provider) TextWidth(font string, sizePt float64, dpi int, text string) (float64, error) {
	face, err := p.reg.Face(font, sizePt)
	if err != nil {
		return 0, err
	}
	return layout.MmToPx(face.TextWidth(text), dpi), nil
}

// VMetrics returns the face's vertical metrics in pixels. The tight flavor
// uses the hhea ascent/descent and line height; the loose flavor uses the
// font's design bounding box, which covers every glyph the font can draw and
// so never truncates tall accents or deep descenders.
func (p *Provider) VMetrics(font string, sizePt float64, dpi int, flavor layout.MetricFlavor) (layout.VMetrics, error) {
	face, err := p.reg.Face(font, sizePt)
	if err != nil {
		return layout.VMetrics{}, err
	}
	m := face.Metrics()

	var ascent, descent, lineHeight float64
	switch flavor {
	case layout.LooseMetrics:
		ascent = m.YMax
		descent = -m.YMin
		lineHeight = m.YMax - m.YMin
	default:
		ascent = m.Ascent
		descent = m.Descent
		lineHeight = m.LineHeight
	}

	return layout.VMetrics{
		Ascent:     layout.MmToPx(ascent, dpi),
		Descent:    layout.MmToPx(descent, dpi),
		LineHeight: layout.MmToPx(lineHeight, dpi),
	}, nil
}
