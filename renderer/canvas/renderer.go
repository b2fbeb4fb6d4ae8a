// Package canvasrenderer draws layout documents via github.com/tdewolff/canvas,
// producing PDFs and rasterized PNGs. It shares the metrics registry with the
// measurement provider, so the glyphs it draws have exactly the geometry the
// layout was computed from.
package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/treyder38/folio/layout"
	"github.com/treyder38/folio/metrics"
	"github.com/treyder38/folio/renderer"
)

const frameStrokeWidth = 0.2 // mm

// Renderer draws a layout document with the canvas backend. Coordinates on
// the document are device pixels; canvas draws in millimetres, so every
// position goes through the px→mm conversion at the document's resolution.
type Renderer struct {
	reg     *metrics.Registry
	sheet   *layout.Stylesheet
	baseDir string // root for resolving figure asset paths
	opts    renderer.Options
}

var _ renderer.Renderer = (*Renderer)(nil)

// New creates a renderer over the same registry the layout was measured with.
func New(reg *metrics.Registry, sheet *layout.Stylesheet, baseDir string, opts renderer.Options) *Renderer {
	return &Renderer{reg: reg, sheet: sheet, baseDir: baseDir, opts: opts}
}

// Render produces a single-page PDF.
func (r *Renderer) Render(doc *layout.Document) ([]byte, error) {
	c, err := r.draw(doc)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, c.W, c.H, nil)
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPNG rasterizes the page at the document's resolution, so the output
// image is exactly Page.Width x Page.Height pixels.
func (r *Renderer) RenderPNG(doc *layout.Document) ([]byte, error) {
	c, err := r.draw(doc)
	if err != nil {
		return nil, err
	}

	img := rasterizer.Draw(c, canvas.DPI(float64(doc.Page.DPI)), canvas.DefaultColorSpace)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) draw(doc *layout.Document) (*canvas.Canvas, error) {
	if doc == nil {
		return nil, fmt.Errorf("nothing to render")
	}
	dpi := doc.Page.DPI
	wMm := layout.PxToMm(float64(doc.Page.Width), dpi)
	hMm := layout.PxToMm(float64(doc.Page.Height), dpi)

	c := canvas.New(wMm, hMm)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // top-left origin, like the layout

	ctx.SetFillColor(canvas.White)
	ctx.DrawPath(0, 0, canvas.Rectangle(wMm, hMm))

	for _, b := range doc.Blocks {
		if b.IsFigure() {
			if err := r.drawFigure(ctx, b, dpi); err != nil {
				return nil, err
			}
		} else if err := r.drawText(ctx, b, dpi); err != nil {
			return nil, err
		}

		if r.opts.DrawFrames {
			strokeBox(ctx, b.BBox, dpi, canvas.Red)
		}
	}
	return c, nil
}

// drawText draws every placed word at its committed bbox. The baseline sits
// at the word's top edge plus the face ascent; glyphs reaching below the box
// (descenders after an overlap clamp) are accepted, matching the geometry
// contract that boxes are the ground truth and ink follows them.
func (r *Renderer) drawText(ctx *canvas.Context, b *layout.Block, dpi int) error {
	st, err := r.sheet.StyleFor(b.Type)
	if err != nil {
		return err
	}
	sizePt := st.SizePt
	if b.Scale > 0 {
		sizePt *= b.Scale
	}
	face, err := r.reg.Face(st.Font, sizePt)
	if err != nil {
		return err
	}
	ascent := face.Metrics().Ascent

	for _, wd := range b.Words {
		if wd.IsNewline() || wd.Content == "" {
			continue
		}
		x := layout.PxToMm(float64(wd.BBox[0]), dpi)
		y := layout.PxToMm(float64(wd.BBox[1]), dpi)
		line := canvas.NewTextLine(face, wd.Content, canvas.Left)
		ctx.DrawText(x, y+ascent, line)

		if r.opts.DrawWordFrames {
			strokeBox(ctx, wd.BBox, dpi, canvas.Blue)
		}
	}
	return nil
}

// drawFigure fills the figure's box with the decoded asset, or a flat gray
// placeholder when the block carries no asset reference.
func (r *Renderer) drawFigure(ctx *canvas.Context, b *layout.Block, dpi int) error {
	x := layout.PxToMm(float64(b.BBox[0]), dpi)
	y := layout.PxToMm(float64(b.BBox[1]), dpi)
	w := layout.PxToMm(float64(b.Size.W()), dpi)
	h := layout.PxToMm(float64(b.Size.H()), dpi)

	if b.Content == "" {
		ctx.SetFillColor(canvas.Lightgray)
		ctx.DrawPath(x, y, canvas.Rectangle(w, h))
		return nil
	}

	img, err := r.loadImage(b.Content)
	if err != nil {
		return fmt.Errorf("figure %q: %w", b.ID, err)
	}
	dpmm := float64(img.Bounds().Dx()) / w
	if dpmm <= 0 {
		dpmm = 1
	}
	ctx.DrawImage(x, y, img, canvas.DPMM(dpmm))
	return nil
}

func (r *Renderer) loadImage(src string) (image.Image, error) {
	path := src
	if !filepath.IsAbs(path) {
		if r.baseDir == "" {
			return nil, fmt.Errorf("relative asset path %q without an asset directory", src)
		}
		path = filepath.Join(r.baseDir, path)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", src, err)
	}
	return img, nil
}

func strokeBox(ctx *canvas.Context, bb layout.BBox, dpi int, col color.Color) {
	x := layout.PxToMm(float64(bb[0]), dpi)
	y := layout.PxToMm(float64(bb[1]), dpi)
	w := layout.PxToMm(float64(bb.W()), dpi)
	h := layout.PxToMm(float64(bb.H()), dpi)
	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeColor(col)
	ctx.SetStrokeWidth(frameStrokeWidth)
	ctx.DrawPath(x, y, canvas.Rectangle(w, h))
}
