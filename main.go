package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"

	"github.com/treyder38/folio/binding"
	"github.com/treyder38/folio/dsl"
	"github.com/treyder38/folio/layout"
	"github.com/treyder38/folio/metrics"
	"github.com/treyder38/folio/renderer"
	canvasrenderer "github.com/treyder38/folio/renderer/canvas"
)

// blockList is the input document: an ordered list of content blocks. Figure
// blocks reference an image asset in content; its native pixel size is
// measured before layout.
type blockList struct {
	Blocks []*layout.Block `json:"blocks"`
}

func main() {
	stylePath := flag.String("style", "examples/report.sheet", "stylesheet file")
	blocksPath := flag.String("blocks", "examples/blocks.json", "block list JSON")
	dataJSON := flag.String("data", "", "JSON data bound into ${path} placeholders")
	fontDir := flag.String("fonts", "", "directory of extra .ttf/.otf fonts to register")
	outPath := flag.String("out", "output/layout.json", "annotated layout JSON output")
	pdfPath := flag.String("pdf", "", "also render a PDF to this path")
	pngPath := flag.String("png", "", "also render a PNG to this path")
	frames := flag.Bool("frames", false, "stroke block bounding boxes in rendered output")
	wordFrames := flag.Bool("word-frames", false, "stroke word bounding boxes in rendered output")
	noScale := flag.Bool("no-scale", false, "error out on over-wide blocks instead of shrinking them")
	tighten := flag.Bool("tighten", false, "shrink the page height to the content")
	flag.Parse()

	var data any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &data); err != nil {
			log.Fatalf("parse data JSON: %v", err)
		}
	}

	if err := run(*stylePath, *blocksPath, *outPath, *pdfPath, *pngPath, data, options{
		fontDir:    *fontDir,
		frames:     *frames,
		wordFrames: *wordFrames,
		noScale:    *noScale,
		tighten:    *tighten,
	}); err != nil {
		log.Fatalf("layout failed: %v", err)
	}
	fmt.Printf("wrote %s\n", *outPath)
}

type options struct {
	fontDir    string
	frames     bool
	wordFrames bool
	noScale    bool
	tighten    bool
}

// run chains parsing, font registration, layout and rendering.
func run(stylePath, blocksPath, outPath, pdfPath, pngPath string, data any, opts options) error {
	styleFile, err := os.Open(stylePath)
	if err != nil {
		return fmt.Errorf("open stylesheet %s: %w", stylePath, err)
	}
	ast, err := dsl.Parse(styleFile)
	styleFile.Close()
	if err != nil {
		return fmt.Errorf("parse stylesheet: %w", err)
	}
	sheet, err := layout.StylesheetFromDSL(ast)
	if err != nil {
		return err
	}

	baseDir := filepath.Dir(blocksPath)
	blocks, err := loadBlocks(blocksPath, baseDir, data)
	if err != nil {
		return err
	}

	reg := metrics.NewRegistry()
	if opts.fontDir != "" {
		if err := reg.RegisterDir(opts.fontDir); err != nil {
			return fmt.Errorf("register fonts from %s: %w", opts.fontDir, err)
		}
	}
	for _, font := range sheet.Fonts {
		if err := reg.RegisterSource(font.Name, font.Src, filepath.Dir(stylePath)); err != nil {
			return err
		}
	}

	doc, err := layout.Build(blocks, sheet, layout.BuildOptions{
		Measurer:    metrics.NewProvider(reg),
		ScaleToFit:  !opts.noScale,
		TightenPage: opts.tighten,
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := layout.WriteDebugJSON(doc, outPath); err != nil {
		return fmt.Errorf("write layout JSON: %w", err)
	}

	if pdfPath == "" && pngPath == "" {
		return nil
	}
	r := canvasrenderer.New(reg, sheet, baseDir, renderer.Options{
		DrawFrames:     opts.frames,
		DrawWordFrames: opts.wordFrames,
	})
	if pdfPath != "" {
		pdfBytes, err := r.Render(doc)
		if err != nil {
			return fmt.Errorf("render pdf: %w", err)
		}
		if err := os.WriteFile(pdfPath, pdfBytes, 0o644); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
	}
	if pngPath != "" {
		pngBytes, err := r.RenderPNG(doc)
		if err != nil {
			return fmt.Errorf("render png: %w", err)
		}
		if err := os.WriteFile(pngPath, pngBytes, 0o644); err != nil {
			return fmt.Errorf("write png: %w", err)
		}
	}
	return nil
}

// loadBlocks reads the block list, binds caller data into text content and
// measures the native pixel size of figure assets.
func loadBlocks(path, baseDir string, data any) ([]*layout.Block, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read blocks %s: %w", path, err)
	}
	var list blockList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("parse blocks %s: %w", path, err)
	}

	binding.Apply(list.Blocks, data)

	for _, b := range list.Blocks {
		if b == nil || !b.IsFigure() {
			continue
		}
		if b.Content == "" || b.Size.W() > 0 {
			continue // placeholder figure or pre-measured size
		}
		size, err := measureImage(b.Content, baseDir)
		if err != nil {
			return nil, fmt.Errorf("figure %q: %w", b.ID, err)
		}
		b.Size = size
	}
	return list.Blocks, nil
}

// measureImage reads just the image header to get the native pixel size.
// Decoder registrations for png/jpeg/gif/bmp/tiff/webp come in with the
// canvas renderer import.
func measureImage(src, baseDir string) (layout.Size, error) {
	p := src
	if !filepath.IsAbs(p) {
		p = filepath.Join(baseDir, p)
	}
	file, err := os.Open(p)
	if err != nil {
		return layout.Size{}, err
	}
	defer file.Close()
	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return layout.Size{}, fmt.Errorf("decode %s: %w", src, err)
	}
	return layout.Size{cfg.Width, cfg.Height}, nil
}
