// Package metrics measures text with real font data via
// github.com/tdewolff/canvas and serves the layout engine's Measurer
// contract. One Registry instance is shared between the provider and the
// renderer so both see identical glyph geometry.
package metrics

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/treyder38/folio/fonts"
)

// ErrUnknownFont is returned when a font identity was never registered.
var ErrUnknownFont = errors.New("metrics: unknown font")

// Registry is a mutex-guarded table of named font families.
type Registry struct {
	mu       sync.Mutex
	families map[string]*canvas.FontFamily
}

// NewRegistry returns an empty font registry.
func NewRegistry() *Registry {
	return &Registry{families: map[string]*canvas.FontFamily{}}
}

// Register loads raw TTF/OTF bytes under the given name. Registering the
// same name twice replaces the earlier family.
func (r *Registry) Register(name string, data []byte) error {
	if name == "" {
		return fmt.Errorf("font registration needs a name")
	}
	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return fmt.Errorf("load font %q: %w", name, err)
	}
	r.mu.Lock()
	r.families[name] = family
	r.mu.Unlock()
	return nil
}

// RegisterFile loads a font file from disk under the given name.
func (r *Registry) RegisterFile(name, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %q: %w", name, err)
	}
	return r.Register(name, data)
}

// RegisterDir walks dir and registers every *.ttf/*.otf file under its
// basename without extension ("fonts/Lora-Bold.ttf" becomes "Lora-Bold").
func (r *Registry) RegisterDir(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".ttf" && ext != ".otf" {
			return nil
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return r.RegisterFile(name, path)
	})
}

// RegisterSource resolves a stylesheet font source: "builtin:<name>" loads
// embedded font data, anything else is a file path (relative to baseDir
// unless absolute).
func (r *Registry) RegisterSource(name, src, baseDir string) error {
	if fonts.IsBuiltin(src) {
		data, err := fonts.Load(src)
		if err != nil {
			return err
		}
		return r.Register(name, data)
	}
	path := src
	if baseDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	return r.RegisterFile(name, path)
}

// Face returns a render-ready face for a registered font at sizePt.
func (r *Registry) Face(name string, sizePt float64) (*canvas.FontFace, error) {
	r.mu.Lock()
	family, ok := r.families[name]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %s)", ErrUnknownFont, name, strings.Join(r.Names(), ", "))
	}
	return family.Face(sizePt, canvas.Black, canvas.FontRegular, canvas.FontNormal), nil
}

// Names lists the registered font names in sorted order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.families))
	for name := range r.families {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
