package metrics

import (
	"errors"
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/treyder38/folio/fonts"
	"github.com/treyder38/folio/layout"
)

func builtinProvider(t *testing.T) *Provider {
	t.Helper()
	reg := NewRegistry()
	data, err := fonts.Load("builtin:lmroman10-regular")
	if err != nil {
		t.Fatalf("load builtin font: %v", err)
	}
	if err := reg.Register("serif", data); err != nil {
		t.Fatalf("register font: %v", err)
	}
	return NewProvider(reg)
}

func TestTextWidthGrowsWithText(t *testing.T) {
	p := builtinProvider(t)

	empty, err := p.TextWidth("serif", 10, 300, "")
	if err != nil {
		t.Fatalf("TextWidth: %v", err)
	}
	if empty != 0 {
		t.Fatalf("empty string width %v, want 0", empty)
	}

	short, err := p.TextWidth("serif", 10, 300, "a")
	if err != nil {
		t.Fatalf("TextWidth: %v", err)
	}
	long, err := p.TextWidth("serif", 10, 300, "ab")
	if err != nil {
		t.Fatalf("TextWidth: %v", err)
	}
	if !(0 < short && short < long) {
		t.Fatalf("widths not monotone: %v / %v", short, long)
	}
}

func TestTextWidthScalesWithResolution(t *testing.T) {
	p := builtinProvider(t)
	at72, err := p.TextWidth("serif", 10, 72, "Hello")
	if err != nil {
		t.Fatalf("TextWidth: %v", err)
	}
	at144, err := p.TextWidth("serif", 10, 144, "Hello")
	if err != nil {
		t.Fatalf("TextWidth: %v", err)
	}
	if math.Abs(at144-2*at72) > 1e-6 {
		t.Fatalf("doubling dpi should double the width: %v vs %v", at72, at144)
	}
}

func TestTextWidthDeterministic(t *testing.T) {
	p := builtinProvider(t)
	var last float64
	for i := 0; i < 3; i++ {
		w, err := p.TextWidth("serif", 12, 300, "determinism")
		if err != nil {
			t.Fatalf("TextWidth: %v", err)
		}
		if i > 0 && w != last {
			t.Fatalf("widths differ across calls: %v vs %v", last, w)
		}
		last = w
	}
}

func TestVMetricsBothFlavors(t *testing.T) {
	p := builtinProvider(t)
	for _, flavor := range []layout.MetricFlavor{layout.TightMetrics, layout.LooseMetrics} {
		vm, err := p.VMetrics("serif", 10, 300, flavor)
		if err != nil {
			t.Fatalf("VMetrics(%v): %v", flavor, err)
		}
		if vm.Ascent <= 0 || vm.LineHeight <= 0 {
			t.Fatalf("flavor %v has degenerate metrics %+v", flavor, vm)
		}
		if vm.LineHeight < vm.Ascent {
			t.Fatalf("flavor %v: line height %v below ascent %v", flavor, vm.LineHeight, vm.Ascent)
		}
	}
}

func TestVMetricsScaleWithSize(t *testing.T) {
	p := builtinProvider(t)
	small, err := p.VMetrics("serif", 10, 300, layout.TightMetrics)
	if err != nil {
		t.Fatalf("VMetrics: %v", err)
	}
	big, err := p.VMetrics("serif", 20, 300, layout.TightMetrics)
	if err != nil {
		t.Fatalf("VMetrics: %v", err)
	}
	if big.Ascent <= small.Ascent {
		t.Fatalf("20pt ascent %v not above 10pt ascent %v", big.Ascent, small.Ascent)
	}
}

func TestUnknownFont(t *testing.T) {
	p := builtinProvider(t)
	if _, err := p.TextWidth("ghost", 10, 300, "x"); !errors.Is(err, ErrUnknownFont) {
		t.Fatalf("TextWidth on unknown font: got %v, want ErrUnknownFont", err)
	}
	if _, err := p.VMetrics("ghost", 10, 300, layout.TightMetrics); !errors.Is(err, ErrUnknownFont) {
		t.Fatalf("VMetrics on unknown font: got %v, want ErrUnknownFont", err)
	}
}

func TestRegistryRegisterSourceBuiltin(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterSource("body", "builtin:lmsans10-regular", ""); err != nil {
		t.Fatalf("RegisterSource: %v", err)
	}
	if _, err := reg.Face("body", 12); err != nil {
		t.Fatalf("Face after RegisterSource: %v", err)
	}
	if err := reg.RegisterSource("nope", "builtin:no-such-font", ""); err == nil {
		t.Fatalf("expected error for unknown builtin name")
	}
}

func TestUnknownFontErrorListsRegisteredNames(t *testing.T) {
	reg := NewRegistry()
	data, err := fonts.Load("builtin:lmroman10-regular")
	if err != nil {
		t.Fatalf("load builtin font: %v", err)
	}
	for _, name := range []string{"serif", "mono"} {
		if err := reg.Register(name, data); err != nil {
			t.Fatalf("register %q: %v", name, err)
		}
	}

	names := reg.Names()
	if !sort.StringsAreSorted(names) || len(names) != 2 {
		t.Fatalf("Names() = %v, want the two fonts sorted", names)
	}
	_, err = reg.Face("ghost", 10)
	if !errors.Is(err, ErrUnknownFont) {
		t.Fatalf("Face on unknown font: got %v, want ErrUnknownFont", err)
	}
	if !strings.Contains(err.Error(), "mono, serif") {
		t.Fatalf("error does not name the registered fonts: %v", err)
	}
}

func TestRegistryRejectsJunkFont(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register("junk", []byte("not a font")); err == nil {
		t.Fatalf("expected error for junk font bytes")
	}
	if err := reg.Register("", nil); err == nil {
		t.Fatalf("expected error for empty name")
	}
}
