package layout

import (
	"errors"
	"reflect"
	"testing"
)

// With the stub measurer (10 px per rune, loose line height 16, tight box
// height 10) and a 2 pt padding at 72 dpi (2 px), the arithmetic below is
// exact.
func TestEstimateTextGeometry(t *testing.T) {
	st := TypeStyle{Font: "body", SizePt: 10, LeadingPt: 12}
	size, lines, words, err := EstimateText(newStubMeasurer(), st, 2, 72, "aaaa bbbb cccc", 100)
	if err != nil {
		t.Fatalf("EstimateText failed: %v", err)
	}

	// Wrap limit is 100-2*2=96: "aaaa bbbb" (90) fits, "cccc" moves down.
	wantLines := []string{"aaaa bbbb", "cccc"}
	if !reflect.DeepEqual(lines, wantLines) {
		t.Fatalf("lines %q, want %q", lines, wantLines)
	}

	// Width: widest line 90 plus padding on both sides, capped at the lane.
	// Height: loose line height 16 + one leading advance 12 + 2*2 padding.
	if size != (Size{94, 32}) {
		t.Fatalf("size %v, want [94 32]", size)
	}

	wantWords := []*Word{
		{Content: "aaaa", Size: Size{40, 10}},
		{Content: "bbbb", Size: Size{40, 10}},
		{Content: NewlineMarker},
		{Content: "cccc", Size: Size{40, 10}},
	}
	if !reflect.DeepEqual(words, wantWords) {
		t.Fatalf("words %+v, want %+v", words, wantWords)
	}
}

func TestEstimateTextEmptyContent(t *testing.T) {
	st := TypeStyle{Font: "body", SizePt: 10, LeadingPt: 12}
	size, lines, words, err := EstimateText(newStubMeasurer(), st, 2, 72, "", 100)
	if err != nil {
		t.Fatalf("EstimateText failed: %v", err)
	}
	if size != (Size{1, 1}) {
		t.Fatalf("size %v, want minimal [1 1]", size)
	}
	if !reflect.DeepEqual(lines, []string{""}) || words != nil {
		t.Fatalf("empty content: lines %q words %v", lines, words)
	}
}

func TestEstimateTextNewlineMarkerBetweenEveryLinePair(t *testing.T) {
	st := TypeStyle{Font: "body", SizePt: 10, LeadingPt: 12}
	_, lines, words, err := EstimateText(newStubMeasurer(), st, 0, 72, "one\ntwo\nthree", 200)
	if err != nil {
		t.Fatalf("EstimateText failed: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("lines %q, want 3", lines)
	}
	markers := 0
	for _, w := range words {
		if w.IsNewline() {
			markers++
			if w.Size != (Size{}) {
				t.Fatalf("marker token carries size %v", w.Size)
			}
		}
	}
	if markers != len(lines)-1 {
		t.Fatalf("%d markers for %d lines", markers, len(lines))
	}
}

func TestEstimateTextWidthNeverExceedsLane(t *testing.T) {
	st := TypeStyle{Font: "body", SizePt: 10, LeadingPt: 12}
	size, _, _, err := EstimateText(newStubMeasurer(), st, 2, 72, "aaaaaaaaa", 100)
	if err != nil {
		t.Fatalf("EstimateText failed: %v", err)
	}
	if size.W() > 100 {
		t.Fatalf("width %d exceeds the 100 px lane", size.W())
	}
}

func TestEstimateFigure(t *testing.T) {
	b := &Block{ID: "f", Type: TypeFigure, Size: Size{500, 250}}
	size, err := estimateFigure(b, 1100)
	if err != nil {
		t.Fatalf("estimateFigure failed: %v", err)
	}
	if size != (Size{1100, 550}) {
		t.Fatalf("size %v, want [1100 550]", size)
	}

	if _, err := estimateFigure(&Block{ID: "f2", Type: TypeFigure}, 1100); !errors.Is(err, ErrMalformed) {
		t.Fatalf("unsized figure: got %v, want ErrMalformed", err)
	}
}
