// Package binding fills ${path.to.value} placeholders in block content with
// caller data, typically a decoded JSON document. Binding happens before
// estimation so the layout measures the final text.
package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/treyder38/folio/layout"
)

var placeholder = regexp.MustCompile(`\$\{([^}]+)\}`)

// Apply expands placeholders in every text block's content in place. Figure
// blocks are left alone: their content is an asset reference, not text.
func Apply(blocks []*layout.Block, data any) {
	if data == nil {
		return
	}
	for _, b := range blocks {
		if b == nil || b.IsFigure() {
			continue
		}
		b.Content = Expand(b.Content, data)
	}
}

// Expand replaces each ${path} in text with the value data holds at that
// path. A path that does not resolve leaves its placeholder as written, so
// missing data stays visible in the output.
func Expand(text string, data any) string {
	if data == nil || !strings.Contains(text, "${") {
		return text
	}
	return placeholder.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if path == "" {
			return match
		}
		if val, ok := lookup(data, path); ok {
			return fmt.Sprint(val)
		}
		return match
	})
}

// step is one dot-separated path element: an optional map key followed by any
// number of array subscripts ("rows[0][1]").
type step struct {
	key     string
	indices []int
}

func lookup(root any, path string) (any, bool) {
	steps, ok := parsePath(path)
	if !ok {
		return nil, false
	}
	cur := root
	for _, st := range steps {
		if st.key != "" {
			m, ok := cur.(map[string]any)
			if !ok {
				return nil, false
			}
			if cur, ok = m[st.key]; !ok {
				return nil, false
			}
		}
		for _, idx := range st.indices {
			arr, ok := cur.([]any)
			if !ok || idx < 0 || idx >= len(arr) {
				return nil, false
			}
			cur = arr[idx]
		}
	}
	return cur, true
}

func parsePath(path string) ([]step, bool) {
	segments := strings.Split(path, ".")
	steps := make([]step, 0, len(segments))
	for _, seg := range segments {
		if seg == "" {
			return nil, false
		}
		var st step
		open := strings.IndexByte(seg, '[')
		if open == -1 {
			st.key = seg
			steps = append(steps, st)
			continue
		}
		st.key = seg[:open]
		for rest := seg[open:]; rest != ""; {
			if rest[0] != '[' {
				return nil, false
			}
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				return nil, false
			}
			idx, err := strconv.Atoi(rest[1:end])
			if err != nil {
				return nil, false
			}
			st.indices = append(st.indices, idx)
			rest = rest[end+1:]
		}
		steps = append(steps, st)
	}
	return steps, true
}
