package layout

import "strings"

// Wrap splits content into display lines that fit maxWidthPx, measured with
// the given font at sizePt and dpi. Explicit newlines always break; within a
// segment tokens are accumulated greedily on whitespace; a single token wider
// than the limit is hard-broken character by character (a chunk of at least
// one character is always accepted so the split terminates). The result has
// at least one line; empty input yields one empty line.
func Wrap(m Measurer, font string, sizePt float64, dpi int, content string, maxWidthPx int) ([]string, error) {
	if maxWidthPx <= 0 {
		maxWidthPx = 1
	}
	limit := float64(maxWidthPx)

	fits := func(s string) (bool, error) {
		w, err := m.TextWidth(font, sizePt, dpi, s)
		if err != nil {
			return false, err
		}
		return w <= limit, nil
	}

	var lines []string
	for _, raw := range strings.Split(content, "\n") {
		segment, err := wrapSegment(raw, fits)
		if err != nil {
			return nil, err
		}
		lines = append(lines, segment...)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines, nil
}

// wrapSegment wraps one newline-free segment. Tabs count as four spaces.
func wrapSegment(line string, fits func(string) (bool, error)) ([]string, error) {
	if line == "" {
		return []string{""}, nil
	}
	line = strings.ReplaceAll(line, "\t", "    ")

	var out []string
	cur := ""
	for _, word := range strings.Split(line, " ") {
		candidate := word
		if cur != "" {
			candidate = cur + " " + word
		}
		ok, err := fits(candidate)
		if err != nil {
			return nil, err
		}
		if ok {
			cur = candidate
			continue
		}

		if cur != "" {
			out = append(out, cur)
			cur = ""
		}

		ok, err = fits(word)
		if err != nil {
			return nil, err
		}
		if ok {
			cur = word
			continue
		}

		chunks, rest, err := hardBreak(word, fits)
		if err != nil {
			return nil, err
		}
		out = append(out, chunks...)
		cur = rest
	}
	if cur != "" {
		out = append(out, cur)
	}
	if len(out) == 0 {
		out = []string{""}
	}
	return out, nil
}

// hardBreak splits an over-wide token into chunks that each fit, returning
// the completed chunks and the trailing open chunk. A chunk never stays
// empty, so even a single glyph wider than the limit makes progress.
func hardBreak(token string, fits func(string) (bool, error)) ([]string, string, error) {
	var parts []string
	chunk := ""
	for _, r := range token {
		cand := chunk + string(r)
		ok, err := fits(cand)
		if err != nil {
			return nil, "", err
		}
		if ok || chunk == "" {
			chunk = cand
			continue
		}
		parts = append(parts, chunk)
		chunk = string(r)
	}
	return parts, chunk, nil
}
