package layout

import "errors"

// Error kinds surfaced by Build. Every failure wraps exactly one of these so
// callers can discriminate with errors.Is and decide whether to retry with a
// different stylesheet or abandon the document.
var (
	// ErrConfig marks invalid stylesheet or page geometry: non-positive page
	// size or resolution, margins/gutter that leave no column width, or a
	// missing required style profile.
	ErrConfig = errors.New("layout: invalid configuration")

	// ErrOverflow marks a block that cannot be placed on the single page:
	// taller than the column area, or no room left in either column. The
	// engine never paginates or truncates.
	ErrOverflow = errors.New("layout: page overflow")

	// ErrMalformed marks a block record missing required fields.
	ErrMalformed = errors.New("layout: malformed block")
)
