package layout

import "math"

// This file defines the unit conversions used across the engine. All block
// geometry is integer device pixels; typographic inputs (font size, leading,
// padding) are points; the canvas font backend reports millimeters.

// Conversion constants between pt, mm and inches.
const (
	PtPerInch = 72.0
	MmPerInch = 25.4
)

// PtToPx converts points to (fractional) pixels at the given resolution.
func PtToPx(pt float64, dpi int) float64 {
	return pt * float64(dpi) / PtPerInch
}

// PxToPt converts pixels back to points at the given resolution.
func PxToPt(px float64, dpi int) float64 {
	return px * PtPerInch / float64(dpi)
}

// MmToPx converts millimeters to (fractional) pixels at the given resolution.
func MmToPx(mm float64, dpi int) float64 {
	return mm * float64(dpi) / MmPerInch
}

// PxToMm converts pixels to millimeters at the given resolution.
func PxToMm(px float64, dpi int) float64 {
	return px * MmPerInch / float64(dpi)
}

// ceilPx rounds a fractional pixel length up to the nearest whole pixel,
// never below zero.
func ceilPx(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.Ceil(v))
}
