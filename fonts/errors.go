package fonts

import "errors"

// Sentinel errors for the fonts package.
var (
	// ErrUnknownGeneric is returned for a generic family id outside 0..4.
	ErrUnknownGeneric = errors.New("fonts: unknown generic family id")

	// ErrUnknownStretch is returned for a stretch id outside 0..8.
	ErrUnknownStretch = errors.New("fonts: unknown stretch id")

	// ErrUnknownStyle is returned for a style id outside 0..2.
	ErrUnknownStyle = errors.New("fonts: unknown style id")

	// ErrInvalidWeight is returned for a weight outside 1..65535.
	ErrInvalidWeight = errors.New("fonts: weight must be in 1..65535")

	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("fonts: empty font data")

	// ErrPathNotFound is returned by AddFontPath for a path that does not exist.
	ErrPathNotFound = errors.New("fonts: path not found")

	// ErrNotFileOrDir is returned by AddFontPath for a path that is neither
	// a regular file nor a directory.
	ErrNotFileOrDir = errors.New("fonts: path is not a file or a directory")

	// ErrNoFonts is returned when matching against a database with no faces.
	ErrNoFonts = errors.New("fonts: no fonts available")
)
