package svg

import "errors"

// Sentinel errors for rendering.
var (
	// ErrInvalidSize is returned when the target width or height is not
	// strictly positive. Nothing is parsed in that case.
	ErrInvalidSize = errors.New("svg: target size must be positive")

	// ErrNoDatabase is returned when a request carries no font database.
	ErrNoDatabase = errors.New("svg: no font database")

	// ErrParse wraps failures to parse the document.
	ErrParse = errors.New("svg: could not parse document")

	// ErrEncode wraps failures to encode the rendered image.
	ErrEncode = errors.New("svg: could not encode image")
)
