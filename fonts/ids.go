package fonts

import (
	"fmt"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/fontscan"
)

// Generic is one of the CSS generic font families.
type Generic uint8

// Generic family ids as seen by the host.
const (
	GenericSerif Generic = iota
	GenericSansSerif
	GenericCursive
	GenericFantasy
	GenericMonospace

	// NumGenerics is the number of generic families.
	NumGenerics = int(GenericMonospace) + 1
)

var genericKeywords = [NumGenerics]string{
	fontscan.Serif,
	fontscan.SansSerif,
	fontscan.Cursive,
	fontscan.Fantasy,
	fontscan.Monospace,
}

// GenericFromID validates a host generic family id.
func GenericFromID(id int32) (Generic, error) {
	if id < 0 || int(id) >= NumGenerics {
		return 0, fmt.Errorf("%w: %d", ErrUnknownGeneric, id)
	}
	return Generic(id), nil
}

// String returns the CSS keyword of the family ("serif", "sans-serif", ...).
func (g Generic) String() string {
	if int(g) < NumGenerics {
		return genericKeywords[g]
	}
	return fmt.Sprintf("Generic(%d)", uint8(g))
}

// Stretch is a font width class, from ultra-condensed to ultra-expanded.
type Stretch uint8

// Stretch ids as seen by the host.
const (
	StretchUltraCondensed Stretch = iota
	StretchExtraCondensed
	StretchCondensed
	StretchSemiCondensed
	StretchNormal
	StretchSemiExpanded
	StretchExpanded
	StretchExtraExpanded
	StretchUltraExpanded
)

var stretchValues = [...]font.Stretch{
	font.StretchUltraCondensed,
	font.StretchExtraCondensed,
	font.StretchCondensed,
	font.StretchSemiCondensed,
	font.StretchNormal,
	font.StretchSemiExpanded,
	font.StretchExpanded,
	font.StretchExtraExpanded,
	font.StretchUltraExpanded,
}

// StretchFromID validates a host stretch id.
func StretchFromID(id int32) (Stretch, error) {
	if id < 0 || int(id) >= len(stretchValues) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownStretch, id)
	}
	return Stretch(id), nil
}

// Value returns the width as a fraction of the normal width.
func (s Stretch) Value() font.Stretch {
	if int(s) < len(stretchValues) {
		return stretchValues[s]
	}
	return font.StretchNormal
}

// Style is the slant of a face.
type Style uint8

// Style ids as seen by the host.
const (
	StyleNormal Style = iota
	StyleItalic
	StyleOblique
)

// StyleFromID validates a host style id.
func StyleFromID(id int32) (Style, error) {
	if id < 0 || id > int32(StyleOblique) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownStyle, id)
	}
	return Style(id), nil
}

// Value returns the matching go-text style. Italic and oblique both select
// slanted faces.
func (s Style) Value() font.Style {
	if s == StyleNormal {
		return font.StyleNormal
	}
	return font.StyleItalic
}

func (s Style) String() string {
	switch s {
	case StyleNormal:
		return "normal"
	case StyleItalic:
		return "italic"
	case StyleOblique:
		return "oblique"
	}
	return fmt.Sprintf("Style(%d)", uint8(s))
}

// Weight is a font weight, 400 being regular and 700 bold.
type Weight uint16

// Common weights.
const (
	WeightNormal Weight = 400
	WeightBold   Weight = 700
)

// WeightFromInt validates a host weight.
func WeightFromInt(w int32) (Weight, error) {
	if w < 1 || w > 0xFFFF {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidWeight, w)
	}
	return Weight(w), nil
}
