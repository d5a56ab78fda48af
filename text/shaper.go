package text

import (
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// Glyph is a shaped glyph positioned relative to the start of its text.
// Positions are in pixels, Y growing down from the baseline.
type Glyph struct {
	ID   font.GID
	Face *font.Face
	// Size is the font size in pixels the glyph was shaped at.
	Size float64
	// X and Y are the pen position with the shaper offsets applied.
	X, Y float64
	// Advance is the horizontal distance to the next glyph.
	Advance float64
	// Cluster is the index of the first rune of the glyph's cluster.
	Cluster int
}

// Shaper shapes runs with go-text/typesetting's HarfBuzz port.
//
// Shaper is safe for concurrent use. HarfbuzzShaper keeps a mutable buffer,
// so instances are pooled and each call takes its own.
type Shaper struct {
	pool sync.Pool
	lang language.Language
}

// NewShaper creates a shaper for text in the given BCP 47 language.
// Empty selects English.
func NewShaper(lang string) *Shaper {
	if lang == "" {
		lang = "en"
	}
	return &Shaper{
		pool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		lang: language.NewLanguage(lang),
	}
}

// Shape shapes run at size pixels per em. The first glyph starts at x,
// the pen position carried over from previous runs of the same line.
// A run without a face yields no glyphs.
func (s *Shaper) Shape(run Run, size, x float64) []Glyph {
	if run.Face == nil || run.Len() <= 0 || size <= 0 {
		return nil
	}

	input := shaping.Input{
		Text:      run.Text,
		RunStart:  run.Start,
		RunEnd:    run.End,
		Direction: di.DirectionLTR,
		Face:      run.Face,
		Size:      floatToFixed(size),
		Script:    detectScript(run.Text[run.Start:run.End]),
		Language:  s.lang,
	}

	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	s.pool.Put(hb)

	glyphs := make([]Glyph, len(output.Glyphs))
	for i, g := range output.Glyphs {
		adv := fixedToFloat(g.Advance)
		glyphs[i] = Glyph{
			ID:      g.GlyphID,
			Face:    run.Face,
			Size:    size,
			X:       x + fixedToFloat(g.XOffset),
			Y:       -fixedToFloat(g.YOffset),
			Advance: adv,
			Cluster: g.TextIndex(),
		}
		x += adv
	}
	return glyphs
}

// Measure returns the total advance of glyphs.
func Measure(glyphs []Glyph) float64 {
	var w float64
	for _, g := range glyphs {
		w += g.Advance
	}
	return w
}

// detectScript returns the script of the first rune that has one.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		s := language.LookupScript(r)
		if s != language.Common && s != language.Inherited && s != language.Unknown {
			return s
		}
	}
	return language.Latin
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
