package text

import (
	"unicode"

	"github.com/go-text/typesetting/font"
)

// Run is a range of runes drawn with a single face.
type Run struct {
	// Text is the full text the run belongs to.
	Text []rune
	// Start and End delimit the run in Text, End exclusive.
	Start, End int
	// Face is nil when no face could be found for the run.
	Face *font.Face
}

// Len returns the number of runes in the run.
func (r Run) Len() int {
	return r.End - r.Start
}

// Segment splits text into runs of runes resolved to the same face.
// Whitespace and other runes the current face covers stay in the current
// run, so a space does not break a run on its own.
func Segment(text []rune, resolve func(rune) *font.Face) []Run {
	if len(text) == 0 {
		return nil
	}

	var runs []Run
	cur := Run{Text: text}
	for i, r := range text {
		var face *font.Face
		if cur.Face != nil && i > cur.Start && keepsFace(cur.Face, r) {
			face = cur.Face
		} else {
			face = resolve(r)
		}

		if i == cur.Start {
			cur.Face = face
			continue
		}
		if face != cur.Face {
			cur.End = i
			runs = append(runs, cur)
			cur = Run{Text: text, Start: i, Face: face}
		}
	}
	cur.End = len(text)
	return append(runs, cur)
}

func keepsFace(f *font.Face, r rune) bool {
	if !unicode.IsSpace(r) && !unicode.IsPunct(r) {
		return false
	}
	_, ok := f.NominalGlyph(r)
	return ok
}
