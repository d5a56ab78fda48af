package fonts

import (
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/fontscan"
	"github.com/go-text/typesetting/language"
)

// Matcher resolves runes to faces for one query at a time. A Matcher is
// handed out by Database.View and is not safe for concurrent use.
type Matcher struct {
	fm       *fontscan.FontMap
	defaults [NumGenerics]string
	gen      uint64
	empty    bool

	script    language.Script
	hasScript bool
}

// Match describes the face chosen for a rune.
type Match struct {
	Family   string
	Aspect   font.Aspect
	Location fontscan.Location
}

// Empty reports whether the database had no faces at all.
func (m *Matcher) Empty() bool {
	return m.empty
}

// SetQuery selects the families and aspect used by later Resolve calls.
func (m *Matcher) SetQuery(q QueryView) {
	m.fm.SetQuery(fontscan.Query{
		Families: q.Families(m.defaults),
		Aspect:   q.Aspect(),
	})
}

// Resolve returns the face used to draw r, or nil when the database is
// empty. Faces returned by the same matcher are shared: use them only
// while the View that produced the matcher runs.
func (m *Matcher) Resolve(r rune) *font.Face {
	if s := language.LookupScript(r); !m.hasScript || s != m.script {
		// Common and inherited runes keep the current script so a run
		// does not flip the fallback order on every space.
		if !m.hasScript || (s != language.Common && s != language.Inherited) {
			m.fm.SetScript(s)
			m.script = s
			m.hasScript = true
		}
	}
	return m.fm.ResolveFace(r)
}

// Describe returns the family, aspect and origin of a face returned by
// Resolve.
func (m *Matcher) Describe(f *font.Face) Match {
	d := f.Font.Describe()
	return Match{
		Family:   d.Family,
		Aspect:   d.Aspect,
		Location: m.fm.FontLocation(f.Font),
	}
}
