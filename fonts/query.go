package fonts

import (
	"sync"

	"github.com/go-text/typesetting/font"
)

// Family is one family preference of a query: either a literal family name
// or a generic family.
type Family struct {
	Name      string
	Generic   Generic
	IsGeneric bool
}

// NamedFamily returns a literal family term.
func NamedFamily(name string) Family {
	return Family{Name: name}
}

// GenericFamily returns a generic family term.
func GenericFamily(g Generic) Family {
	return Family{Generic: g, IsGeneric: true}
}

func (f Family) String() string {
	if f.IsGeneric {
		return f.Generic.String()
	}
	return f.Name
}

// Query accumulates font-matching preferences: an ordered list of family
// terms plus weight, stretch and style.
//
// Query is safe for concurrent use.
type Query struct {
	mu       sync.RWMutex
	families []Family
	weight   Weight
	stretch  Stretch
	style    Style
}

// NewQuery returns a query with no families, regular weight, normal
// stretch and normal style.
func NewQuery() *Query {
	return &Query{
		weight:  WeightNormal,
		stretch: StretchNormal,
		style:   StyleNormal,
	}
}

// AddFamily appends a literal family name.
func (q *Query) AddFamily(name string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.families = append(q.families, NamedFamily(name))
}

// AddGeneric appends a generic family.
func (q *Query) AddGeneric(g Generic) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.families = append(q.families, GenericFamily(g))
}

// SetWeight sets the requested weight.
func (q *Query) SetWeight(w Weight) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.weight = w
}

// SetStretch sets the requested stretch.
func (q *Query) SetStretch(s Stretch) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.stretch = s
}

// SetStyle sets the requested style.
func (q *Query) SetStyle(s Style) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.style = s
}

// View returns a snapshot of the query. The snapshot shares nothing with
// the query and stays valid after further mutation.
func (q *Query) View() QueryView {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return QueryView{
		Terms:   append([]Family(nil), q.families...),
		Weight:  q.weight,
		Stretch: q.stretch,
		Style:   q.style,
	}
}

// QueryView is an immutable snapshot of a Query, ready to be handed to a
// Matcher.
type QueryView struct {
	Terms   []Family
	Weight  Weight
	Stretch Stretch
	Style   Style
}

// Families returns the family list passed to the matcher, in insertion
// order. A generic term expands to the concrete default configured for it
// (when set) followed by its CSS keyword.
func (v QueryView) Families(defaults [NumGenerics]string) []string {
	out := make([]string, 0, len(v.Terms)+1)
	for _, t := range v.Terms {
		if !t.IsGeneric {
			out = append(out, t.Name)
			continue
		}
		if int(t.Generic) < NumGenerics && defaults[t.Generic] != "" {
			out = append(out, defaults[t.Generic])
		}
		out = append(out, t.Generic.String())
	}
	return out
}

// Aspect returns the requested style, weight and stretch.
func (v QueryView) Aspect() font.Aspect {
	return font.Aspect{
		Style:   v.Style.Value(),
		Weight:  font.Weight(v.Weight),
		Stretch: v.Stretch.Value(),
	}
}
