package svg

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/srwiley/oksvg"

	"github.com/Lymia/PrincessEdit/native/fonts"
)

type anchor uint8

const (
	anchorStart anchor = iota
	anchorMiddle
	anchorEnd
)

// style holds the inherited presentation properties used for text and
// images. Paths are styled by oksvg itself.
type style struct {
	fill        color.Color // nil means no fill
	fillOpacity float64
	opacity     float64 // product of the opacity of all ancestors

	families []fonts.Family
	size     float64
	weight   fonts.Weight
	slant    fonts.Style
	stretch  fonts.Stretch
	anchor   anchor
}

func defaultStyle(fontSize float64) style {
	return style{
		fill:        color.Black,
		fillOpacity: 1,
		opacity:     1,
		size:        fontSize,
		weight:      fonts.WeightNormal,
		slant:       fonts.StyleNormal,
		stretch:     fonts.StretchNormal,
	}
}

// query returns the font query for the style. Without font-family the
// renderer default is used.
func (s style) query(defaultFamily string) fonts.QueryView {
	terms := s.families
	if len(terms) == 0 {
		terms = []fonts.Family{fonts.NamedFamily(defaultFamily)}
	}
	return fonts.QueryView{
		Terms:   terms,
		Weight:  s.weight,
		Stretch: s.stretch,
		Style:   s.slant,
	}
}

// paint returns the fill color with every opacity applied, or nil.
func (s style) paint() color.Color {
	if s.fill == nil {
		return nil
	}
	a := s.fillOpacity * s.opacity
	if a <= 0 {
		return nil
	}
	c := color.NRGBAModel.Convert(s.fill).(color.NRGBA)
	c.A = uint8(math.Round(float64(c.A) * math.Min(a, 1)))
	return c
}

// set applies one presentation property. Unknown properties and invalid
// values are ignored, as a browser would.
func (s *style) set(name, value string) {
	value = strings.TrimSpace(value)
	if value == "" || value == "inherit" {
		return
	}

	switch name {
	case "fill":
		switch value {
		case "none", "transparent":
			s.fill = nil
		default:
			if strings.HasPrefix(value, "url(") {
				// Gradients are not applied to text; fall back to black.
				s.fill = color.Black
				return
			}
			if c, err := oksvg.ParseSVGColor(value); err == nil {
				s.fill = c
			}
		}
	case "fill-opacity":
		if v, ok := parseOpacity(value); ok {
			s.fillOpacity = v
		}
	case "font-family":
		s.families = parseFamilies(value)
	case "font-size":
		if v, ok := parseFontSize(value, s.size); ok {
			s.size = v
		}
	case "font-weight":
		s.weight = parseWeight(value, s.weight)
	case "font-style":
		switch value {
		case "normal":
			s.slant = fonts.StyleNormal
		case "italic":
			s.slant = fonts.StyleItalic
		case "oblique":
			s.slant = fonts.StyleOblique
		}
	case "font-stretch":
		if v, ok := parseStretch(value); ok {
			s.stretch = v
		}
	case "text-anchor":
		switch value {
		case "start":
			s.anchor = anchorStart
		case "middle":
			s.anchor = anchorMiddle
		case "end":
			s.anchor = anchorEnd
		}
	}
}

// setAll applies a style attribute: "fill: red; font-size: 12px".
func (s *style) setAll(decl string) {
	for _, d := range strings.Split(decl, ";") {
		name, value, ok := strings.Cut(d, ":")
		if !ok {
			continue
		}
		s.set(strings.TrimSpace(name), value)
	}
}

func parseOpacity(v string) (float64, bool) {
	scale := 1.0
	if strings.HasSuffix(v, "%") {
		v = strings.TrimSuffix(v, "%")
		scale = 0.01
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return math.Max(0, math.Min(1, f*scale)), true
}

var genericNames = map[string]fonts.Generic{
	"serif":      fonts.GenericSerif,
	"sans-serif": fonts.GenericSansSerif,
	"cursive":    fonts.GenericCursive,
	"fantasy":    fonts.GenericFantasy,
	"monospace":  fonts.GenericMonospace,
}

func parseFamilies(v string) []fonts.Family {
	var out []fonts.Family
	for _, name := range strings.Split(v, ",") {
		name = strings.TrimSpace(name)
		if unq := strings.Trim(name, `"'`); unq != name {
			// Quoted names are never generic keywords.
			if unq != "" {
				out = append(out, fonts.NamedFamily(unq))
			}
			continue
		}
		if name == "" {
			continue
		}
		if g, ok := genericNames[strings.ToLower(name)]; ok {
			out = append(out, fonts.GenericFamily(g))
			continue
		}
		out = append(out, fonts.NamedFamily(name))
	}
	return out
}

var fontSizeKeywords = map[string]float64{
	"xx-small": 9,
	"x-small":  10,
	"small":    13,
	"medium":   16,
	"large":    18,
	"x-large":  24,
	"xx-large": 32,
}

func parseFontSize(v string, parent float64) (float64, bool) {
	switch v {
	case "larger":
		return parent * 1.2, true
	case "smaller":
		return parent / 1.2, true
	}
	if px, ok := fontSizeKeywords[v]; ok {
		return px, true
	}
	size, err := parseLength(v, parent)
	if err != nil || size <= 0 {
		return 0, false
	}
	return size, true
}

func parseWeight(v string, parent fonts.Weight) fonts.Weight {
	switch v {
	case "normal":
		return fonts.WeightNormal
	case "bold":
		return fonts.WeightBold
	case "bolder":
		switch {
		case parent < 350:
			return 400
		case parent < 550:
			return 700
		case parent < 900:
			return 900
		}
		return parent
	case "lighter":
		switch {
		case parent < 100:
			return parent
		case parent < 550:
			return 100
		case parent < 750:
			return 400
		}
		return 700
	}
	w, err := strconv.Atoi(v)
	if err != nil || w < 1 || w > 1000 {
		return parent
	}
	return fonts.Weight(w)
}

var stretchNames = map[string]fonts.Stretch{
	"ultra-condensed": fonts.StretchUltraCondensed,
	"extra-condensed": fonts.StretchExtraCondensed,
	"condensed":       fonts.StretchCondensed,
	"semi-condensed":  fonts.StretchSemiCondensed,
	"normal":          fonts.StretchNormal,
	"semi-expanded":   fonts.StretchSemiExpanded,
	"expanded":        fonts.StretchExpanded,
	"extra-expanded":  fonts.StretchExtraExpanded,
	"ultra-expanded":  fonts.StretchUltraExpanded,
}

func parseStretch(v string) (fonts.Stretch, bool) {
	if s, ok := stretchNames[v]; ok {
		return s, true
	}
	if !strings.HasSuffix(v, "%") {
		return 0, false
	}
	pct, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
	if err != nil {
		return 0, false
	}
	// Pick the width class closest to the percentage.
	best, bestDist := fonts.StretchNormal, math.Inf(1)
	for s := fonts.StretchUltraCondensed; s <= fonts.StretchUltraExpanded; s++ {
		if d := math.Abs(float64(s.Value())*100 - pct); d < bestDist {
			best, bestDist = s, d
		}
	}
	return best, true
}
