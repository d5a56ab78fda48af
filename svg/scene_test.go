package svg

import (
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/srwiley/rasterx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lymia/PrincessEdit/native/fonts"
)

func TestParseTransform(t *testing.T) {
	tests := []struct {
		in           string
		x, y         float64
		wantX, wantY float64
	}{
		{"translate(10 20)", 1, 1, 11, 21},
		{"translate(5)", 1, 1, 6, 1},
		{"scale(2)", 3, 4, 6, 8},
		{"scale(2, 3)", 1, 1, 2, 3},
		{"translate(10,0) scale(2)", 1, 1, 12, 2},
		{"rotate(90)", 1, 0, 0, 1},
		{"rotate(180 5 5)", 0, 0, 10, 10},
		{"matrix(1 0 0 1 7 8)", 0, 0, 7, 8},
	}
	for _, tt := range tests {
		m, err := parseTransform(tt.in)
		require.NoError(t, err, tt.in)
		x, y := m.Transform(tt.x, tt.y)
		assert.InDelta(t, tt.wantX, x, 1e-9, tt.in)
		assert.InDelta(t, tt.wantY, y, 1e-9, tt.in)
	}

	for _, bad := range []string{"translate(1", "scale(a)", "frobnicate(1)", "rotate(1 2)"} {
		_, err := parseTransform(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12", 12},
		{"12px", 12},
		{"9pt", 12},
		{"1in", 96},
		{"2em", 20},
		{"50%", 5},
	}
	for _, tt := range tests {
		v, err := parseLength(tt.in, 10)
		require.NoError(t, err, tt.in)
		assert.InDelta(t, tt.want, v, 1e-9, tt.in)
	}
	_, err := parseLength("abc", 10)
	assert.Error(t, err)
}

func TestStyleProperties(t *testing.T) {
	s := defaultStyle(12)
	s.setAll(`font-family: "Fira Sans", serif, Go Mono; font-size: 2em; font-weight: bold;
		font-style: oblique; font-stretch: condensed; text-anchor: middle; fill: #00ff00`)

	assert.Equal(t, []fonts.Family{
		fonts.NamedFamily("Fira Sans"),
		fonts.GenericFamily(fonts.GenericSerif),
		fonts.NamedFamily("Go Mono"),
	}, s.families)
	assert.InDelta(t, 24, s.size, 1e-9)
	assert.Equal(t, fonts.WeightBold, s.weight)
	assert.Equal(t, fonts.StyleOblique, s.slant)
	assert.Equal(t, fonts.StretchCondensed, s.stretch)
	assert.Equal(t, anchorMiddle, s.anchor)
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, s.paint())

	q := s.query("Liberation Sans")
	assert.Equal(t, s.families, q.Terms)
	assert.Equal(t, []fonts.Family{fonts.NamedFamily("Liberation Sans")}, defaultStyle(12).query("Liberation Sans").Terms)
}

func TestStyleWeightAndStretch(t *testing.T) {
	assert.Equal(t, fonts.Weight(700), parseWeight("bolder", 400))
	assert.Equal(t, fonts.Weight(100), parseWeight("lighter", 400))
	assert.Equal(t, fonts.Weight(300), parseWeight("300", 400))
	assert.Equal(t, fonts.Weight(400), parseWeight("heavy", 400))

	s, ok := parseStretch("150%")
	assert.True(t, ok)
	assert.Equal(t, fonts.StretchExtraExpanded, s)
	_, ok = parseStretch("wide")
	assert.False(t, ok)
}

func TestStylePaint(t *testing.T) {
	s := defaultStyle(12)
	s.set("fill", "none")
	assert.Nil(t, s.paint())

	s = defaultStyle(12)
	s.set("fill-opacity", "0.5")
	s.opacity = 0.5
	p := s.paint().(color.NRGBA)
	assert.Equal(t, uint8(64), p.A)
}

func TestParseScene(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100" font-size="10">
  <defs><text>hidden</text></defs>
  <g transform="translate(10 0)" fill="red" opacity="0.5">
    <text x="1" y="2">
      Hello
      <tspan font-weight="bold" dy="5">  big   world </tspan>
      <tspan x="50" y="60">again</tspan>
    </text>
    <image href="a.png" x="1" y="2" width="3" height="4"/>
  </g>
  <text display="none">gone</text>
</svg>`

	sc, err := parseScene(strings.NewReader(src), 12)
	require.NoError(t, err)

	require.Len(t, sc.texts, 1)
	n := sc.texts[0]
	x, y := n.transform.Transform(0, 0)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 0.0, y)

	var texts []string
	for _, sp := range n.spans {
		texts = append(texts, sp.text)
	}
	assert.Equal(t, []string{"Hello ", "big world ", "again"}, texts)

	first := n.spans[0]
	assert.True(t, first.pos.hasX)
	assert.Equal(t, 1.0, first.pos.x)
	assert.Equal(t, 2.0, first.pos.y)
	assert.InDelta(t, 10, first.style.size, 1e-9)
	assert.InDelta(t, 0.5, first.style.opacity, 1e-9)

	assert.Equal(t, fonts.WeightBold, n.spans[1].style.weight)
	assert.Equal(t, 5.0, n.spans[1].pos.dy)
	assert.False(t, n.spans[1].pos.absolute())

	assert.True(t, n.spans[2].pos.absolute())
	assert.Equal(t, 50.0, n.spans[2].pos.x)

	require.Len(t, sc.images, 1)
	img := sc.images[0]
	assert.Equal(t, "a.png", img.href)
	assert.Equal(t, [4]float64{1, 2, 3, 4}, [4]float64{img.x, img.y, img.width, img.height})
	assert.InDelta(t, 0.5, img.opacity, 1e-9)
}

func TestParseSceneBadTransform(t *testing.T) {
	_, err := parseScene(strings.NewReader(`<svg><g transform="spin(3)"/></svg>`), 12)
	assert.Error(t, err)
}

func TestDecodeDataURI(t *testing.T) {
	data, err := decodeDataURI("data:text/plain;base64,aGVs\nbG8=")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	data, err = decodeDataURI("data:,a%20b")
	require.NoError(t, err)
	assert.Equal(t, "a b", string(data))

	_, err = decodeDataURI("data:nocomma")
	assert.Error(t, err)
}

func TestIdentityIsRasterxIdentity(t *testing.T) {
	m, err := parseTransform("")
	require.NoError(t, err)
	assert.Equal(t, rasterx.Identity, m)
	assert.False(t, math.IsNaN(m.A))
}

func TestCollapseSpaces(t *testing.T) {
	texts := func(spans []textSpan) []string {
		out := []string{}
		for _, s := range spans {
			out = append(out, s.text)
		}
		return out
	}
	span := func(text string) textSpan { return textSpan{text: text} }

	tests := []struct {
		name  string
		spans []textSpan
		want  []string
	}{
		{"trailing whitespace span", []textSpan{span("\n  Hello "), span("\n    ")}, []string{"Hello"}},
		{"several trailing spans", []textSpan{span("a\t\tb "), span(" "), span("\n")}, []string{"a b"}},
		{"whitespace only", []textSpan{span("  \n "), span("\t")}, []string{}},
		{"inner runs", []textSpan{span("one  "), span("  two")}, []string{"one ", "two"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, texts(collapseSpaces(tt.spans)))
		})
	}

	// An empty span that moves the pen is kept.
	positioned := textSpan{text: " ", pos: position{x: 5, hasX: true}}
	got := collapseSpaces([]textSpan{span("a"), positioned})
	require.Len(t, got, 2)
	assert.Equal(t, "", got[1].text)
}
