package text

import (
	"bytes"
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/go-text/typesetting/font"
	"github.com/srwiley/rasterx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

func parseFace(t *testing.T, data []byte) *font.Face {
	t.Helper()
	face, err := font.ParseTTF(bytes.NewReader(data))
	require.NoError(t, err)
	return face
}

func TestSegment(t *testing.T) {
	regular := parseFace(t, goregular.TTF)
	mono := parseFace(t, gomono.TTF)

	resolve := func(r rune) *font.Face {
		if r >= '0' && r <= '9' {
			return mono
		}
		return regular
	}

	text := []rune("ab 12 cd")
	runs := Segment(text, resolve)
	require.Len(t, runs, 3)

	assert.Equal(t, 0, runs[0].Start)
	assert.Equal(t, 3, runs[0].End)
	assert.Same(t, regular, runs[0].Face)

	// The space after "12" stays in the mono run.
	assert.Equal(t, 3, runs[1].Start)
	assert.Equal(t, 6, runs[1].End)
	assert.Same(t, mono, runs[1].Face)

	assert.Equal(t, 6, runs[2].Start)
	assert.Equal(t, 8, runs[2].End)
	assert.Same(t, regular, runs[2].Face)
}

func TestSegmentEmptyAndMissingFace(t *testing.T) {
	assert.Nil(t, Segment(nil, func(rune) *font.Face { return nil }))

	runs := Segment([]rune("xyz"), func(rune) *font.Face { return nil })
	require.Len(t, runs, 1)
	assert.Nil(t, runs[0].Face)
	assert.Equal(t, 3, runs[0].Len())

	assert.Nil(t, NewShaper("").Shape(runs[0], 12, 0))
}

func TestShape(t *testing.T) {
	face := parseFace(t, goregular.TTF)
	text := []rune("Hello")
	s := NewShaper("en")

	glyphs := s.Shape(Run{Text: text, End: len(text), Face: face}, 16, 10)
	require.Len(t, glyphs, 5)

	assert.InDelta(t, 10, glyphs[0].X, 0.001)
	for i := 1; i < len(glyphs); i++ {
		assert.Greater(t, glyphs[i].X, glyphs[i-1].X)
		assert.Equal(t, i, glyphs[i].Cluster)
	}
	assert.Greater(t, Measure(glyphs), 0.0)

	// Doubling the size doubles the advance.
	big := s.Shape(Run{Text: text, End: len(text), Face: face}, 32, 0)
	assert.InDelta(t, 2*Measure(glyphs), Measure(big), 1)
}

func TestShapeConcurrent(t *testing.T) {
	data := goregular.TTF
	s := NewShaper("")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			face, err := font.ParseTTF(bytes.NewReader(data))
			if err != nil {
				t.Error(err)
				return
			}
			text := []rune("concurrent")
			if got := s.Shape(Run{Text: text, End: len(text), Face: face}, 12, 0); len(got) != len(text) {
				t.Errorf("got %d glyphs", len(got))
			}
		}()
	}
	wg.Wait()
}

// recorder counts path commands.
type recorder struct {
	starts, stops, segments int
	minX, maxX              fixed.Int26_6
}

func (r *recorder) track(p fixed.Point26_6) {
	if r.starts+r.segments == 1 || p.X < r.minX {
		r.minX = p.X
	}
	if p.X > r.maxX {
		r.maxX = p.X
	}
}

func (r *recorder) Start(a fixed.Point26_6)            { r.starts++; r.track(a) }
func (r *recorder) Line(b fixed.Point26_6)             { r.segments++; r.track(b) }
func (r *recorder) QuadBezier(b, c fixed.Point26_6)    { r.segments++; r.track(c) }
func (r *recorder) CubeBezier(b, c, d fixed.Point26_6) { r.segments++; r.track(d) }
func (r *recorder) Stop(bool)                          { r.stops++ }

func TestFillGlyph(t *testing.T) {
	face := parseFace(t, goregular.TTF)
	text := []rune("H ")
	glyphs := NewShaper("").Shape(Run{Text: text, End: len(text), Face: face}, 20, 0)
	require.Len(t, glyphs, 2)

	var rec recorder
	require.True(t, FillGlyph(&rec, glyphs[0], 100, 50, rasterx.Identity))
	assert.Greater(t, rec.starts, 0)
	assert.Equal(t, rec.starts, rec.stops)
	assert.Greater(t, rec.segments, 0)
	// Everything lands to the right of the origin and within one em.
	assert.GreaterOrEqual(t, rec.minX, fixed.I(100))
	assert.LessOrEqual(t, rec.maxX, fixed.I(120))

	var blank recorder
	assert.False(t, FillGlyph(&blank, glyphs[1], 0, 0, rasterx.Identity))
	assert.Zero(t, blank.starts)
}

func TestFillGlyphRasterizes(t *testing.T) {
	face := parseFace(t, goregular.TTF)
	text := []rune("W")
	glyphs := NewShaper("").Shape(Run{Text: text, End: 1, Face: face}, 32, 0)
	require.Len(t, glyphs, 1)

	img := image.NewRGBA(image.Rect(0, 0, 48, 48))
	scanner := rasterx.NewScannerGV(48, 48, img, img.Bounds())
	filler := rasterx.NewFiller(48, 48, scanner)
	filler.SetColor(color.Black)
	require.True(t, FillGlyph(filler, glyphs[0], 4, 36, rasterx.Identity))
	filler.Draw()

	inked := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			inked++
		}
	}
	assert.Greater(t, inked, 50)
}
