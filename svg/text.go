package svg

import (
	"image/color"

	"github.com/srwiley/rasterx"

	"github.com/Lymia/PrincessEdit/native/fonts"
	"github.com/Lymia/PrincessEdit/native/text"
)

// placed is a shaped piece of a text chunk waiting for the chunk's
// anchor to be known.
type placed struct {
	glyphs []text.Glyph
	y      float64
	paint  color.Color
}

// drawText shapes and fills every text element. Faces come from m, so
// this must run inside the database view that produced it.
func (r *Renderer) drawText(filler *rasterx.Filler, m *fonts.Matcher, base rasterx.Matrix2D, nodes []textNode) {
	for _, n := range nodes {
		r.drawTextNode(filler, m, base.Mult(n.transform), n)
	}
}

func (r *Renderer) drawTextNode(filler *rasterx.Filler, m *fonts.Matcher, t rasterx.Matrix2D, n textNode) {
	var (
		penX, penY float64
		start      float64
		align      anchor
		chunk      []placed
	)

	flush := func() {
		shift := 0.0
		switch align {
		case anchorMiddle:
			shift = -(penX - start) / 2
		case anchorEnd:
			shift = -(penX - start)
		}
		for _, p := range chunk {
			if p.paint == nil {
				continue
			}
			filler.Clear()
			filler.SetColor(p.paint)
			drawn := false
			for _, g := range p.glyphs {
				if text.FillGlyph(filler, g, shift, p.y, t) {
					drawn = true
				}
			}
			if drawn {
				filler.Draw()
			}
		}
		chunk = chunk[:0]
	}

	for _, sp := range n.spans {
		if sp.pos.absolute() {
			flush()
			if sp.pos.hasX {
				penX = sp.pos.x
			}
			if sp.pos.hasY {
				penY = sp.pos.y
			}
			start = penX + sp.pos.dx
			align = sp.style.anchor
		}
		penX += sp.pos.dx
		penY += sp.pos.dy

		if sp.text == "" || sp.style.size <= 0 {
			continue
		}
		m.SetQuery(sp.style.query(r.opts.defaultFamily))
		runes := []rune(sp.text)
		for _, run := range text.Segment(runes, m.Resolve) {
			glyphs := r.shaper.Shape(run, sp.style.size, penX)
			if len(glyphs) == 0 {
				continue
			}
			penX += text.Measure(glyphs)
			chunk = append(chunk, placed{glyphs: glyphs, y: penY, paint: sp.style.paint()})
		}
	}
	flush()
}
