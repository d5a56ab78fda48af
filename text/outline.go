package text

import (
	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// FillGlyph appends the outline of g to a, positioned at (x, y) in text
// space and mapped to device space by m. Outlines are in font units with Y
// up; they are scaled to g.Size pixels per em and flipped.
//
// It returns false when the glyph has no vector outline (bitmap or SVG
// glyphs, blank glyphs), in which case nothing is appended.
func FillGlyph(a rasterx.Adder, g Glyph, x, y float64, m rasterx.Matrix2D) bool {
	if g.Face == nil {
		return false
	}
	outline, ok := g.Face.GlyphData(g.ID).(font.GlyphOutline)
	if !ok || len(outline.Segments) == 0 {
		return false
	}

	upem := float64(g.Face.Upem())
	if upem == 0 {
		return false
	}
	scale := g.Size / upem
	ox, oy := x+g.X, y+g.Y

	pt := func(p ot.SegmentPoint) fixed.Point26_6 {
		dx, dy := m.Transform(ox+float64(p.X)*scale, oy-float64(p.Y)*scale)
		return rasterx.ToFixedP(dx, dy)
	}

	open := false
	for _, seg := range outline.Segments {
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			if open {
				a.Stop(true)
			}
			a.Start(pt(seg.Args[0]))
			open = true
		case ot.SegmentOpLineTo:
			a.Line(pt(seg.Args[0]))
		case ot.SegmentOpQuadTo:
			a.QuadBezier(pt(seg.Args[0]), pt(seg.Args[1]))
		case ot.SegmentOpCubeTo:
			a.CubeBezier(pt(seg.Args[0]), pt(seg.Args[1]), pt(seg.Args[2]))
		}
	}
	if open {
		a.Stop(true)
	}
	return true
}
