// Package text turns strings into filled glyph outlines.
//
// The pipeline has three steps:
//
//  1. Segment splits the runes of a string into runs drawn with the same
//     face, as resolved by a fonts.Matcher.
//  2. Shaper shapes each run with HarfBuzz (go-text/typesetting) into
//     positioned glyphs.
//  3. FillGlyph feeds each glyph outline, scaled and transformed into
//     device space, to a rasterx path adder.
//
// Measure sums glyph advances for text-anchor handling.
package text
