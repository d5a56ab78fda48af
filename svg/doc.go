// Package svg renders SVG documents to PNG images.
//
// Shapes are parsed and rasterized by oksvg and rasterx. Text and raster
// images, which oksvg skips, are handled here: text goes through the fonts
// and text packages, images are decoded with the image codecs registered
// by this package and scaled with golang.org/x/image/draw.
//
//	r := svg.New(svg.WithDefaultFontFamily("Go"))
//	png, err := r.Render(svg.Request{
//	    Source: src,
//	    Fonts:  db,
//	    Width:  256,
//	    Height: 256,
//	})
package svg
