package svg

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/Lymia/PrincessEdit/native/fonts"
	"github.com/Lymia/PrincessEdit/native/internal/cache"
	"github.com/Lymia/PrincessEdit/native/internal/logging"
	"github.com/Lymia/PrincessEdit/native/text"
)

// Request is one rendering job.
type Request struct {
	// Source is the SVG document.
	Source string
	// ResourceDir resolves relative image references. Empty disables them.
	ResourceDir string
	// Fonts supplies the faces for text. It is read-locked for the whole
	// rendering.
	Fonts *fonts.Database
	// Width and Height are the size of the output image in pixels.
	Width, Height int
}

// Renderer rasterizes SVG documents to PNG.
//
// Renderer is safe for concurrent use.
type Renderer struct {
	opts   options
	shaper *text.Shaper
	images *cache.Cache[image.Image]
}

// New creates a renderer.
func New(opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{
		opts:   o,
		shaper: text.NewShaper(o.language),
		images: cache.New[image.Image](o.imageCache),
	}
}

// Render parses req.Source, scales it to fit req.Width x req.Height while
// keeping its aspect ratio (anchored at the top-left corner) and returns
// the PNG encoding of the result.
//
// Raster images are drawn first, then shapes, then text. Document order
// is kept within each of the three kinds but not across them: an <image>
// or <text> that precedes a shape covering it still ends up visible.
// This is a known limitation.
func (r *Renderer) Render(req Request) ([]byte, error) {
	if req.Width <= 0 || req.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, req.Width, req.Height)
	}
	if req.Fonts == nil {
		return nil, ErrNoDatabase
	}

	icon, err := oksvg.ReadIconStream(strings.NewReader(req.Source), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	vb := icon.ViewBox
	if !(vb.W > 0) || !(vb.H > 0) {
		return nil, fmt.Errorf("%w: document has no size", ErrParse)
	}
	sc, err := parseScene(strings.NewReader(req.Source), r.opts.defaultSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	scale := math.Min(float64(req.Width)/vb.W, float64(req.Height)/vb.H)
	base := rasterx.Identity.Scale(scale, scale).Translate(-vb.X, -vb.Y)
	icon.Transform = base

	w, h := req.Width, req.Height
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())

	err = req.Fonts.View(func(m *fonts.Matcher) error {
		r.drawImages(dst, base, sc.images, req.ResourceDir)
		icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
		if len(sc.texts) > 0 {
			if m.Empty() {
				logging.L().Debug("svg: no fonts, skipping text", "elements", len(sc.texts))
				return nil
			}
			r.drawText(rasterx.NewFiller(w, h, scanner), m, base, sc.texts)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	if l := logging.L(); l.Enabled(context.Background(), slog.LevelDebug) {
		st := r.images.Stats()
		l.Debug("svg: rendered", "width", w, "height", h, "bytes", buf.Len(),
			"imageCache", st.Len, "imageCacheHitRate", st.HitRate)
	}
	return buf.Bytes(), nil
}
