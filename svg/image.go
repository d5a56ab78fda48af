package svg

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register decoders for <image> content
	_ "image/jpeg"
	_ "image/png"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Lymia/PrincessEdit/native/internal/logging"
)

var errNoResourceDir = errors.New("relative image reference without a resource directory")

// loadImage decodes the content of an href. Data URIs are decoded in
// place; file references are resolved against dir and cached.
func (r *Renderer) loadImage(href, dir string) (image.Image, error) {
	if strings.HasPrefix(href, "data:") {
		data, err := decodeDataURI(href)
		if err != nil {
			return nil, err
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		return img, err
	}

	path := href
	if u, err := url.Parse(href); err == nil && u.Scheme == "file" {
		path = u.Path
	}
	if !filepath.IsAbs(path) {
		if dir == "" {
			return nil, errNoResourceDir
		}
		path = filepath.Join(dir, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	key := path + "\x00" + strconv.FormatInt(info.ModTime().UnixNano(), 10)
	return r.images.Load(key, func() (image.Image, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return img, nil
	})
}

func decodeDataURI(uri string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, errors.New("malformed data URI")
	}
	if strings.HasSuffix(meta, ";base64") {
		payload = strings.Map(func(r rune) rune {
			if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
				return -1
			}
			return r
		}, payload)
		return base64.StdEncoding.DecodeString(payload)
	}
	s, err := url.PathUnescape(payload)
	return []byte(s), err
}

// drawImages draws every image element, skipping the ones that cannot be
// loaded.
func (r *Renderer) drawImages(dst *image.RGBA, base rasterx.Matrix2D, nodes []imageNode, dir string) {
	for _, n := range nodes {
		if n.href == "" || n.opacity <= 0 {
			continue
		}
		src, err := r.loadImage(n.href, dir)
		if err != nil {
			logging.L().Warn("svg: skipping image", "href", truncate(n.href, 64), "err", err)
			continue
		}
		drawImage(dst, src, base.Mult(n.transform), n)
	}
}

func drawImage(dst *image.RGBA, src image.Image, m rasterx.Matrix2D, n imageNode) {
	b := src.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 {
		return
	}
	w, h := n.width, n.height
	switch {
	case w == 0 && h == 0:
		w, h = iw, ih
	case w == 0:
		w = h * iw / ih
	case h == 0:
		h = w * ih / iw
	}

	sx, sy := w/iw, h/ih
	dx, dy := n.x, n.y
	if n.preserve != "none" {
		// xMidYMid meet
		s := math.Min(sx, sy)
		dx += (w - iw*s) / 2
		dy += (h - ih*s) / 2
		sx, sy = s, s
	}

	t := m.Translate(dx, dy).Scale(sx, sy).Translate(-float64(b.Min.X), -float64(b.Min.Y))
	aff := f64.Aff3{t.A, t.C, t.E, t.B, t.D, t.F}

	var opts *draw.Options
	if n.opacity < 1 {
		opts = &draw.Options{SrcMask: image.NewUniform(color.Alpha{A: uint8(math.Round(n.opacity * 255))})}
	}
	draw.CatmullRom.Transform(dst, aff, src, b, draw.Over, opts)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
