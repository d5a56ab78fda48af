package svg

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/srwiley/rasterx"
	"golang.org/x/net/html/charset"
)

// scene holds the elements oksvg does not draw: raster images and text.
// Coordinates are in user units; transform maps them to the view box.
type scene struct {
	images []imageNode
	texts  []textNode
}

type imageNode struct {
	href          string
	x, y          float64
	width, height float64 // 0 means the intrinsic size
	preserve      string
	transform     rasterx.Matrix2D
	opacity       float64
}

type textNode struct {
	transform rasterx.Matrix2D
	spans     []textSpan
}

// textSpan is a piece of character data with its style and the
// positioning requested by the enclosing text or tspan element.
type textSpan struct {
	text  string
	style style
	pos   position
}

type position struct {
	x, y       float64
	hasX, hasY bool
	dx, dy     float64
}

func (p position) absolute() bool {
	return p.hasX || p.hasY
}

// frame is the inherited state of an open element.
type frame struct {
	style     style
	transform rasterx.Matrix2D
	hidden    bool
}

// elements whose content is never rendered directly.
var hiddenElements = map[string]bool{
	"defs":           true,
	"clipPath":       true,
	"mask":           true,
	"pattern":        true,
	"symbol":         true,
	"marker":         true,
	"title":          true,
	"desc":           true,
	"metadata":       true,
	"style":          true,
	"script":         true,
	"linearGradient": true,
	"radialGradient": true,
}

// parseScene scans the document for image and text elements.
func parseScene(r io.Reader, fontSize float64) (*scene, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	sc := &scene{}
	stack := []frame{{style: defaultStyle(fontSize), transform: rasterx.Identity}}
	curText := -1
	var pending position

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			parent := stack[len(stack)-1]
			f := frame{
				style:     parent.style,
				transform: parent.transform,
				hidden:    parent.hidden || hiddenElements[t.Name.Local] || attr(t, "display") == "none",
			}
			if v := attr(t, "transform"); v != "" {
				m, err := parseTransform(v)
				if err != nil {
					return nil, err
				}
				f.transform = f.transform.Mult(m)
			}
			applyStyle(&f.style, t)
			stack = append(stack, f)

			if f.hidden {
				continue
			}
			switch t.Name.Local {
			case "text":
				sc.texts = append(sc.texts, textNode{transform: f.transform})
				curText = len(sc.texts) - 1
				pending = readPosition(t, f.style.size)
				if !pending.absolute() {
					pending.hasX, pending.hasY = true, true
				}
			case "tspan":
				if curText >= 0 {
					pending = mergePosition(pending, readPosition(t, f.style.size))
				}
			case "image":
				sc.images = append(sc.images, readImage(t, f))
			}

		case xml.EndElement:
			stack = stack[:len(stack)-1]
			if t.Name.Local == "text" && curText >= 0 {
				sc.texts[curText].spans = collapseSpaces(sc.texts[curText].spans)
				curText = -1
			}

		case xml.CharData:
			top := stack[len(stack)-1]
			if curText < 0 || top.hidden {
				continue
			}
			node := &sc.texts[curText]
			node.spans = append(node.spans, textSpan{
				text:  string(t),
				style: top.style,
				pos:   pending,
			})
			pending = position{}
		}
	}
	return sc, nil
}

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// applyStyle applies presentation attributes, then the style attribute,
// which takes precedence.
func applyStyle(s *style, se xml.StartElement) {
	for _, a := range se.Attr {
		switch a.Name.Local {
		case "style":
		case "opacity":
			if v, ok := parseOpacity(strings.TrimSpace(a.Value)); ok {
				s.opacity *= v
			}
		default:
			s.set(a.Name.Local, a.Value)
		}
	}
	if v := attr(se, "style"); v != "" {
		var opacity string
		for _, d := range strings.Split(v, ";") {
			if name, value, ok := strings.Cut(d, ":"); ok && strings.TrimSpace(name) == "opacity" {
				opacity = strings.TrimSpace(value)
			}
		}
		s.setAll(v)
		if o, ok := parseOpacity(opacity); ok {
			s.opacity *= o
		}
	}
}

func readPosition(se xml.StartElement, fontSize float64) position {
	var p position
	if v := attr(se, "x"); v != "" {
		if x, err := firstLength(v, fontSize); err == nil {
			p.x, p.hasX = x, true
		}
	}
	if v := attr(se, "y"); v != "" {
		if y, err := firstLength(v, fontSize); err == nil {
			p.y, p.hasY = y, true
		}
	}
	if v := attr(se, "dx"); v != "" {
		p.dx, _ = firstLength(v, fontSize)
	}
	if v := attr(se, "dy"); v != "" {
		p.dy, _ = firstLength(v, fontSize)
	}
	return p
}

// mergePosition combines a pending position that has not been consumed
// by character data yet with the one of a nested tspan.
func mergePosition(outer, inner position) position {
	if inner.hasX {
		outer.x, outer.hasX = inner.x, true
		outer.dx = 0
	}
	if inner.hasY {
		outer.y, outer.hasY = inner.y, true
		outer.dy = 0
	}
	outer.dx += inner.dx
	outer.dy += inner.dy
	return outer
}

func readImage(se xml.StartElement, f frame) imageNode {
	n := imageNode{
		href:      attr(se, "href"),
		preserve:  strings.TrimSpace(attr(se, "preserveAspectRatio")),
		transform: f.transform,
		opacity:   f.style.opacity,
	}
	n.x, _ = firstLengthOr(attr(se, "x"))
	n.y, _ = firstLengthOr(attr(se, "y"))
	n.width, _ = firstLengthOr(attr(se, "width"))
	n.height, _ = firstLengthOr(attr(se, "height"))
	return n
}

func firstLengthOr(v string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	return firstLength(v, 0)
}

// collapseSpaces applies the default xml:space handling: newlines are
// removed, tabs become spaces, runs of spaces collapse to one, and the text
// is trimmed at both ends. Spans left empty are dropped unless they carry
// an absolute position.
func collapseSpaces(spans []textSpan) []textSpan {
	out := spans[:0]
	prevSpace := true
	for _, s := range spans {
		var b strings.Builder
		for _, r := range s.text {
			switch r {
			case '\n', '\r':
				continue
			case '\t':
				r = ' '
			}
			if r == ' ' {
				if prevSpace {
					continue
				}
				prevSpace = true
			} else {
				prevSpace = false
			}
			b.WriteRune(r)
		}
		s.text = b.String()
		if s.text != "" || s.pos.absolute() {
			out = append(out, s)
		}
	}
	for n := len(out); n > 0; n = len(out) {
		out[n-1].text = strings.TrimRight(out[n-1].text, " ")
		if out[n-1].text != "" || out[n-1].pos.absolute() {
			break
		}
		out = out[:n-1]
	}
	return out
}
