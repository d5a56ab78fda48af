package svg

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/srwiley/rasterx"
)

// parseTransform parses an SVG transform list such as
// "translate(10 20) rotate(45)".
func parseTransform(s string) (rasterx.Matrix2D, error) {
	m := rasterx.Identity
	s = strings.TrimSpace(s)
	for s != "" {
		open := strings.IndexByte(s, '(')
		end := strings.IndexByte(s, ')')
		if open < 0 || end < open {
			return rasterx.Identity, fmt.Errorf("malformed transform %q", s)
		}
		name := strings.TrimSpace(strings.Trim(s[:open], ", \t\r\n"))
		args, err := parseNumbers(s[open+1 : end])
		if err != nil {
			return rasterx.Identity, err
		}
		m, err = applyTransform(m, name, args)
		if err != nil {
			return rasterx.Identity, err
		}
		s = strings.TrimLeft(s[end+1:], ", \t\r\n")
	}
	return m, nil
}

func applyTransform(m rasterx.Matrix2D, name string, a []float64) (rasterx.Matrix2D, error) {
	switch {
	case name == "matrix" && len(a) == 6:
		return m.Mult(rasterx.Matrix2D{A: a[0], B: a[1], C: a[2], D: a[3], E: a[4], F: a[5]}), nil
	case name == "translate" && len(a) == 1:
		return m.Translate(a[0], 0), nil
	case name == "translate" && len(a) == 2:
		return m.Translate(a[0], a[1]), nil
	case name == "scale" && len(a) == 1:
		return m.Scale(a[0], a[0]), nil
	case name == "scale" && len(a) == 2:
		return m.Scale(a[0], a[1]), nil
	case name == "rotate" && len(a) == 1:
		return m.Rotate(a[0] * math.Pi / 180), nil
	case name == "rotate" && len(a) == 3:
		return m.Translate(a[1], a[2]).Rotate(a[0]*math.Pi/180).Translate(-a[1], -a[2]), nil
	case name == "skewX" && len(a) == 1:
		return m.SkewX(a[0] * math.Pi / 180), nil
	case name == "skewY" && len(a) == 1:
		return m.SkewY(a[0] * math.Pi / 180), nil
	}
	return m, fmt.Errorf("unsupported transform %s with %d arguments", name, len(a))
}

// parseNumbers splits a comma or whitespace separated number list.
func parseNumbers(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", f)
		}
		out = append(out, v)
	}
	return out, nil
}

// parseLength parses a length in user units. Percentages and font-relative
// units are resolved against ref.
func parseLength(s string, ref float64) (float64, error) {
	s = strings.TrimSpace(s)
	scale := 1.0
	for _, u := range []struct {
		suffix string
		factor float64
	}{
		{"px", 1},
		{"pt", 4.0 / 3.0},
		{"pc", 16},
		{"mm", 96 / 25.4},
		{"cm", 96 / 2.54},
		{"in", 96},
		{"em", ref},
		{"%", ref / 100},
	} {
		if strings.HasSuffix(s, u.suffix) {
			s = strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
			scale = u.factor
			break
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad length %q", s)
	}
	return v * scale, nil
}

// firstLength parses the first entry of a length list ("10 20 30").
func firstLength(s string, ref float64) (float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty length")
	}
	return parseLength(fields[0], ref)
}
