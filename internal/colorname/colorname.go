// Package colorname maps arbitrary hex colors to the nearest named CSS color.
package colorname

import (
	"math"
	"regexp"
	"strconv"
)

// Unknown is returned for input that is not a six-digit hex color.
const Unknown = "Unknown"

var reHex = regexp.MustCompile(`^#?([a-fA-F\d]{2})([a-fA-F\d]{2})([a-fA-F\d]{2})$`)

type rgb struct{ R, G, B uint8 }

type entry struct {
	Name string
	RGB  rgb
}

// Parse decodes "#RRGGBB" or "RRGGBB" (any case).
func Parse(hex string) (r, g, b uint8, ok bool) {
	m := reHex.FindStringSubmatch(hex)
	if m == nil {
		return 0, 0, 0, false
	}
	var out [3]uint8
	for i := range out {
		v, err := strconv.ParseUint(m[i+1], 16, 8)
		if err != nil {
			return 0, 0, 0, false
		}
		out[i] = uint8(v)
	}
	return out[0], out[1], out[2], true
}

func distance(a, b rgb) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Closest returns the name of the table color at the smallest Euclidean
// RGB distance from hex, or Unknown when hex does not parse.
func Closest(hex string) string {
	r, g, b, ok := Parse(hex)
	if !ok {
		return Unknown
	}
	c := rgb{r, g, b}
	best, bestD := named[0].Name, math.Inf(1)
	for _, e := range named {
		if d := distance(c, e.RGB); d < bestD {
			best, bestD = e.Name, d
		}
	}
	return best
}

// Names lists the table in match order.
func Names() []string {
	out := make([]string, len(named))
	for i, e := range named {
		out[i] = e.Name
	}
	return out
}

// Hex renders the table value for name, or "" when the name is not known.
func Hex(name string) string {
	for _, e := range named {
		if e.Name == name {
			return "#" + hex2(e.RGB.R) + hex2(e.RGB.G) + hex2(e.RGB.B)
		}
	}
	return ""
}

func hex2(v uint8) string {
	s := strconv.FormatUint(uint64(v), 16)
	if len(s) == 1 {
		s = "0" + s
	}
	return s
}
