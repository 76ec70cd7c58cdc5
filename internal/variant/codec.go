// Package variant parses icon variant descriptors and renders their canonical,
// order-independent form used in cache keys.
//
// A descriptor is a loose set of flags:
//
//	gs                  grayscale (also "grayscale", "greyscale")
//	c_RRGGBB            solid border (also "solid: RRGGBB")
//	cg_RRGGBB_RRGGBB    gradient border (also "gradient: RRGGBB,RRGGBB")
//	bw_N                border width, clamped to [MinBorderWidth, MaxBorderWidth]
//
// Flags may appear in any order. Anything unrecognized is ignored.
package variant

import (
	"fmt"
	"image/color"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

const (
	MinBorderWidth     = 1
	MaxBorderWidth     = 5
	DefaultBorderWidth = 2

	// Base is the canonical code of a descriptor with no active modifiers.
	Base = "base"

	separator = "_"
)

var (
	hexPattern    = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)
	digitsPattern = regexp.MustCompile(`^\d+$`)
)

// BorderKind selects how the border stroke is colored.
type BorderKind int

const (
	BorderNone BorderKind = iota
	BorderSolid
	BorderGradient
)

// Border describes the stroke drawn inward from the icon's silhouette.
// End is only meaningful for BorderGradient.
type Border struct {
	Kind  BorderKind
	Start color.RGBA
	End   color.RGBA
}

// Descriptor is the structured form of a variant descriptor.
type Descriptor struct {
	Grayscale bool
	Border    Border
	Width     int
}

// Parse reads a free-form descriptor. It never fails: malformed colors and
// unknown tokens are treated as absent, out-of-range widths are clamped.
func Parse(raw string) Descriptor {
	d := Descriptor{Width: DefaultBorderWidth}

	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '_' || r == ',' || r == ':' || r == ' ' || r == '\t'
	})

	var solid, gradient *Border
	widthSeen := false

	for i := 0; i < len(tokens); i++ {
		switch strings.ToLower(tokens[i]) {
		case "gs", "grayscale", "greyscale":
			d.Grayscale = true
		case "cg", "gradient":
			if i+2 >= len(tokens) {
				continue
			}
			start, okStart := parseHex(tokens[i+1])
			end, okEnd := parseHex(tokens[i+2])
			if !okStart || !okEnd {
				continue
			}
			if gradient == nil {
				gradient = &Border{Kind: BorderGradient, Start: start, End: end}
			}
			i += 2
		case "c", "solid":
			if i+1 >= len(tokens) {
				continue
			}
			c, ok := parseHex(tokens[i+1])
			if !ok {
				continue
			}
			if solid == nil {
				solid = &Border{Kind: BorderSolid, Start: c, End: c}
			}
			i++
		case "bw", "width":
			if i+1 >= len(tokens) || !digitsPattern.MatchString(tokens[i+1]) {
				continue
			}
			if !widthSeen {
				d.Width = parseWidth(tokens[i+1])
				widthSeen = true
			}
			i++
		}
	}

	switch {
	case gradient != nil:
		d.Border = *gradient
	case solid != nil:
		d.Border = *solid
	}

	return d
}

// ClampWidth limits a border width to [MinBorderWidth, MaxBorderWidth].
func ClampWidth(width int) int {
	if width < MinBorderWidth {
		return MinBorderWidth
	}
	if width > MaxBorderWidth {
		return MaxBorderWidth
	}
	return width
}

// IsBase reports whether the descriptor leaves the icon untouched.
func (d Descriptor) IsBase() bool {
	return d.Canonical() == Base
}

// Canonical renders the descriptor with tokens in a fixed order: grayscale,
// border, then width when it differs from DefaultBorderWidth.
func (d Descriptor) Canonical() string {
	parts := make([]string, 0, 3)

	if d.Grayscale {
		parts = append(parts, "gs")
	}

	switch d.Border.Kind {
	case BorderSolid:
		parts = append(parts, "c"+separator+hexString(d.Border.Start))
	case BorderGradient:
		parts = append(parts, "cg"+separator+hexString(d.Border.Start)+separator+hexString(d.Border.End))
	}

	width := d.Width
	if width == 0 {
		width = DefaultBorderWidth
	}
	if width = ClampWidth(width); width != DefaultBorderWidth {
		parts = append(parts, "bw"+separator+strconv.Itoa(width))
	}

	if len(parts) == 0 {
		return Base
	}
	return strings.Join(parts, separator)
}

// String implements fmt.Stringer.
func (d Descriptor) String() string {
	return d.Canonical()
}

// Canonicalize is shorthand for Parse(raw).Canonical().
func Canonicalize(raw string) string {
	return Parse(raw).Canonical()
}

// Format renders a descriptor back into a raw descriptor string suitable for
// storing in a button definition. The base descriptor formats as "".
func Format(d Descriptor) string {
	code := d.Canonical()
	if code == Base {
		return ""
	}
	return code
}

// CacheKey identifies a rendered icon: "{sheet basename}_{icon}_{canonical}".
func CacheKey(sheetID string, iconIndex int, d Descriptor) string {
	return fmt.Sprintf("%s_%d_%s", SheetBase(sheetID), iconIndex, d.Canonical())
}

// SheetBase strips directories and the file extension from a sheet identifier.
func SheetBase(sheetID string) string {
	base := filepath.Base(sheetID)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func parseHex(token string) (color.RGBA, bool) {
	if !hexPattern.MatchString(token) {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(token, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
}

func parseWidth(token string) int {
	n, err := strconv.Atoi(token)
	if err != nil {
		// only overflow can fail here; the token is all digits
		return MaxBorderWidth
	}
	return ClampWidth(n)
}

func hexString(c color.RGBA) string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}
