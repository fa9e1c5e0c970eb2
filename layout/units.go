// Package layout implements the print pipeline core: the dimension
// standardizer, the text measurement service and the pagination engines.
// All page geometry is computed in millimeters; text measurement runs in
// CSS pixels and is converted at the boundary.
package layout

import (
	"strconv"
	"strings"
)

// Unit represents the unit a length value was authored in.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers like factors
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
	UnitPT               // points
	UnitPX               // CSS pixels
)

// Conversion constants. These are fixed physical-unit facts, not tunables:
// 1pt = 4/3 px, 96px = 25.4mm, 1pt = 0.352777mm.
const (
	PtToMm  = 0.352777
	MmToPt  = 1.0 / PtToMm
	PxPerPt = 4.0 / 3.0
	PxPerMm = 96.0 / 25.4
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	case UnitPX:
		return "px"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// To converts this length to the target unit. Supported targets: UnitMM,
// UnitPT, UnitPX.
func (l Length) To(target Unit) float64 {
	mm := l.Value
	switch l.Unit {
	case UnitMM, UnitNone:
		// unit-less values are treated as mm
	case UnitCM:
		mm = l.Value * 10
	case UnitIN:
		mm = l.Value * 25.4
	case UnitPT:
		mm = l.Value * PtToMm
	case UnitPX:
		mm = l.Value / PxPerMm
	}
	switch target {
	case UnitPT:
		return mm * MmToPt
	case UnitPX:
		return mm * PxPerMm
	default:
		return mm
	}
}

func (l Length) ToMM() float64 { return l.To(UnitMM) }
func (l Length) ToPT() float64 { return l.To(UnitPT) }
func (l Length) ToPX() float64 { return l.To(UnitPX) }

// ParseLength parses a length string such as "12pt", "5mm" or "16px",
// preserving its unit. Unknown or malformed input yields a zero Length.
func ParseLength(value string) Length {
	v := strings.TrimSpace(strings.ToLower(value))
	if v == "" {
		return Length{}
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}, {"px", UnitPX}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}
	}
	return Length{Value: f, Unit: unit}
}

// PxFromPt converts a font size in points to CSS pixels.
func PxFromPt(pt float64) float64 { return pt * PxPerPt }

// MmFromPx converts a measured pixel height to millimeters.
func MmFromPx(px float64) float64 { return px / PxPerMm }
