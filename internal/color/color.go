package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// Range is the number of distinct 24-bit RGB values.
	Range = 1 << 24
	// Max is the largest 24-bit RGB value (0xffffff).
	Max = Range - 1
)

// Value is a 24-bit RGB color packed most-significant-first.
type Value uint32

// FromFloat maps f in [0, 1) onto [0, Max] by floor(f * Range).
// Out of range input is clamped.
func FromFloat(f float64) Value {
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= 1 {
		return Max
	}
	v := math.Floor(f * Range)
	if v > Max {
		return Max
	}
	return Value(v)
}

// Random draws a fresh value from src.
func Random(src Source) Value {
	return FromFloat(src.Float64())
}

// Hex renders v as "#" followed by its lowercase hex digits with no padding,
// so 255 becomes "#ff" and 0 becomes "#0".
func (v Value) Hex() string {
	return "#" + strconv.FormatUint(uint64(v&Max), 16)
}

// PaddedHex renders v as "#rrggbb".
func (v Value) PaddedHex() string {
	return fmt.Sprintf("#%06x", uint32(v&Max))
}

// String implements fmt.Stringer using the unpadded form.
func (v Value) String() string {
	return v.Hex()
}

// Format picks Hex or PaddedHex.
func (v Value) Format(padded bool) string {
	if padded {
		return v.PaddedHex()
	}
	return v.Hex()
}

// RGB unpacks the red, green and blue channels.
func (v Value) RGB() (r, g, b uint8) {
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}

// ParseHex accepts 1 to 6 hex digits, with or without a leading '#'.
// Short strings are read as a number, not as CSS shorthand: "ff" is 0x0000ff.
func ParseHex(s string) (Value, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 0 || len(h) > 6 {
		return 0, fmt.Errorf("invalid hex color %q: want 1-6 digits", s)
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Value(n), nil
}
