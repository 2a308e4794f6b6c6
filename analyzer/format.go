package analyzer

import (
	"fmt"
	"strconv"
	"strings"
)

// DisplayBase is the radix values are rendered in.
type DisplayBase uint8

// Display bases.
const (
	Hexadecimal DisplayBase = iota
	Decimal
	Binary
	ASCII
	ASCIIHex
)

var displayBaseNames = []string{"hex", "dec", "bin", "ascii", "asciihex"}

func (b DisplayBase) String() string {
	if int(b) < len(displayBaseNames) {
		return displayBaseNames[b]
	}
	return fmt.Sprintf("DisplayBase(%d)", uint8(b))
}

// ParseDisplayBase parses the names returned by DisplayBase.String.
func ParseDisplayBase(s string) (DisplayBase, error) {
	for i, name := range displayBaseNames {
		if strings.EqualFold(s, name) {
			return DisplayBase(i), nil
		}
	}
	return 0, fmt.Errorf("unknown display base %q", s)
}

// BaseType selects how a multi-byte value is padded.
type BaseType uint8

// Base types.
const (
	// Numeric values zero-pad to the full field width.
	Numeric BaseType = iota
	// Character values render each byte on its own.
	Character
)

// Markers written by ASCII rendering in place of characters that are
// structurally significant to exported files.
const (
	SpaceMarker = "<SPACE>"
	CommaMarker = "<COMMA>"
)

// FormatNumber renders value in base using bitWidth to size the padding.
func FormatNumber(value uint64, base DisplayBase, bitWidth int, baseType BaseType) string {
	if bitWidth <= 0 {
		bitWidth = 8
	}
	if bitWidth < 64 {
		value &= 1<<uint(bitWidth) - 1
	}

	if baseType == Character && bitWidth > 8 {
		n := (bitWidth + 7) / 8
		parts := make([]string, n)
		for i := 0; i < n; i++ {
			b := value >> uint(8*(n-1-i)) & 0xFF
			parts[i] = FormatNumber(b, base, 8, Numeric)
		}
		if base == ASCII {
			return strings.Join(parts, "")
		}
		return strings.Join(parts, " ")
	}

	switch base {
	case Decimal:
		return strconv.FormatUint(value, 10)
	case Binary:
		return fmt.Sprintf("0b%0*b", bitWidth, value)
	case ASCII:
		if value <= 0xFF && isPrintable(byte(value)) {
			return asciiChar(byte(value))
		}
		return hexString(value, bitWidth)
	case ASCIIHex:
		if value <= 0xFF && isPrintable(byte(value)) {
			return fmt.Sprintf("'%s' (%s)", asciiChar(byte(value)), hexString(value, bitWidth))
		}
		return hexString(value, bitWidth)
	default:
		return hexString(value, bitWidth)
	}
}

func hexString(value uint64, bitWidth int) string {
	return fmt.Sprintf("0x%0*X", (bitWidth+3)/4, value)
}

func isPrintable(b byte) bool {
	return b >= 0x20 && b < 0x7F
}

func asciiChar(b byte) string {
	switch b {
	case ' ':
		return SpaceMarker
	case ',':
		return CommaMarker
	default:
		return string(rune(b))
	}
}

var markerReplacer = strings.NewReplacer(SpaceMarker, " ", CommaMarker, ",")

// ExpandMarkers replaces the ASCII rendering markers with the characters
// they stand for.
func ExpandMarkers(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	return markerReplacer.Replace(s)
}
