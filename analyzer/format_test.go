package analyzer

import (
	"fmt"
	"testing"

	"go.viam.com/test"
)

func TestFormatNumber(t *testing.T) {
	for _, tc := range []struct {
		value    uint64
		base     DisplayBase
		bits     int
		baseType BaseType
		want     string
	}{
		{0x41, Hexadecimal, 8, Numeric, "0x41"},
		{0x41, Hexadecimal, 16, Numeric, "0x0041"},
		{0x1234, Hexadecimal, 12, Numeric, "0x234"},
		{0x1FF, Hexadecimal, 8, Numeric, "0xFF"},
		{5, Hexadecimal, 0, Numeric, "0x05"},
		{5, Decimal, 8, Numeric, "5"},
		{5, Binary, 8, Numeric, "0b00000101"},
		{0x41, ASCII, 8, Numeric, "A"},
		{' ', ASCII, 8, Numeric, SpaceMarker},
		{',', ASCII, 8, Numeric, CommaMarker},
		{0x01, ASCII, 8, Numeric, "0x01"},
		{0x41, ASCIIHex, 8, Numeric, "'A' (0x41)"},
		{0x01, ASCIIHex, 8, Numeric, "0x01"},
		{0x4142, ASCII, 16, Character, "AB"},
		{0x4142, Hexadecimal, 16, Character, "0x41 0x42"},
		{0x4142, Hexadecimal, 16, Numeric, "0x4142"},
	} {
		t.Run(fmt.Sprintf("%x %s %d", tc.value, tc.base, tc.bits), func(t *testing.T) {
			test.That(t, FormatNumber(tc.value, tc.base, tc.bits, tc.baseType), test.ShouldEqual, tc.want)
		})
	}
}

func TestExpandMarkers(t *testing.T) {
	test.That(t, ExpandMarkers("a<SPACE>b<COMMA>c"), test.ShouldEqual, "a b,c")
	test.That(t, ExpandMarkers("<TAG>"), test.ShouldEqual, "<TAG>")
	test.That(t, ExpandMarkers("0x41"), test.ShouldEqual, "0x41")
}

func TestDisplayBaseNames(t *testing.T) {
	for b := Hexadecimal; b <= ASCIIHex; b++ {
		parsed, err := ParseDisplayBase(b.String())
		test.That(t, err, test.ShouldBeNil)
		test.That(t, parsed, test.ShouldEqual, b)
	}
	_, err := ParseDisplayBase("octal")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, DisplayBase(9).String(), test.ShouldEqual, "DisplayBase(9)")
}
