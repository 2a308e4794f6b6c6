package common

import (
	"testing"

	"go.viam.com/test"
)

func messageKinds(ch Channel) []FieldKind {
	var out []FieldKind
	for _, k := range Fields(ch) {
		if k == KindMessageField || k.IsMessageHeader() || k == KindMessageData {
			out = append(out, k)
		}
	}
	return out
}

func TestMessageFieldOrder(t *testing.T) {
	mosi := messageKinds(MOSI)
	miso := messageKinds(MISO)
	test.That(t, mosi, test.ShouldResemble, miso)
	test.That(t, len(mosi), test.ShouldEqual, 10)

	for _, k := range mosi {
		test.That(t, FieldInfo(MOSI, k).Size, test.ShouldEqual, FieldInfo(MISO, k).Size)
	}
	test.That(t, FieldInfo(MOSI, KindMessageSize).Tag, test.ShouldEqual, "MSG_SIZE")
	test.That(t, FieldInfo(MISO, KindMessageSize).Tag, test.ShouldEqual, "MD_SIZE")
	test.That(t, FieldInfo(MISO, KindNetworkTime).BitSize(), test.ShouldEqual, 32)
	test.That(t, FieldInfo(MOSI, numFieldKinds), test.ShouldResemble, FieldLayout{})
}

func TestKindNames(t *testing.T) {
	errorKinds := []FieldKind{KindErrorGeneric, KindErrorFragmentation, KindErrorClocking}
	for _, ch := range []Channel{MOSI, MISO} {
		t.Run(ch.String(), func(t *testing.T) {
			kinds := append([]FieldKind{}, Fields(ch)[1:]...)
			for _, k := range append(kinds, errorKinds...) {
				name := KindName(ch, k)
				got, ok := KindByTag(ch, name)
				test.That(t, ok, test.ShouldBeTrue)
				test.That(t, got, test.ShouldEqual, k)
			}
		})
	}

	k, ok := KindByTag(MOSI, "spi_ctl")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, k, test.ShouldEqual, KindSpiControl)

	_, ok = KindByTag(MOSI, "SPI_STS")
	test.That(t, ok, test.ShouldBeFalse)
	_, ok = KindByTag(MISO, "BOGUS")
	test.That(t, ok, test.ShouldBeFalse)

	test.That(t, KindErrorClocking.IsError(), test.ShouldBeTrue)
	test.That(t, KindCrc32.IsError(), test.ShouldBeFalse)
	test.That(t, KindMessageField.IsMessageHeader(), test.ShouldBeFalse)
	test.That(t, KindCommandExtension.IsMessageHeader(), test.ShouldBeTrue)
}

func TestChannel(t *testing.T) {
	ch, err := ParseChannel("miso")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ch, test.ShouldEqual, MISO)
	test.That(t, ch.String(), test.ShouldEqual, "MISO")

	_, err = ParseChannel("sclk")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, Channel(7).String(), test.ShouldEqual, "Channel(7)")
}

func TestFlags(t *testing.T) {
	f := FlagFirstFragment | FlagProtocolEvent
	test.That(t, f.String(), test.ShouldEqual, "FIRST|EVENT")
	test.That(t, f.Has(FlagProtocolEvent), test.ShouldBeTrue)
	test.That(t, f.Has(FlagProtocolEvent|FlagError), test.ShouldBeFalse)

	parsed, err := ParseFlags("first|event")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, parsed, test.ShouldEqual, f)

	parsed, err = ParseFlags("-")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, parsed, test.ShouldEqual, Flags(0))

	_, err = ParseFlags("ERR|NOPE")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestRecordPayloads(t *testing.T) {
	rec := Record{Kind: KindCommand, Channel: MOSI, Payload: MessageContext{Command: 0x41, Object: 1}}
	mc, ok := rec.Message()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, mc.Object, test.ShouldEqual, uint8(1))
	_, ok = rec.NetworkTime()
	test.That(t, ok, test.ShouldBeFalse)
	_, ok = rec.Checksum()
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, rec.Layout().Tag, test.ShouldEqual, "CMD")

	rec = Record{Kind: KindCrc32, Channel: MISO, Value: 1, Payload: ChecksumInfo{Calculated: 2}}
	ci, ok := rec.Checksum()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, ci.Calculated, test.ShouldEqual, uint32(2))
}
