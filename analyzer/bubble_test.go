package analyzer

import (
	"strings"
	"testing"

	"go.viam.com/test"

	"github.com/erh/goabcc/common"
)

func TestWriteBubble(t *testing.T) {
	layers := WriteBubble(nil, "CMD", "0x12345678", "abcd", SeverityNone, TagFirst)
	test.That(t, layers, test.ShouldResemble, []string{
		"C",
		"CMD",
		"CMD: 0x12345678",
		"    CMD: (abcd)    ",
	})

	pad := strings.Repeat(" ", 7)
	layers = WriteBubble(nil, "MD", "0x01", "x", SeverityAlert, ValueFirst)
	test.That(t, layers, test.ShouldResemble, []string{
		"!",
		AlertPrefix + "0x01",
		AlertPrefix + "MD: 0x01",
		pad + "MD: (x)" + pad,
	})

	layers = WriteBubble(nil, "PAD", "0x0000", "", SeverityNone, TagFirst)
	test.That(t, layers, test.ShouldResemble, []string{"P", "PAD", "PAD: [0x0000]"})

	layers = WriteBubble(nil, "OBJ", "0x01", "Anybus Object", SeverityNone, ValueFirst)
	test.That(t, layers, test.ShouldResemble, []string{"0x01", "OBJ: 0x01", "OBJ: (Anybus Object)"})

	layers = WriteBubble([]string{"keep"}, "", "0x01", "", SeverityNone, TagFirst)
	test.That(t, layers, test.ShouldResemble, []string{"keep", "0x01"})
}

func TestBubbleChannels(t *testing.T) {
	b := newCaptureBuilder()
	mosiCrc := b.add(common.MOSI, common.KindCrc32, 0x11, 0, common.ChecksumInfo{Calculated: 0x11})
	misoCrc := b.add(common.MISO, common.KindCrc32, 0x12, common.FlagProtocolEvent, common.ChecksumInfo{Calculated: 0x13})
	frag := b.add(common.MOSI, common.KindErrorFragmentation, 0, common.FlagError|common.FlagFragmentError, nil)
	ana := newTestAnalyzer(t, b.c)

	layers := ana.RenderBubbleText(mosiCrc, common.MOSI, Hexadecimal)
	test.That(t, layers[0], test.ShouldEqual, "C")
	test.That(t, layers[len(layers)-1], test.ShouldContainSubstring, "Received 0x00000011 == Calculated 0x00000011")
	test.That(t, ana.RenderBubbleText(mosiCrc, common.MISO, Hexadecimal), test.ShouldBeEmpty)

	layers = ana.RenderBubbleText(misoCrc, common.MISO, Hexadecimal)
	test.That(t, layers[0], test.ShouldEqual, "!")
	test.That(t, layers[1], test.ShouldEqual, AlertPrefix+"CRC32")
	test.That(t, layers[len(layers)-1], test.ShouldContainSubstring, "ERROR - Received 0x00000012 != Calculated 0x00000013")

	mosi := ana.RenderBubbleText(frag, common.MOSI, Hexadecimal)
	miso := ana.RenderBubbleText(frag, common.MISO, Hexadecimal)
	test.That(t, mosi, test.ShouldResemble, miso)
	test.That(t, mosi[0], test.ShouldEqual, "!")
	test.That(t, mosi[len(mosi)-1], test.ShouldContainSubstring, "Fragmented ABCC SPI Packet.")

	test.That(t, ana.RenderBubbleText(99, common.MOSI, Hexadecimal), test.ShouldBeNil)
}

func lastLayer(layers []string) string {
	return strings.TrimSpace(layers[len(layers)-1])
}

func TestBubbleMessageFields(t *testing.T) {
	b := newCaptureBuilder()
	b.packet()
	b.add(common.MOSI, common.KindSpiControl, 0x9B, 0, nil)
	getExc := testHeader{sourceID: 3, object: common.ObjectAnybus, instance: 1, command: common.CmdGetAttribute, ext: common.AnybusAttrException}
	b.message(common.MISO, getExc, []byte{0x01}, 0)
	excData := b.c.RecordCount() - 1

	errRsp := testHeader{sourceID: 4, object: common.ObjectApplicationData, instance: 0, command: common.MsgHeaderEBit | common.CmdSetAttribute, ext: 5}
	b.message(common.MISO, errRsp, []byte{0xFF, 0x02, 0x05}, common.FlagProtocolEvent)
	errLast := b.c.RecordCount() - 1

	ana := newTestAnalyzer(t, b.c, func(c *Config) { c.NetworkType = 0x0085 })

	layers := ana.RenderBubbleText(0, common.MOSI, Hexadecimal)
	test.That(t, lastLayer(layers), test.ShouldEqual, "SPI_CTL: (TOGGLE | LAST_FRAG | M | CMDCNT1 | WRPD_VALID)")

	layers = ana.RenderBubbleText(excData, common.MISO, Hexadecimal)
	test.That(t, layers[0], test.ShouldEqual, "!")
	test.That(t, lastLayer(layers), test.ShouldEqual, "MD: (Application timeout)")

	find := func(from uint64, kind common.FieldKind) uint64 {
		for i := from; i < b.c.RecordCount(); i++ {
			if b.c.Record(i).Kind == kind {
				return i
			}
		}
		t.Fatalf("no %v record", kind)
		return 0
	}
	errStart := excData + 1

	layers = ana.RenderBubbleText(find(errStart, common.KindInstance), common.MISO, Hexadecimal)
	test.That(t, lastLayer(layers), test.ShouldEqual, "INST: (Object Instance)")

	layers = ana.RenderBubbleText(find(errStart, common.KindCommand), common.MISO, Hexadecimal)
	test.That(t, layers[0], test.ShouldEqual, "!")
	test.That(t, layers[1], test.ShouldEqual, AlertPrefix+"ERR_RSP")
	test.That(t, lastLayer(layers), test.ShouldEqual, "ERR_RSP: (Set_Attribute)")

	layers = ana.RenderBubbleText(errLast-2, common.MISO, Hexadecimal)
	test.That(t, layers[1], test.ShouldEqual, AlertPrefix+"ERR_CODE")
	test.That(t, lastLayer(layers), test.ShouldEqual, "ERR_CODE: (Object specific error)")

	layers = ana.RenderBubbleText(errLast-1, common.MISO, Hexadecimal)
	test.That(t, layers[1], test.ShouldEqual, AlertPrefix+"OBJ_ERR")
	test.That(t, lastLayer(layers), test.ShouldEqual, "OBJ_ERR: (Invalid total size)")

	layers = ana.RenderBubbleText(errLast, common.MISO, Hexadecimal)
	test.That(t, layers[1], test.ShouldEqual, AlertPrefix+"NW_ERR")
	test.That(t, lastLayer(layers), test.ShouldEqual, "NW_ERR: (EtherNet/IP: 0x05)")

	layers = ana.RenderBubbleText(find(errStart, common.KindMessageReserved1), common.MISO, Hexadecimal)
	test.That(t, layers[0], test.ShouldEqual, "R")
}

func TestBubbleProcessData(t *testing.T) {
	b := newCaptureBuilder()
	b.packet()
	b.add(common.MOSI, common.KindProcessData, 0x10, 0, nil)
	b.add(common.MISO, common.KindProcessData, 0x20, 0, nil)
	second := b.add(common.MOSI, common.KindProcessData, 0x11, 0, nil)
	ana := newTestAnalyzer(t, b.c)

	layers := ana.RenderBubbleText(second, common.MOSI, Hexadecimal)
	test.That(t, layers, test.ShouldResemble, []string{"0x11", "PD: 0x11", "PD: ( [0x11] Byte #1 )"})
}

func TestBubbleSizeLimit(t *testing.T) {
	b := newCaptureBuilder()
	size := b.add(common.MOSI, common.KindMessageSize, 300, 0, nil)
	ana := newTestAnalyzer(t, b.c, func(c *Config) { c.MessageSizeLimit = 256 })
	layers := ana.RenderBubbleText(size, common.MOSI, Decimal)
	test.That(t, layers[0], test.ShouldEqual, "!")
	test.That(t, lastLayer(layers), test.ShouldEqual, "MSG_SIZE: (300 Bytes, Exceeds Maximum Size of 256)")
}
