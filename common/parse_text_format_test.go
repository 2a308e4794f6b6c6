package common

import (
	"testing"
	"time"

	"go.viam.com/test"
)

func TestTextParser(t *testing.T) {
	p := TextParserInstance
	var line CaptureLine

	msg := "0.000012500,3,MOSI,CMD,EVENT,0x41,ctx=41:01:0001:0006:0000"
	test.That(t, p.Detect(msg), test.ShouldBeTrue)
	test.That(t, JSONParserInstance.Detect(msg), test.ShouldBeFalse)
	err := p.Parse(msg, &line)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, line.Start, test.ShouldEqual, 12500*time.Nanosecond)
	test.That(t, line.InPacket, test.ShouldBeTrue)
	test.That(t, line.Packet, test.ShouldEqual, uint64(3))
	test.That(t, line.Channel, test.ShouldEqual, MOSI)
	test.That(t, line.Kind, test.ShouldEqual, KindCommand)
	test.That(t, line.Flags, test.ShouldEqual, FlagProtocolEvent)
	test.That(t, line.Value, test.ShouldEqual, uint64(0x41))
	test.That(t, line.Payload, test.ShouldResemble, MessageContext{
		Command: 0x41, Object: 1, Instance: 1, CommandExtension: 6,
	})

	out, err := p.Marshal(&line)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldEqual, msg+"\n")

	msg = "1.5,-,MISO,TIME,-,0x1234,net=00001234:1:0"
	err = p.Parse(msg, &line)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, line.InPacket, test.ShouldBeFalse)
	test.That(t, line.Kind, test.ShouldEqual, KindNetworkTime)
	test.That(t, line.Payload, test.ShouldResemble, NetworkTimeInfo{Delta: 0x1234, NewReadProcessData: true})
	out, err = p.Marshal(&line)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldEqual, "1.500000000,-,MISO,TIME,-,0x1234,net=00001234:1:0\n")

	err = p.Parse("0.1,0,MISO,CRC32,EVENT,0x10,crc=00000011", &line)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, line.Payload, test.ShouldResemble, ChecksumInfo{Calculated: 0x11})

	err = p.Parse("0.1,0,MOSI,RES1,-,0", &line)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, line.Kind, test.ShouldEqual, KindReserved1)
	test.That(t, line.Payload, test.ShouldResemble, RawValue{})
}

func TestTextParserErrors(t *testing.T) {
	var line CaptureLine
	for _, msg := range []string{
		"0.1,1,MOSI,NOPE,-,0x0",
		"x,1,MOSI,CMD,-,0x1",
		"0.1,1,MOSI,CMD",
		"0.1,1,SCLK,CMD,-,0x1",
		"0.1,1,MOSI,CMD,BOGUS,0x1",
		"0.1,1,MOSI,CMD,-,0x1,ctx=1:2",
		"0.1,1,MOSI,CMD,-,0x1,zz=1",
	} {
		t.Run(msg, func(t *testing.T) {
			test.That(t, TextParserInstance.Parse(msg, &line), test.ShouldNotBeNil)
		})
	}
	test.That(t, TextParserInstance.Detect("# comment"), test.ShouldBeFalse)
}

func TestJSONParser(t *testing.T) {
	p := JSONParserInstance
	var line CaptureLine

	msg := `{"t":0.0000125,"packet":3,"ch":"MOSI","field":"CMD","flags":["EVENT"],"value":65,` +
		`"msg":{"cmd":65,"obj":1,"inst":1,"ext":6,"idx":0}}`
	test.That(t, p.Detect(msg), test.ShouldBeTrue)
	test.That(t, TextParserInstance.Detect(msg), test.ShouldBeFalse)
	test.That(t, FindParser(msg), test.ShouldEqual, p)

	err := p.Parse(msg, &line)
	test.That(t, err, test.ShouldBeNil)
	var textLine CaptureLine
	err = TextParserInstance.Parse("0.000012500,3,MOSI,CMD,EVENT,0x41,ctx=41:01:0001:0006:0000", &textLine)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, line, test.ShouldResemble, textLine)

	out, err := p.Marshal(&line)
	test.That(t, err, test.ShouldBeNil)
	var again CaptureLine
	err = p.Parse(out, &again)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, again, test.ShouldResemble, line)

	err = p.Parse(`{"t":2,"ch":"MISO","field":"TIME","value":7,"net":{"delta":7,"new_rd_pd":true,"wr_pd_valid":true}}`, &line)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, line.InPacket, test.ShouldBeFalse)
	test.That(t, line.Start, test.ShouldEqual, 2*time.Second)
	test.That(t, line.Payload, test.ShouldResemble, NetworkTimeInfo{Delta: 7, NewReadProcessData: true, WriteProcessDataValid: true})

	test.That(t, p.Parse(`[1,2]`, &line), test.ShouldNotBeNil)
	test.That(t, p.Parse(`{"ch":"MOSI","field":"TIME"}`, &line), test.ShouldNotBeNil)
	test.That(t, p.Parse(`{"ch":"MOSI","field":"CMD","flags":["NOPE"]}`, &line), test.ShouldNotBeNil)
}

func TestFindParserByName(t *testing.T) {
	test.That(t, FindParserByName("abcc_text"), test.ShouldEqual, TextParserInstance)
	test.That(t, FindParserByName("ABCC_JSON"), test.ShouldEqual, JSONParserInstance)
	test.That(t, FindParserByName("plain"), test.ShouldBeNil)
}
