package common

import (
	"strings"
	"testing"

	"go.viam.com/rdk/logging"
	"go.viam.com/test"
)

const testSDKLog = `ABCC driver started
ANB_STATUS: ABP_ANB_STATE_SETUP
Msg sent:
[ MsgBuf:0x20001000 Size:0x0 SrcId  :0x1 DestObj:0x1
  Inst  :0x1     Cmd :0x41   CmdExt0:0x6 CmdExt1:0x0 ]
[ ]
Msg received:
[ MsgBuf:0x20001000 Size:0x2 SrcId  :0x1 DestObj:0x1
  Inst  :0x1     Cmd :0x1   CmdExt0:0x6 CmdExt1:0x0 ]
[0x01 0x02 ]
Msg received:
[ MsgBuf:0x20001000 Size:0x3 SrcId  :0x2 DestObj:0x1
  Inst  :0x1     Cmd :0x1   CmdExt0:0x6 CmdExt1:0x0 ]
[0x01 0x02 ]
ANB_STATUS: ABP_ANB_STATE_PROCESS_ACTIVE
`

func TestParseSDKLog(t *testing.T) {
	logger := logging.NewTestLogger(t)
	events, err := ParseSDKLog(strings.NewReader(testSDKLog), logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(events), test.ShouldEqual, 4)

	test.That(t, events[0].Type, test.ShouldEqual, SDKLogAnybusState)
	test.That(t, events[0].AnybusState, test.ShouldEqual, uint8(0))

	sent := events[1]
	test.That(t, sent.Type, test.ShouldEqual, SDKLogSent)
	test.That(t, sent.Message.SourceID, test.ShouldEqual, uint8(1))
	test.That(t, sent.Message.Object, test.ShouldEqual, uint8(1))
	test.That(t, sent.Message.Instance, test.ShouldEqual, uint16(1))
	test.That(t, sent.Message.Command, test.ShouldEqual, uint8(0x41))
	test.That(t, sent.Message.CommandExtension(), test.ShouldEqual, uint16(6))
	test.That(t, len(sent.Message.Data), test.ShouldEqual, 0)

	// The size mismatch of the third block drops it.
	received := events[2]
	test.That(t, received.Type, test.ShouldEqual, SDKLogReceived)
	test.That(t, received.Message.Data, test.ShouldResemble, []byte{0x01, 0x02})

	test.That(t, events[3].Type, test.ShouldEqual, SDKLogAnybusState)
	test.That(t, events[3].AnybusState, test.ShouldEqual, uint8(4))
}

func TestParseSDKLogMalformed(t *testing.T) {
	logger := logging.NewTestLogger(t)
	for _, tc := range []struct {
		name string
		log  string
	}{
		{"truncated", "Msg sent:\n[ MsgBuf:0x0 Size:0x1 SrcId  :0x1 DestObj:0x1\n"},
		{"missing field", "Msg sent:\n[ MsgBuf:0x0 Size:0x0 DestObj:0x1\n  Inst  :0x1 Cmd :0x41 CmdExt0:0x0 CmdExt1:0x0 ]\n[ ]\n"},
		{"bad token", "Msg sent:\n[ Size:0x1 SrcId:0x1 DestObj:0x1\n  Inst:0x1 Cmd:0x41 CmdExt0:0x0 CmdExt1:0x0 ]\n[0x1FF ]\n"},
		{"no bracket", "Msg sent:\n[ Size:0x1 SrcId:0x1 DestObj:0x1\n  Inst:0x1 Cmd:0x41 CmdExt0:0x0 CmdExt1:0x0 ]\n0x01\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			events, err := ParseSDKLog(strings.NewReader(tc.log), logger)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, events, test.ShouldBeEmpty)
		})
	}
}

func TestParseSDKLogMultiLineData(t *testing.T) {
	logger := logging.NewTestLogger(t)
	log := "Msg received:\n" +
		"[ MsgBuf:0x0 Size:0x4 SrcId  :0x9 DestObj:0xF8\n" +
		"  Inst  :0x1     Cmd :0x14   CmdExt0:0x80 CmdExt1:0x3 ]\n" +
		"[0x0A 0x0B\n" +
		"\t0x0C 0x0D ]\n"
	events, err := ParseSDKLog(strings.NewReader(log), logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(events), test.ShouldEqual, 1)
	msg := events[0].Message
	test.That(t, msg.Object, test.ShouldEqual, uint8(0xF8))
	test.That(t, msg.CommandExtension(), test.ShouldEqual, uint16(0x0380))
	test.That(t, msg.Data, test.ShouldResemble, []byte{0x0A, 0x0B, 0x0C, 0x0D})
}
