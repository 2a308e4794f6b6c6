package analyzer

import (
	"fmt"
	"testing"

	"go.viam.com/test"

	"github.com/erh/goabcc/common"
)

func TestLookup(t *testing.T) {
	d := DefaultDictionary()

	e := Lookup(d.Commands, common.CmdGetAttribute)
	test.That(t, e.Found, test.ShouldBeTrue)
	test.That(t, e.Name, test.ShouldEqual, "Get_Attribute")
	test.That(t, e.Alert(), test.ShouldBeFalse)

	test.That(t, Lookup(d.Commands, 0x3E), test.ShouldResemble, Entry{})
	test.That(t, Lookup(nil, 1).Found, test.ShouldBeFalse)

	e = Lookup(d.Errors, 0x02)
	test.That(t, e.Name, test.ShouldEqual, "Invalid message format")
	test.That(t, e.Alert(), test.ShouldBeTrue)

	e = Lookup(d.Objects, 0x06)
	test.That(t, e.Found, test.ShouldBeTrue)
	test.That(t, e.Severity, test.ShouldEqual, SeverityAlert)
}

func TestTablesSorted(t *testing.T) {
	d := DefaultDictionary()
	tables := []Table{d.Objects, d.Commands, d.Errors, d.NetworkTypes, anybusExceptions, spiControlNames, applicationStates}
	for _, table := range tables {
		for i := 1; i < table.Len(); i++ {
			test.That(t, table[i-1].code, test.ShouldBeLessThan, table[i].code)
		}
	}
}

func TestAttribute(t *testing.T) {
	d := DefaultDictionary()

	e, known := d.Attribute(common.ObjectAnybus, 1, common.AnybusAttrException)
	test.That(t, known, test.ShouldBeTrue)
	test.That(t, e.Name, test.ShouldEqual, "Exception")
	test.That(t, e.DataType, test.ShouldEqual, "ENUM")

	e, known = d.Attribute(common.ObjectAnybus, 0, 3)
	test.That(t, known, test.ShouldBeTrue)
	test.That(t, e.Name, test.ShouldEqual, "Number of Instances")

	e, known = d.Attribute(common.ObjectAnybus, 1, 0xF0)
	test.That(t, known, test.ShouldBeTrue)
	test.That(t, e.Found, test.ShouldBeFalse)

	_, known = d.Attribute(0x80, 1, 1)
	test.That(t, known, test.ShouldBeFalse)

	_, _, known = d.AttributeTables(0x05)
	test.That(t, known, test.ShouldBeFalse)

	s, alert, found := d.attributeString(common.ObjectAnybus, 1, 0x0306, true, Hexadecimal)
	test.That(t, found, test.ShouldBeTrue)
	test.That(t, alert, test.ShouldBeFalse)
	test.That(t, s, test.ShouldEqual, "Index 3, Exception")
}

func TestExceptionResolution(t *testing.T) {
	rsp := common.MessageContext{
		Command:          common.CmdGetAttribute,
		Object:           common.ObjectAnybus,
		Instance:         1,
		CommandExtension: common.AnybusAttrException,
	}

	idx, ok := ExceptionTableIndex(false, -1, rsp)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, idx, test.ShouldEqual, 0)
	e := ExceptionString(false, idx, 0x01)
	test.That(t, e.Name, test.ShouldEqual, "Application timeout")
	test.That(t, e.Alert(), test.ShouldBeTrue)
	test.That(t, ExceptionString(false, idx, 0x00).Alert(), test.ShouldBeFalse)
	test.That(t, ExceptionString(false, 1, 0x01).Found, test.ShouldBeFalse)

	cmd := rsp
	cmd.Command |= common.MsgHeaderCBit
	_, ok = ExceptionTableIndex(false, -1, cmd)
	test.That(t, ok, test.ShouldBeFalse)

	errRsp := rsp
	errRsp.Command |= common.MsgHeaderEBit
	_, ok = ExceptionTableIndex(false, -1, errRsp)
	test.That(t, ok, test.ShouldBeFalse)

	other := rsp
	other.Instance = 2
	_, ok = ExceptionTableIndex(false, -1, other)
	test.That(t, ok, test.ShouldBeFalse)

	network := common.MessageContext{
		Command:          common.CmdGetAttribute,
		Object:           common.ObjectNetwork,
		Instance:         1,
		CommandExtension: common.NetworkAttrException,
	}
	_, ok = ExceptionTableIndex(false, -1, network)
	test.That(t, ok, test.ShouldBeFalse)
	_, ok = ExceptionTableIndex(true, -1, network)
	test.That(t, ok, test.ShouldBeFalse)

	nwIdx, ok := NetworkTypeIndex(0x0085)
	test.That(t, ok, test.ShouldBeTrue)
	idx, ok = ExceptionTableIndex(true, nwIdx, network)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, ExceptionString(true, idx, 0x04).Name, test.ShouldEqual, "Missing MAC Address")
	test.That(t, ExceptionString(true, 99, 0x04).Found, test.ShouldBeFalse)

	_, ok = NetworkTypeIndex(0x0001)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestClassify(t *testing.T) {
	test.That(t, IsAttributeCommand(common.MsgHeaderCBit|common.CmdGetAttribute), test.ShouldBeTrue)
	test.That(t, IsAttributeCommand(common.CmdSetIndexedAttribute), test.ShouldBeTrue)
	test.That(t, IsAttributeCommand(0x14), test.ShouldBeFalse)
	test.That(t, IsIndexedAttributeCommand(common.CmdGetAttribute), test.ShouldBeFalse)
	test.That(t, IsNonIndexedAttributeCommand(common.MsgHeaderEBit|common.CmdSetAttribute), test.ShouldBeTrue)

	test.That(t, MessageKindOf(0x41), test.ShouldEqual, MessageCommand)
	test.That(t, MessageKindOf(0x01), test.ShouldEqual, MessageResponse)
	test.That(t, MessageKindOf(0x82), test.ShouldEqual, MessageErrorResponse)
	test.That(t, MessageKindOf(0xC2), test.ShouldEqual, MessageErrorResponse)
}

func TestSegmentationCategory(t *testing.T) {
	for key, want := range segmentedCommands {
		for _, isCommand := range []bool{true, false} {
			header := common.MessageContext{Object: key.object, Command: key.command}
			if isCommand {
				header.Command |= common.MsgHeaderCBit
			}
			cat := SegmentationCategory(header)
			test.That(t, cat, test.ShouldEqual, want)
			test.That(t, IsSegmentedMessage(isCommand, cat), test.ShouldEqual,
				(isCommand && want == SegmentationCommand) || (!isCommand && want == SegmentationResponse))
		}
	}
	header := common.MessageContext{Object: common.ObjectAnybus, Command: common.MsgHeaderCBit | 0x14}
	test.That(t, SegmentationCategory(header), test.ShouldEqual, SegmentationNone)
	test.That(t, IsSegmentedMessage(true, SegmentationNone), test.ShouldBeFalse)
	test.That(t, SegmentationResponse.String(), test.ShouldEqual, "Response")
}

func TestSegmentationBits(t *testing.T) {
	segCommand := common.MessageContext{Object: 0xF8, Command: common.MsgHeaderCBit | 0x14}
	segResponse := common.MessageContext{Object: 0xEC, Command: 0x15}
	plainCommand := common.MessageContext{Object: 0xF8, Command: common.MsgHeaderCBit | 0x10}
	plainResponse := common.MessageContext{Object: 0xF8, Command: 0x14}

	type want struct {
		text  string
		alert bool
	}
	unknown := want{segmentUnknown, true}
	aborted := want{segmentAborted, true}
	first := want{"FIRST_SEGMENT", false}
	last := want{"LAST_SEGMENT", false}
	both := want{"FIRST_SEGMENT | LAST_SEGMENT", false}
	middle := want{"SEGMENT", false}
	none := want{"", false}

	for _, tc := range []struct {
		name   string
		header common.MessageContext
		wants  [8]want
	}{
		{"segmented command", segCommand, [8]want{middle, first, last, both, aborted, aborted, aborted, aborted}},
		{"segmented response", segResponse, [8]want{middle, first, last, both, unknown, unknown, unknown, unknown}},
		{"plain command", plainCommand, [8]want{none, unknown, unknown, unknown, aborted, unknown, unknown, unknown}},
		{"plain response", plainResponse, [8]want{none, unknown, unknown, unknown, unknown, unknown, unknown, unknown}},
	} {
		for ext1 := 0; ext1 < 256; ext1++ {
			t.Run(fmt.Sprintf("%s %02X", tc.name, ext1), func(t *testing.T) {
				text, alert := segmentationString(tc.header, uint8(ext1))
				expected := unknown
				if ext1 < len(tc.wants) {
					expected = tc.wants[ext1]
				}
				test.That(t, text, test.ShouldEqual, expected.text)
				test.That(t, alert, test.ShouldEqual, expected.alert)
			})
		}
	}
}

func TestExtensionString(t *testing.T) {
	d := DefaultDictionary()
	cip := common.MessageContext{Object: 0xF8, Command: common.MsgHeaderCBit | 0x14}
	s, alert, found := d.extensionString(cip, 0x0180, Hexadecimal)
	test.That(t, found, test.ShouldBeTrue)
	test.That(t, alert, test.ShouldBeFalse)
	test.That(t, s, test.ShouldEqual, "0x80 | FIRST_SEGMENT")

	s, _, _ = d.extensionString(cip, 0x0080, Hexadecimal)
	test.That(t, s, test.ShouldEqual, "0x80 | SEGMENT")

	get := common.MessageContext{Object: common.ObjectAnybus, Instance: 1, Command: common.MsgHeaderCBit | common.CmdGetAttribute}
	s, alert, found = d.extensionString(get, 1, Hexadecimal)
	test.That(t, found, test.ShouldBeTrue)
	test.That(t, alert, test.ShouldBeFalse)
	test.That(t, s, test.ShouldEqual, "Module Type")

	get.Object = 0x05
	_, _, found = d.extensionString(get, 3, Hexadecimal)
	test.That(t, found, test.ShouldBeFalse)
}

func TestCommandString(t *testing.T) {
	d := DefaultDictionary()
	for _, tc := range []struct {
		cmd, obj uint8
		want     string
		alert    bool
	}{
		{0x41, 0x01, "Get_Attribute", false},
		{0x14, 0xF8, "Obj: Process_CIP_Obj_Request_Ext", false},
		{0x1F, 0xF8, "Obj: Unknown: 0x1F", true},
		{0x10, 0x05, "Obj: 0x10", true},
		{0x09, 0x01, "Reserved: 0x09", true},
		{0x00, 0x01, "Reserved: 0x00", true},
	} {
		s, alert := d.commandString(tc.cmd, tc.obj, Hexadecimal)
		test.That(t, s, test.ShouldEqual, tc.want)
		test.That(t, alert, test.ShouldEqual, tc.alert)
	}
}
