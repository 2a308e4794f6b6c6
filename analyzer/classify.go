package analyzer

import "github.com/erh/goabcc/common"

// IsAttributeCommand reports whether cmd accesses an attribute, indexed or not.
func IsAttributeCommand(cmd uint8) bool {
	return IsNonIndexedAttributeCommand(cmd) || IsIndexedAttributeCommand(cmd)
}

// IsIndexedAttributeCommand reports whether cmd is Get_Indexed_Attribute or
// Set_Indexed_Attribute.
func IsIndexedAttributeCommand(cmd uint8) bool {
	switch cmd & common.MsgHeaderCmdBits {
	case common.CmdGetIndexedAttribute, common.CmdSetIndexedAttribute:
		return true
	default:
		return false
	}
}

// IsNonIndexedAttributeCommand reports whether cmd is Get_Attribute or
// Set_Attribute.
func IsNonIndexedAttributeCommand(cmd uint8) bool {
	switch cmd & common.MsgHeaderCmdBits {
	case common.CmdGetAttribute, common.CmdSetAttribute:
		return true
	default:
		return false
	}
}

// IsCommandMessage reports whether the header carries a command rather
// than a response.
func IsCommandMessage(header common.MessageContext) bool {
	return header.Command&common.MsgHeaderCBit != 0
}

// IsErrorResponse reports whether the header carries an error response.
func IsErrorResponse(header common.MessageContext) bool {
	return header.Command&common.MsgHeaderEBit != 0
}

// Segmentation is the direction of a message exchange that uses
// segmentation, if any.
type Segmentation uint8

// Segmentation categories.
const (
	SegmentationNone Segmentation = iota
	SegmentationCommand
	SegmentationResponse
)

func (s Segmentation) String() string {
	switch s {
	case SegmentationCommand:
		return "Command"
	case SegmentationResponse:
		return "Response"
	default:
		return "None"
	}
}

type segmentedCommand struct {
	object  uint8
	command uint8
}

// Object specific commands whose command or response data is carried in
// segments.
var segmentedCommands = map[segmentedCommand]Segmentation{
	{0xF8, 0x14}: SegmentationCommand,  // EIP Process_CIP_Obj_Request_Ext
	{0xEC, 0x15}: SegmentationResponse, // MDD Get_List
	{0x0A, 0x16}: SegmentationCommand,  // FSI File_Write
	{0x0A, 0x15}: SegmentationResponse, // FSI File_Read
	{0xEA, 0x16}: SegmentationCommand,  // AFSI File_Write
	{0xEA, 0x15}: SegmentationResponse, // AFSI File_Read
}

// SegmentationCategory returns which direction of the exchange the header
// belongs to is segmented.
func SegmentationCategory(header common.MessageContext) Segmentation {
	key := segmentedCommand{header.Object, header.Command & common.MsgHeaderCmdBits}
	return segmentedCommands[key]
}

// IsSegmentedMessage reports whether a message travelling in the given
// direction takes part in segmentation.
func IsSegmentedMessage(isCommand bool, category Segmentation) bool {
	if isCommand {
		return category == SegmentationCommand
	}
	return category == SegmentationResponse
}
