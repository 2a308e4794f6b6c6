package analyzer

import (
	"fmt"
	"strings"

	"github.com/erh/goabcc/common"
)

const bitSeparator = " | "

// commandString names the command of a message header. The alert result is
// set for reserved or unknown commands.
func (d *Dictionary) commandString(cmd, obj uint8, base DisplayBase) (string, bool) {
	code := cmd & common.MsgHeaderCmdBits
	switch {
	case isStandardCommand(code):
		if e := Lookup(d.Commands, uint32(code)); e.Found {
			return e.Name, e.Alert()
		}
	case isObjectSpecificCommand(code):
		table, ok := d.ObjectCommands(obj)
		if !ok {
			return "Obj: " + FormatNumber(uint64(code), base, 8, Numeric), true
		}
		if e := Lookup(table, uint32(code)); e.Found {
			return "Obj: " + e.Name, e.Alert()
		}
		return "Obj: Unknown: " + FormatNumber(uint64(code), base, 8, Numeric), true
	}
	return "Reserved: " + FormatNumber(uint64(code), base, 8, Numeric), true
}

// attributeString names the attribute addressed by a command extension.
// found is false for objects without named attributes, in which case
// nothing is rendered.
func (d *Dictionary) attributeString(obj uint8, inst, ext uint16, indexed bool, base DisplayBase) (s string, alert, found bool) {
	var prefix string
	attr := uint8(ext)
	if indexed {
		prefix = fmt.Sprintf("Index %d, ", uint8(ext>>8))
	}
	e, known := d.Attribute(obj, inst, attr)
	if !known {
		return "", false, false
	}
	if !e.Found {
		return prefix + "Unknown: " + FormatNumber(uint64(attr), base, 8, Numeric), true, true
	}
	return prefix + e.Name, e.Alert(), true
}

func (d *Dictionary) objectString(obj uint8, base DisplayBase) (string, bool) {
	if e := Lookup(d.Objects, uint32(obj)); e.Found {
		return e.Name, e.Alert()
	}
	return "Unknown: " + FormatNumber(uint64(obj), base, 8, Numeric), true
}

func (d *Dictionary) errorString(code uint8, base DisplayBase) (string, bool) {
	if e := Lookup(d.Errors, uint32(code)); e.Found {
		return e.Name, e.Alert()
	}
	return "Reserved: " + FormatNumber(uint64(code), base, 8, Numeric), true
}

func (d *Dictionary) objectErrorString(obj, code uint8, base DisplayBase) (string, bool) {
	table, ok := d.ObjectErrors(obj)
	if !ok {
		return "Obj: " + FormatNumber(uint64(code), base, 8, Numeric), true
	}
	if e := Lookup(table, uint32(code)); e.Found {
		return e.Name, true
	}
	return "Unknown: " + FormatNumber(uint64(code), base, 8, Numeric), true
}

// spiFlagsString lists the set bits of the SPI control or status byte from
// the most significant down. The command counter is always shown.
func spiFlagsString(table Table, val, cmdCountMask uint8) (string, bool) {
	var (
		parts []string
		alert bool
	)
	for i := len(table) - 1; i >= 0; i-- {
		entry := table[i]
		switch {
		case entry.code == uint32(cmdCountMask):
			parts = append(parts, fmt.Sprintf("%s%d", entry.name, (val&cmdCountMask)>>1))
		case entry.code&uint32(val) != 0:
			parts = append(parts, entry.name)
		default:
			continue
		}
		alert = alert || entry.alert
	}
	return strings.Join(parts, bitSeparator), alert
}

// bitMaskString lists the set bits of val from the least significant up.
func bitMaskString(table Table, val uint32) (string, bool) {
	var (
		parts []string
		alert bool
	)
	for _, entry := range table {
		if entry.code&val == 0 {
			continue
		}
		parts = append(parts, entry.name)
		alert = alert || entry.alert
	}
	if len(parts) == 0 {
		return "None", false
	}
	return strings.Join(parts, bitSeparator), alert
}

func anybusStatusString(val uint8, base DisplayBase) (string, bool) {
	var (
		s     string
		alert bool
	)
	if e := Lookup(anybusStates, uint32(val&^common.AnbStatusSupervised)); e.Found {
		s, alert = e.Name, e.Alert()
	} else {
		s, alert = "Reserved: "+FormatNumber(uint64(val), base, 8, Numeric), true
	}
	if val&common.AnbStatusSupervised != 0 {
		s += bitSeparator + "SUP"
	}
	return s, alert
}

func applicationStatusString(val uint8, base DisplayBase) (string, bool) {
	if e := Lookup(applicationStates, uint32(val)); e.Found {
		return e.Name, e.Alert()
	}
	return "Reserved: " + FormatNumber(uint64(val), base, 8, Numeric), true
}

// Segmentation texts of the command extension.
const (
	segmentUnknown = "Segmentation Unknown"
	segmentAborted = "Segmentation Aborted"
)

// segmentationString decodes the high byte of a command extension that is
// not an attribute number. An empty string means the message does not use
// segmentation.
func segmentationString(header common.MessageContext, ext1 uint8) (string, bool) {
	isCommand := IsCommandMessage(header)
	segmented := IsSegmentedMessage(isCommand, SegmentationCategory(header))

	var legal uint8
	if isCommand {
		legal |= common.CmdExt1SegAbort
	}
	if segmented {
		legal |= common.CmdExt1SegFirst | common.CmdExt1SegLast
	}

	switch {
	case ext1&^legal != 0:
		return segmentUnknown, true
	case ext1&common.CmdExt1SegAbort != 0:
		return segmentAborted, true
	case !segmented:
		return "", false
	}

	switch ext1 & (common.CmdExt1SegFirst | common.CmdExt1SegLast) {
	case common.CmdExt1SegFirst:
		return "FIRST_SEGMENT", false
	case common.CmdExt1SegLast:
		return "LAST_SEGMENT", false
	case common.CmdExt1SegFirst | common.CmdExt1SegLast:
		// TODO: confirm whether a single segment exchange is meant to carry
		// both bits; other illegal combinations are alerted.
		return "FIRST_SEGMENT" + bitSeparator + "LAST_SEGMENT", false
	default:
		return "SEGMENT", false
	}
}

// extensionString describes a command extension: an attribute for the
// attribute access commands, the segmentation state otherwise. found is
// false when there is nothing to add to the number.
func (d *Dictionary) extensionString(header common.MessageContext, ext uint16, base DisplayBase) (s string, alert, found bool) {
	switch {
	case IsNonIndexedAttributeCommand(header.Command):
		return d.attributeString(header.Object, header.Instance, ext, false, base)
	case IsIndexedAttributeCommand(header.Command):
		return d.attributeString(header.Object, header.Instance, ext, true, base)
	}
	text, alert := segmentationString(header, uint8(ext>>8))
	s = FormatNumber(uint64(ext&0xFF), base, 8, Numeric)
	if text != "" {
		s += bitSeparator + text
	}
	return s, alert, true
}
