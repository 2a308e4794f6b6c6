package analyzer

import (
	"fmt"
	"strings"

	"github.com/erh/goabcc/common"
)

// AlertPrefix marks every detail layer of an alerted field.
const AlertPrefix = "!ALERT - "

// WriteBubble appends the layers of one field to layers, least detail
// first. Empty strings are absent parts.
//
// Layer 0 is a single marker character, "!" when alerted. The detail layers
// show the tag and value in the order priority selects, and the last layer
// shows verbose, padded so it never renders narrower than the value.
func WriteBubble(layers []string, tag, value, verbose string, severity Severity, priority Priority) []string {
	alert := severity == SeverityAlert
	prioritizeValue := priority == ValueFirst

	var pad string
	if verbose != "" && value != "" {
		valueLen := len(value)
		if alert {
			valueLen += len(AlertPrefix)
		}
		if len(verbose) <= valueLen {
			pad = strings.Repeat(" ", (valueLen-len(verbose))/2+1)
		}
	}

	detail := func(s string) {
		if alert {
			s = AlertPrefix + s
		}
		layers = append(layers, s)
	}
	tagged := func() string {
		if verbose != "" {
			return tag + ": " + value
		}
		return tag + ": [" + value + "]"
	}

	switch {
	case tag != "":
		if alert {
			layers = append(layers, "!")
		} else if !prioritizeValue {
			layers = append(layers, tag[:1])
		}
		if prioritizeValue {
			if value != "" {
				detail(value)
			}
			detail(tagged())
		} else {
			detail(tag)
			if value != "" {
				detail(tagged())
			}
		}
	case value != "":
		detail(value)
	}

	if verbose != "" {
		if tag != "" {
			layers = append(layers, pad+tag+": ("+verbose+")"+pad)
		} else {
			layers = append(layers, pad+"("+verbose+")"+pad)
		}
	}
	return layers
}

// Transport anomaly texts.
const (
	fragmentVerbose = "Fragmented ABCC SPI Packet."
	clockingVerbose = "ABCC SPI Clocking. The ABCC SPI protocol expects one transaction per 'Active Enable' phase."
	errorVerbose    = "ABCC SPI Error."
)

// MessageKind classifies the command byte of a message header.
type MessageKind uint8

// Message kinds.
const (
	MessageResponse MessageKind = iota
	MessageCommand
	MessageErrorResponse
)

// RenderBubbleText returns the annotation layers of the record at index as
// seen on ch, least detail first. Records of the other channel render
// nothing; transport anomalies render on both.
func (a *Analyzer) RenderBubbleText(index uint64, ch common.Channel, base DisplayBase) []string {
	if index >= a.store.RecordCount() {
		return nil
	}
	rec := a.store.Record(index)
	if !rec.Kind.IsError() && rec.Channel != ch {
		return nil
	}
	return a.bubble(index, &rec, base)
}

func (a *Analyzer) bubble(index uint64, rec *common.Record, base DisplayBase) []string {
	var layers []string
	layout := rec.Layout()
	tag := layout.Tag
	number := FormatNumber(rec.Value, base, layout.BitSize(), Numeric)
	val := rec.Value

	write := func(verbose string, alert bool) {
		layers = WriteBubble(layers, tag, number, verbose, severityOf(alert), TagFirst)
	}

	switch rec.Kind {
	case common.KindIdle:
		return nil
	case common.KindErrorFragmentation:
		return WriteBubble(layers, "FRAGMENT", "", fragmentVerbose, SeverityAlert, TagFirst)
	case common.KindErrorClocking:
		return WriteBubble(layers, "CLOCKING", "", clockingVerbose, SeverityAlert, TagFirst)
	case common.KindErrorGeneric:
		return WriteBubble(layers, "ERROR", "", errorVerbose, SeverityAlert, TagFirst)
	case common.KindSpiControl:
		write(spiFlagsString(spiControlNames, uint8(val), common.SpiCtrlCmdCount))
	case common.KindSpiStatus:
		write(spiFlagsString(spiStatusNames, uint8(val), common.SpiStatusCmdCount))
	case common.KindReserved1, common.KindReserved2, common.KindMessageReserved1, common.KindMessageReserved2:
		write("Reserved", val != 0)
	case common.KindMessageLength, common.KindProcessDataLength:
		write(fmt.Sprintf("%d Words", uint16(val)), false)
	case common.KindApplicationStatus:
		write(applicationStatusString(uint8(val), base))
	case common.KindInterruptMask:
		write(bitMaskString(interruptMaskBits, uint32(uint8(val))))
	case common.KindLedStatus:
		write(bitMaskString(ledStatusBits, uint32(uint16(val))))
	case common.KindAnybusStatus:
		write(anybusStatusString(uint8(val), base))
	case common.KindNetworkTime, common.KindSourceID:
		write("", false)
	case common.KindMessageSize:
		if a.sizeExceeded(rec) {
			write(fmt.Sprintf("%d Bytes, Exceeds Maximum Size of %d", uint16(val), a.MessageSizeLimit), true)
		} else {
			write(fmt.Sprintf("%d Bytes", uint16(val)), false)
		}
	case common.KindObject:
		write(a.dict.objectString(uint8(val), base))
	case common.KindInstance:
		if val == 0 {
			write("Object Instance", false)
		} else {
			write("", false)
		}
	case common.KindCommand:
		layers, _ = a.commandBubble(layers, rec, number, base)
	case common.KindCommandExtension:
		header, _ := rec.Message()
		verbose, alert, found := a.dict.extensionString(header, uint16(val), base)
		if !found {
			verbose = ""
		}
		write(verbose, alert)
	case common.KindMessageField, common.KindMessageData:
		layers = a.messageDataBubble(layers, rec, tag, number, base)
	case common.KindDataNotValid:
		layers = WriteBubble(layers, "--", number, "", SeverityNone, TagFirst)
	case common.KindProcessData:
		verbose := fmt.Sprintf(" [%s] Byte #%d ", number, a.processDataIndex(index, rec.Channel))
		layers = WriteBubble(layers, tag, number, verbose, SeverityNone, a.ProcessDataPriority)
	case common.KindCrc32:
		received := uint32(val)
		info, _ := rec.Checksum()
		if rec.Flags.Has(common.FlagProtocolEvent) || received != info.Calculated {
			write(fmt.Sprintf("ERROR - Received 0x%08X != Calculated 0x%08X", received, info.Calculated), true)
		} else {
			write(fmt.Sprintf("Received 0x%08X == Calculated 0x%08X", received, info.Calculated), false)
		}
	case common.KindPad:
		write("", val != 0)
	default:
		layers = WriteBubble(layers, "UNKNOWN", FormatNumber(val, base, 8, Numeric), "Unknown field", SeverityAlert, TagFirst)
	}
	return layers
}

// MessageKindOf classifies a command byte by its E and C bits.
func MessageKindOf(cmd uint8) MessageKind {
	switch {
	case cmd&common.MsgHeaderEBit != 0:
		return MessageErrorResponse
	case cmd&common.MsgHeaderCBit != 0:
		return MessageCommand
	default:
		return MessageResponse
	}
}

// commandBubble renders the command byte and reports what kind of message
// it starts.
func (a *Analyzer) commandBubble(layers []string, rec *common.Record, number string, base DisplayBase) ([]string, MessageKind) {
	cmd := uint8(rec.Value)
	header, _ := rec.Message()
	name, alert := a.dict.commandString(cmd, header.Object, base)
	kind := MessageKindOf(cmd)
	switch kind {
	case MessageErrorResponse:
		layers = WriteBubble(layers, "ERR_RSP", number, name, SeverityAlert, TagFirst)
	case MessageCommand:
		layers = WriteBubble(layers, "CMD", number, name, severityOf(alert), TagFirst)
	default:
		layers = WriteBubble(layers, "RSP", number, name, severityOf(alert), TagFirst)
	}
	return layers, kind
}

// messageDataBubble renders one message data byte. Error response payloads
// are decoded by their position; the first byte of an exception attribute
// is named.
func (a *Analyzer) messageDataBubble(layers []string, rec *common.Record, tag, number string, base DisplayBase) []string {
	header, _ := rec.Message()
	code := uint8(rec.Value)
	byteNumber := FormatNumber(uint64(code), base, 8, Numeric)

	if rec.Flags.Has(common.FlagProtocolEvent) {
		switch header.DataIndex {
		case 0:
			name, alert := a.dict.errorString(code, base)
			return WriteBubble(layers, "ERR_CODE", byteNumber, name, severityOf(alert), TagFirst)
		case 1:
			name, alert := a.dict.objectErrorString(header.Object, code, base)
			return WriteBubble(layers, "OBJ_ERR", byteNumber, name, severityOf(alert), TagFirst)
		case 2:
			if nw := Lookup(a.dict.NetworkTypes, uint32(a.NetworkType)); nw.Found {
				return WriteBubble(layers, "NW_ERR", byteNumber, nw.Name+": "+byteNumber, SeverityAlert, TagFirst)
			}
			return WriteBubble(layers, "NW_ERR", byteNumber, "", SeverityAlert, TagFirst)
		}
	}

	if header.DataIndex == 0 {
		if e, ok := a.exception(header, code); ok {
			return WriteBubble(layers, tag, number, e.Name, e.Severity, a.MessageDataPriority)
		}
	}

	verbose := fmt.Sprintf(" [%s] Byte #%d ", number, header.DataIndex)
	return WriteBubble(layers, tag, number, verbose, SeverityNone, a.MessageDataPriority)
}

// exception names the first data byte of a response that reads one of the
// exception attributes.
func (a *Analyzer) exception(header common.MessageContext, code uint8) (Entry, bool) {
	for _, isNetwork := range []bool{false, true} {
		idx, ok := ExceptionTableIndex(isNetwork, a.networkIndex, header)
		if !ok {
			continue
		}
		if e := ExceptionString(isNetwork, idx, code); e.Found {
			return e, true
		}
	}
	return Entry{}, false
}

func (a *Analyzer) sizeExceeded(rec *common.Record) bool {
	return rec.Flags.Has(common.FlagProtocolEvent) || uint16(rec.Value) > a.MessageSizeLimit
}

// processDataIndex counts the process data bytes preceding index on the
// same channel within its packet.
func (a *Analyzer) processDataIndex(index uint64, ch common.Channel) int {
	packet, ok := a.store.PacketContaining(index)
	if !ok {
		return 0
	}
	first, _ := a.store.PacketRange(packet)
	n := 0
	for i := first; i < index; i++ {
		r := a.store.Record(i)
		if r.Kind == common.KindProcessData && r.Channel == ch {
			n++
		}
	}
	return n
}
