package analyzer

import (
	"fmt"

	"github.com/erh/goabcc/common"
)

// ChannelState is the message tracking of one direction while tabular text
// is generated in record order.
type ChannelState struct {
	messageValid            bool
	errorResponse           bool
	fragmentationInProgress bool
	buffered                bufferedFields
}

// bufferedFields hold the header strings of the current message until its
// command extension arrives.
type bufferedFields struct {
	size      string
	sourceID  string
	object    string
	instance  string
	command   string
	extension string
}

func (s *ChannelState) reset() {
	*s = ChannelState{}
}

// FragmentationInProgress reports whether the channel is between the first
// and last fragment of a message.
func (s *ChannelState) FragmentationInProgress() bool {
	return s.fragmentationInProgress
}

func channelPrefix(ch common.Channel) string {
	return ch.String() + "-"
}

func tableLine(ch common.Channel, text string, alert bool) string {
	if alert {
		return channelPrefix(ch) + "!" + text
	}
	return channelPrefix(ch) + text
}

func alertMark(alert bool) string {
	if alert {
		return "!"
	}
	return ""
}

// RenderTabularText returns the log lines of the record at index. Channel
// state advances in record order; asking for an earlier record replays the
// capture from the start and a later one replays the gap.
func (a *Analyzer) RenderTabularText(index uint64, base DisplayBase) []string {
	if index >= a.store.RecordCount() {
		return nil
	}
	if index < a.nextTabular {
		a.Reset()
	}
	for i := a.nextTabular; i < index; i++ {
		a.tabular(i, base)
	}
	a.nextTabular = index + 1
	return a.tabular(index, base)
}

func (a *Analyzer) tabular(index uint64, base DisplayBase) []string {
	rec := a.store.Record(index)
	ch := rec.Channel
	val := rec.Value
	event := rec.Flags.Has(common.FlagProtocolEvent)

	if rec.Kind.IsError() {
		// Anomalies affect the whole bus; report them once.
		if !a.IndexErrors || ch != common.MISO {
			return nil
		}
		switch rec.Kind {
		case common.KindErrorFragmentation:
			return []string{"!FRAGMENT: ABCC SPI Packet is Fragmented"}
		case common.KindErrorClocking:
			return []string{"!CLOCKING: Unexpected ABCC SPI Clocking Behavior"}
		default:
			return []string{"!ERROR: General Error in ABCC SPI Communication"}
		}
	}

	var lines []string
	switch rec.Kind {
	case common.KindCrc32:
		info, _ := rec.Checksum()
		if a.IndexErrors && (event || uint32(val) != info.Calculated) {
			return []string{tableLine(ch, "CRC32", true)}
		}
		return nil
	case common.KindApplicationStatus:
		if !event {
			return nil
		}
		s, alert := applicationStatusString(uint8(val), base)
		if a.IndexApplicationStatus || (alert && a.IndexErrors) {
			return []string{alertMark(alert) + "Application Status : (" + s + ")"}
		}
		return nil
	case common.KindAnybusStatus:
		if !event {
			return nil
		}
		s, alert := anybusStatusString(uint8(val), base)
		if a.IndexAnybusStatus || (alert && a.IndexErrors) {
			return []string{alertMark(alert) + "Anybus Status : (" + s + ")"}
		}
		return nil
	case common.KindNetworkTime:
		return a.timestampLines(index, &rec)
	case common.KindMessageSize:
		if a.IndexErrors && a.sizeExceeded(&rec) {
			lines = append(lines, tableLine(ch, "Message Size : Exceeds Maximum", true))
		}
	}

	if a.Verbosity == VerbosityDisabled {
		return lines
	}
	return append(lines, a.messageLines(index, &rec, base)...)
}

func (a *Analyzer) timestampLines(index uint64, rec *common.Record) []string {
	info, _ := rec.NetworkTime()
	switch a.IndexTimestamps {
	case TimestampsAllPackets:
	case TimestampsWriteProcessDataValid:
		if !info.WriteProcessDataValid {
			return nil
		}
	case TimestampsNewReadProcessData:
		if !info.NewReadProcessData {
			return nil
		}
	default:
		return nil
	}
	lines := []string{fmt.Sprintf("Time : 0x%08X (Delta : 0x%08X)", uint32(rec.Value), info.Delta)}
	if packet, ok := a.store.PacketContaining(index); ok {
		lines = append(lines, fmt.Sprintf("Packet : 0x%016X", packet))
	}
	return lines
}

// messageLines buffers the header fields of a message and emits them as
// one entry when the command extension arrives.
func (a *Analyzer) messageLines(index uint64, rec *common.Record, base DisplayBase) []string {
	ch := rec.Channel
	state := &a.channels[ch]
	val := rec.Value
	detailed := a.Verbosity == VerbosityDetailed

	switch rec.Kind {
	case common.KindSpiControl, common.KindSpiStatus:
		return a.controlLines(index, rec, state)

	case common.KindMessageSize:
		state.buffered.size = fmt.Sprintf("%sSize: %d Bytes", alertMark(a.sizeExceeded(rec)), uint16(val))

	case common.KindSourceID:
		state.buffered.sourceID = "Source ID: " + FormatNumber(val, base, 8, Numeric)

	case common.KindObject:
		if detailed {
			name, alert := a.dict.objectString(uint8(val), base)
			state.buffered.object = alertMark(alert) + "Object: " + name
		} else {
			state.buffered.object = fmt.Sprintf("Obj{%02X:", uint8(val))
		}

	case common.KindInstance:
		if detailed {
			state.buffered.instance = "Instance: " + FormatNumber(val, base, 16, Numeric)
		} else {
			state.buffered.instance = fmt.Sprintf("Inst{%04X:", uint16(val))
		}

	case common.KindCommand:
		cmd := uint8(val)
		header, _ := rec.Message()
		kind := MessageKindOf(cmd)
		state.errorResponse = kind == MessageErrorResponse
		label := "Response"
		compact := "Rsp"
		if cmd&common.MsgHeaderCBit != 0 {
			label = "Command"
			compact = "Cmd"
		}
		if detailed {
			name, alert := a.dict.commandString(cmd, header.Object, base)
			state.buffered.command = alertMark(alert || state.errorResponse) + label + ": " + name
		} else {
			state.buffered.command = fmt.Sprintf("%s{%02X:", compact, cmd&common.MsgHeaderCmdBits)
		}

	case common.KindCommandExtension:
		if !state.messageValid {
			return nil
		}
		lines := a.flushMessage(rec, state, base)
		state.buffered = bufferedFields{}
		return lines
	}
	return nil
}

func (a *Analyzer) controlLines(index uint64, rec *common.Record, state *ChannelState) []string {
	ch := rec.Channel
	val := uint8(rec.Value)
	mBit, lastBit := uint8(common.SpiCtrlM), uint8(common.SpiCtrlLastFrag)
	if rec.Kind == common.KindSpiStatus {
		mBit, lastBit = common.SpiStatusM, common.SpiStatusLastFrag
	}

	state.messageValid = val&mBit != 0
	if state.messageValid {
		// A new message starts; anything buffered belongs to a truncated one.
		state.buffered = bufferedFields{}
	}
	if rec.Flags.Has(common.FlagFirstFragment) {
		state.fragmentationInProgress = true
	}
	continuing := state.fragmentationInProgress && !rec.Flags.Has(common.FlagFirstFragment)
	if state.messageValid && val&lastBit != 0 {
		state.fragmentationInProgress = false
	}

	if rec.Flags.Has(common.FlagProtocolEvent) {
		if ch == common.MISO {
			return []string{tableLine(ch, "{Write Message Buffer Full}", false)}
		}
		if index != 0 {
			return []string{tableLine(ch, "{Message Retransmit}", false)}
		}
		return nil
	}
	if continuing || rec.Flags&(common.FlagFragment|common.FlagFirstFragment) == common.FlagFragment {
		// Header fields only travel with the first fragment.
		state.messageValid = false
		if val&mBit == 0 {
			return nil
		}
		if val&lastBit != 0 {
			return []string{tableLine(ch, "{Message Fragment}", false)}
		}
		return []string{tableLine(ch, "{Message Fragment}++", false)}
	}
	return nil
}

func (a *Analyzer) flushMessage(rec *common.Record, state *ChannelState, base DisplayBase) []string {
	ch := rec.Channel
	header, _ := rec.Message()
	ext := uint16(rec.Value)
	firstFragment := rec.Flags.Has(common.FlagFirstFragment)

	var lines []string
	if a.IndexSourceID || a.Verbosity == VerbosityDetailed {
		lines = append(lines, fmt.Sprintf("-----%s MESSAGE-----", ch))
	}
	if a.IndexSourceID && state.buffered.sourceID != "" {
		lines = append(lines, tableLine(ch, state.buffered.sourceID, false))
	}

	if a.Verbosity == VerbosityCompact {
		state.buffered.extension = fmt.Sprintf("Ext{%04X}}}}", ext)
		line := channelPrefix(ch) + alertMark(state.errorResponse) +
			state.buffered.object + state.buffered.instance + state.buffered.command + state.buffered.extension
		if firstFragment {
			line += "++"
		}
		return append(lines, line)
	}

	number := FormatNumber(uint64(ext), base, 16, Numeric)
	s, alert, found := a.dict.extensionString(header, ext, base)
	switch {
	case !found:
		s = number
	case IsAttributeCommand(header.Command):
	default:
		s = number + " (" + s + ")"
	}
	state.buffered.extension = alertMark(alert) + "Extension: " + s

	for _, field := range []string{
		state.buffered.size,
		state.buffered.object,
		state.buffered.instance,
		state.buffered.command,
		state.buffered.extension,
	} {
		if field != "" {
			lines = append(lines, tableLine(ch, field, false))
		}
	}
	if firstFragment {
		lines = append(lines, tableLine(ch, "First Fragment; More Follow.", false))
	}
	return lines
}
