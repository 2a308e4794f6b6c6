package common

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"go.viam.com/rdk/logging"
)

// SDKLogEventType is the kind of entry found in an ABCC SDK driver log.
type SDKLogEventType uint8

// SDK log entries.
const (
	SDKLogSent SDKLogEventType = iota
	SDKLogReceived
	SDKLogAnybusState
)

// SDKMessage is a message as printed by the ABCC SDK driver.
type SDKMessage struct {
	SourceID uint8
	Object   uint8
	Instance uint16
	Command  uint8
	CmdExt0  uint8
	CmdExt1  uint8
	Data     []byte
}

// CommandExtension returns the 16 bit command extension.
func (m *SDKMessage) CommandExtension() uint16 {
	return uint16(m.CmdExt1)<<8 | uint16(m.CmdExt0)
}

// SDKLogEvent is one entry of an ABCC SDK driver log.
type SDKLogEvent struct {
	Type        SDKLogEventType
	Message     SDKMessage
	AnybusState uint8
}

var (
	sdkFieldRE = regexp.MustCompile(`(\w+)\s*:\s*0x([0-9A-Fa-f]+)`)

	anybusStateNames = []struct {
		name  string
		state uint8
	}{
		{"ABP_ANB_STATE_SETUP", 0x00},
		{"ABP_ANB_STATE_NW_INIT", 0x01},
		{"ABP_ANB_STATE_WAIT_PROCESS", 0x02},
		{"ABP_ANB_STATE_IDLE", 0x03},
		{"ABP_ANB_STATE_PROCESS_ACTIVE", 0x04},
		{"ABP_ANB_STATE_ERROR", 0x05},
		{"ABP_ANB_STATE_EXCEPTION", 0x07},
	}
)

/*
ParseSDKLog extracts messages and Anybus state changes from a driver log.

	Msg sent:
	[ MsgBuf:0x20001000 Size:0x2 SrcId  :0x1 DestObj:0x1
	  Inst  :0x1     Cmd :0x41   CmdExt0:0x6 CmdExt1:0x0 ]
	[0x01 0x02 ]
	ANB_STATUS: ABP_ANB_STATE_IDLE

Malformed message blocks are logged and skipped.
*/
func ParseSDKLog(r io.Reader, logger logging.Logger) ([]SDKLogEvent, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var events []SDKLogEvent
	lineNum := 0
	next := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		lineNum++
		return scanner.Text(), true
	}

	for {
		line, ok := next()
		if !ok {
			break
		}
		var evType SDKLogEventType
		switch {
		case strings.Contains(line, "Msg sent:"):
			evType = SDKLogSent
		case strings.Contains(line, "Msg received:"):
			evType = SDKLogReceived
		case strings.Contains(line, "ANB_STATUS:"):
			if state, ok := parseAnybusState(line); ok {
				events = append(events, SDKLogEvent{Type: SDKLogAnybusState, AnybusState: state})
			}
			continue
		default:
			continue
		}

		start := lineNum
		msg, err := parseSDKMessage(next)
		if err != nil {
			logger.Debugf("skipping message at line %d: %v", start, err)
			continue
		}
		events = append(events, SDKLogEvent{Type: evType, Message: msg})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read sdk log: %w", err)
	}
	return events, nil
}

func parseAnybusState(line string) (uint8, bool) {
	line = strings.TrimRight(line, " \t\r")
	for _, s := range anybusStateNames {
		if strings.HasSuffix(line, s.name) {
			return s.state, true
		}
	}
	return 0, false
}

func sdkFields(line string, want ...string) (map[string]uint64, error) {
	fields := map[string]uint64{}
	for _, m := range sdkFieldRE.FindAllStringSubmatch(line, -1) {
		n, err := strconv.ParseUint(m[2], 16, 64)
		if err != nil {
			return nil, err
		}
		fields[m[1]] = n
	}
	for _, w := range want {
		if _, ok := fields[w]; !ok {
			return nil, fmt.Errorf("missing %s in %q", w, line)
		}
	}
	return fields, nil
}

func parseSDKMessage(next func() (string, bool)) (SDKMessage, error) {
	var msg SDKMessage

	line, ok := next()
	if !ok {
		return msg, io.ErrUnexpectedEOF
	}
	head, err := sdkFields(line, "Size", "SrcId", "DestObj")
	if err != nil {
		return msg, err
	}
	if head["Size"] > MaxMessageDataBytes || head["SrcId"] > 0xFF || head["DestObj"] > 0xFF {
		return msg, fmt.Errorf("header out of range in %q", line)
	}
	size := int(head["Size"])
	msg.SourceID = uint8(head["SrcId"])
	msg.Object = uint8(head["DestObj"])

	if line, ok = next(); !ok {
		return msg, io.ErrUnexpectedEOF
	}
	cmd, err := sdkFields(line, "Inst", "Cmd", "CmdExt0", "CmdExt1")
	if err != nil {
		return msg, err
	}
	if cmd["Inst"] > 0xFFFF || cmd["Cmd"] > 0xFF || cmd["CmdExt0"] > 0xFF || cmd["CmdExt1"] > 0xFF {
		return msg, fmt.Errorf("header out of range in %q", line)
	}
	msg.Instance = uint16(cmd["Inst"])
	msg.Command = uint8(cmd["Cmd"])
	msg.CmdExt0 = uint8(cmd["CmdExt0"])
	msg.CmdExt1 = uint8(cmd["CmdExt1"])

	msg.Data = make([]byte, 0, size)
	opened := false
	for {
		line, ok := next()
		if !ok {
			return msg, io.ErrUnexpectedEOF
		}
		line = strings.ReplaceAll(line, "\t", " ")
		if !opened {
			line = strings.TrimLeft(line, " ")
			if !strings.HasPrefix(line, "[") {
				return msg, fmt.Errorf("data must start with '[': %q", line)
			}
			line = line[1:]
			opened = true
		}
		if strings.Contains(line, "[") {
			return msg, fmt.Errorf("unexpected '[' in %q", line)
		}
		body, _, closed := strings.Cut(line, "]")
		for _, tok := range strings.Fields(body) {
			if len(tok) > 4 || !strings.HasPrefix(tok, "0x") {
				return msg, fmt.Errorf("unexpected data token %q", tok)
			}
			b, err := strconv.ParseUint(tok[2:], 16, 8)
			if err != nil {
				return msg, err
			}
			msg.Data = append(msg.Data, byte(b))
		}
		if closed {
			if len(msg.Data) != size {
				return msg, fmt.Errorf("size 0x%x does not match %d data bytes", size, len(msg.Data))
			}
			return msg, nil
		}
	}
}
