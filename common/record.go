package common

import (
	"fmt"
	"strings"
	"time"
)

// Channel is the SPI line a record was decoded from.
type Channel uint8

// The two SPI directions.
const (
	MOSI Channel = iota
	MISO
)

// NumChannels is the number of SPI directions.
const NumChannels = 2

func (c Channel) String() string {
	switch c {
	case MOSI:
		return "MOSI"
	case MISO:
		return "MISO"
	default:
		return fmt.Sprintf("Channel(%d)", uint8(c))
	}
}

// ParseChannel parses MOSI or MISO, ignoring case.
func ParseChannel(s string) (Channel, error) {
	switch {
	case strings.EqualFold(s, "MOSI"):
		return MOSI, nil
	case strings.EqualFold(s, "MISO"):
		return MISO, nil
	default:
		return 0, fmt.Errorf("unknown channel %q", s)
	}
}

// FieldKind identifies the logical field a record holds. Both directions
// share one set of kinds; MOSIFields and MISOFields give the order each
// direction clocks them in.
type FieldKind uint8

// Field kinds.
const (
	KindIdle FieldKind = iota
	KindSpiControl
	KindSpiStatus
	KindReserved1
	KindReserved2
	KindMessageLength
	KindProcessDataLength
	KindApplicationStatus
	KindInterruptMask
	KindLedStatus
	KindAnybusStatus
	KindNetworkTime

	// Message sub-fields. Both directions clock these in this exact order.
	KindMessageField
	KindMessageSize
	KindMessageReserved1
	KindSourceID
	KindObject
	KindInstance
	KindCommand
	KindMessageReserved2
	KindCommandExtension
	KindMessageData

	KindProcessData
	KindCrc32
	KindPad
	KindDataNotValid

	// Transport level anomalies reported by the upstream decoder.
	KindErrorGeneric
	KindErrorFragmentation
	KindErrorClocking

	numFieldKinds
)

// MOSIFields is the order the master clocks its fields out.
var MOSIFields = []FieldKind{
	KindIdle,
	KindSpiControl,
	KindReserved1,
	KindMessageLength,
	KindProcessDataLength,
	KindApplicationStatus,
	KindInterruptMask,
	KindMessageField,
	KindMessageSize,
	KindMessageReserved1,
	KindSourceID,
	KindObject,
	KindInstance,
	KindCommand,
	KindMessageReserved2,
	KindCommandExtension,
	KindMessageData,
	KindProcessData,
	KindCrc32,
	KindPad,
	KindDataNotValid,
}

// MISOFields is the order the slave clocks its fields out.
var MISOFields = []FieldKind{
	KindIdle,
	KindReserved1,
	KindReserved2,
	KindLedStatus,
	KindAnybusStatus,
	KindSpiStatus,
	KindNetworkTime,
	KindMessageField,
	KindMessageSize,
	KindMessageReserved1,
	KindSourceID,
	KindObject,
	KindInstance,
	KindCommand,
	KindMessageReserved2,
	KindCommandExtension,
	KindMessageData,
	KindProcessData,
	KindCrc32,
	KindDataNotValid,
}

// Fields returns the field layout of the given channel.
func Fields(ch Channel) []FieldKind {
	if ch == MISO {
		return MISOFields
	}
	return MOSIFields
}

// FieldLayout describes how a field kind is shown on one channel.
type FieldLayout struct {
	Tag  string
	Size int // bytes
}

// BitSize returns the width of the field in bits.
func (l FieldLayout) BitSize() int {
	return l.Size * 8
}

var (
	mosiLayouts [numFieldKinds]FieldLayout
	misoLayouts [numFieldKinds]FieldLayout
)

func init() {
	shared := map[FieldKind]FieldLayout{
		KindIdle:               {"", 0},
		KindReserved1:          {"RES", 1},
		KindReserved2:          {"RES", 1},
		KindMessageField:       {"MD", 1},
		KindMessageReserved1:   {"RES", 2},
		KindSourceID:           {"SRC_ID", 1},
		KindObject:             {"OBJ", 1},
		KindInstance:           {"INST", 2},
		KindCommand:            {"CMD", 1},
		KindMessageReserved2:   {"RES", 1},
		KindCommandExtension:   {"EXT", 2},
		KindMessageData:        {"MD", 1},
		KindProcessData:        {"PD", 1},
		KindCrc32:              {"CRC32", 4},
		KindDataNotValid:       {"MD", 1},
		KindErrorGeneric:       {"GENERIC", 0},
		KindErrorFragmentation: {"FRAGMENT", 0},
		KindErrorClocking:      {"CLOCKING", 0},
	}
	for kind, layout := range shared {
		mosiLayouts[kind] = layout
		misoLayouts[kind] = layout
	}

	mosiLayouts[KindSpiControl] = FieldLayout{"SPI_CTL", 1}
	mosiLayouts[KindMessageLength] = FieldLayout{"MSG_LEN", 2}
	mosiLayouts[KindProcessDataLength] = FieldLayout{"PD_LEN", 2}
	mosiLayouts[KindApplicationStatus] = FieldLayout{"APP_STS", 1}
	mosiLayouts[KindInterruptMask] = FieldLayout{"INT_MSK", 1}
	mosiLayouts[KindMessageSize] = FieldLayout{"MSG_SIZE", 2}
	mosiLayouts[KindPad] = FieldLayout{"PAD", 2}

	misoLayouts[KindLedStatus] = FieldLayout{"LED_STS", 2}
	misoLayouts[KindAnybusStatus] = FieldLayout{"ANB_STS", 1}
	misoLayouts[KindSpiStatus] = FieldLayout{"SPI_STS", 1}
	misoLayouts[KindNetworkTime] = FieldLayout{"TIME", 4}
	misoLayouts[KindMessageSize] = FieldLayout{"MD_SIZE", 2}
}

// FieldInfo returns the tag and width of kind on the given channel.
func FieldInfo(ch Channel, kind FieldKind) FieldLayout {
	if kind >= numFieldKinds {
		return FieldLayout{}
	}
	if ch == MISO {
		return misoLayouts[kind]
	}
	return mosiLayouts[kind]
}

// KindByTag resolves a field name written by KindName.
func KindByTag(ch Channel, tag string) (FieldKind, bool) {
	tag = strings.ToUpper(tag)
	for kind, name := range kindNames {
		if name == tag {
			return kind, true
		}
	}
	for _, kind := range Fields(ch) {
		if kind != KindIdle && FieldInfo(ch, kind).Tag == tag {
			return kind, true
		}
	}
	for _, kind := range []FieldKind{KindErrorGeneric, KindErrorFragmentation, KindErrorClocking} {
		if FieldInfo(ch, kind).Tag == tag {
			return kind, true
		}
	}
	return 0, false
}

// kinds whose display tag is shared with another kind.
var kindNames = map[FieldKind]string{
	KindReserved1:        "RES1",
	KindReserved2:        "RES2",
	KindMessageField:     "MSG_FIELD",
	KindMessageReserved1: "MSG_RES1",
	KindMessageReserved2: "MSG_RES2",
	KindMessageData:      "MD",
	KindDataNotValid:     "MD_NV",
}

// KindName returns an unambiguous name for kind on the channel. It is the
// display tag except where several kinds share one.
func KindName(ch Channel, kind FieldKind) string {
	if name, ok := kindNames[kind]; ok {
		return name
	}
	return FieldInfo(ch, kind).Tag
}

// IsError reports whether kind is a transport level anomaly.
func (k FieldKind) IsError() bool {
	return k == KindErrorGeneric || k == KindErrorFragmentation || k == KindErrorClocking
}

// IsMessageHeader reports whether kind is one of the fields preceding the
// message data.
func (k FieldKind) IsMessageHeader() bool {
	return k >= KindMessageSize && k <= KindCommandExtension
}

// Flags carry per-record decoder observations.
type Flags uint8

// Record flags.
const (
	// FlagError marks a transport error record.
	FlagError Flags = 1 << iota
	// FlagFirstFragment marks the first message of a fragmented transfer.
	FlagFirstFragment
	// FlagFragment marks that fragmentation is in progress.
	FlagFragment
	// FlagFragmentError marks an error caused by a fragmented transaction.
	FlagFragmentError
	// FlagProtocolEvent is field specific: a toggle error on SPI_CTL/SPI_STS,
	// a status change on ANB_STS/APP_STS, an oversized message, an error
	// response on CMD and its data, and a checksum mismatch on CRC32.
	FlagProtocolEvent
)

// Has reports whether all bits of other are set.
func (f Flags) Has(other Flags) bool {
	return f&other == other
}

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagError, "ERR"},
	{FlagFirstFragment, "FIRST"},
	{FlagFragment, "FRAG"},
	{FlagFragmentError, "FRAGERR"},
	{FlagProtocolEvent, "EVENT"},
}

func (f Flags) String() string {
	var parts []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseFlags parses the output of Flags.String.
func ParseFlags(s string) (Flags, error) {
	var f Flags
	if s == "" || s == "-" {
		return f, nil
	}
	for _, part := range strings.Split(s, "|") {
		found := false
		for _, fn := range flagNames {
			if strings.EqualFold(part, fn.name) {
				f |= fn.flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown flag %q", part)
		}
	}
	return f, nil
}

// Payload is the secondary, kind dependent data of a record.
type Payload interface {
	isPayload()
}

// RawValue is the payload of records without secondary data.
type RawValue struct{}

// MessageContext is the header of the message a record belongs to.
type MessageContext struct {
	Command          uint8
	Object           uint8
	Instance         uint16
	CommandExtension uint16
	// DataIndex counts message data bytes from zero.
	DataIndex uint16
}

// NetworkTimeInfo accompanies the MISO network time field.
type NetworkTimeInfo struct {
	Delta                 uint32
	NewReadProcessData    bool
	WriteProcessDataValid bool
}

// ChecksumInfo accompanies the CRC32 field; the record value holds the
// received checksum.
type ChecksumInfo struct {
	Calculated uint32
}

func (RawValue) isPayload()        {}
func (MessageContext) isPayload()  {}
func (NetworkTimeInfo) isPayload() {}
func (ChecksumInfo) isPayload()    {}

// Record is one decoded field on one channel.
type Record struct {
	Kind    FieldKind
	Channel Channel
	Flags   Flags
	Value   uint64
	Payload Payload
	// Start is relative to the capture trigger.
	Start time.Duration
}

// Message returns the message context of the record, if it carries one.
func (r *Record) Message() (MessageContext, bool) {
	mc, ok := r.Payload.(MessageContext)
	return mc, ok
}

// NetworkTime returns the network time info of the record, if it carries one.
func (r *Record) NetworkTime() (NetworkTimeInfo, bool) {
	nt, ok := r.Payload.(NetworkTimeInfo)
	return nt, ok
}

// Checksum returns the checksum info of the record, if it carries one.
func (r *Record) Checksum() (ChecksumInfo, bool) {
	ci, ok := r.Payload.(ChecksumInfo)
	return ci, ok
}

// Layout returns the tag and width of the record.
func (r *Record) Layout() FieldLayout {
	return FieldInfo(r.Channel, r.Kind)
}
