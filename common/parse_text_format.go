package common

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fastjson"
)

// A CaptureLine is one record of a capture file along with the packet
// it was decoded in.
type CaptureLine struct {
	Record
	Packet   uint64
	InPacket bool
}

// AllParsers lists every supported capture line format.
var AllParsers = []TextLineParser{}

// FindParser returns the first parser that recognizes msg.
func FindParser(msg string) TextLineParser {
	for _, p := range AllParsers {
		if p.Detect(msg) {
			return p
		}
	}
	return nil
}

// FindParserByName returns the parser with the given name, ignoring case.
func FindParserByName(n string) TextLineParser {
	for _, p := range AllParsers {
		if strings.EqualFold(p.Name(), n) {
			return p
		}
	}
	return nil
}

// A TextLineParser reads and writes one capture record per line.
type TextLineParser interface {
	Parse(msg string, line *CaptureLine) error
	Detect(msg string) bool
	Marshal(line *CaptureLine) (string, error)
	Name() string
}

// TextParserInstance and JSONParserInstance are the registered formats.
var (
	TextParserInstance = &textParser{}
	JSONParserInstance = &jsonParser{}
)

func init() {
	AllParsers = append(AllParsers, JSONParserInstance)
	AllParsers = append(AllParsers, TextParserInstance)
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

// ---------

/*
textParser handles the comma separated capture format, described below.

1           2 3    4   5     6    7
0.000012500,3,MOSI,CMD,EVENT,0x41,ctx=41:01:0001:0006:0000

1. Start time in seconds relative to the trigger
2. Packet number, or - when outside a packet
3. Channel
4. Field name
5. Flags joined by |, or -
6. Value
7. Optional payload: ctx=cmd:obj:inst:ext:index, net=delta:newpd:wrpd or crc=calculated
*/
type textParser struct{}

func (p *textParser) Parse(msg string, line *CaptureLine) error {
	parts := strings.Split(strings.TrimSpace(msg), ",")
	if len(parts) < 6 || len(parts) > 7 {
		return fmt.Errorf("expected 6 or 7 fields, got %d in %q", len(parts), msg)
	}

	secs, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", parts[0], err)
	}
	*line = CaptureLine{}
	line.Start = secondsToDuration(secs)

	if parts[1] != "-" {
		line.Packet, err = strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid packet %q: %w", parts[1], err)
		}
		line.InPacket = true
	}

	if line.Channel, err = ParseChannel(parts[2]); err != nil {
		return err
	}
	kind, ok := KindByTag(line.Channel, parts[3])
	if !ok {
		return fmt.Errorf("unknown %s field %q", line.Channel, parts[3])
	}
	line.Kind = kind
	if line.Flags, err = ParseFlags(parts[4]); err != nil {
		return err
	}
	if line.Value, err = strconv.ParseUint(parts[5], 0, 64); err != nil {
		return fmt.Errorf("invalid value %q: %w", parts[5], err)
	}

	line.Payload = RawValue{}
	if len(parts) == 7 {
		payload, err := parseTextPayload(parts[6])
		if err != nil {
			return err
		}
		line.Payload = payload
	}
	return nil
}

func parseTextPayload(s string) (Payload, error) {
	key, val, ok := strings.Cut(s, "=")
	if !ok {
		return nil, fmt.Errorf("invalid payload %q", s)
	}
	fields := strings.Split(val, ":")
	nums := make([]uint64, len(fields))
	for i, f := range fields {
		n, err := strconv.ParseUint(f, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid payload %q: %w", s, err)
		}
		nums[i] = n
	}

	switch {
	case key == "ctx" && len(nums) == 5:
		return MessageContext{
			Command:          uint8(nums[0]),
			Object:           uint8(nums[1]),
			Instance:         uint16(nums[2]),
			CommandExtension: uint16(nums[3]),
			DataIndex:        uint16(nums[4]),
		}, nil
	case key == "net" && len(nums) == 3:
		return NetworkTimeInfo{
			Delta:                 uint32(nums[0]),
			NewReadProcessData:    nums[1] != 0,
			WriteProcessDataValid: nums[2] != 0,
		}, nil
	case key == "crc" && len(nums) == 1:
		return ChecksumInfo{Calculated: uint32(nums[0])}, nil
	default:
		return nil, fmt.Errorf("invalid payload %q", s)
	}
}

func (p *textParser) Detect(msg string) bool {
	parts := strings.Split(strings.TrimSpace(msg), ",")
	if len(parts) < 6 {
		return false
	}
	if _, err := strconv.ParseFloat(parts[0], 64); err != nil {
		return false
	}
	_, err := ParseChannel(parts[2])
	return err == nil
}

func boolDigit(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (p *textParser) Marshal(line *CaptureLine) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%.9f,", line.Start.Seconds())
	if line.InPacket {
		sb.WriteString(strconv.FormatUint(line.Packet, 10))
	} else {
		sb.WriteByte('-')
	}
	flags := line.Flags.String()
	if flags == "" {
		flags = "-"
	}
	fmt.Fprintf(&sb, ",%s,%s,%s,0x%X", line.Channel, KindName(line.Channel, line.Kind), flags, line.Value)

	switch pl := line.Payload.(type) {
	case nil, RawValue:
	case MessageContext:
		fmt.Fprintf(&sb, ",ctx=%02X:%02X:%04X:%04X:%04X", pl.Command, pl.Object, pl.Instance, pl.CommandExtension, pl.DataIndex)
	case NetworkTimeInfo:
		fmt.Fprintf(&sb, ",net=%08X:%d:%d", pl.Delta, boolDigit(pl.NewReadProcessData), boolDigit(pl.WriteProcessDataValid))
	case ChecksumInfo:
		fmt.Fprintf(&sb, ",crc=%08X", pl.Calculated)
	default:
		return "", fmt.Errorf("unsupported payload %T", pl)
	}
	sb.WriteByte('\n')
	return sb.String(), nil
}

func (p *textParser) Name() string {
	return "ABCC_TEXT"
}

// ---------

/*
jsonParser handles one JSON object per line, for example

	{"t":0.0000125,"packet":3,"ch":"MOSI","field":"CMD","flags":["EVENT"],"value":65,
	 "msg":{"cmd":65,"obj":1,"inst":1,"ext":6,"idx":0}}

The payload is carried in one of the optional "msg", "net" or "crc" objects.
*/
type jsonParser struct {
	pool  fastjson.ParserPool
	arena fastjson.ArenaPool
}

var errNotObject = errors.New("capture line is not a JSON object")

func (p *jsonParser) Parse(msg string, line *CaptureLine) error {
	parser := p.pool.Get()
	defer p.pool.Put(parser)

	v, err := parser.Parse(msg)
	if err != nil {
		return fmt.Errorf("invalid JSON capture line: %w", err)
	}
	if v.Type() != fastjson.TypeObject {
		return errNotObject
	}

	*line = CaptureLine{}
	line.Start = secondsToDuration(v.GetFloat64("t"))
	if pv := v.Get("packet"); pv != nil && pv.Type() == fastjson.TypeNumber {
		line.Packet = pv.GetUint64()
		line.InPacket = true
	}
	if line.Channel, err = ParseChannel(string(v.GetStringBytes("ch"))); err != nil {
		return err
	}
	field := string(v.GetStringBytes("field"))
	kind, ok := KindByTag(line.Channel, field)
	if !ok {
		return fmt.Errorf("unknown %s field %q", line.Channel, field)
	}
	line.Kind = kind
	for _, fv := range v.GetArray("flags") {
		f, err := ParseFlags(string(fv.GetStringBytes()))
		if err != nil {
			return err
		}
		line.Flags |= f
	}
	line.Value = v.GetUint64("value")

	switch {
	case v.Exists("msg"):
		mv := v.Get("msg")
		line.Payload = MessageContext{
			Command:          uint8(mv.GetUint("cmd")),
			Object:           uint8(mv.GetUint("obj")),
			Instance:         uint16(mv.GetUint("inst")),
			CommandExtension: uint16(mv.GetUint("ext")),
			DataIndex:        uint16(mv.GetUint("idx")),
		}
	case v.Exists("net"):
		nv := v.Get("net")
		line.Payload = NetworkTimeInfo{
			Delta:                 uint32(nv.GetUint("delta")),
			NewReadProcessData:    nv.GetBool("new_rd_pd"),
			WriteProcessDataValid: nv.GetBool("wr_pd_valid"),
		}
	case v.Exists("crc"):
		line.Payload = ChecksumInfo{Calculated: uint32(v.Get("crc").GetUint("calculated"))}
	default:
		line.Payload = RawValue{}
	}
	return nil
}

func (p *jsonParser) Detect(msg string) bool {
	msg = strings.TrimSpace(msg)
	return strings.HasPrefix(msg, "{") && strings.Contains(msg, `"ch"`)
}

func (p *jsonParser) Marshal(line *CaptureLine) (string, error) {
	a := p.arena.Get()
	defer p.arena.Put(a)

	o := a.NewObject()
	o.Set("t", a.NewNumberFloat64(line.Start.Seconds()))
	if line.InPacket {
		o.Set("packet", a.NewNumberString(strconv.FormatUint(line.Packet, 10)))
	}
	o.Set("ch", a.NewString(line.Channel.String()))
	o.Set("field", a.NewString(KindName(line.Channel, line.Kind)))
	if line.Flags != 0 {
		flags := a.NewArray()
		for i, f := range strings.Split(line.Flags.String(), "|") {
			flags.SetArrayItem(i, a.NewString(f))
		}
		o.Set("flags", flags)
	}
	o.Set("value", a.NewNumberString(strconv.FormatUint(line.Value, 10)))

	switch pl := line.Payload.(type) {
	case nil, RawValue:
	case MessageContext:
		mv := a.NewObject()
		mv.Set("cmd", a.NewNumberInt(int(pl.Command)))
		mv.Set("obj", a.NewNumberInt(int(pl.Object)))
		mv.Set("inst", a.NewNumberInt(int(pl.Instance)))
		mv.Set("ext", a.NewNumberInt(int(pl.CommandExtension)))
		mv.Set("idx", a.NewNumberInt(int(pl.DataIndex)))
		o.Set("msg", mv)
	case NetworkTimeInfo:
		nv := a.NewObject()
		nv.Set("delta", a.NewNumberString(strconv.FormatUint(uint64(pl.Delta), 10)))
		nv.Set("new_rd_pd", jsonBool(a, pl.NewReadProcessData))
		nv.Set("wr_pd_valid", jsonBool(a, pl.WriteProcessDataValid))
		o.Set("net", nv)
	case ChecksumInfo:
		cv := a.NewObject()
		cv.Set("calculated", a.NewNumberString(strconv.FormatUint(uint64(pl.Calculated), 10)))
		o.Set("crc", cv)
	default:
		return "", fmt.Errorf("unsupported payload %T", pl)
	}

	out := o.MarshalTo(nil)
	out = append(out, '\n')
	return string(out), nil
}

func jsonBool(a *fastjson.Arena, b bool) *fastjson.Value {
	if b {
		return a.NewTrue()
	}
	return a.NewFalse()
}

func (p *jsonParser) Name() string {
	return "ABCC_JSON"
}
