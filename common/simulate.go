package common

import (
	"encoding/binary"
	"hash/crc32"
	"sort"
	"time"
)

// SimulationConfig controls Simulate.
type SimulationConfig struct {
	// Transactions is the number of SPI transactions to generate. When
	// replaying Events, zero means until every message has been sent.
	Transactions int
	// MessageWords is the message area of one transaction in 16 bit words.
	MessageWords uint16
	// ProcessDataWords is the process data area in 16 bit words.
	ProcessDataWords uint16
	// BytePeriod is the time taken to clock one byte.
	BytePeriod      time.Duration
	NetworkTimeStep uint32
	// ErrorEvery injects a transport anomaly into every Nth transaction.
	ErrorEvery int
	// Events replays an SDK log instead of the built-in message script.
	Events []SDKLogEvent
}

// DefaultSimulationConfig returns the settings used by the simulator CLI.
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		Transactions:     16,
		MessageWords:     8,
		ProcessDataWords: 2,
		BytePeriod:       time.Microsecond,
		NetworkTimeStep:  0x1234,
	}
}

// message header is 12 bytes on the wire.
const simHeaderSize = 12

type simMessage struct {
	SDKMessage
	response    *simMessage
	anybusState *uint8
}

func (m *simMessage) bytes() []byte {
	out := make([]byte, simHeaderSize+len(m.Data))
	binary.LittleEndian.PutUint16(out[0:], uint16(len(m.Data)))
	out[4] = m.SourceID
	out[5] = m.Object
	binary.LittleEndian.PutUint16(out[6:], m.Instance)
	out[8] = m.Command
	binary.LittleEndian.PutUint16(out[10:], m.CommandExtension())
	copy(out[simHeaderSize:], m.Data)
	return out
}

func (m *simMessage) context() MessageContext {
	return MessageContext{
		Command:          m.Command,
		Object:           m.Object,
		Instance:         m.Instance,
		CommandExtension: m.CommandExtension(),
	}
}

type simStream struct {
	queue      []*simMessage
	cur        *simMessage
	raw        []byte
	pos        int
	fragmented bool
}

// simField is a record waiting to be ordered by its byte offset.
type simField struct {
	offset int
	rec    Record
	width  int
}

type simBuilder struct {
	fields []simField
	offset int
	crc    []byte
}

func (b *simBuilder) add(ch Channel, kind FieldKind, value uint64, flags Flags, payload Payload) {
	width := FieldInfo(ch, kind).Size
	b.fields = append(b.fields, simField{
		offset: b.offset,
		width:  width,
		rec:    Record{Kind: kind, Channel: ch, Flags: flags, Value: value, Payload: payload},
	})
	for i := 0; i < width; i++ {
		b.crc = append(b.crc, byte(value>>(8*i)))
	}
	b.offset += width
}

func (b *simBuilder) addError(ch Channel, kind FieldKind) {
	flags := FlagError
	if kind == KindErrorFragmentation {
		flags |= FlagFragmentError
	}
	b.fields = append(b.fields, simField{
		offset: b.offset,
		rec:    Record{Kind: kind, Channel: ch, Flags: flags, Payload: RawValue{}},
	})
}

type simulator struct {
	conf     SimulationConfig
	capture  *Capture
	streams  [NumChannels]simStream
	toggle   bool
	netTime  uint32
	anbState uint8
	prevAnb  int
	pdSeed   byte
}

// Simulate generates a capture of complete SPI transactions.
func Simulate(conf SimulationConfig) *Capture {
	def := DefaultSimulationConfig()
	if conf.MessageWords*2 < simHeaderSize {
		conf.MessageWords = simHeaderSize / 2
	}
	if conf.BytePeriod <= 0 {
		conf.BytePeriod = def.BytePeriod
	}
	if conf.NetworkTimeStep == 0 {
		conf.NetworkTimeStep = def.NetworkTimeStep
	}

	sim := &simulator{
		conf:    conf,
		capture: NewCapture(),
		netTime: 1,
		prevAnb: -1,
	}
	if len(conf.Events) > 0 {
		sim.loadEvents(conf.Events)
	} else {
		sim.loadScript()
	}

	for txn := 0; ; txn++ {
		if conf.Transactions > 0 && txn >= conf.Transactions {
			break
		}
		if conf.Transactions <= 0 && sim.idle() {
			break
		}
		sim.transaction(txn)
	}
	return sim.capture
}

func (s *simulator) idle() bool {
	for _, st := range s.streams {
		if st.cur != nil || len(st.queue) > 0 {
			return false
		}
	}
	return true
}

func (s *simulator) loadEvents(events []SDKLogEvent) {
	var pending *uint8
	for _, ev := range events {
		switch ev.Type {
		case SDKLogAnybusState:
			state := ev.AnybusState
			pending = &state
		case SDKLogSent, SDKLogReceived:
			msg := &simMessage{SDKMessage: ev.Message, anybusState: pending}
			pending = nil
			ch := MOSI
			if ev.Type == SDKLogReceived {
				ch = MISO
			}
			s.streams[ch].queue = append(s.streams[ch].queue, msg)
		}
	}
}

func (s *simulator) loadScript() {
	get := func(obj uint8, inst uint16, attr uint8, rsp []byte) *simMessage {
		cmd := &simMessage{SDKMessage: SDKMessage{
			SourceID: 0, Object: obj, Instance: inst,
			Command: MsgHeaderCBit | CmdGetAttribute, CmdExt0: attr,
		}}
		cmd.response = &simMessage{SDKMessage: SDKMessage{
			Object: obj, Instance: inst, Command: CmdGetAttribute, CmdExt0: attr, Data: rsp,
		}}
		return cmd
	}

	script := []*simMessage{
		get(ObjectAnybus, 1, 1, []byte{0x01, 0x04}),
		get(ObjectNetwork, 1, 1, []byte{0x9B, 0x00}),
		get(ObjectAnybus, 1, AnybusAttrException, []byte{0x01}),
	}

	set := &simMessage{SDKMessage: SDKMessage{
		Object: ObjectApplicationData, Instance: 1,
		Command: MsgHeaderCBit | CmdSetAttribute, CmdExt0: 5, Data: []byte{0x11, 0x22},
	}}
	set.response = &simMessage{SDKMessage: SDKMessage{
		Object: ObjectApplicationData, Instance: 1,
		Command: MsgHeaderEBit | CmdSetAttribute, CmdExt0: 5, Data: []byte{0xFF, 0x02},
	}}
	script = append(script, set)

	seg := make([]byte, 20)
	for i := range seg {
		seg[i] = byte(0xA0 + i)
	}
	cip := &simMessage{SDKMessage: SDKMessage{
		Object: 0xF8, Instance: 1, Command: MsgHeaderCBit | 0x14,
		CmdExt0: 0x80, CmdExt1: CmdExt1SegFirst | CmdExt1SegLast, Data: seg,
	}}
	cip.response = &simMessage{SDKMessage: SDKMessage{
		Object: 0xF8, Instance: 1, Command: 0x14, Data: []byte{0x00},
	}}
	script = append(script, cip)

	for i, msg := range script {
		msg.SourceID = uint8(i + 1)
		msg.response.SourceID = msg.SourceID
	}
	s.streams[MOSI].queue = script
}

// advance returns the message bytes clocked on ch in this transaction.
func (s *simulator) advance(ch Channel) (chunk []byte, start int, msg *simMessage, first, last, fragmented bool) {
	st := &s.streams[ch]
	if st.cur == nil && len(st.queue) > 0 {
		st.cur, st.queue = st.queue[0], st.queue[1:]
		st.raw = st.cur.bytes()
		st.pos = 0
		area := int(s.conf.MessageWords) * 2
		st.fragmented = len(st.raw) > area
		if st.cur.anybusState != nil {
			s.anbState = *st.cur.anybusState
		}
	}
	if st.cur == nil {
		return nil, 0, nil, false, false, false
	}

	area := int(s.conf.MessageWords) * 2
	end := Min(st.pos+area, len(st.raw))
	chunk, start, msg = st.raw[st.pos:end], st.pos, st.cur
	first, last, fragmented = st.pos == 0, end == len(st.raw), st.fragmented
	st.pos = end
	if last {
		if ch == MOSI && msg.response != nil {
			s.streams[MISO].queue = append(s.streams[MISO].queue, msg.response)
		}
		st.cur = nil
	}
	return chunk, start, msg, first, last, fragmented
}

func (s *simulator) messageFields(b *simBuilder, ch Channel) (present, last bool, flags Flags) {
	chunk, start, msg, first, last, fragmented := s.advance(ch)
	area := int(s.conf.MessageWords) * 2
	if msg == nil {
		for i := 0; i < area; i++ {
			b.add(ch, KindDataNotValid, 0, 0, RawValue{})
		}
		return false, false, 0
	}

	if fragmented {
		if first {
			flags = FlagFirstFragment | FlagFragment
		} else {
			flags = FlagFragment
		}
	}
	dataFlags := flags
	if msg.Command&MsgHeaderEBit != 0 {
		dataFlags |= FlagProtocolEvent
	}

	ctx := msg.context()
	raw := msg.bytes()
	headerKinds := []struct {
		kind FieldKind
		at   int
	}{
		{KindMessageSize, 0}, {KindMessageReserved1, 2}, {KindSourceID, 4}, {KindObject, 5},
		{KindInstance, 6}, {KindCommand, 8}, {KindMessageReserved2, 9}, {KindCommandExtension, 10},
	}
	pos := start
	for pos < start+len(chunk) {
		if pos < simHeaderSize {
			matched := false
			for _, hk := range headerKinds {
				if hk.at != pos {
					continue
				}
				matched = true
				width := FieldInfo(ch, hk.kind).Size
				var value uint64
				for i := 0; i < width; i++ {
					value |= uint64(raw[pos+i]) << (8 * i)
				}
				f := flags
				if hk.kind == KindCommand && msg.Command&MsgHeaderEBit != 0 {
					f |= FlagProtocolEvent
				}
				b.add(ch, hk.kind, value, f, ctx)
				pos += width
				break
			}
			if !matched {
				pos++
			}
			continue
		}
		dc := ctx
		dc.DataIndex = uint16(pos - simHeaderSize)
		b.add(ch, KindMessageData, uint64(raw[pos]), dataFlags, dc)
		pos++
	}
	for i := len(chunk); i < area; i++ {
		b.add(ch, KindDataNotValid, 0, 0, RawValue{})
	}
	return true, last, flags
}

func (s *simulator) transaction(txn int) {
	var mosi, miso simBuilder
	s.toggle = !s.toggle
	pdBytes := int(s.conf.ProcessDataWords) * 2

	// MOSI header; the control byte is patched once the message is known.
	ctrlAt := len(mosi.fields)
	mosi.add(MOSI, KindSpiControl, 0, 0, RawValue{})
	mosi.add(MOSI, KindReserved1, 0, 0, RawValue{})
	mosi.add(MOSI, KindMessageLength, uint64(s.conf.MessageWords), 0, RawValue{})
	mosi.add(MOSI, KindProcessDataLength, uint64(s.conf.ProcessDataWords), 0, RawValue{})
	mosi.add(MOSI, KindApplicationStatus, 0, 0, RawValue{})
	mosi.add(MOSI, KindInterruptMask, IntMaskStatus|IntMaskReadMessage, 0, RawValue{})

	// MISO header.
	if s.conf.Events == nil {
		switch txn {
		case 0:
			s.anbState = 0
		case 1:
			s.anbState = 1
		case 2:
			s.anbState = 4
		}
	}
	anbFlags := Flags(0)
	if s.prevAnb >= 0 && int(s.anbState) != s.prevAnb {
		anbFlags = FlagProtocolEvent
	}
	s.prevAnb = int(s.anbState)
	s.netTime += s.conf.NetworkTimeStep

	miso.add(MISO, KindReserved1, 0, 0, RawValue{})
	miso.add(MISO, KindReserved2, 0, 0, RawValue{})
	miso.add(MISO, KindLedStatus, 0x0005, 0, RawValue{})
	miso.add(MISO, KindAnybusStatus, uint64(s.anbState), anbFlags, RawValue{})
	stsAt := len(miso.fields)
	miso.add(MISO, KindSpiStatus, 0, 0, RawValue{})
	miso.add(MISO, KindNetworkTime, uint64(s.netTime), 0, NetworkTimeInfo{
		Delta:                 s.conf.NetworkTimeStep,
		NewReadProcessData:    pdBytes > 0,
		WriteProcessDataValid: pdBytes > 0,
	})

	// Responses queued by a command completing now go out next transaction.
	misoMsg, misoLast, misoFlags := s.messageFields(&miso, MISO)
	mosiMsg, mosiLast, mosiFlags := s.messageFields(&mosi, MOSI)

	for i := 0; i < pdBytes; i++ {
		mosi.add(MOSI, KindProcessData, uint64(s.pdSeed+byte(i)), 0, RawValue{})
		miso.add(MISO, KindProcessData, uint64(0xAA+byte(i)), 0, RawValue{})
	}
	s.pdSeed += byte(pdBytes)

	ctrl := uint64(0x02)
	if s.toggle {
		ctrl |= SpiCtrlToggle
	}
	if pdBytes > 0 {
		ctrl |= SpiCtrlWriteProcessDataValid
	}
	if mosiMsg {
		ctrl |= SpiCtrlM
	}
	if mosiMsg && mosiLast {
		ctrl |= SpiCtrlLastFrag
	}
	status := uint64(0x02)
	if pdBytes > 0 {
		status |= SpiStatusNewProcData
	}
	if misoMsg {
		status |= SpiStatusM
	}
	if misoMsg && misoLast {
		status |= SpiStatusLastFrag
	}
	mosi.fields[ctrlAt].rec.Value = ctrl
	mosi.fields[ctrlAt].rec.Flags = mosiFlags
	miso.fields[stsAt].rec.Value = status
	miso.fields[stsAt].rec.Flags = misoFlags
	mosi.crc[mosi.fields[ctrlAt].offset] = byte(ctrl)
	miso.crc[miso.fields[stsAt].offset] = byte(status)

	injected := s.conf.ErrorEvery > 0 && txn%s.conf.ErrorEvery == s.conf.ErrorEvery-1
	mosiCrc := crc32.ChecksumIEEE(mosi.crc)
	misoCrc := crc32.ChecksumIEEE(miso.crc)
	mosiRx, misoRx := mosiCrc, misoCrc
	var misoCrcFlags Flags
	errorKind := FieldKind(0)
	if injected {
		switch (txn / s.conf.ErrorEvery) % 3 {
		case 0:
			misoRx ^= 0xFFFF
			misoCrcFlags = FlagProtocolEvent
		case 1:
			errorKind = KindErrorFragmentation
		default:
			errorKind = KindErrorClocking
		}
	}
	mosi.add(MOSI, KindCrc32, uint64(mosiRx), 0, ChecksumInfo{Calculated: mosiCrc})
	miso.add(MISO, KindCrc32, uint64(misoRx), misoCrcFlags, ChecksumInfo{Calculated: misoCrc})
	mosi.add(MOSI, KindPad, 0, 0, RawValue{})
	if errorKind != 0 {
		mosi.addError(MOSI, errorKind)
		miso.addError(MISO, errorKind)
	}

	s.emit(txn, append(mosi.fields, miso.fields...))
}

func (s *simulator) emit(txn int, fields []simField) {
	sort.SliceStable(fields, func(i, j int) bool {
		if fields[i].offset != fields[j].offset {
			return fields[i].offset < fields[j].offset
		}
		return fields[i].rec.Channel < fields[j].rec.Channel
	})

	txnBytes := 0
	for _, f := range fields {
		txnBytes = Max(txnBytes, f.offset+f.width)
	}
	base := time.Duration(txn) * time.Duration(txnBytes+10) * s.conf.BytePeriod

	s.capture.BeginPacket()
	for _, f := range fields {
		rec := f.rec
		rec.Start = base + time.Duration(f.offset)*s.conf.BytePeriod
		s.capture.AppendToPacket(rec)
	}
	s.capture.EndPacket()
}
