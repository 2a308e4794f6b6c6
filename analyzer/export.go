package analyzer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"go.uber.org/multierr"

	"github.com/erh/goabcc/common"
)

// ErrExportCanceled is returned when the progress function stops an export.
var ErrExportCanceled = errors.New("export canceled")

// Event column values.
const (
	eventFragmentationError = "FRAGMENTATION_ERROR"
	eventChecksumError      = "CHECKSUM_ERROR"
	eventClockingError      = "CLOCKING_ERROR"
	eventError              = "ERROR"
	eventRetransmit         = "RETRANSMIT"
	eventWriteMessageFull   = "WRMSG_FULL"
	eventErrorResponse      = "ERROR_RESPONSE"
	eventSizeExceeded       = "SIZE_EXCEEDED"
	eventAnybusStatus       = "ANB_STATUS_CHANGE"
	eventApplicationStatus  = "APP_STATUS_CHANGE"
)

// Fragment column values.
const (
	fragmentFirst = "FIRST_FRAGMENT"
	fragmentNext  = "FRAGMENT"
	fragmentLast  = "LAST_FRAGMENT"
)

// Per direction events, highest precedence first.
var directionEvents = []string{
	eventRetransmit,
	eventWriteMessageFull,
	eventErrorResponse,
	eventSizeExceeded,
	eventAnybusStatus,
	eventApplicationStatus,
}

// Message data tail positions.
const (
	msgColSize = iota
	msgColSourceID
	msgColObject
	msgColInstance
	msgColCommand
	msgColExtension
	msgColData
)

// Middle cells of the per packet exports.
const (
	midEvent = iota
	midFragment
	midNetworkTime
)

// Export writes the capture to path in the layout selected by mode. Paths
// ending in .gz or .zst are compressed. The output file is opened before
// any record is read; on cancellation it holds the rows completed so far.
func (a *Analyzer) Export(ctx context.Context, path string, base DisplayBase, mode ExportMode) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export %s: %w", mode, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	cw, err := common.NewCompressingWriter(f, path)
	if err != nil {
		return fmt.Errorf("export %s: %w", mode, err)
	}
	defer func() {
		err = multierr.Append(err, cw.Close())
	}()

	a.Logger.Infow("export started", "session", a.session, "mode", mode, "path", path)
	rows, err := a.ExportTo(ctx, cw, base, mode)
	if err != nil {
		a.Logger.Warnw("export stopped", "session", a.session, "mode", mode, "path", path, "rows", rows, "error", err)
		return err
	}
	a.Logger.Infow("export finished", "session", a.session, "mode", mode, "path", path, "rows", rows)
	return nil
}

// ExportTo writes the export to w and returns the number of data rows
// written.
func (a *Analyzer) ExportTo(ctx context.Context, w io.Writer, base DisplayBase, mode ExportMode) (uint64, error) {
	e := &exporter{
		a:     a,
		ctx:   ctx,
		w:     bufio.NewWriter(w),
		base:  base,
		total: a.store.RecordCount(),
	}

	var err error
	switch mode {
	case ExportAllRecords:
		err = e.allRecords()
	case ExportMessageData:
		err = e.packets(messageDataSchema)
	case ExportProcessData:
		err = e.packets(processDataSchema)
	default:
		err = fmt.Errorf("unknown export mode %d", mode)
	}
	// Rows completed before a cancellation are kept.
	if flushErr := e.w.Flush(); flushErr != nil {
		err = multierr.Append(err, fmt.Errorf("export %s: %w", mode, flushErr))
	}
	return e.rows, err
}

type exporter struct {
	a     *Analyzer
	ctx   context.Context
	w     *bufio.Writer
	base  DisplayBase
	total uint64
	rows  uint64

	// pdColumns is the process data column count, from the first PD_LEN.
	pdColumns  int
	pdKnown    bool
	headerDone bool

	inFragment [common.NumChannels]bool
}

// poll reports whether the export should stop before record done.
func (e *exporter) poll(done uint64) error {
	if err := e.ctx.Err(); err != nil {
		return err
	}
	if e.a.progress != nil && e.a.progress(done, e.total) {
		return ErrExportCanceled
	}
	return nil
}

// finish reports completion; cancellation is no longer possible.
func (e *exporter) finish() {
	if e.a.progress != nil {
		e.a.progress(e.total, e.total)
	}
}

func (e *exporter) write(s string) error {
	if _, err := e.w.WriteString(s); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

func (e *exporter) number(rec *common.Record) string {
	return FormatNumber(rec.Value, e.base, rec.Layout().BitSize(), Numeric)
}

func exportTime(start time.Duration) string {
	return strconv.FormatFloat(start.Seconds(), 'f', 9, 64)
}

func (e *exporter) allRecords() error {
	delim := e.a.Delimiter
	if err := e.write(headerLine(delim, "Channel", "Time [s]", "Packet ID", "Frame Type", "Frame Data")); err != nil {
		return err
	}
	for i := uint64(0); i < e.total; i++ {
		if err := e.poll(i); err != nil {
			return err
		}
		rec := e.a.store.Record(i)

		channel, tag, value := rec.Channel.String(), rec.Layout().Tag, ""
		if rec.Kind.IsError() || rec.Flags.Has(common.FlagError) {
			channel = "ERROR"
			switch rec.Kind {
			case common.KindErrorFragmentation:
				tag = "FRAGMENT"
			case common.KindErrorClocking:
				tag = "CLOCKING"
			default:
				tag = "GENERIC"
			}
		} else {
			value = e.number(&rec)
		}
		var packet string
		if id, ok := e.a.store.PacketContaining(i); ok {
			packet = strconv.FormatUint(id, 10)
		}

		line := CsvSafe(channel, delim) + delim +
			CsvSafe(exportTime(rec.Start), delim) + delim +
			packet + delim +
			CsvSafe(tag, delim) + delim +
			CsvSafe(value, delim) + "\n"
		if err := e.write(line); err != nil {
			return err
		}
		e.rows++
	}
	e.finish()
	return nil
}

// packetSchema is the column layout of one per packet export.
type packetSchema struct {
	middleCells int
	// header returns the header row; it is written before the first data
	// row, or at the end of an empty export.
	header func(e *exporter) string
	// opens reports whether a control or status byte starts a row.
	opens func(rec *common.Record) bool
	// record adds a non control record to the row of its direction.
	record func(e *exporter, row *exportRow, rec *common.Record)
	// minTail is the number of tail cells every row is padded to.
	minTail func(e *exporter) int
}

var messageDataSchema = packetSchema{
	middleCells: 2,
	header: func(e *exporter) string {
		return headerLine(e.a.Delimiter,
			"Channel", "Time [s]", "Packet ID", "Event", "Fragment",
			"Message Size [bytes]", "Source ID", "Object", "Instance", "Command", "CmdExt", "Message Data")
	},
	opens: func(rec *common.Record) bool {
		if rec.Kind == common.KindSpiControl {
			return rec.Value&common.SpiCtrlM != 0
		}
		return rec.Value&common.SpiStatusM != 0
	},
	record: func(e *exporter, row *exportRow, rec *common.Record) {
		var pos int
		switch rec.Kind {
		case common.KindMessageSize:
			pos = msgColSize
		case common.KindSourceID:
			pos = msgColSourceID
		case common.KindObject:
			pos = msgColObject
		case common.KindInstance:
			pos = msgColInstance
		case common.KindCommand:
			pos = msgColCommand
		case common.KindCommandExtension:
			pos = msgColExtension
		case common.KindMessageData, common.KindMessageField:
			pos = common.Max(row.next, msgColData)
		default:
			return
		}
		row.put(pos, e.number(rec))
	},
	minTail: func(*exporter) int { return msgColData + 1 },
}

var processDataSchema = packetSchema{
	middleCells: 3,
	header: func(e *exporter) string {
		columns := []string{"Channel", "Time [s]", "Packet ID", "Event", "Fragment", "Network Time"}
		for i := 0; i < e.pdColumns; i++ {
			columns = append(columns, "Process Data "+strconv.Itoa(i))
		}
		return headerLine(e.a.Delimiter, columns...)
	},
	opens: func(rec *common.Record) bool {
		if rec.Kind == common.KindSpiControl {
			return rec.Value&common.SpiCtrlWriteProcessDataValid != 0
		}
		return rec.Value&common.SpiStatusNewProcData != 0
	},
	record: func(e *exporter, row *exportRow, rec *common.Record) {
		if rec.Kind == common.KindProcessData {
			row.put(row.next, e.number(rec))
		}
	},
	minTail: func(e *exporter) int { return e.pdColumns },
}

// packetEvents collects the events of one packet.
type packetEvents struct {
	fragmentation, checksum, clocking, generic bool
	direction                                  [common.NumChannels]map[string]bool
}

func (p *packetEvents) mark(ch common.Channel, event string) {
	if p.direction[ch] == nil {
		p.direction[ch] = map[string]bool{}
	}
	p.direction[ch][event] = true
}

// event returns the event cell of direction ch. Packet level events apply
// to both directions.
func (p *packetEvents) event(ch common.Channel) string {
	switch {
	case p.fragmentation:
		return eventFragmentationError
	case p.checksum:
		return eventChecksumError
	case p.clocking:
		return eventClockingError
	case p.generic:
		return eventError
	}
	for _, ev := range directionEvents {
		if p.direction[ch][ev] {
			return ev
		}
	}
	return ""
}

func (e *exporter) observe(index uint64, rec *common.Record, ev *packetEvents) {
	event := rec.Flags.Has(common.FlagProtocolEvent)
	if rec.Flags.Has(common.FlagFragmentError) {
		ev.fragmentation = true
	}
	switch rec.Kind {
	case common.KindErrorFragmentation:
		ev.fragmentation = true
	case common.KindErrorClocking:
		ev.clocking = true
	case common.KindErrorGeneric:
		ev.generic = true
	case common.KindCrc32:
		info, _ := rec.Checksum()
		if event || uint32(rec.Value) != info.Calculated {
			ev.checksum = true
		}
	case common.KindSpiControl:
		if event && index != 0 {
			ev.mark(rec.Channel, eventRetransmit)
		}
	case common.KindSpiStatus:
		if event {
			ev.mark(rec.Channel, eventWriteMessageFull)
		}
	case common.KindCommand:
		if uint8(rec.Value)&common.MsgHeaderEBit != 0 {
			ev.mark(rec.Channel, eventErrorResponse)
		}
	case common.KindMessageSize:
		if e.a.sizeExceeded(rec) {
			ev.mark(rec.Channel, eventSizeExceeded)
		}
	case common.KindAnybusStatus:
		if event {
			ev.mark(rec.Channel, eventAnybusStatus)
		}
	case common.KindApplicationStatus:
		if event {
			ev.mark(rec.Channel, eventApplicationStatus)
		}
	}
}

// fragment advances the fragmentation marker of a direction on its control
// or status byte.
func (e *exporter) fragment(rec *common.Record) string {
	ch := rec.Channel
	mBit, lastBit := uint64(common.SpiCtrlM), uint64(common.SpiCtrlLastFrag)
	if rec.Kind == common.KindSpiStatus {
		mBit, lastBit = common.SpiStatusM, common.SpiStatusLastFrag
	}
	if rec.Value&mBit == 0 {
		return ""
	}
	switch {
	case rec.Flags.Has(common.FlagFirstFragment):
		e.inFragment[ch] = true
		return fragmentFirst
	case !e.inFragment[ch]:
		return ""
	case rec.Value&lastBit != 0:
		e.inFragment[ch] = false
		return fragmentLast
	default:
		return fragmentNext
	}
}

func (e *exporter) writeHeader(schema *packetSchema) error {
	if e.headerDone {
		return nil
	}
	e.headerDone = true
	return e.write(schema.header(e))
}

// packets runs one pass over the capture emitting at most one row per
// packet and direction.
func (e *exporter) packets(schema packetSchema) error {
	delim := e.a.Delimiter
	var rows [common.NumChannels]*exportRow
	for ch := range rows {
		rows[ch] = newExportRow(delim, common.Channel(ch).String(), schema.middleCells)
	}

	i := uint64(0)
	for i < e.total {
		if err := e.poll(i); err != nil {
			return err
		}
		packet, ok := e.a.store.PacketContaining(i)
		if !ok {
			i++
			continue
		}
		first, last := e.a.store.PacketRange(packet)
		packetID := strconv.FormatUint(packet, 10)
		snapshot := e.inFragment

		var (
			events      packetEvents
			networkTime string
		)
		for idx := first; idx <= last; idx++ {
			if idx != first {
				if err := e.poll(idx); err != nil {
					return err
				}
			}
			rec := e.a.store.Record(idx)
			e.observe(idx, &rec, &events)
			if rec.Kind.IsError() {
				continue
			}
			row := rows[rec.Channel]

			switch rec.Kind {
			case common.KindSpiControl, common.KindSpiStatus:
				label := e.fragment(&rec)
				if schema.opens(&rec) {
					row.start(CsvSafe(exportTime(rec.Start), delim), packetID)
					row.set(midFragment, label)
				}
			case common.KindProcessDataLength:
				if !e.pdKnown {
					e.pdKnown = true
					e.pdColumns = int(uint16(rec.Value)) * 2
				}
			case common.KindNetworkTime:
				networkTime = e.number(&rec)
			default:
				if row.active {
					schema.record(e, row, &rec)
				}
			}
		}

		if events.fragmentation {
			e.inFragment = snapshot
		}
		for ch, row := range rows {
			if !row.active {
				continue
			}
			row.set(midEvent, events.event(common.Channel(ch)))
			if schema.middleCells > midNetworkTime {
				row.set(midNetworkTime, networkTime)
			}
			if err := e.writeHeader(&schema); err != nil {
				return err
			}
			if err := e.write(row.line(schema.minTail(e))); err != nil {
				return err
			}
			e.rows++
			row.reset()
		}
		i = last + 1
	}

	if err := e.writeHeader(&schema); err != nil {
		return err
	}
	e.finish()
	return nil
}
