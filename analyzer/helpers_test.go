package analyzer

import (
	"testing"
	"time"

	"go.viam.com/rdk/logging"
	"go.viam.com/test"

	"github.com/erh/goabcc/common"
)

// captureBuilder appends records one microsecond apart.
type captureBuilder struct {
	c    *common.Capture
	next time.Duration
}

func newCaptureBuilder() *captureBuilder {
	return &captureBuilder{c: common.NewCapture()}
}

func (b *captureBuilder) record(ch common.Channel, kind common.FieldKind, value uint64, flags common.Flags, payload common.Payload) common.Record {
	if payload == nil {
		payload = common.RawValue{}
	}
	rec := common.Record{Kind: kind, Channel: ch, Flags: flags, Value: value, Payload: payload, Start: b.next}
	b.next += time.Microsecond
	return rec
}

// outside appends a record that belongs to no packet.
func (b *captureBuilder) outside(ch common.Channel, kind common.FieldKind, value uint64, flags common.Flags, payload common.Payload) uint64 {
	b.c.Append(b.record(ch, kind, value, flags, payload))
	return b.c.RecordCount() - 1
}

// add appends a record to the open packet.
func (b *captureBuilder) add(ch common.Channel, kind common.FieldKind, value uint64, flags common.Flags, payload common.Payload) uint64 {
	b.c.AppendToPacket(b.record(ch, kind, value, flags, payload))
	return b.c.RecordCount() - 1
}

func (b *captureBuilder) packet() {
	b.c.BeginPacket()
}

type testHeader struct {
	sourceID uint8
	object   uint8
	instance uint16
	command  uint8
	ext      uint16
}

func (h testHeader) context() common.MessageContext {
	return common.MessageContext{
		Command:          h.command,
		Object:           h.object,
		Instance:         h.instance,
		CommandExtension: h.ext,
	}
}

// message appends the header and data of one message to the open packet
// and returns the index of its command extension.
func (b *captureBuilder) message(ch common.Channel, h testHeader, data []byte, flags common.Flags) uint64 {
	ctx := h.context()
	b.add(ch, common.KindMessageSize, uint64(len(data)), flags, ctx)
	b.add(ch, common.KindMessageReserved1, 0, flags, ctx)
	b.add(ch, common.KindSourceID, uint64(h.sourceID), flags, ctx)
	b.add(ch, common.KindObject, uint64(h.object), flags, ctx)
	b.add(ch, common.KindInstance, uint64(h.instance), flags, ctx)
	b.add(ch, common.KindCommand, uint64(h.command), flags, ctx)
	b.add(ch, common.KindMessageReserved2, 0, flags, ctx)
	ext := b.add(ch, common.KindCommandExtension, uint64(h.ext), flags, ctx)
	for i, d := range data {
		dc := ctx
		dc.DataIndex = uint16(i)
		b.add(ch, common.KindMessageData, uint64(d), flags, dc)
	}
	return ext
}

func newTestAnalyzer(t *testing.T, store common.RecordStore, opts ...func(*Config)) *Analyzer {
	t.Helper()
	conf := NewConfig(logging.NewTestLogger(t))
	for _, opt := range opts {
		opt(conf)
	}
	ana, err := NewAnalyzer(conf, store)
	test.That(t, err, test.ShouldBeNil)
	return ana
}

// allTabular renders the tabular text of every record in order.
func allTabular(a *Analyzer, store common.RecordStore) []string {
	var lines []string
	for i := uint64(0); i < store.RecordCount(); i++ {
		lines = append(lines, a.RenderTabularText(i, Hexadecimal)...)
	}
	return lines
}

func countLines(lines []string, want string) int {
	n := 0
	for _, l := range lines {
		if l == want {
			n++
		}
	}
	return n
}
