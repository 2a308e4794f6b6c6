package common

import "sort"

// A RecordStore gives random access to decoded records and the packets
// they are grouped into.
type RecordStore interface {
	RecordCount() uint64
	Record(index uint64) Record
	// PacketContaining returns the packet the record belongs to, if any.
	PacketContaining(index uint64) (uint64, bool)
	// PacketRange returns the inclusive record range of a packet.
	PacketRange(packetID uint64) (first, last uint64)
}

// A Capture is an in-memory RecordStore.
type Capture struct {
	records []Record
	packets []packetSpan
	open    bool
}

type packetSpan struct {
	first, last uint64
}

// NewCapture returns an empty capture.
func NewCapture() *Capture {
	return &Capture{}
}

// Append adds a record outside of any packet. It closes an open packet.
func (c *Capture) Append(r Record) {
	c.EndPacket()
	c.records = append(c.records, r)
}

// BeginPacket starts a new packet; records appended with AppendToPacket
// are part of it until EndPacket or Append is called.
func (c *Capture) BeginPacket() uint64 {
	c.EndPacket()
	c.open = true
	c.packets = append(c.packets, packetSpan{first: uint64(len(c.records)), last: uint64(len(c.records))})
	return uint64(len(c.packets) - 1)
}

// AppendToPacket adds a record to the open packet, starting one if needed.
func (c *Capture) AppendToPacket(r Record) {
	if !c.open {
		c.BeginPacket()
	}
	c.records = append(c.records, r)
	c.packets[len(c.packets)-1].last = uint64(len(c.records) - 1)
}

// EndPacket closes the open packet. Empty packets are discarded.
func (c *Capture) EndPacket() {
	if c.open && len(c.packets) > 0 {
		p := c.packets[len(c.packets)-1]
		if p.first >= uint64(len(c.records)) {
			c.packets = c.packets[:len(c.packets)-1]
		}
	}
	c.open = false
}

// RecordCount returns the number of records.
func (c *Capture) RecordCount() uint64 {
	return uint64(len(c.records))
}

// Record returns the record at index.
func (c *Capture) Record(index uint64) Record {
	return c.records[index]
}

// PacketCount returns the number of packets.
func (c *Capture) PacketCount() uint64 {
	return uint64(len(c.packets))
}

// PacketContaining returns the packet the record at index belongs to.
func (c *Capture) PacketContaining(index uint64) (uint64, bool) {
	i := sort.Search(len(c.packets), func(i int) bool {
		return c.packets[i].last >= index
	})
	if i == len(c.packets) || c.packets[i].first > index {
		return 0, false
	}
	return uint64(i), true
}

// PacketRange returns the inclusive record range of a packet.
func (c *Capture) PacketRange(packetID uint64) (uint64, uint64) {
	p := c.packets[packetID]
	return p.first, p.last
}
