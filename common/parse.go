package common

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"
	"go.viam.com/rdk/logging"
)

// maxLineSize bounds a single capture line.
const maxLineSize = 1 << 20

// ReadCapture reads every record from r. When parser is nil the format is
// detected from the first record line. Compressed input is detected by its
// magic number.
func ReadCapture(r io.Reader, parser TextLineParser, logger logging.Logger) (capture *Capture, err error) {
	rc, err := NewDecompressingReader(r)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Combine(err, rc.Close())
	}()

	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	capture = NewCapture()
	var (
		lineNum    int
		lastPacket uint64
		inPacket   bool
		line       CaptureLine
	)
	for scanner.Scan() {
		lineNum++
		text := string(bytes.TrimSpace(scanner.Bytes()))
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if parser == nil {
			parser = FindParser(text)
			if parser == nil {
				return nil, fmt.Errorf("line %d: unrecognized capture format", lineNum)
			}
			logger.Debugf("Detected capture format %s", parser.Name())
		}
		if err := parser.Parse(text, &line); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		switch {
		case !line.InPacket:
			capture.Append(line.Record)
			inPacket = false
		case !inPacket || line.Packet != lastPacket:
			capture.BeginPacket()
			capture.AppendToPacket(line.Record)
		default:
			capture.AppendToPacket(line.Record)
		}
		inPacket = line.InPacket
		lastPacket = line.Packet
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read capture: %w", err)
	}
	capture.EndPacket()

	logger.Debugw("capture loaded", "records", capture.RecordCount(), "packets", capture.PacketCount())
	return capture, nil
}

// WriteCapture writes every record of store using parser.
func WriteCapture(w io.Writer, store RecordStore, parser TextLineParser) error {
	if parser == nil {
		return errors.New("no capture format selected")
	}
	bw := bufio.NewWriter(w)
	var line CaptureLine
	for i := uint64(0); i < store.RecordCount(); i++ {
		line.Record = store.Record(i)
		line.Packet, line.InPacket = store.PacketContaining(i)
		out, err := parser.Marshal(&line)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if _, err := bw.WriteString(out); err != nil {
			return err
		}
	}
	return bw.Flush()
}
