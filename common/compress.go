package common

import (
	"bufio"
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

type nopReadCloser struct {
	io.Reader
}

func (nopReadCloser) Close() error { return nil }

type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

// NewDecompressingReader returns a reader that transparently decompresses
// gzip or zstd input. Anything else is passed through.
func NewDecompressingReader(r io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}

	switch {
	case bytes.HasPrefix(head, zstdMagic):
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		return zstdReadCloser{dec}, nil
	case bytes.HasPrefix(head, gzipMagic):
		return gzip.NewReader(br)
	default:
		return nopReadCloser{br}, nil
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// NewCompressingWriter wraps w in a compressor chosen by the extension of
// path: .gz for gzip, .zst for zstd. Other paths write through unchanged.
// Closing the returned writer does not close w.
func NewCompressingWriter(w io.Writer, path string) (io.WriteCloser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return gzip.NewWriter(w), nil
	case ".zst":
		return zstd.NewWriter(w)
	default:
		return nopWriteCloser{w}, nil
	}
}
