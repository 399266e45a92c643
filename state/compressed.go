package state

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Frame magics of the supported compression formats.
var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
	magicS2   = []byte{0xff, 0x06, 0x00, 0x00} // snappy/s2 stream identifier chunk
)

// sniffCompression inspects the first bytes of r and, when they announce a
// known compression frame, wraps r in the matching decoder. Input that
// matches no magic is returned as-is, so callers can enable decompression
// unconditionally and still parse plain text.
func sniffCompression(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	magic, _ := br.Peek(4)

	switch {
	case bytes.HasPrefix(magic, magicZstd):
		dec, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("state: zstd reader: %w", err)
		}

		return dec.IOReadCloser(), nil

	case bytes.HasPrefix(magic, magicGzip):
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("state: gzip reader: %w", err)
		}

		return gr, nil

	case bytes.HasPrefix(magic, magicLZ4):
		return lz4.NewReader(br), nil

	case bytes.HasPrefix(magic, magicS2):
		return s2.NewReader(br), nil

	default:
		return br, nil
	}
}
