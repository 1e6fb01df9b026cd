package protocol

import (
	"bytes"
	"compress/zlib"
	"errors"
	"io"
)

// DecompressionMultiplier pre-sizes the inflate buffer relative to the
// compressed frame. Gateway payloads typically inflate three to five fold.
const DecompressionMultiplier = 3

// syncFlush terminates a zlib block flushed with Z_SYNC_FLUSH.
var syncFlush = []byte{0x00, 0x00, 0xff, 0xff}

// Inflate decompresses one binary frame. The frame is either a complete zlib
// stream or a stream cut after a sync flush; in the latter case everything up
// to the flush point is returned.
func Inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, &DecompressError{Len: len(data), Raw: data, Err: err}
	}
	defer zr.Close()

	var out bytes.Buffer
	out.Grow(len(data) * DecompressionMultiplier)

	if _, err := out.ReadFrom(zr); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) && bytes.HasSuffix(data, syncFlush) {
			return out.Bytes(), nil
		}
		return nil, &DecompressError{Len: len(data), Raw: data, Err: err}
	}
	return out.Bytes(), nil
}
