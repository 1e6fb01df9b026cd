package protocol

import (
	"bytes"
	"compress/zlib"
	"errors"
	"strconv"
	"strings"
	"testing"
)

func compress(t testing.TB, data []byte, finish bool) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("zlib Write() error = %v", err)
	}
	if finish {
		if err := zw.Close(); err != nil {
			t.Fatalf("zlib Close() error = %v", err)
		}
	} else if err := zw.Flush(); err != nil {
		t.Fatalf("zlib Flush() error = %v", err)
	}
	return buf.Bytes()
}

const sampleDispatch = `{"op":0,"s":3,"t":"GUILD_MEMBERS_CHUNK","d":{"guild_id":"81384788765712384","members":[],"chunk_index":0,"chunk_count":1}}`

// TestInflateRoundTrip tests that a compressed envelope decodes like its text form
func TestInflateRoundTrip(t *testing.T) {
	t.Parallel()

	for _, finish := range []bool{true, false} {
		name := "complete stream"
		if !finish {
			name = "sync flushed block"
		}

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			inflated, err := Inflate(compress(t, []byte(sampleDispatch), finish))
			if err != nil {
				t.Fatalf("Inflate() error = %v", err)
			}
			if string(inflated) != sampleDispatch {
				t.Fatalf("Inflate() = %s, want %s", inflated, sampleDispatch)
			}

			fromBinary, err := DecodeEnvelope(inflated)
			if err != nil {
				t.Fatalf("DecodeEnvelope(inflated) error = %v", err)
			}
			fromText, err := DecodeEnvelope([]byte(sampleDispatch))
			if err != nil {
				t.Fatalf("DecodeEnvelope(text) error = %v", err)
			}

			if fromBinary.Op != fromText.Op || *fromBinary.Seq != *fromText.Seq || fromBinary.Type != fromText.Type {
				t.Errorf("envelopes differ: %+v vs %+v", fromBinary, fromText)
			}
			if !bytes.Equal(fromBinary.Data, fromText.Data) {
				t.Errorf("Data = %s, want %s", fromBinary.Data, fromText.Data)
			}
		})
	}
}

// TestInflateGrowsPastEstimate tests payloads that inflate far beyond the pre-size
func TestInflateGrowsPastEstimate(t *testing.T) {
	t.Parallel()

	plain := []byte(`{"op":0,"d":"` + strings.Repeat("a", 1<<20) + `"}`)
	compressed := compress(t, plain, true)
	if len(compressed)*DecompressionMultiplier >= len(plain) {
		t.Fatalf("test payload not compressible enough: %d -> %d", len(plain), len(compressed))
	}

	inflated, err := Inflate(compressed)
	if err != nil {
		t.Fatalf("Inflate() error = %v", err)
	}
	if !bytes.Equal(inflated, plain) {
		t.Errorf("Inflate() returned %d bytes, want %d", len(inflated), len(plain))
	}
}

// TestInflateCorrupt tests that corrupt frames keep their length and raw bytes
func TestInflateCorrupt(t *testing.T) {
	t.Parallel()

	valid := compress(t, []byte(sampleDispatch), true)

	flipped := append([]byte(nil), valid...)
	flipped[len(flipped)/2] ^= 0xff

	tests := []struct {
		name  string
		input []byte
	}{
		{"not zlib", []byte("plain text, not compressed")},
		{"bad header", []byte{0x78, 0x00, 0x01, 0x02}},
		{"truncated", valid[:len(valid)/2]},
		{"bit flip", flipped},
		{"checksum", append(append([]byte(nil), valid[:len(valid)-4]...), 0, 0, 0, 0)},
		{"empty", []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Inflate(tt.input)
			if err == nil {
				t.Fatal("Inflate() should fail")
			}
			if !errors.Is(err, ErrDecompress) {
				t.Errorf("error %v does not match ErrDecompress", err)
			}

			var decompressErr *DecompressError
			if !errors.As(err, &decompressErr) {
				t.Fatalf("error %T is not a *DecompressError", err)
			}
			if decompressErr.Len != len(tt.input) {
				t.Errorf("Len = %d, want %d", decompressErr.Len, len(tt.input))
			}
			if !bytes.Equal(decompressErr.Raw, tt.input) {
				t.Error("Raw does not hold the original frame")
			}
			if !strings.Contains(err.Error(), strconv.Itoa(len(tt.input))) {
				t.Errorf("error %q does not mention the frame length", err)
			}
		})
	}
}

// BenchmarkInflate benchmarks decompression of a typical dispatch
func BenchmarkInflate(b *testing.B) {
	compressed := compress(b, []byte(sampleDispatch), true)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Inflate(compressed)
	}
}
