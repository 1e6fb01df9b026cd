package protocol

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode matches every *DecodeError.
	ErrDecode = errors.New("protocol: decode failed")
	// ErrDecompress matches every *DecompressError.
	ErrDecompress = errors.New("protocol: decompression failed")
	// ErrUnexpectedPayload is returned by typed envelope accessors called on
	// an envelope of another kind.
	ErrUnexpectedPayload = errors.New("protocol: unexpected payload")

	errMissingOp = errors.New(`missing "op" field`)
)

// DecodeError reports a payload that could not be parsed.
type DecodeError struct {
	Raw []byte
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("protocol: decode %d byte payload: %v", len(e.Raw), e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrDecode, e.Err}
}

// DecompressError reports a binary frame that is not a valid zlib stream.
type DecompressError struct {
	Len int
	Raw []byte
	Err error
}

func (e *DecompressError) Error() string {
	return fmt.Sprintf("protocol: inflate %d byte frame: %v", e.Len, e.Err)
}

func (e *DecompressError) Unwrap() []error {
	return []error{ErrDecompress, e.Err}
}
