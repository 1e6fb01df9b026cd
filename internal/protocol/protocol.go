// Package protocol encodes outbound gateway commands and decodes inbound
// envelopes. Everything here is pure: no I/O and no shared mutable state.
package protocol

import (
	"errors"

	jsoniter "github.com/json-iterator/go"
)

// json is the codec for every payload. It behaves like encoding/json, so
// Marshaler and Unmarshaler implementations (identifiers) are honoured and
// unknown inbound fields are ignored.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

type outboundFrame struct {
	Op Opcode `json:"op"`
	D  any    `json:"d"`
}

type inboundFrame struct {
	Op   *Opcode             `json:"op"`
	D    jsoniter.RawMessage `json:"d"`
	Seq  *uint64             `json:"s"`
	Type *string             `json:"t"`
}

// Encode serializes cmd as a {"op", "d"} text payload.
func Encode(cmd Command) ([]byte, error) {
	if cmd == nil {
		return nil, errors.New("protocol: nil command")
	}
	return json.Marshal(outboundFrame{Op: cmd.Opcode(), D: cmd.payload()})
}

// DecodeEnvelope parses one text payload, plain or already inflated.
// A failure is a *DecodeError carrying the raw payload.
func DecodeEnvelope(data []byte) (Envelope, error) {
	var f inboundFrame
	if err := json.Unmarshal(data, &f); err != nil {
		return Envelope{}, &DecodeError{Raw: data, Err: err}
	}
	if f.Op == nil {
		return Envelope{}, &DecodeError{Raw: data, Err: errMissingOp}
	}

	env := Envelope{
		Op:   *f.Op,
		Data: f.D,
		Seq:  f.Seq,
	}
	if f.Type != nil {
		env.Type = *f.Type
	}
	return env, nil
}
