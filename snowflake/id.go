// Package snowflake provides type-strong, non-zero 64-bit entity identifiers.
//
// Every identifier kind shares one representation and one parser; the kind is
// a phantom type parameter, so a GuildID can never be passed where a UserID is
// expected:
//
//	guild := snowflake.New[snowflake.Guild](175928847299117063)
//	user, ok := snowflake.Parse[snowflake.User]("80351110224678912")
//
// On the wire identifiers are always decimal strings. Decoders also accept a
// bare integer for formats that keep full 64-bit precision.
package snowflake

import (
	"cmp"
	"errors"
	"strconv"
	"time"
)

// Epoch is the first millisecond of 2015, in unix milliseconds. The creation
// timestamp embedded in an identifier is an offset from it.
const Epoch int64 = 1420070400000

// timestampShift is the number of low-order bits below the timestamp.
const timestampShift = 22

// ErrZeroID is returned when an identifier would be constructed from zero.
var ErrZeroID = errors.New("snowflake: attempted to construct an ID of zero")

// ID is a non-zero identifier for an entity of kind K.
//
// The zero value is not a valid identifier; it stands for "absent" in structs
// whose field is optional, and IsValid reports false for it. Values produced
// by New, FromUint64, Parse and the decoders are never zero.
type ID[K Kind] struct {
	v uint64
}

// New returns the identifier for v.
//
// New panics if v is zero. Use it for literals known to be valid; use
// FromUint64 for integers that come from anywhere else.
func New[K Kind](v uint64) ID[K] {
	if v == 0 {
		var k K
		panic("snowflake: attempted to call " + k.kindName() + " constructor with invalid (0) value")
	}
	return ID[K]{v: v}
}

// FromUint64 returns the identifier for v, or ErrZeroID if v is zero.
func FromUint64[K Kind](v uint64) (ID[K], error) {
	if v == 0 {
		return ID[K]{}, ErrZeroID
	}
	return ID[K]{v: v}, nil
}

// Parse parses the decimal form of an identifier. It reports false for empty
// input, non-digit bytes, zero, and values that do not fit in 64 bits.
func Parse[K Kind](s string) (ID[K], bool) {
	v, ok := parseDigits(s)
	if !ok || v == 0 {
		return ID[K]{}, false
	}
	return ID[K]{v: v}, true
}

// ParseBytes is Parse for a byte slice.
func ParseBytes[K Kind](b []byte) (ID[K], bool) {
	v, ok := parseDigits(b)
	if !ok || v == 0 {
		return ID[K]{}, false
	}
	return ID[K]{v: v}, true
}

// Uint64 returns the raw value.
func (id ID[K]) Uint64() uint64 {
	return id.v
}

// IsValid reports whether id holds a constructed (non-zero) value.
func (id ID[K]) IsValid() bool {
	return id.v != 0
}

// Timestamp returns the creation time as milliseconds since Epoch.
func (id ID[K]) Timestamp() uint64 {
	return id.v >> timestampShift
}

// CreatedAt returns the time the entity was created.
func (id ID[K]) CreatedAt() time.Time {
	return time.UnixMilli(int64(id.v>>timestampShift) + Epoch).UTC()
}

// Equal reports whether id holds the raw value v.
func (id ID[K]) Equal(v uint64) bool {
	return id.v == v
}

// Compare orders identifiers of the same kind by raw value.
func (id ID[K]) Compare(other ID[K]) int {
	return cmp.Compare(id.v, other.v)
}

// String returns the decimal form.
func (id ID[K]) String() string {
	return strconv.FormatUint(id.v, 10)
}

// Kind returns the name of the identifier kind, for example "GuildID".
func (id ID[K]) Kind() string {
	var k K
	return k.kindName()
}

// ShardID identifies a gateway connection partition. It is internal to the
// client and has no wire form.
type ShardID uint32

func (s ShardID) String() string {
	return strconv.FormatUint(uint64(s), 10)
}
