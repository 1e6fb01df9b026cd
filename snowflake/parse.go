package snowflake

import "math"

// maxDigits is the length of math.MaxUint64 in decimal.
const maxDigits = 20

const (
	nibbleHigh = 0xf0f0f0f0f0f0f0f0
	asciiZeros = 0x3030303030303030
	plusSix    = 0x0606060606060606
)

// parseDigits parses an unsigned decimal number. Up to sixteen leading digits
// are consumed eight at a time with SWAR arithmetic; the remainder goes
// through a checked multiply-accumulate loop.
func parseDigits[T string | []byte](s T) (uint64, bool) {
	n := len(s)
	if n == 0 || n > maxDigits {
		return 0, false
	}

	var v uint64
	i := 0
	switch {
	case n >= 16:
		a, b := load8(s, 0), load8(s, 8)
		if !eightDigits(a) || !eightDigits(b) {
			return 0, false
		}
		v = parseEight(a)*100000000 + parseEight(b)
		i = 16
	case n >= 8:
		a := load8(s, 0)
		if !eightDigits(a) {
			return 0, false
		}
		v = parseEight(a)
		i = 8
	}

	for ; i < n; i++ {
		d := uint64(s[i] - '0')
		if d > 9 {
			return 0, false
		}
		if v > (math.MaxUint64-d)/10 {
			return 0, false
		}
		v = v*10 + d
	}
	return v, true
}

// load8 reads eight bytes starting at i as a little-endian integer, so the
// first character lands in the lowest byte.
func load8[T string | []byte](s T, i int) uint64 {
	_ = s[i+7]
	return uint64(s[i]) | uint64(s[i+1])<<8 | uint64(s[i+2])<<16 | uint64(s[i+3])<<24 |
		uint64(s[i+4])<<32 | uint64(s[i+5])<<40 | uint64(s[i+6])<<48 | uint64(s[i+7])<<56
}

// eightDigits reports whether every byte of x is an ASCII digit. The first
// test pins the high nibble to 3; adding 6 pushes low nibbles above 9 into
// the next high nibble without carrying across bytes.
func eightDigits(x uint64) bool {
	return x&nibbleHigh == asciiZeros && (x+plusSix)&nibbleHigh == asciiZeros
}

// parseEight turns eight ASCII digits, loaded little-endian, into their value.
// Each round merges neighbouring groups: single digits into pairs, pairs into
// quads, quads into the full eight-digit number.
func parseEight(x uint64) uint64 {
	x = (x&0x0f000f000f000f00)>>8 + (x&0x000f000f000f000f)*10
	x = (x&0x00ff000000ff0000)>>16 + (x&0x000000ff000000ff)*100
	return (x&0x0000ffff00000000)>>32 + (x&0x000000000000ffff)*10000
}
