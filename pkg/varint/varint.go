// Package varint implements the variable-length integer encoding used by the
// SQLite file format.
//
// A varint is 1 to 9 bytes long. Each of the first eight bytes contributes its
// low 7 bits and uses the high bit as a continuation flag. A ninth byte, when
// present, contributes all 8 of its bits. Bits from earlier bytes are more
// significant, so the encoding is big-endian.
package varint

import (
	"errors"
	"fmt"

	"github.com/RichardKnop/sqlitepage/pkg/bitwise"
)

const (
	// MaxLen is the longest possible encoding.
	MaxLen = 9

	continuationBit = 7
	payloadBits     = 7
)

var ErrTruncatedInput = errors.New("truncated varint")

// Decode reads one varint from the front of buf and returns its value together
// with the number of bytes consumed.
func Decode(buf []byte) (uint64, int, error) {
	var value uint64
	for i := 0; i < MaxLen; i++ {
		if i >= len(buf) {
			return 0, 0, fmt.Errorf("%w: need more than %d bytes", ErrTruncatedInput, len(buf))
		}
		b := buf[i]
		if i == MaxLen-1 {
			return value<<8 | uint64(b), MaxLen, nil
		}
		value = value<<payloadBits | uint64(bitwise.Low(b, payloadBits))
		if !bitwise.IsSet(b, continuationBit) {
			return value, i + 1, nil
		}
	}
	// unreachable, the ninth byte always terminates
	return 0, 0, ErrTruncatedInput
}

// Len returns the length of the minimal encoding of v.
func Len(v uint64) int {
	if v > 1<<56-1 {
		return MaxLen
	}
	n := 1
	for v >>= payloadBits; v > 0; v >>= payloadBits {
		n += 1
	}
	return n
}

// Encode returns the minimal encoding of v.
func Encode(v uint64) []byte {
	n := Len(v)
	buf := make([]byte, n)

	if n == MaxLen {
		buf[8] = byte(v)
		v >>= 8
		for i := 7; i >= 0; i-- {
			buf[i] = bitwise.Set(byte(v)&0x7f, continuationBit)
			v >>= payloadBits
		}
		return buf
	}

	for i := n - 1; i >= 0; i-- {
		b := byte(v) & 0x7f
		if i != n-1 {
			b = bitwise.Set(b, continuationBit)
		}
		buf[i] = b
		v >>= payloadBits
	}
	return buf
}
