package varint

import (
	"math"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		buf   []byte
		value uint64
		n     int
	}{
		{
			name:  "single byte",
			buf:   []byte{0x0f},
			value: 15,
			n:     1,
		},
		{
			name:  "two bytes",
			buf:   []byte{0x8f, 0x0f},
			value: 1935,
			n:     2,
		},
		{
			name:  "nine bytes uses all bits of the last byte",
			buf:   []byte{0x8f, 0x8f, 0x8f, 0x8f, 0x8f, 0x8f, 0x8f, 0x8f, 0x0f},
			value: 2178749300044435215,
			n:     9,
		},
		{
			name:  "trailing bytes are not consumed",
			buf:   []byte{0x81, 0x00, 0xff, 0xff},
			value: 128,
			n:     2,
		},
		{
			name:  "ninth byte high bit is data",
			buf:   []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
			value: math.MaxUint64,
			n:     9,
		},
	}

	for _, aTestCase := range testCases {
		t.Run(aTestCase.name, func(t *testing.T) {
			value, n, err := Decode(aTestCase.buf)
			require.NoError(t, err)
			assert.Equal(t, aTestCase.value, value)
			assert.Equal(t, aTestCase.n, n)
		})
	}
}

func TestDecode_Truncated(t *testing.T) {
	t.Parallel()

	for _, buf := range [][]byte{
		nil,
		{0x8f},
		{0x8f, 0x8f, 0x8f},
		{0x8f, 0x8f, 0x8f, 0x8f, 0x8f, 0x8f, 0x8f, 0x8f},
	} {
		_, _, err := Decode(buf)
		assert.ErrorIs(t, err, ErrTruncatedInput)
	}
}

func TestLen(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, Len(0))
	assert.Equal(t, 1, Len(127))
	assert.Equal(t, 2, Len(128))
	assert.Equal(t, 2, Len(1<<14-1))
	assert.Equal(t, 3, Len(1<<14))
	assert.Equal(t, 8, Len(1<<56-1))
	assert.Equal(t, 9, Len(1<<56))
	assert.Equal(t, 9, Len(math.MaxUint64))
}

func TestEncode_Decode_RoundTrip(t *testing.T) {
	t.Parallel()

	values := []uint64{0, 1, 15, 127, 128, 1935, 240, 2287, 67823, math.MaxUint64}
	for shift := 7; shift < 64; shift += 7 {
		values = append(values, 1<<shift-1, 1<<shift, 1<<shift+1)
	}

	faker := gofakeit.New(uint64(time.Now().Unix()))
	for range 1000 {
		// Spread values across every encoded length
		values = append(values, faker.Uint64()>>faker.UintRange(0, 63))
	}

	for _, v := range values {
		buf := Encode(v)
		assert.Len(t, buf, Len(v))

		actual, n, err := Decode(buf)
		require.NoError(t, err)
		assert.Equal(t, v, actual)
		assert.Equal(t, Len(v), n)
	}
}
