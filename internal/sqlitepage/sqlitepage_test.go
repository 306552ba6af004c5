package sqlitepage

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"

	"github.com/RichardKnop/sqlitepage/pkg/varint"
)

var (
	gen = gofakeit.New(uint64(time.Now().Unix()))
)

// testHeader returns a valid 100 byte database header with the given stored
// page size field.
func testHeader(storedPageSize uint16) []byte {
	buf := make([]byte, HeaderSize)
	copy(buf, magic)
	binary.BigEndian.PutUint16(buf[16:18], storedPageSize)
	buf[18] = 1
	buf[19] = 1
	buf[21] = 64
	buf[22] = 32
	buf[23] = 32
	binary.BigEndian.PutUint32(buf[56:60], uint32(UTF8))
	return buf
}

func testLocalPayloadSize(t *testing.T, payloadSize uint64, usableSize int) int {
	t.Helper()

	local, err := LocalPayloadSize(payloadSize, usableSize)
	require.NoError(t, err)
	return local
}

// encodeLeafTableCell lays out a table leaf cell the way SQLite writes it,
// spilling to overflowPage when the payload does not fit locally.
func encodeLeafTableCell(usableSize int, rowID uint64, payload []byte, overflowPage uint32) []byte {
	buf := varint.Encode(uint64(len(payload)))
	buf = append(buf, varint.Encode(rowID)...)

	local, err := LocalPayloadSize(uint64(len(payload)), usableSize)
	if err != nil {
		panic(err)
	}
	buf = append(buf, payload[:local]...)
	if local < len(payload) {
		buf = binary.BigEndian.AppendUint32(buf, overflowPage)
	}
	return buf
}

// testLeafTablePage builds a table leaf page. Cells are packed at the end of
// the page in reverse order, the way SQLite fills the content area.
func testLeafTablePage(pageSize int, isFirstPage bool, cells ...[]byte) []byte {
	buf := make([]byte, pageSize)
	headerOffset := 0
	if isFirstPage {
		headerOffset = HeaderSize
	}

	buf[headerOffset] = byte(LeafTable)
	binary.BigEndian.PutUint16(buf[headerOffset+3:], uint16(len(cells)))

	contentStart := pageSize
	for i, aCell := range cells {
		contentStart -= len(aCell)
		copy(buf[contentStart:], aCell)
		binary.BigEndian.PutUint16(buf[headerOffset+leafPageHeaderSize+i*cellPointerSize:], uint16(contentStart))
	}
	// 65536 is stored as 0
	binary.BigEndian.PutUint16(buf[headerOffset+5:], uint16(contentStart))

	return buf
}

// testDatabaseFile returns a one page database file with the given cells on
// its schema page.
func testDatabaseFile(pageSize int, cells ...[]byte) []byte {
	stored := uint16(pageSize)
	if pageSize == MaxPageSize {
		stored = 1
	}
	buf := testLeafTablePage(pageSize, true, cells...)
	copy(buf, testHeader(stored))
	binary.BigEndian.PutUint32(buf[28:32], 1)
	return buf
}
