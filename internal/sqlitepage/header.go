package sqlitepage

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	HeaderSize = 100

	MinPageSize = 512
	MaxPageSize = 65536

	// SQLite refuses databases whose usable page size drops below this.
	minUsableSize = 480
)

var magic = []byte("SQLite format 3\x00")

type TextEncoding uint32

const (
	UTF8    TextEncoding = 1
	UTF16le TextEncoding = 2
	UTF16be TextEncoding = 3
)

func (e TextEncoding) String() string {
	switch e {
	case UTF8:
		return "utf-8"
	case UTF16le:
		return "utf-16le"
	case UTF16be:
		return "utf-16be"
	default:
		return fmt.Sprintf("unknown(%d)", uint32(e))
	}
}

// DatabaseHeader is the fixed 100 byte header at the start of the file.
// Only PageSize and ReservedSpace affect decoding, the remaining fields are
// exposed for callers that want to print them.
type DatabaseHeader struct {
	PageSize            uint32
	WriteVersion        uint8
	ReadVersion         uint8
	ReservedSpace       uint8
	MaxPayloadFraction  uint8
	MinPayloadFraction  uint8
	LeafPayloadFraction uint8
	FileChangeCounter   uint32
	DatabaseSize        uint32 // in pages
	FirstFreelistTrunk  uint32
	FreelistPages       uint32
	SchemaCookie        uint32
	SchemaFormat        uint32
	DefaultCacheSize    uint32
	AutoVacuumTopRoot   uint32
	TextEncoding        TextEncoding
	UserVersion         uint32
	IncrementalVacuum   uint32
	ApplicationID       uint32
	VersionValidFor     uint32
	SQLiteVersion       uint32
}

// UsableSize is the page size minus the reserved region at the end of each page.
func (h DatabaseHeader) UsableSize() int {
	return int(h.PageSize) - int(h.ReservedSpace)
}

func ReadHeader(buf []byte) (DatabaseHeader, error) {
	if len(buf) < HeaderSize {
		return DatabaseHeader{}, fmt.Errorf("%w: database header needs %d bytes, got %d", ErrTruncated, HeaderSize, len(buf))
	}
	if !bytes.Equal(buf[0:16], magic) {
		return DatabaseHeader{}, fmt.Errorf("%w: bad magic string %q", ErrInvalidFormat, buf[0:16])
	}

	pageSize, err := decodePageSize(binary.BigEndian.Uint16(buf[16:18]))
	if err != nil {
		return DatabaseHeader{}, err
	}

	h := DatabaseHeader{
		PageSize:            pageSize,
		WriteVersion:        buf[18],
		ReadVersion:         buf[19],
		ReservedSpace:       buf[20],
		MaxPayloadFraction:  buf[21],
		MinPayloadFraction:  buf[22],
		LeafPayloadFraction: buf[23],
		FileChangeCounter:   binary.BigEndian.Uint32(buf[24:28]),
		DatabaseSize:        binary.BigEndian.Uint32(buf[28:32]),
		FirstFreelistTrunk:  binary.BigEndian.Uint32(buf[32:36]),
		FreelistPages:       binary.BigEndian.Uint32(buf[36:40]),
		SchemaCookie:        binary.BigEndian.Uint32(buf[40:44]),
		SchemaFormat:        binary.BigEndian.Uint32(buf[44:48]),
		DefaultCacheSize:    binary.BigEndian.Uint32(buf[48:52]),
		AutoVacuumTopRoot:   binary.BigEndian.Uint32(buf[52:56]),
		TextEncoding:        TextEncoding(binary.BigEndian.Uint32(buf[56:60])),
		UserVersion:         binary.BigEndian.Uint32(buf[60:64]),
		IncrementalVacuum:   binary.BigEndian.Uint32(buf[64:68]),
		ApplicationID:       binary.BigEndian.Uint32(buf[68:72]),
		VersionValidFor:     binary.BigEndian.Uint32(buf[92:96]),
		SQLiteVersion:       binary.BigEndian.Uint32(buf[96:100]),
	}

	if h.UsableSize() < minUsableSize {
		return DatabaseHeader{}, fmt.Errorf("%w: usable size %d is below %d", ErrInvalidFormat, h.UsableSize(), minUsableSize)
	}

	return h, nil
}

// decodePageSize maps the stored 16 bit field to a page size. The value 1
// stands for 65536, which does not fit in 16 bits.
func decodePageSize(stored uint16) (uint32, error) {
	if stored == 1 {
		return MaxPageSize, nil
	}
	size := uint32(stored)
	if size < MinPageSize || size&(size-1) != 0 {
		return 0, fmt.Errorf("%w: invalid page size %d", ErrInvalidFormat, stored)
	}
	return size, nil
}
