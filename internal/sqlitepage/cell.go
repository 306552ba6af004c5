package sqlitepage

import (
	"encoding/binary"
	"fmt"

	"github.com/RichardKnop/sqlitepage/pkg/varint"
)

const overflowPointerSize = 4

// LeafTableCell is one row of a table B-tree leaf page.
type LeafTableCell struct {
	PayloadSize  uint64
	RowID        uint64
	LocalPayload []byte
	OverflowPage *uint32 // nil when the whole payload is stored locally
}

// Truncated reports whether part of the payload lives on overflow pages.
func (c LeafTableCell) Truncated() bool {
	return c.OverflowPage != nil
}

// maxLocal is the largest payload a table leaf cell stores without spilling.
func maxLocal(usableSize int) int {
	return usableSize - 35
}

// minLocal is the least payload kept on the page once a cell spills.
func minLocal(usableSize int) int {
	return (usableSize-12)*32/255 - 23
}

// LocalPayloadSize returns how many payload bytes of a cell are stored on the
// leaf page itself. The split is undefined for usable sizes below 480 bytes.
func LocalPayloadSize(payloadSize uint64, usableSize int) (int, error) {
	if usableSize < minUsableSize {
		return 0, fmt.Errorf("%w: usable size %d is below %d", ErrCorruptCell, usableSize, minUsableSize)
	}
	maxL, minL := maxLocal(usableSize), minLocal(usableSize)
	if payloadSize <= uint64(maxL) {
		return int(payloadSize), nil
	}
	k := uint64(minL) + (payloadSize-uint64(minL))%uint64(usableSize-4)
	if k > uint64(maxL) {
		return minL, nil
	}
	return int(k), nil
}

// ReadLeafTableCell decodes the leaf table cell starting at offset. The
// returned payload aliases buf.
func ReadLeafTableCell(buf []byte, usableSize, offset int) (LeafTableCell, error) {
	if usableSize < minUsableSize {
		return LeafTableCell{}, fmt.Errorf("%w: usable size %d is below %d", ErrCorruptCell, usableSize, minUsableSize)
	}
	if offset < 0 || offset >= len(buf) {
		return LeafTableCell{}, fmt.Errorf("%w: offset %d outside page of %d bytes", ErrCorruptCell, offset, len(buf))
	}

	i := offset
	payloadSize, n, err := varint.Decode(buf[i:])
	if err != nil {
		return LeafTableCell{}, fmt.Errorf("%w: payload size: %w", ErrCorruptCell, err)
	}
	i += n

	rowID, n, err := varint.Decode(buf[i:])
	if err != nil {
		return LeafTableCell{}, fmt.Errorf("%w: row id: %w", ErrCorruptCell, err)
	}
	i += n

	aCell := LeafTableCell{
		PayloadSize: payloadSize,
		RowID:       rowID,
	}

	local, err := LocalPayloadSize(payloadSize, usableSize)
	if err != nil {
		return LeafTableCell{}, err
	}
	if local > len(buf)-i {
		return LeafTableCell{}, fmt.Errorf("%w: %d byte local payload at offset %d overruns page of %d bytes", ErrCorruptCell, local, i, len(buf))
	}
	aCell.LocalPayload = buf[i : i+local : i+local]
	i += local

	if uint64(local) == payloadSize {
		return aCell, nil
	}

	if i+overflowPointerSize > len(buf) {
		return LeafTableCell{}, fmt.Errorf("%w: overflow page number at offset %d overruns page of %d bytes", ErrCorruptCell, i, len(buf))
	}
	overflowPage := binary.BigEndian.Uint32(buf[i : i+overflowPointerSize])
	aCell.OverflowPage = &overflowPage

	return aCell, nil
}
