package sqlitepage

import (
	"encoding/binary"
	"fmt"
)

type PageType byte

const (
	InteriorIndex PageType = 0x02
	InteriorTable PageType = 0x05
	LeafIndex     PageType = 0x0a
	LeafTable     PageType = 0x0d
)

const (
	leafPageHeaderSize     = 8
	interiorPageHeaderSize = 12
	cellPointerSize        = 2
)

func parsePageType(b byte) (PageType, error) {
	switch t := PageType(b); t {
	case InteriorIndex, InteriorTable, LeafIndex, LeafTable:
		return t, nil
	default:
		return 0, fmt.Errorf("%w: 0x%02x", ErrUnsupportedPageType, b)
	}
}

func (t PageType) IsLeaf() bool {
	switch t {
	case LeafIndex, LeafTable:
		return true
	default:
		return false
	}
}

func (t PageType) IsTable() bool {
	switch t {
	case InteriorTable, LeafTable:
		return true
	default:
		return false
	}
}

// HeaderSize is the size of the B-tree page header. Interior pages carry an
// extra right-most child pointer. Unknown types report 0.
func (t PageType) HeaderSize() int {
	switch t {
	case LeafIndex, LeafTable:
		return leafPageHeaderSize
	case InteriorIndex, InteriorTable:
		return interiorPageHeaderSize
	default:
		return 0
	}
}

func (t PageType) String() string {
	switch t {
	case InteriorIndex:
		return "interior index"
	case InteriorTable:
		return "interior table"
	case LeafIndex:
		return "leaf index"
	case LeafTable:
		return "leaf table"
	default:
		return fmt.Sprintf("unknown(0x%02x)", byte(t))
	}
}

// Page is a decoded B-tree page. It borrows the buffer it was read from.
type Page struct {
	Number              uint32
	Type                PageType
	FirstFreeblock      uint16
	CellCount           uint16
	ContentAreaStart    uint32
	FragmentedFreeBytes uint8
	RightMostPointer    uint32 // interior pages only
	// CellPointers are offsets from the start of the page buffer, for page 1
	// that includes the file header. Every pointer lies in
	// [headerOffset+Type.HeaderSize(), len(buf)).
	CellPointers []uint16

	buf          []byte
	headerOffset int
	usableSize   int
}

// ReadPage decodes the B-tree page header and the cell pointer array. For the
// first page of the file the B-tree header starts after the 100 byte database
// header, every other field is read the same way for all pages. usableSize is
// the page size less the reserved bytes at the end of each page and drives how
// much cell payload is kept locally.
func ReadPage(buf []byte, number uint32, isFirstPage bool, usableSize int) (*Page, error) {
	if usableSize <= 0 || usableSize > len(buf) {
		return nil, fmt.Errorf("%w: usable size %d for page %d of %d bytes", ErrCorruptPage, usableSize, number, len(buf))
	}
	headerOffset := 0
	if isFirstPage {
		headerOffset = HeaderSize
	}
	if len(buf) < headerOffset+leafPageHeaderSize {
		return nil, fmt.Errorf("%w: page %d is %d bytes", ErrCorruptPage, number, len(buf))
	}

	pageType, err := parsePageType(buf[headerOffset])
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", number, err)
	}

	h := buf[headerOffset:]
	aPage := &Page{
		Number:              number,
		Type:                pageType,
		FirstFreeblock:      binary.BigEndian.Uint16(h[1:3]),
		CellCount:           binary.BigEndian.Uint16(h[3:5]),
		ContentAreaStart:    uint32(binary.BigEndian.Uint16(h[5:7])),
		FragmentedFreeBytes: h[7],
		buf:                 buf,
		headerOffset:        headerOffset,
		usableSize:          usableSize,
	}
	if aPage.ContentAreaStart == 0 {
		aPage.ContentAreaStart = MaxPageSize
	}

	headerEnd := headerOffset + pageType.HeaderSize()
	if len(buf) < headerEnd {
		return nil, fmt.Errorf("%w: page %d too small for %s header", ErrCorruptPage, number, pageType)
	}
	if !pageType.IsLeaf() {
		aPage.RightMostPointer = binary.BigEndian.Uint32(h[8:12])
	}

	pointersEnd := headerEnd + int(aPage.CellCount)*cellPointerSize
	if pointersEnd > len(buf) {
		return nil, fmt.Errorf("%w: page %d cell pointer array for %d cells overruns the page", ErrCorruptPage, number, aPage.CellCount)
	}

	aPage.CellPointers = make([]uint16, 0, aPage.CellCount)
	for i := headerEnd; i < pointersEnd; i += cellPointerSize {
		ptr := binary.BigEndian.Uint16(buf[i : i+cellPointerSize])
		if int(ptr) < headerEnd || int(ptr) >= len(buf) {
			return nil, fmt.Errorf("%w: page %d cell pointer %d out of bounds [%d, %d)", ErrCorruptPage, number, ptr, headerEnd, len(buf))
		}
		aPage.CellPointers = append(aPage.CellPointers, ptr)
	}

	return aPage, nil
}

// HeaderOffset is where the B-tree page header starts within the buffer.
func (p *Page) HeaderOffset() int {
	return p.headerOffset
}

// LeafTableCell decodes the cell referenced by the i-th cell pointer.
func (p *Page) LeafTableCell(i int) (LeafTableCell, error) {
	switch p.Type {
	case LeafTable:
	case LeafIndex, InteriorIndex, InteriorTable:
		return LeafTableCell{}, fmt.Errorf("%w: decoding cells of %s page %d", ErrNotImplemented, p.Type, p.Number)
	default:
		return LeafTableCell{}, fmt.Errorf("%w: 0x%02x", ErrUnsupportedPageType, byte(p.Type))
	}

	if i < 0 || i >= len(p.CellPointers) {
		return LeafTableCell{}, fmt.Errorf("cell index %d out of range, page %d has %d cells", i, p.Number, len(p.CellPointers))
	}

	aCell, err := ReadLeafTableCell(p.buf, p.usableSize, int(p.CellPointers[i]))
	if err != nil {
		return LeafTableCell{}, fmt.Errorf("page %d cell %d: %w", p.Number, i, err)
	}
	return aCell, nil
}
