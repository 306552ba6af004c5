package sqlitepage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/RichardKnop/sqlitepage/pkg/lrucache"
)

type sizer interface {
	Size() int64
}

// Database is a read-only view over a database file. It owns the buffer of
// page 1 and a bounded cache of other decoded pages.
type Database struct {
	source         io.ReaderAt
	closer         io.Closer
	sourceSize     int64 // -1 when unknown
	header         DatabaseHeader
	schemaPage     *Page
	pages          *lrucache.Cache[uint32, *Page]
	maxCachedPages int
	logger         *zap.Logger
}

// Open reads the database header and page 1 from source.
func Open(ctx context.Context, logger *zap.Logger, source io.ReaderAt, opts ...DatabaseOption) (*Database, error) {
	db := &Database{
		source:         source,
		sourceSize:     -1,
		maxCachedPages: DefaultMaxCachedPages,
		logger:         logger,
	}
	if s, ok := source.(sizer); ok {
		db.sourceSize = s.Size()
	}

	for _, opt := range opts {
		opt(db)
	}

	db.pages = lrucache.New[uint32, *Page](db.maxCachedPages)

	if err := db.init(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

// OpenFile opens the file at path read-only. The file is closed by Close, or
// before returning when opening fails.
func OpenFile(ctx context.Context, logger *zap.Logger, path string, opts ...DatabaseOption) (*Database, error) {
	dbFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database file: %w", err)
	}

	info, err := dbFile.Stat()
	if err != nil {
		dbFile.Close()
		return nil, fmt.Errorf("stat database file: %w", err)
	}

	opts = append([]DatabaseOption{WithSourceSize(info.Size())}, opts...)
	db, err := Open(ctx, logger, dbFile, opts...)
	if err != nil {
		dbFile.Close()
		return nil, err
	}
	db.closer = dbFile

	return db, nil
}

func (d *Database) init(ctx context.Context) error {
	headerBuf, err := d.readAt(ctx, 0, HeaderSize)
	if err != nil {
		return fmt.Errorf("read database header: %w", err)
	}
	d.header, err = ReadHeader(headerBuf)
	if err != nil {
		return err
	}

	pageBuf, err := d.readAt(ctx, 0, int(d.header.PageSize))
	if err != nil {
		return fmt.Errorf("read page 1: %w", err)
	}
	d.schemaPage, err = ReadPage(pageBuf, 1, true, d.header.UsableSize())
	if err != nil {
		return err
	}

	d.logger.Debug("opened database",
		zap.Uint32("page size", d.header.PageSize),
		zap.Stringer("text encoding", d.header.TextEncoding),
		zap.Stringer("schema page type", d.schemaPage.Type),
		zap.Uint16("schema cells", d.schemaPage.CellCount),
	)

	return nil
}

// Close releases the underlying file when the database was opened from a path.
func (d *Database) Close() error {
	if d.closer == nil {
		return nil
	}
	err := d.closer.Close()
	d.closer = nil
	return err
}

func (d *Database) Header() DatabaseHeader {
	return d.header
}

// SchemaPage is page 1, the root of the schema table.
func (d *Database) SchemaPage() *Page {
	return d.schemaPage
}

// PageCount is the number of whole pages in the source. When the source size
// is unknown the in-header database size is used.
func (d *Database) PageCount() uint32 {
	if d.sourceSize < 0 {
		return d.header.DatabaseSize
	}
	return uint32(d.sourceSize / int64(d.header.PageSize))
}

// SchemaPageCells returns a cursor over the cells of page 1. When page 1 is
// not a table leaf the cursor is empty and the error says why.
func (d *Database) SchemaPageCells() (*CellCursor, error) {
	switch d.schemaPage.Type {
	case LeafTable:
		return newCellCursor(d.schemaPage), nil
	case InteriorTable, InteriorIndex:
		d.logger.Debug("schema page is interior, not descending",
			zap.Uint32("right most pointer", d.schemaPage.RightMostPointer),
		)
		return emptyCellCursor(), fmt.Errorf("%w: page 1 is %s", ErrRootIsInterior, d.schemaPage.Type)
	case LeafIndex:
		return emptyCellCursor(), fmt.Errorf("%w: page 1 is %s", ErrNotImplemented, d.schemaPage.Type)
	default:
		return emptyCellCursor(), fmt.Errorf("%w: 0x%02x", ErrUnsupportedPageType, byte(d.schemaPage.Type))
	}
}

// Page reads and decodes page number n, counting from 1. Child pointers and
// overflow chains are not followed.
func (d *Database) Page(ctx context.Context, n uint32) (*Page, error) {
	if n == 1 {
		return d.schemaPage, nil
	}
	if n == 0 || n > d.PageCount() {
		return nil, fmt.Errorf("page %d out of range [1, %d]", n, d.PageCount())
	}

	if aPage, ok := d.pages.Get(n); ok {
		return aPage, nil
	}

	offset := int64(n-1) * int64(d.header.PageSize)
	buf, err := d.readAt(ctx, offset, int(d.header.PageSize))
	if err != nil {
		return nil, fmt.Errorf("read page %d: %w", n, err)
	}

	aPage, err := ReadPage(buf, n, false, d.header.UsableSize())
	if err != nil {
		return nil, err
	}

	if evicted, ok := d.pages.Put(n, aPage); ok {
		d.logger.Debug("evicted page from cache", zap.Uint32("page", evicted))
	}

	return aPage, nil
}

// readAt reads exactly size bytes at offset.
func (d *Database) readAt(ctx context.Context, offset int64, size int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buf := make([]byte, size)
	n, err := d.source.ReadAt(buf, offset)
	if n == size {
		return buf, nil
	}
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("%w: wanted %d bytes at offset %d, got %d", ErrTruncated, size, offset, n)
	}
	return nil, err
}
