// Package sqlitepage reads the header and table leaf pages of SQLite database
// files without linking SQLite.
//
//	db, err := sqlitepage.Open("./app.db?log_level=debug")
//	if err != nil {
//		return err
//	}
//	defer db.Close()
//
//	cursor, err := db.SchemaCells()
//	...
//	for aCell, err := range cursor.All() {
//		...
//	}
package sqlitepage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/RichardKnop/sqlitepage/internal/pkg/logging"
	"github.com/RichardKnop/sqlitepage/internal/sqlitepage"
)

type (
	DatabaseHeader = sqlitepage.DatabaseHeader
	TextEncoding   = sqlitepage.TextEncoding
	PageType       = sqlitepage.PageType
	Page           = sqlitepage.Page
	LeafTableCell  = sqlitepage.LeafTableCell
	CellCursor     = sqlitepage.CellCursor
)

const (
	InteriorIndex = sqlitepage.InteriorIndex
	InteriorTable = sqlitepage.InteriorTable
	LeafIndex     = sqlitepage.LeafIndex
	LeafTable     = sqlitepage.LeafTable

	UTF8    = sqlitepage.UTF8
	UTF16le = sqlitepage.UTF16le
	UTF16be = sqlitepage.UTF16be
)

var (
	ErrTruncated           = sqlitepage.ErrTruncated
	ErrInvalidFormat       = sqlitepage.ErrInvalidFormat
	ErrUnsupportedPageType = sqlitepage.ErrUnsupportedPageType
	ErrCorruptPage         = sqlitepage.ErrCorruptPage
	ErrCorruptCell         = sqlitepage.ErrCorruptCell
	ErrRootIsInterior      = sqlitepage.ErrRootIsInterior
	ErrNotImplemented      = sqlitepage.ErrNotImplemented
	ErrNoMoreCells         = sqlitepage.ErrNoMoreCells
)

// DB is an open, read-only database file.
type DB struct {
	db     *sqlitepage.Database
	logger *zap.Logger
}

// Open opens the database described by a connection string, see
// ParseConnectionString for the supported parameters.
func Open(connStr string) (*DB, error) {
	return OpenContext(context.Background(), connStr)
}

func OpenContext(ctx context.Context, connStr string) (*DB, error) {
	config, err := ParseConnectionString(connStr)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(config.LogLevel, config.LogEncoding)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := sqlitepage.OpenFile(
		ctx,
		logger.With(zap.String("path", config.FilePath)),
		config.FilePath,
		sqlitepage.WithMaxCachedPages(config.MaxCachedPages),
	)
	if err != nil {
		logger.Sync() // nolint:errcheck
		return nil, err
	}

	return &DB{
		db:     db,
		logger: logger,
	}, nil
}

func (d *DB) Header() DatabaseHeader {
	return d.db.Header()
}

// SchemaPage returns page 1, the root page of the schema table.
func (d *DB) SchemaPage() *Page {
	return d.db.SchemaPage()
}

// SchemaCells returns a one-shot cursor over the rows stored on page 1. It
// fails with ErrRootIsInterior when the schema table has outgrown one page.
func (d *DB) SchemaCells() (*CellCursor, error) {
	return d.db.SchemaPageCells()
}

// Page reads page n, counting from 1.
func (d *DB) Page(ctx context.Context, n uint32) (*Page, error) {
	return d.db.Page(ctx, n)
}

func (d *DB) PageCount() uint32 {
	return d.db.PageCount()
}

func (d *DB) Close() error {
	err := d.db.Close()
	d.logger.Sync() // nolint:errcheck
	return err
}
