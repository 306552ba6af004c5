package main

import (
	"errors"
	"fmt"

	"github.com/RichardKnop/sqlitepage/internal/pkg/util"
	"github.com/RichardKnop/sqlitepage/internal/sqlitepage"
)

const payloadPreviewSize = 64

// DBInfoCmd mirrors the .dbinfo meta command of the sqlite3 shell.
type DBInfoCmd struct {
	Path string `arg:"" type:"existingfile" help:"Database file"`
}

func (c *DBInfoCmd) Run(g *globals) error {
	db, err := g.open(c.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	h := db.Header()
	schemaPage := db.SchemaPage()

	fmt.Fprintf(g.out, "database page size: %d\n", h.PageSize)
	fmt.Fprintf(g.out, "reserved bytes:     %d\n", h.ReservedSpace)
	fmt.Fprintf(g.out, "page count:         %d\n", db.PageCount())
	fmt.Fprintf(g.out, "text encoding:      %s\n", h.TextEncoding)
	fmt.Fprintf(g.out, "schema format:      %d\n", h.SchemaFormat)
	fmt.Fprintf(g.out, "sqlite version:     %d\n", h.SQLiteVersion)
	fmt.Fprintf(g.out, "page type:          %s\n", schemaPage.Type)
	if schemaPage.Type.IsLeaf() {
		fmt.Fprintf(g.out, "number of tables:   %d\n", schemaPage.CellCount)
	}
	fmt.Fprintf(g.out, "content area start: %d\n", schemaPage.ContentAreaStart)

	return nil
}

type CellsCmd struct {
	Path string `arg:"" type:"existingfile" help:"Database file"`
}

var cellColumns = []util.Column{
	{Name: "row id"},
	{Name: "payload size"},
	{Name: "overflow"},
	{Name: "payload", Wide: true},
}

func (c *CellsCmd) Run(g *globals) error {
	db, err := g.open(c.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	cursor, err := db.SchemaPageCells()
	if errors.Is(err, sqlitepage.ErrRootIsInterior) {
		return fmt.Errorf("schema table spans several pages, only single page schemas are supported: %w", err)
	}
	if err != nil {
		return err
	}

	util.PrintTableHeader(g.out, cellColumns)
	for aCell, err := range cursor.All() {
		if err != nil {
			return err
		}
		overflow := "-"
		if aCell.OverflowPage != nil {
			overflow = fmt.Sprint(*aCell.OverflowPage)
		}
		preview := aCell.LocalPayload
		if len(preview) > payloadPreviewSize {
			preview = preview[:payloadPreviewSize]
		}
		util.PrintTableRow(g.out, cellColumns, []any{aCell.RowID, aCell.PayloadSize, overflow, util.Printable(preview)})
	}
	util.PrintTableEnd(g.out, cellColumns)

	return nil
}

type PageCmd struct {
	Path   string `arg:"" type:"existingfile" help:"Database file"`
	Number uint32 `arg:"" help:"Page number, counting from 1"`
}

func (c *PageCmd) Run(g *globals) error {
	db, err := g.open(c.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	aPage, err := db.Page(g.ctx, c.Number)
	if err != nil {
		return err
	}

	fmt.Fprintf(g.out, "page:               %d\n", aPage.Number)
	fmt.Fprintf(g.out, "page type:          %s\n", aPage.Type)
	fmt.Fprintf(g.out, "cell count:         %d\n", aPage.CellCount)
	fmt.Fprintf(g.out, "content area start: %d\n", aPage.ContentAreaStart)
	fmt.Fprintf(g.out, "first freeblock:    %d\n", aPage.FirstFreeblock)
	fmt.Fprintf(g.out, "fragmented bytes:   %d\n", aPage.FragmentedFreeBytes)
	switch aPage.Type {
	case sqlitepage.InteriorIndex, sqlitepage.InteriorTable:
		fmt.Fprintf(g.out, "right most pointer: %d\n", aPage.RightMostPointer)
	case sqlitepage.LeafIndex, sqlitepage.LeafTable:
	}
	fmt.Fprintf(g.out, "cell pointers:      %v\n", aPage.CellPointers)

	return nil
}
