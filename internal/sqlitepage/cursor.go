package sqlitepage

import (
	"errors"
	"iter"
)

// CellCursor decodes the cells of a table leaf page one at a time, in cell
// pointer order. A cursor is exhausted after one pass.
type CellCursor struct {
	page    *Page
	cellIdx int
}

func newCellCursor(aPage *Page) *CellCursor {
	return &CellCursor{page: aPage}
}

func emptyCellCursor() *CellCursor {
	return &CellCursor{}
}

// Next decodes the next cell. It returns ErrNoMoreCells once every cell has
// been returned.
func (c *CellCursor) Next() (LeafTableCell, error) {
	if c.page == nil || c.cellIdx >= len(c.page.CellPointers) {
		return LeafTableCell{}, ErrNoMoreCells
	}

	aCell, err := c.page.LeafTableCell(c.cellIdx)
	if err != nil {
		return LeafTableCell{}, err
	}
	c.cellIdx += 1

	return aCell, nil
}

// All iterates over the remaining cells, stopping after the first error.
func (c *CellCursor) All() iter.Seq2[LeafTableCell, error] {
	return func(yield func(LeafTableCell, error) bool) {
		for {
			aCell, err := c.Next()
			if errors.Is(err, ErrNoMoreCells) {
				return
			}
			if !yield(aCell, err) || err != nil {
				return
			}
		}
	}
}
