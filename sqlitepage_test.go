package sqlitepage

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func TestOpen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.db")
	sqlDB, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = sqlDB.Exec("CREATE TABLE kv (k TEXT PRIMARY KEY, v BLOB)")
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	db, err := Open(path + "?log_level=error&max_cached_pages=2")
	require.NoError(t, err)
	defer db.Close()

	assert.Positive(t, db.Header().PageSize)
	assert.Equal(t, LeafTable, db.SchemaPage().Type)
	// The table and its primary key index
	assert.Equal(t, uint32(3), db.PageCount())

	cursor, err := db.SchemaCells()
	require.NoError(t, err)

	var rowIDs []uint64
	for aCell, err := range cursor.All() {
		require.NoError(t, err)
		rowIDs = append(rowIDs, aCell.RowID)
	}
	assert.Equal(t, []uint64{1, 2}, rowIDs)

	// The primary key index root is an index leaf, its cells are not decoded
	indexPage, err := db.Page(t.Context(), 3)
	require.NoError(t, err)
	assert.Equal(t, LeafIndex, indexPage.Type)
	_, err = indexPage.LeafTableCell(0)
	assert.ErrorIs(t, err, ErrNotImplemented)
}

func TestOpen_Errors(t *testing.T) {
	t.Parallel()

	_, err := Open(filepath.Join(t.TempDir(), "missing.db"))
	assert.Error(t, err)

	_, err = Open("./x.db?log_level=chatty")
	assert.ErrorContains(t, err, "invalid log_level")
}
