package sqlitepage

const DefaultMaxCachedPages = 64

type DatabaseOption func(*Database)

// WithMaxCachedPages bounds the number of decoded pages kept in memory.
func WithMaxCachedPages(maxPages int) DatabaseOption {
	return func(d *Database) {
		if maxPages > 0 {
			d.maxCachedPages = maxPages
		}
	}
}

// WithSourceSize sets the size of a source that cannot report it itself.
func WithSourceSize(size int64) DatabaseOption {
	return func(d *Database) {
		if size >= 0 {
			d.sourceSize = size
		}
	}
}
