package e2etests

import (
	"sync"

	"github.com/RichardKnop/sqlitepage"
)

func (s *TestSuite) TestConcurrency() {
	s.exec(createUsersTableSQL, createProductsTableSQL, createOrdersTableSQL)
	for i := range 200 {
		_, err := s.sqlDB.Exec(`INSERT INTO products (name, price) VALUES (?, ?)`, gen.ProductName(), i)
		s.Require().NoError(err)
	}

	s.Run("Independent readers", func() {
		workerPool := make(chan struct{}, 10) // limit concurrency to 10 goroutines
		wg := sync.WaitGroup{}

		for range 50 {
			workerPool <- struct{}{}
			wg.Go(func() {
				defer func() { <-workerPool }()

				db, err := sqlitepage.Open(s.dbPath + "?log_level=error")
				if !s.NoError(err) {
					return
				}
				defer db.Close()

				cursor, err := db.SchemaCells()
				if !s.NoError(err) {
					return
				}
				count := 0
				for _, err := range cursor.All() {
					s.NoError(err)
					count += 1
				}
				s.Equal(4, count)
			})
		}

		wg.Wait()
	})

	s.Run("Shared reader with a small page cache", func() {
		db, err := sqlitepage.Open(s.dbPath + "?log_level=error&max_cached_pages=2")
		s.Require().NoError(err)
		defer db.Close()

		ctx := s.T().Context()
		wg := sync.WaitGroup{}
		for i := range 40 {
			n := uint32(i)%db.PageCount() + 1
			wg.Go(func() {
				aPage, err := db.Page(ctx, n)
				if s.NoError(err) {
					s.Equal(n, aPage.Number)
				}
			})
		}

		wg.Wait()
	})
}
