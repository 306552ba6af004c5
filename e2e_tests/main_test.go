package e2etests

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

var gen = gofakeit.New(uint64(time.Now().Unix()))
