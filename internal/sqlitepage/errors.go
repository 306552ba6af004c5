package sqlitepage

import (
	"errors"
)

var (
	ErrTruncated           = errors.New("truncated")
	ErrInvalidFormat       = errors.New("invalid database format")
	ErrUnsupportedPageType = errors.New("unsupported page type")
	ErrCorruptPage         = errors.New("corrupt page")
	ErrCorruptCell         = errors.New("corrupt cell")
	ErrRootIsInterior      = errors.New("root page is an interior page")
	ErrNotImplemented      = errors.New("not implemented")
	ErrNoMoreCells         = errors.New("no more cells")
)
