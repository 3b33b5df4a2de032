package search

import "errors"

// Sentinel errors
var (
	ErrIndexNotFound = errors.New("search: index not found")
	ErrIndexExists   = errors.New("search: index already exists")
)

// Op constants map tới command name để log/metrics dễ đọc
const (
	OpCreateIndex = "FT.CREATE"
	OpIndexInfo   = "FT.INFO"
	OpSearch      = "FT.SEARCH"
	OpHSet        = "HSET"
	OpDel         = "DEL"
	OpExists      = "EXISTS"
	OpScan        = "SCAN"
	OpPing        = "PING"
)

// Error wraps lỗi từ Redis kèm command name
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return "search " + e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
