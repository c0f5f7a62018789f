package gclog

import (
	"errors"
	"fmt"

	"github.com/gclog/gclog-go/internal/safefile"
)

// Sentinel errors.
var (
	// ErrEmptyPath is returned when the log file path is empty or blank.
	ErrEmptyPath = errors.New("no log file provided")

	// ErrNoMatchingLines is returned when a non-empty input contains no GC event lines.
	// An input with zero lines is not an error: it yields an empty Table.
	ErrNoMatchingLines = errors.New("no recognizable gc event lines")

	// ErrNotRegularFile is returned when the path is a directory, symlink, FIFO, or device.
	ErrNotRegularFile = safefile.ErrNotRegularFile
)

// ParseOp identifies the parse step that failed.
type ParseOp string

// Parse operations.
const (
	ParseOpOpen  ParseOp = "open"
	ParseOpRead  ParseOp = "read"
	ParseOpMatch ParseOp = "match"
	ParseOpBuild ParseOp = "build"
)

// ParseError is returned by ParseFile and ParseReader.
// Use errors.Is with fs.ErrNotExist to detect a missing file.
type ParseError struct {
	Op   ParseOp
	Path string // empty for ParseReader
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("gclog: %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("gclog: %s: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
