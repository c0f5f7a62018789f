package parser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultMaxLineBytes is the default limit for a single log line.
	DefaultMaxLineBytes = 1024 * 1024

	// DefaultChunkLines is the number of lines handed to one worker in parallel mode.
	DefaultChunkLines = 4096

	// ctxCheckInterval is how many lines are scanned between context checks.
	ctxCheckInterval = 1024
)

// MatchOptions configures Match.
type MatchOptions struct {
	// Workers is the number of goroutines matching lines. Values <= 1 scan sequentially.
	Workers int

	// ChunkLines is the number of lines per parallel work unit (0 = DefaultChunkLines).
	ChunkLines int

	// MaxLineBytes limits the length of one line (0 = DefaultMaxLineBytes).
	MaxLineBytes int

	// KeepRawLines stores each matched line alongside its captures.
	KeepRawLines bool
}

// Columns holds the captures of every matched line, one column per field.
// All columns have the same length: each matched line contributes exactly one
// entry per field, nil when the field did not participate.
type Columns struct {
	cols      [numFields][]*string
	lineNos   []int
	raw       []string
	linesRead int
}

// Column returns the captures of f in line order.
func (c *Columns) Column(f Field) []*string {
	return c.cols[f]
}

// Len returns the number of matched lines.
func (c *Columns) Len() int {
	return len(c.lineNos)
}

// LinesRead returns the number of lines read from the input, matched or not.
func (c *Columns) LinesRead() int {
	return c.linesRead
}

// LineNumbers returns the 1-based source line number of every matched line.
func (c *Columns) LineNumbers() []int {
	return c.lineNos
}

// RawLines returns the matched lines, or nil when raw lines were not kept.
func (c *Columns) RawLines() []string {
	return c.raw
}

func (c *Columns) add(caps Captures, lineNo int, line string, keepRaw bool) {
	for f := range c.cols {
		c.cols[f] = append(c.cols[f], caps[f])
	}
	c.lineNos = append(c.lineNos, lineNo)
	if keepRaw {
		c.raw = append(c.raw, line)
	}
}

func (c *Columns) appendColumns(other *Columns) {
	for f := range c.cols {
		c.cols[f] = append(c.cols[f], other.cols[f]...)
	}
	c.lineNos = append(c.lineNos, other.lineNos...)
	c.raw = append(c.raw, other.raw...)
}

// Match reads r line by line and applies g to every line.
// Lines that do not match are skipped. The returned Columns are in line order
// regardless of opts.Workers.
func Match(ctx context.Context, r io.Reader, g *Grammar, opts MatchOptions) (*Columns, error) {
	if opts.Workers > 1 {
		return matchParallel(ctx, r, g, opts)
	}

	scanner := newScanner(r, opts.MaxLineBytes)
	cols := &Columns{}
	for scanner.Scan() {
		if cols.linesRead%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		cols.linesRead++

		line := trimLine(scanner.Text())
		if caps, ok := g.Match(line); ok {
			cols.add(caps, cols.linesRead, line, opts.KeepRawLines)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, scanError(err, cols.linesRead)
	}
	return cols, nil
}

// chunk is a run of consecutive lines starting at line number first.
type chunk struct {
	first int
	lines []string
}

func matchParallel(ctx context.Context, r io.Reader, g *Grammar, opts MatchOptions) (*Columns, error) {
	size := opts.ChunkLines
	if size <= 0 {
		size = DefaultChunkLines
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.Workers)

	// results is only appended to by the reading goroutine; workers fill
	// the Columns they were handed.
	var results []*Columns
	dispatch := func(c chunk) {
		out := &Columns{}
		results = append(results, out)
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			for i, line := range c.lines {
				if caps, ok := g.Match(line); ok {
					out.add(caps, c.first+i, line, opts.KeepRawLines)
				}
			}
			return nil
		})
	}

	scanner := newScanner(r, opts.MaxLineBytes)
	linesRead := 0
	current := chunk{first: 1, lines: make([]string, 0, size)}
	var readErr error
	for scanner.Scan() {
		if err := egCtx.Err(); err != nil {
			readErr = err
			break
		}
		linesRead++
		current.lines = append(current.lines, trimLine(scanner.Text()))
		if len(current.lines) == size {
			dispatch(current)
			current = chunk{first: linesRead + 1, lines: make([]string, 0, size)}
		}
	}
	if readErr == nil {
		if err := scanner.Err(); err != nil {
			readErr = scanError(err, linesRead)
		}
	}
	if readErr == nil && len(current.lines) > 0 {
		dispatch(current)
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if readErr != nil {
		return nil, readErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cols := &Columns{linesRead: linesRead}
	for _, res := range results {
		cols.appendColumns(res)
	}
	return cols, nil
}

func newScanner(r io.Reader, maxLineBytes int) *bufio.Scanner {
	if maxLineBytes <= 0 {
		maxLineBytes = DefaultMaxLineBytes
	}
	initial := 64 * 1024
	if maxLineBytes < initial {
		initial = maxLineBytes
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initial), maxLineBytes)
	return scanner
}

func scanError(err error, linesRead int) error {
	if errors.Is(err, bufio.ErrTooLong) {
		return fmt.Errorf("line %d: %w", linesRead+1, err)
	}
	return err
}

// trimLine drops a trailing CR left by CRLF line endings.
func trimLine(line string) string {
	return strings.TrimRight(line, "\r")
}
