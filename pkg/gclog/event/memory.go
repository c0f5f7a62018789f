package event

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// MemoryShape identifies which of the two memory change layouts a line used.
type MemoryShape int

const (
	// MemoryAbsolute is "before->after(capacity)", e.g. "254M->12M(1200M)".
	MemoryAbsolute MemoryShape = iota + 1
	// MemoryPercent is "before(pct%)->after(pct%)", e.g. "25M(4%)->12M(3%)".
	MemoryPercent
)

func (s MemoryShape) String() string {
	switch s {
	case MemoryAbsolute:
		return "absolute"
	case MemoryPercent:
		return "percent"
	default:
		return fmt.Sprintf("MemoryShape(%d)", int(s))
	}
}

// MemoryChange is a decoded heap transition. Sizes are in bytes.
type MemoryChange struct {
	Shape  MemoryShape
	Before uint64
	After  uint64

	// Capacity is only set for MemoryAbsolute.
	Capacity uint64

	// BeforePercent and AfterPercent are only set for MemoryPercent.
	BeforePercent int
	AfterPercent  int
}

// Freed returns how many bytes the event reclaimed (zero if the heap grew).
func (m MemoryChange) Freed() uint64 {
	if m.After >= m.Before {
		return 0
	}
	return m.Before - m.After
}

var (
	absolutePattern = regexp.MustCompile(`^(\d+\w)->(\d+\w)\((\d+\w)\)$`)
	percentPattern  = regexp.MustCompile(`^(\d+\w)\((\d+)%\)->(\d+\w)\((\d+)%\)$`)
)

// ParseMemoryChange decodes the raw memory change text of an Event.
// Units follow HotSpot conventions: B, K, M, G, T are powers of 1024.
func ParseMemoryChange(s string) (MemoryChange, error) {
	if m := absolutePattern.FindStringSubmatch(s); m != nil {
		sizes, err := parseSizes(m[1], m[2], m[3])
		if err != nil {
			return MemoryChange{}, err
		}
		return MemoryChange{
			Shape:    MemoryAbsolute,
			Before:   sizes[0],
			After:    sizes[1],
			Capacity: sizes[2],
		}, nil
	}

	if m := percentPattern.FindStringSubmatch(s); m != nil {
		sizes, err := parseSizes(m[1], m[3])
		if err != nil {
			return MemoryChange{}, err
		}
		before, err := strconv.Atoi(m[2])
		if err != nil {
			return MemoryChange{}, fmt.Errorf("memory change %q: %w", s, err)
		}
		after, err := strconv.Atoi(m[4])
		if err != nil {
			return MemoryChange{}, fmt.Errorf("memory change %q: %w", s, err)
		}
		return MemoryChange{
			Shape:         MemoryPercent,
			Before:        sizes[0],
			After:         sizes[1],
			BeforePercent: before,
			AfterPercent:  after,
		}, nil
	}

	return MemoryChange{}, fmt.Errorf("unrecognized memory change %q", s)
}

func parseSizes(values ...string) ([]uint64, error) {
	out := make([]uint64, len(values))
	for i, v := range values {
		n, err := ParseSize(v)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// ParseSize converts a HotSpot size such as "512K" or "12M" to bytes.
func ParseSize(s string) (uint64, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	num, unit := s[:len(s)-1], strings.ToUpper(s[len(s)-1:])
	switch unit {
	case "B":
		n, err := strconv.ParseUint(num, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid size %q: %w", s, err)
		}
		return n, nil
	case "K", "M", "G", "T":
		n, err := humanize.ParseBytes(num + unit + "iB")
		if err != nil {
			return 0, fmt.Errorf("invalid size %q: %w", s, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("invalid size unit in %q", s)
	}
}
