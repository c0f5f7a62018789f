// Package safefile opens GC log inputs and export outputs without following
// symlinks or blocking on special files.
package safefile

import (
	"errors"
	"fmt"
	"os"
)

// ErrNotRegularFile is returned for symlinks, FIFOs, devices, sockets, and directories.
var ErrNotRegularFile = errors.New("not a regular file")

// OpenRegular opens path for reading after checking it is a regular file.
//
// The path is checked with os.Lstat before opening, so symlinks are rejected,
// and the opened descriptor is checked again in case the file was swapped in
// between. A FIFO would block os.Open, so it must be rejected before opening.
//
// On failure the file is closed and the error wraps the underlying
// *fs.PathError or ErrNotRegularFile.
func OpenRegular(path string) (*os.File, os.FileInfo, error) {
	linkInfo, err := os.Lstat(path)
	if err != nil {
		return nil, nil, err
	}
	if !linkInfo.Mode().IsRegular() {
		return nil, nil, fmt.Errorf("%s: %w", linkInfo.Mode().Type(), ErrNotRegularFile)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if !info.Mode().IsRegular() || !os.SameFile(linkInfo, info) {
		f.Close()
		return nil, nil, ErrNotRegularFile
	}

	return f, info, nil
}

// CreateRegular creates or truncates path for writing.
// An existing path must be a regular file; symlinks are not followed.
func CreateRegular(path string) (*os.File, error) {
	info, err := os.Lstat(path)
	switch {
	case err == nil && !info.Mode().IsRegular():
		return nil, ErrNotRegularFile
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	return f, nil
}
