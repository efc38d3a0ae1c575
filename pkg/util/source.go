package util

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/edsrzf/mmap-go"
)

// ReadSource returns the full contents of filePath.
//
// The file is mapped read-only and copied out before the mapping is released,
// so callers own the returned slice and may keep it after the file changes on
// disk (watch mode rewrites sources underneath us). When mmap fails the file
// is read with os.ReadFile instead.
func ReadSource(filePath string) ([]byte, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", filePath, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file %q: %w", filePath, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%q is a directory", filePath)
	}

	// Zero-length files cannot be mapped.
	if stat.Size() == 0 {
		return []byte{}, nil
	}

	mapped, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		data, readErr := os.ReadFile(filePath)
		if readErr != nil {
			return nil, fmt.Errorf("mmap failed and fallback failed for %q: mmap error: %v, read error: %w",
				filePath, err, readErr)
		}
		return data, nil
	}

	data := make([]byte, len(mapped))
	copy(data, mapped)

	if err := mapped.Unmap(); err != nil {
		return nil, fmt.Errorf("unmap %q: %w", filePath, err)
	}

	return data, nil
}

// SameContent reports whether filePath exists and holds exactly data.
// A missing file is not an error; it simply differs.
func SameContent(filePath string, data []byte) (bool, error) {
	existing, err := ReadSource(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return bytes.Equal(existing, data), nil
}
