// Common package contains commonly used functions that benefit multiple tools
// Exporting these functions from the Common package reduces redundant code
package common

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// gzipFile couples the decompressor with the underlying file so a single
// Close releases both.
type gzipFile struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipFile) Close() error {
	gzErr := g.Reader.Close()
	if err := g.file.Close(); err != nil {
		return err
	}
	return gzErr
}

// OpenMaybeGzip opens a file for reading. If the first two bytes are the gzip
// magic number (0x1F 0x8B) the returned reader decompresses transparently,
// otherwise the plain file is returned. The caller must Close the result.
func OpenMaybeGzip(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	buf := make([]byte, 2)
	n, _ := io.ReadFull(f, buf)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rewind file: %w", err)
	}

	if n == 2 && buf[0] == 0x1F && buf[1] == 0x8B {
		gr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to open gzip reader: %w", err)
		}
		return &gzipFile{Reader: gr, file: f}, nil
	}
	return f, nil
}

// NewLineScanner returns a scanner sized for wide tab-delimited tables.
// Series matrix rows grow with the sample count and easily pass the
// 64 KiB default of bufio.Scanner.
func NewLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 64*1024*1024)
	return scanner
}

// SafeFileName replaces characters that are awkward in file names
// (path separators, spaces, colons) with underscores.
func SafeFileName(name string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", " ", "_", ":", "_", "*", "_", "?", "_")
	return replacer.Replace(name)
}

// EnsureDir creates the parent directory of path if it does not exist yet.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
