package reader

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Source is a fixed-size, randomly addressable sequence of bytes. The size
// is captured once when the source is constructed and the backing bytes are
// assumed immutable for as long as the source is in use. A file that gets
// truncated or appended to underneath an open source is undefined behavior.
type Source interface {
	io.ReaderAt

	// Size returns the total number of addressable bytes.
	Size() int64
}

// FileSource is a Source backed by an open file handle.
type FileSource struct {
	f    *os.File
	size int64
}

// OpenFile opens the file at path as a Source.
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	src, err := NewFileSource(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return src, nil
}

// NewFileSource wraps an already open file. The file's size is captured here
// and never re-checked.
func NewFileSource(f *os.File) (*FileSource, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat input: %w", err)
	}

	return &FileSource{f: f, size: info.Size()}, nil
}

func (s *FileSource) ReadAt(p []byte, off int64) (int, error) {
	return s.f.ReadAt(p, off)
}

func (s *FileSource) Size() int64 {
	return s.size
}

func (s *FileSource) Close() error {
	return s.f.Close()
}

// NewBytesSource returns a Source over an in-memory byte slice. Useful for
// tests and for callers that already hold the data.
func NewBytesSource(b []byte) Source {
	return bytes.NewReader(b)
}
